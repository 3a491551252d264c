package services

import (
	"context"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
	"github.com/hardiknj/auth_session_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by normalized email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRegistrationSvc defines the registration and email verification flow
type UserRegistrationSvc interface {
	// Register creates an unverified user and sends a verification email.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// VerifyEmail consumes a verification token (single use) and marks the user verified.
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)

	// ResendEmailVerification reissues the verification token for an unverified user.
	ResendEmailVerification(ctx context.Context, email string) error
}

// UserPasswordSvc defines the password reset flow
type UserPasswordSvc interface {
	// ForgotPassword issues a reset token and emails it. Does not reveal whether the
	// email exists.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes a reset token (single use) and sets a new password.
	// All existing sessions of the user are revoked.
	ResetPassword(ctx context.Context, token string, newPassword string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password. Unknown email and
	// wrong password both yield ErrUnauthorized; an unverified account yields ErrForbidden.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a validated Google identity to a local user,
	// creating a verified account on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserAdminSvc defines elevated operations over the user base
type UserAdminSvc interface {
	// ListUsersWithSessionSummary lists verified users (excluding the acting admin)
	// annotated with derived session status, latest activity and session count.
	ListUsersWithSessionSummary(ctx context.Context, actingAdminID string) ([]dto.AdminUserResponse, error)

	// UpdateUserRole changes a user's role on behalf of the acting admin.
	UpdateUserRole(ctx context.Context, actingAdminID string, userID string, role domain.Role) (*domain.User, error)

	// DeleteUser removes a user and all of their sessions on behalf of the acting admin.
	DeleteUser(ctx context.Context, actingAdminID string, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserRegistrationSvc
	UserPasswordSvc
	UserAuthSvc
	UserAdminSvc
}

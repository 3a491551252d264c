package repositories

import (
	"context"
	"time"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// SaveUser inserts a new user. Returns apperrors.ErrDuplicate when the email
	// (unique, stored lowercase) already exists.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID. Returns apperrors.ErrNotFound when absent.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByVerificationTokenHash retrieves a user whose stored email verification
	// token hash matches and is unexpired at `now`.
	FindUserByVerificationTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)

	// FindUserByResetTokenHash retrieves a user whose stored password reset token hash
	// matches and is unexpired at `now`.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)

	// FindVerifiedUsers lists verified users, excluding excludeUserID, ordered by
	// created_at descending (stable user_id tie-break).
	FindVerifiedUsers(ctx context.Context, excludeUserID string) ([]domain.User, error)

	// SetVerificationToken stores the hash and expiry of a new email verification token.
	SetVerificationToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// MarkUserVerified sets the verified flags and clears the verification token fields.
	MarkUserVerified(ctx context.Context, userID string) error

	// SetResetToken stores the hash and expiry of a new password reset token.
	SetResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error

	// UpdatePasswordAndClearResetToken sets a new password hash and clears the reset
	// token fields in a single statement (single-use consumption).
	UpdatePasswordAndClearResetToken(ctx context.Context, userID string, passwordHash string) error

	// UpdateUserRole changes a user's role. Returns apperrors.ErrNotFound when absent.
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)

	// DeleteUser hard-deletes a user row. Returns apperrors.ErrNotFound when absent.
	// Session cleanup is the caller's responsibility.
	DeleteUser(ctx context.Context, userID string) error
}

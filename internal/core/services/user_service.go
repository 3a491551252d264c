package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portsrepo "github.com/hardiknj/auth_session_app/internal/core/ports/repositories"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/dto"
	"github.com/hardiknj/auth_session_app/internal/middleware"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
	"github.com/hardiknj/auth_session_app/internal/utils"
)

// tempTokenBytes is the byte length of the single-use temporary tokens; the client
// receives the 40-char hex value in an email link, the store keeps only its hash.
const tempTokenBytes = 20

type userService struct {
	cfg         *config.Config
	userRepo    portsrepo.UserRepository
	sessionRepo portsrepo.SessionRepository
	mailer      portssvc.MailerSvc
}

// NewUserService creates a new instance of userService.
func NewUserService(
	cfg *config.Config,
	userRepo portsrepo.UserRepository,
	sessionRepo portsrepo.SessionRepository,
	mailer portssvc.MailerSvc,
) portssvc.UserSvcFacade {
	return &userService{
		cfg:         cfg,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		mailer:      mailer,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// newTempToken returns the raw token (client-facing) and its stored hash + expiry.
func (s *userService) newTempToken() (raw string, hash string, expiry time.Time, err error) {
	raw, err = utils.GenerateSecureRandomString(tempTokenBytes)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate temporary token: %w", err)
	}
	return raw, utils.HashToken(raw), time.Now().Add(s.cfg.TempTokenExpiryDuration), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rawToken, tokenHash, tokenExpiry, err := s.newTempToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := domain.User{
		UserID:                  uuid.NewString(),
		Fullname:                req.Fullname,
		Email:                   normalizeEmail(req.Email),
		PasswordHash:            passwordHash,
		Role:                    domain.RoleUser,
		LoginType:               domain.LoginTypeEmailPassword,
		IsVerified:              false,
		IsEmailVerified:         false,
		EmailVerificationToken:  &tokenHash,
		EmailVerificationExpiry: &tokenExpiry,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerificationEmail(ctx, user.Email, user.Fullname, rawToken); err != nil {
		return nil, fmt.Errorf("failed to send verification email: %w", err)
	}

	return &user, nil
}

func (s *userService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByVerificationTokenHash(ctx, utils.HashToken(token), time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.MarkUserVerified(ctx, user.UserID); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.IsEmailVerified = true
	user.EmailVerificationToken = nil
	user.EmailVerificationExpiry = nil
	return user, nil
}

func (s *userService) ResendEmailVerification(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if user.IsEmailVerified {
		return fmt.Errorf("email is already verified: %w", apperrors.ErrValidation)
	}

	rawToken, tokenHash, tokenExpiry, err := s.newTempToken()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetVerificationToken(ctx, user.UserID, tokenHash, tokenExpiry); err != nil {
		return err
	}

	return s.mailer.SendVerificationEmail(ctx, user.Email, user.Fullname, rawToken)
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Do not reveal whether the address is registered.
			return nil
		}
		return err
	}

	rawToken, tokenHash, tokenExpiry, err := s.newTempToken()
	if err != nil {
		return err
	}
	if err := s.userRepo.SetResetToken(ctx, user.UserID, tokenHash, tokenExpiry); err != nil {
		return err
	}

	return s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Fullname, rawToken)
}

func (s *userService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	// Single use: the lookup only matches an unexpired stored hash, and the update
	// below clears it, so replaying the same token finds nothing.
	user, err := s.userRepo.FindUserByResetTokenHash(ctx, utils.HashToken(token), time.Now())
	if err != nil {
		return err
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePasswordAndClearResetToken(ctx, user.UserID, passwordHash); err != nil {
		return err
	}

	// A password reset invalidates every live session of the account.
	if _, err := s.sessionRepo.DeleteSessionsByUserID(ctx, user.UserID); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to revoke sessions after password reset",
			slog.String("user_id", user.UserID), slog.String("error", err.Error()))
	}

	return nil
}

func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same generic failure as a wrong password, to avoid account enumeration.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	if !user.IsVerified {
		return nil, fmt.Errorf("account is not verified: %w", apperrors.ErrForbidden)
	}

	return user, nil
}

func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	email := normalizeEmail(info.Email)

	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// First Google sign-in: provision a verified account. The random password hash
	// keeps the email/password login path closed until the user sets one via reset.
	randomSecret, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	passwordHash, err := utils.HashPassword(randomSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:          uuid.NewString(),
		Fullname:        info.Name,
		Email:           email,
		PasswordHash:    passwordHash,
		Role:            domain.RoleUser,
		LoginType:       domain.LoginTypeGoogle,
		IsVerified:      true,
		IsEmailVerified: info.EmailVerified,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, err
	}
	return &newUser, nil
}

func (s *userService) ListUsersWithSessionSummary(ctx context.Context, actingAdminID string) ([]dto.AdminUserResponse, error) {
	users, err := s.userRepo.FindVerifiedUsers(ctx, actingAdminID)
	if err != nil {
		return nil, err
	}

	summaries, err := s.sessionRepo.SummarizeSessionsByUser(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	responses := make([]dto.AdminUserResponse, len(users))
	for i, user := range users {
		summary := summaries[user.UserID]

		lastActive := ""
		if summary.Latest != nil {
			lastActive = summary.Latest.UpdatedAt.Format(dto.LastActiveFormat)
		}

		responses[i] = dto.AdminUserResponse{
			ID:            user.UserID,
			Fullname:      capitalize(user.Fullname),
			Email:         user.Email,
			Role:          string(user.Role),
			Status:        string(domain.DeriveUserStatus(summary.Latest, now)),
			LastActive:    lastActive,
			SessionsCount: summary.Count,
		}
	}

	middleware.GetLoggerFromCtx(ctx).Info("admin fetched all users",
		slog.String("acting_admin_id", actingAdminID), slog.Int("count", len(responses)))
	return responses, nil
}

func (s *userService) UpdateUserRole(ctx context.Context, actingAdminID string, userID string, role domain.Role) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("acting_admin_id", actingAdminID),
		slog.String("target_user_id", userID),
		slog.String("role", string(role)),
	)

	user, err := s.userRepo.UpdateUserRole(ctx, userID, role)
	if err != nil {
		logger.Warn("admin role update failed", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("admin updated user role")
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, actingAdminID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("acting_admin_id", actingAdminID),
		slog.String("target_user_id", userID),
	)

	// Explicit cascade: the session rows only weakly reference the user, so the
	// lifecycle owner removes them before the user row.
	removed, err := s.sessionRepo.DeleteSessionsByUserID(ctx, userID)
	if err != nil {
		logger.Error("admin user deletion failed while revoking sessions", slog.String("error", err.Error()))
		return err
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		logger.Warn("admin user deletion failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("admin deleted user", slog.Int64("sessions_revoked", removed))
	return nil
}

// capitalize upper-cases the first letter of each word for display.
func capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

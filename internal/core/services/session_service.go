package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

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

// sessionService implements SessionSvcFacade. One session row per live
// (user, device) login; expiry is enforced lazily at refresh/read time, there is
// no background sweeper.
type sessionService struct {
	cfg         *config.Config
	sessionRepo portsrepo.SessionRepository
	userRepo    portsrepo.UserRepository
	tokenSvc    portssvc.TokenSvcFacade
	geoLocator  portssvc.GeoLocatorSvc
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(
	cfg *config.Config,
	sessionRepo portsrepo.SessionRepository,
	userRepo portsrepo.UserRepository,
	tokenSvc portssvc.TokenSvcFacade,
	geoLocator portssvc.GeoLocatorSvc,
) portssvc.SessionSvcFacade {
	return &sessionService{
		cfg:         cfg,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		tokenSvc:    tokenSvc,
		geoLocator:  geoLocator,
	}
}

func (s *sessionService) sessionTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return s.cfg.RememberMeExpiryDuration
	}
	return s.cfg.RefreshTokenExpiryDuration
}

func (s *sessionService) Login(ctx context.Context, user *domain.User, meta portssvc.LoginMetadata) (string, string, error) {
	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", "", err
	}

	ttl := s.sessionTTL(meta.RememberMe)
	refreshToken, expiresAt, err := s.tokenSvc.GenerateRefreshToken(ctx, user.UserID, ttl)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	session := domain.Session{
		SessionID:        uuid.NewString(),
		UserID:           user.UserID,
		RefreshTokenHash: utils.HashToken(refreshToken),
		RememberMe:       meta.RememberMe,
		UserAgent:        meta.UserAgent,
		IPAddress:        meta.IPAddress,
		ExpiresAt:        expiresAt,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.sessionRepo.SaveSession(ctx, session); err != nil {
		return "", "", fmt.Errorf("failed to persist session: %w", err)
	}

	return accessToken, refreshToken, nil
}

func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	tokenHash := utils.HashToken(refreshToken)

	// The store lookup is authoritative: an unknown hash means the token was never
	// issued, was already rotated, or was revoked. The caller must re-authenticate.
	session, err := s.sessionRepo.FindSessionByTokenHash(ctx, tokenHash)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	if !now.Before(session.ExpiresAt) {
		// Lazy expiry: remove the stale row so a replay of the same token gets NotFound.
		if delErr := s.sessionRepo.DeleteSessionByID(ctx, session.SessionID); delErr != nil && !errors.Is(delErr, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("failed to delete expired session",
				slog.String("session_id", session.SessionID), slog.String("error", delErr.Error()))
		}
		return "", "", apperrors.ErrRefreshTokenExpired
	}

	userID, err := s.tokenSvc.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		return "", "", err
	}
	if userID != session.UserID {
		return "", "", fmt.Errorf("refresh token subject mismatch: %w", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Orphaned session (owner deleted): remove it and force re-auth.
			_ = s.sessionRepo.DeleteSessionByID(ctx, session.SessionID)
		}
		return "", "", err
	}

	accessToken, _, err := s.tokenSvc.GenerateAccessToken(ctx, user)
	if err != nil {
		return "", "", err
	}

	// Rotate on use: a fresh refresh token every exchange keeps the replay window to
	// a single use. The row is mutated in place, never duplicated.
	ttl := s.sessionTTL(session.RememberMe)
	newRefreshToken, newExpiresAt, err := s.tokenSvc.GenerateRefreshToken(ctx, user.UserID, ttl)
	if err != nil {
		return "", "", err
	}

	err = s.sessionRepo.RotateRefreshToken(ctx, session.SessionID, tokenHash, utils.HashToken(newRefreshToken), newExpiresAt, now)
	if err != nil {
		// ErrNotFound here means a concurrent refresh won the race with this token.
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

func (s *sessionService) Logout(ctx context.Context, refreshToken string) error {
	err := s.sessionRepo.DeleteSessionByTokenHash(ctx, utils.HashToken(refreshToken))
	if errors.Is(err, apperrors.ErrNotFound) {
		// Already gone: logout is idempotent for the caller.
		return nil
	}
	return err
}

func (s *sessionService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	return s.sessionRepo.DeleteSessionsByUserID(ctx, userID)
}

func (s *sessionService) LogoutSessionByID(ctx context.Context, userID string, sessionID string) error {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	// A foreign session id looks exactly like an unknown one to the caller.
	if session.UserID != userID {
		return apperrors.ErrNotFound
	}
	return s.sessionRepo.DeleteSessionByID(ctx, sessionID)
}

func (s *sessionService) ForceLogoutSession(ctx context.Context, actingAdminID string, sessionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("acting_admin_id", actingAdminID),
		slog.String("session_id", sessionID),
	)

	err := s.sessionRepo.DeleteSessionByID(ctx, sessionID)
	if err != nil {
		logger.Warn("admin force-logout failed", slog.String("error", err.Error()))
		return err
	}

	logger.Info("admin forced session logout")
	return nil
}

func (s *sessionService) ListSessionsForUser(ctx context.Context, userID string, currentRefreshToken string) ([]dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.FindSessionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := s.presentSessions(ctx, sessions)
	for i := range sessions {
		if currentRefreshToken != "" && utils.CompareTokenHash(currentRefreshToken, sessions[i].RefreshTokenHash) {
			current := true
			responses[i].Current = &current
		}
	}
	return responses, nil
}

func (s *sessionService) ListSessionsForAdmin(ctx context.Context, userID string) ([]dto.SessionResponse, error) {
	sessions, err := s.sessionRepo.FindSessionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.presentSessions(ctx, sessions), nil
}

// presentSessions derives the human-facing view of each row. The location lookup
// degrades internally and can never fail the listing.
func (s *sessionService) presentSessions(ctx context.Context, sessions []domain.Session) []dto.SessionResponse {
	now := time.Now()
	responses := make([]dto.SessionResponse, len(sessions))
	for i, session := range sessions {
		responses[i] = dto.SessionResponse{
			ID:         session.SessionID,
			Device:     utils.DeviceSummary(session.UserAgent),
			Location:   s.geoLocator.LocateIP(ctx, session.IPAddress),
			IP:         session.IPAddress,
			LastActive: session.UpdatedAt.Format(dto.LastActiveFormat),
			Status:     string(domain.DeriveStatus(session.ExpiresAt, now)),
		}
	}
	return responses
}

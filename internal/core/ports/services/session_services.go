package services

import (
	"context"

	"github.com/hardiknj/auth_session_app/internal/dto"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
)

// LoginMetadata carries the per-device fingerprint captured at login time.
type LoginMetadata struct {
	UserAgent  string
	IPAddress  string
	RememberMe bool
}

// SessionLifecycleSvc drives the per-(user, device) session state machine:
// no-session -> active -> {expired, revoked}, where both terminal states delete
// the row and return the device to no-session.
type SessionLifecycleSvc interface {
	// Login mints an access/refresh token pair and persists a new session row with
	// a TTL chosen by the rememberMe flag. Concurrent sessions per user are allowed.
	Login(ctx context.Context, user *domain.User, meta LoginMetadata) (accessToken string, refreshToken string, err error)

	// Refresh exchanges a refresh token for a new access token, rotating the refresh
	// token in place (never creating a duplicate row). Unknown token: ErrNotFound.
	// Expired session: ErrRefreshTokenExpired, and the stale row is deleted.
	Refresh(ctx context.Context, refreshToken string) (accessToken string, newRefreshToken string, err error)

	// Logout deletes the session matching the caller's refresh token. Idempotent from
	// the caller's perspective.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll deletes every session of the user and returns how many were removed.
	LogoutAll(ctx context.Context, userID string) (int64, error)

	// LogoutSessionByID deletes one caller-owned session. A foreign or unknown
	// session id yields ErrNotFound.
	LogoutSessionByID(ctx context.Context, userID string, sessionID string) error

	// ForceLogoutSession deletes a session by id regardless of owner. Admin only;
	// the acting admin is audit-logged regardless of outcome.
	ForceLogoutSession(ctx context.Context, actingAdminID string, sessionID string) error
}

// SessionPresentationSvc renders session rows for human consumption: derived
// status, device summary, coarse location.
type SessionPresentationSvc interface {
	// ListSessionsForUser lists the caller's own sessions, marking the one matching
	// currentRefreshToken with current=true.
	ListSessionsForUser(ctx context.Context, userID string, currentRefreshToken string) ([]dto.SessionResponse, error)

	// ListSessionsForAdmin lists any user's sessions for the admin detail view.
	ListSessionsForAdmin(ctx context.Context, userID string) ([]dto.SessionResponse, error)
}

// SessionSvcFacade combines the session lifecycle and presentation interfaces
type SessionSvcFacade interface {
	SessionLifecycleSvc
	SessionPresentationSvc
}

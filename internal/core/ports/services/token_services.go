package services

import (
	"context"
	"time"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
	"github.com/hardiknj/auth_session_app/internal/utils"
)

// TokenSvcFacade issues and verifies the two token kinds. Access tokens are
// self-contained (verified without a store round-trip); refresh tokens become
// stateful once the lifecycle manager persists their hash into a session row.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a short-lived JWT carrying {sub, email, fullname, role}.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)

	// GenerateRefreshToken creates a long-lived JWT carrying the user ID only, with
	// the given TTL (session TTL: short, or long with remember-me).
	GenerateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error)

	// ValidateAccessToken verifies signature and expiry and returns the claims.
	ValidateAccessToken(ctx context.Context, token string) (*utils.AccessTokenClaims, error)

	// ValidateRefreshToken verifies signature and expiry and returns the user ID.
	ValidateRefreshToken(ctx context.Context, token string) (string, error)
}

// GoogleAuthSvcFacade validates Google ID tokens for the social login variant.
type GoogleAuthSvcFacade interface {
	// ValidateGoogleIDToken verifies an ID token against the configured client ID and
	// returns the identity it asserts.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error)
}

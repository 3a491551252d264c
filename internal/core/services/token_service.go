package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
	"github.com/hardiknj/auth_session_app/internal/utils"
)

// tokenService implements TokenSvcFacade. Access tokens are verified without a
// store round-trip; refresh tokens are checked against the session store so they
// can be revoked.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiryTime := time.Now().Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateAccessJWT(
		user.UserID, user.Email, user.Fullname, string(user.Role),
		s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer,
	)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

func (s *tokenService) GenerateRefreshToken(ctx context.Context, userID string, ttl time.Duration) (string, time.Time, error) {
	expiryTime := time.Now().Add(ttl)

	refreshToken, err := utils.GenerateRefreshJWT(userID, s.cfg.RefreshTokenSecret, ttl, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return refreshToken, expiryTime, nil
}

func (s *tokenService) ValidateAccessToken(ctx context.Context, token string) (*utils.AccessTokenClaims, error) {
	claims, err := utils.ParseAccessJWT(token, s.cfg.JWTSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("access token expired: %w", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("invalid access token: %w", apperrors.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("access token missing subject: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}

func (s *tokenService) ValidateRefreshToken(ctx context.Context, token string) (string, error) {
	claims, err := utils.ParseRefreshJWT(token, s.cfg.RefreshTokenSecret)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("refresh token expired: %w", apperrors.ErrRefreshTokenExpired)
		}
		return "", fmt.Errorf("invalid refresh token: %w", apperrors.ErrUnauthorized)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("refresh token missing subject: %w", apperrors.ErrUnauthorized)
	}
	return claims.Subject, nil
}

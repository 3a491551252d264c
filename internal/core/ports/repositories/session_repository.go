package repositories

import (
	"context"
	"time"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
)

// SessionRepository defines persistence operations for per-device session rows.
type SessionRepository interface {
	// SaveSession inserts a new session row. Returns apperrors.ErrDuplicate on a
	// refresh token hash collision (the hash is unique across all rows).
	SaveSession(ctx context.Context, session domain.Session) error

	// FindSessionByTokenHash retrieves a session by refresh token hash.
	// Returns apperrors.ErrNotFound when absent.
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)

	// FindSessionByID retrieves a session by ID.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error)

	// FindSessionsByUserID lists a user's sessions ordered by created_at descending.
	FindSessionsByUserID(ctx context.Context, userID string) ([]domain.Session, error)

	// RotateRefreshToken atomically swaps the refresh token hash and extends the
	// expiry of a session, conditional on the row still holding oldTokenHash.
	// Returns apperrors.ErrNotFound when the row is gone or was already rotated
	// (the caller lost a concurrent refresh race).
	RotateRefreshToken(ctx context.Context, sessionID string, oldTokenHash string, newTokenHash string, expiresAt time.Time, updatedAt time.Time) error

	// DeleteSessionByID deletes one session row. Returns apperrors.ErrNotFound when absent.
	DeleteSessionByID(ctx context.Context, sessionID string) error

	// DeleteSessionByTokenHash deletes the session holding the given refresh token hash.
	DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error

	// DeleteSessionsByUserID deletes every session row for a user and returns the
	// number of rows removed. Zero rows is not an error.
	DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error)

	// SummarizeSessionsByUser returns, for each user that has sessions, the most
	// recent session (by created_at) and the total count. Users without sessions are
	// simply absent from the map.
	SummarizeSessionsByUser(ctx context.Context) (map[string]domain.SessionSummary, error)
}

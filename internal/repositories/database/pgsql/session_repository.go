package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portsrepo "github.com/hardiknj/auth_session_app/internal/core/ports/repositories"
	"github.com/hardiknj/auth_session_app/internal/models"
	"github.com/hardiknj/auth_session_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSessionRepository struct {
	db *pgxpool.Pool
}

func NewPgxSessionRepository(db *pgxpool.Pool) portsrepo.SessionRepository {
	return &PgxSessionRepository{db: db}
}

// Ensure PgxSessionRepository implements portsrepo.SessionRepository
var _ portsrepo.SessionRepository = (*PgxSessionRepository)(nil)

const sessionColumns = `session_id, user_id, refresh_token_hash, remember_me,
		user_agent, ip_address, expires_at, created_at, updated_at`

func scanSession(row pgx.Row) (*models.Session, error) {
	var m models.Session
	err := row.Scan(
		&m.SessionID,
		&m.UserID,
		&m.RefreshTokenHash,
		&m.RememberMe,
		&m.UserAgent,
		&m.IPAddress,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxSessionRepository) SaveSession(ctx context.Context, session domain.Session) error {
	m := mapping.ToModelSession(session)
	query := `
        INSERT INTO sessions (session_id, user_id, refresh_token_hash, remember_me,
            user_agent, ip_address, expires_at, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		m.SessionID,
		m.UserID,
		m.RefreshTokenHash,
		m.RememberMe,
		m.UserAgent,
		m.IPAddress,
		m.ExpiresAt,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("refresh token hash collision: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *PgxSessionRepository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE refresh_token_hash = $1;`
	m, err := scanSession(r.db.QueryRow(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by token hash: %w", err)
	}
	ds := mapping.ToDomainSession(*m)
	return &ds, nil
}

func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE session_id = $1;`
	m, err := scanSession(r.db.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by ID %s: %w", sessionID, err)
	}
	ds := mapping.ToDomainSession(*m)
	return &ds, nil
}

func (r *PgxSessionRepository) FindSessionsByUserID(ctx context.Context, userID string) ([]domain.Session, error) {
	query := `SELECT ` + sessionColumns + `
        FROM sessions
        WHERE user_id = $1
        ORDER BY created_at DESC, session_id;`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions for user %s: %w", userID, err)
	}
	defer rows.Close()

	modelSessions := []models.Session{}
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		modelSessions = append(modelSessions, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating session rows: %w", rows.Err())
	}

	return mapping.ToDomainSessionSlice(modelSessions), nil
}

func (r *PgxSessionRepository) RotateRefreshToken(ctx context.Context, sessionID string, oldTokenHash string, newTokenHash string, expiresAt time.Time, updatedAt time.Time) error {
	// The old-hash condition makes rotation atomic: of two concurrent refreshes with
	// the same token, exactly one matches and the loser sees zero rows affected.
	query := `
        UPDATE sessions
        SET refresh_token_hash = $1, expires_at = $2, updated_at = $3
        WHERE session_id = $4 AND refresh_token_hash = $5;
    `
	cmdTag, err := r.db.Exec(ctx, query, newTokenHash, expiresAt, updatedAt, sessionID, oldTokenHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("refresh token hash collision: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to rotate refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSessionRepository) DeleteSessionByID(ctx context.Context, sessionID string) error {
	query := `DELETE FROM sessions WHERE session_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSessionRepository) DeleteSessionByTokenHash(ctx context.Context, tokenHash string) error {
	query := `DELETE FROM sessions WHERE refresh_token_hash = $1;`
	cmdTag, err := r.db.Exec(ctx, query, tokenHash)
	if err != nil {
		return fmt.Errorf("failed to delete session by token hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSessionRepository) DeleteSessionsByUserID(ctx context.Context, userID string) (int64, error) {
	query := `DELETE FROM sessions WHERE user_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions for user %s: %w", userID, err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSessionRepository) SummarizeSessionsByUser(ctx context.Context) (map[string]domain.SessionSummary, error) {
	// Latest row per user plus the total count, one round-trip. DISTINCT ON picks the
	// newest session per user; the window count rides along on every row.
	query := `
        SELECT DISTINCT ON (user_id)
            ` + sessionColumns + `,
            COUNT(*) OVER (PARTITION BY user_id) AS sessions_count
        FROM sessions
        ORDER BY user_id, created_at DESC, session_id;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sessions: %w", err)
	}
	defer rows.Close()

	summaries := make(map[string]domain.SessionSummary)
	for rows.Next() {
		var m models.Session
		var count int64
		err := rows.Scan(
			&m.SessionID,
			&m.UserID,
			&m.RefreshTokenHash,
			&m.RememberMe,
			&m.UserAgent,
			&m.IPAddress,
			&m.ExpiresAt,
			&m.CreatedAt,
			&m.UpdatedAt,
			&count,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session summary row: %w", err)
		}
		ds := mapping.ToDomainSession(m)
		summaries[ds.UserID] = domain.SessionSummary{Latest: &ds, Count: int(count)}
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating session summary rows: %w", rows.Err())
	}

	return summaries, nil
}

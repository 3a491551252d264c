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

const uniqueViolationCode = "23505"

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func NewPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, fullname, email, password_hash, role, login_type,
		is_verified, is_email_verified,
		email_verification_token, email_verification_expiry,
		forgot_password_token, forgot_password_expiry,
		created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID,
		&m.Fullname,
		&m.Email,
		&m.PasswordHash,
		&m.Role,
		&m.LoginType,
		&m.IsVerified,
		&m.IsEmailVerified,
		&m.EmailVerificationToken,
		&m.EmailVerificationExpiry,
		&m.ForgotPasswordToken,
		&m.ForgotPasswordExpiry,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
        INSERT INTO users (user_id, fullname, email, password_hash, role, login_type,
            is_verified, is_email_verified,
            email_verification_token, email_verification_expiry,
            forgot_password_token, forgot_password_expiry,
            created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := r.db.Exec(ctx, query,
		m.UserID,
		m.Fullname,
		m.Email,
		m.PasswordHash,
		m.Role,
		m.LoginType,
		m.IsVerified,
		m.IsEmailVerified,
		m.EmailVerificationToken,
		m.EmailVerificationExpiry,
		m.ForgotPasswordToken,
		m.ForgotPasswordExpiry,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	du := mapping.ToDomainUser(*m)
	return &du, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	m, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	du := mapping.ToDomainUser(*m)
	return &du, nil
}

func (r *PgxUserRepository) FindUserByVerificationTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE email_verification_token = $1 AND email_verification_expiry > $2;`
	m, err := scanUser(r.db.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by verification token: %w", err)
	}
	du := mapping.ToDomainUser(*m)
	return &du, nil
}

func (r *PgxUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE forgot_password_token = $1 AND forgot_password_expiry > $2;`
	m, err := scanUser(r.db.QueryRow(ctx, query, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	du := mapping.ToDomainUser(*m)
	return &du, nil
}

func (r *PgxUserRepository) FindVerifiedUsers(ctx context.Context, excludeUserID string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
        FROM users
        WHERE is_verified = TRUE AND user_id <> $1
        ORDER BY created_at DESC, user_id;`
	rows, err := r.db.Query(ctx, query, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query verified users: %w", err)
	}
	defer rows.Close()

	modelUsers := []models.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		modelUsers = append(modelUsers, *m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", rows.Err())
	}

	return mapping.ToDomainUserSlice(modelUsers), nil
}

func (r *PgxUserRepository) SetVerificationToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	query := `
        UPDATE users
        SET email_verification_token = $1, email_verification_expiry = $2, updated_at = NOW()
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, tokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to set verification token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) MarkUserVerified(ctx context.Context, userID string) error {
	query := `
        UPDATE users
        SET is_verified = TRUE, is_email_verified = TRUE,
            email_verification_token = NULL, email_verification_expiry = NULL,
            updated_at = NOW()
        WHERE user_id = $1;
    `
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) SetResetToken(ctx context.Context, userID string, tokenHash string, expiry time.Time) error {
	query := `
        UPDATE users
        SET forgot_password_token = $1, forgot_password_expiry = $2, updated_at = NOW()
        WHERE user_id = $3;
    `
	cmdTag, err := r.db.Exec(ctx, query, tokenHash, expiry, userID)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID string, passwordHash string) error {
	// Single statement so token consumption and the password change apply together.
	query := `
        UPDATE users
        SET password_hash = $1,
            forgot_password_token = NULL, forgot_password_expiry = NULL,
            updated_at = NOW()
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	query := `
        UPDATE users
        SET role = $1, updated_at = NOW()
        WHERE user_id = $2
        RETURNING ` + userColumns + `;`
	m, err := scanUser(r.db.QueryRow(ctx, query, string(role), userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update role for user %s: %w", userID, err)
	}
	du := mapping.ToDomainUser(*m)
	return &du, nil
}

func (r *PgxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `DELETE FROM users WHERE user_id = $1;`
	cmdTag, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package models

import (
	"database/sql"
	"time"
)

// User is the database representation of an account.
type User struct {
	UserID          string `db:"user_id"`
	Fullname        string `db:"fullname"`
	Email           string `db:"email"`
	PasswordHash    string `db:"password_hash"`
	Role            string `db:"role"`
	LoginType       string `db:"login_type"`
	IsVerified      bool   `db:"is_verified"`
	IsEmailVerified bool   `db:"is_email_verified"`

	// Temporary token columns; hold the SHA-256 hash of a single-use token.
	EmailVerificationToken  sql.NullString `db:"email_verification_token"`
	EmailVerificationExpiry sql.NullTime   `db:"email_verification_expiry"`
	ForgotPasswordToken     sql.NullString `db:"forgot_password_token"`
	ForgotPasswordExpiry    sql.NullTime   `db:"forgot_password_expiry"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

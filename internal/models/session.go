package models

import "time"

// Session is the database representation of a per-device login session.
type Session struct {
	SessionID        string    `db:"session_id"`
	UserID           string    `db:"user_id"`
	RefreshTokenHash string    `db:"refresh_token_hash"`
	RememberMe       bool      `db:"remember_me"`
	UserAgent        string    `db:"user_agent"`
	IPAddress        string    `db:"ip_address"`
	ExpiresAt        time.Time `db:"expires_at"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

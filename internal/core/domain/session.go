package domain

import "time"

// SessionStatus is the derived liveness of a session. It is never persisted;
// it is computed at read time from expiresAt.
type SessionStatus string

const (
	SessionActive  SessionStatus = "active"
	SessionExpired SessionStatus = "expired"

	// SessionInactive is a user-level status: the user has no session rows at all.
	SessionInactive SessionStatus = "inactive"
)

// Session represents one live (user, device) login. The refresh token itself is
// never stored; only its SHA-256 hash is, and that hash is unique across all rows.
type Session struct {
	SessionID        string    `json:"sessionID"`
	UserID           string    `json:"userID"` // weak reference, no FK cascade
	RefreshTokenHash string    `json:"-"`
	RememberMe       bool      `json:"rememberMe"`
	UserAgent        string    `json:"userAgent"`
	IPAddress        string    `json:"ipAddress"`
	ExpiresAt        time.Time `json:"expiresAt"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DeriveStatus reports whether a session with the given expiry is active or
// expired at the given instant. Monotonic: once expired for a fixed expiresAt,
// it can never become active again as now advances.
func DeriveStatus(expiresAt time.Time, now time.Time) SessionStatus {
	if now.Before(expiresAt) {
		return SessionActive
	}
	return SessionExpired
}

// DeriveUserStatus collapses a user's sessions into a single status for admin
// listings: the latest session's derived status, or inactive with no sessions.
func DeriveUserStatus(latest *Session, now time.Time) SessionStatus {
	if latest == nil {
		return SessionInactive
	}
	return DeriveStatus(latest.ExpiresAt, now)
}

// SessionSummary is the per-user aggregate the admin listing joins against:
// the most recent session (by createdAt) plus the total row count.
type SessionSummary struct {
	Latest *Session
	Count  int
}

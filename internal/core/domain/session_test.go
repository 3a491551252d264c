package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatus(t *testing.T) {
	expiresAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want SessionStatus
	}{
		{"well before expiry", expiresAt.Add(-24 * time.Hour), SessionActive},
		{"one second before expiry", expiresAt.Add(-time.Second), SessionActive},
		{"exactly at expiry", expiresAt, SessionExpired},
		{"one second after expiry", expiresAt.Add(time.Second), SessionExpired},
		{"long after expiry", expiresAt.Add(365 * 24 * time.Hour), SessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(expiresAt, tt.now))
		})
	}
}

// Once expired, advancing the clock must never flip a session back to active.
func TestDeriveStatusMonotonic(t *testing.T) {
	expiresAt := time.Now()
	now := expiresAt
	for i := 0; i < 100; i++ {
		assert.Equal(t, SessionExpired, DeriveStatus(expiresAt, now))
		now = now.Add(time.Minute)
	}
}

func TestDeriveUserStatus(t *testing.T) {
	now := time.Now()

	assert.Equal(t, SessionInactive, DeriveUserStatus(nil, now))

	active := &Session{ExpiresAt: now.Add(time.Hour)}
	assert.Equal(t, SessionActive, DeriveUserStatus(active, now))

	expired := &Session{ExpiresAt: now.Add(-time.Hour)}
	assert.Equal(t, SessionExpired, DeriveUserStatus(expired, now))
}

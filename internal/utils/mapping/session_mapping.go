package mapping

import (
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	"github.com/hardiknj/auth_session_app/internal/models"
)

// ToModelSession converts a domain.Session to its database representation.
func ToModelSession(d domain.Session) models.Session {
	return models.Session{
		SessionID:        d.SessionID,
		UserID:           d.UserID,
		RefreshTokenHash: d.RefreshTokenHash,
		RememberMe:       d.RememberMe,
		UserAgent:        d.UserAgent,
		IPAddress:        d.IPAddress,
		ExpiresAt:        d.ExpiresAt,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

// ToDomainSession converts a database row to a domain.Session.
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID:        m.SessionID,
		UserID:           m.UserID,
		RefreshTokenHash: m.RefreshTokenHash,
		RememberMe:       m.RememberMe,
		UserAgent:        m.UserAgent,
		IPAddress:        m.IPAddress,
		ExpiresAt:        m.ExpiresAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToDomainSessionSlice converts a slice of rows to domain sessions.
func ToDomainSessionSlice(ms []models.Session) []domain.Session {
	ds := make([]domain.Session, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSession(m)
	}
	return ds
}

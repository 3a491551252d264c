package mapping

import (
	"database/sql"
	"time"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
	"github.com/hardiknj/auth_session_app/internal/models"
)

// ToModelUser converts a domain.User to its database representation.
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                  d.UserID,
		Fullname:                d.Fullname,
		Email:                   d.Email,
		PasswordHash:            d.PasswordHash,
		Role:                    string(d.Role),
		LoginType:               string(d.LoginType),
		IsVerified:              d.IsVerified,
		IsEmailVerified:         d.IsEmailVerified,
		EmailVerificationToken:  toNullString(d.EmailVerificationToken),
		EmailVerificationExpiry: toNullTime(d.EmailVerificationExpiry),
		ForgotPasswordToken:     toNullString(d.ForgotPasswordToken),
		ForgotPasswordExpiry:    toNullTime(d.ForgotPasswordExpiry),
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
}

// ToDomainUser converts a database row to a domain.User.
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                  m.UserID,
		Fullname:                m.Fullname,
		Email:                   m.Email,
		PasswordHash:            m.PasswordHash,
		Role:                    domain.Role(m.Role),
		LoginType:               domain.LoginType(m.LoginType),
		IsVerified:              m.IsVerified,
		IsEmailVerified:         m.IsEmailVerified,
		EmailVerificationToken:  fromNullString(m.EmailVerificationToken),
		EmailVerificationExpiry: fromNullTime(m.EmailVerificationExpiry),
		ForgotPasswordToken:     fromNullString(m.ForgotPasswordToken),
		ForgotPasswordExpiry:    fromNullTime(m.ForgotPasswordExpiry),
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}

// ToDomainUserSlice converts a slice of rows to domain users.
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

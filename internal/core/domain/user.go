package domain

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole validates a raw role value against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// LoginType is the closed set of ways a user can authenticate.
type LoginType string

const (
	LoginTypeEmailPassword LoginType = "email_password"
	LoginTypeGoogle        LoginType = "google"
)

// User represents an account in the domain.
type User struct {
	UserID       string    `json:"userID"`
	Fullname     string    `json:"fullname"`
	Email        string    `json:"email"` // Stored normalized lowercase
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	LoginType    LoginType `json:"loginType"`
	IsVerified   bool      `json:"isVerified"`

	// IsEmailVerified tracks completion of the email verification flow specifically;
	// IsVerified is the gate used at login (social logins are verified at creation).
	IsEmailVerified bool `json:"isEmailVerified"`

	// Temporary token fields. The hash of a single-use token is stored here together
	// with its expiry; both are cleared on consumption.
	EmailVerificationToken  *string    `json:"-"`
	EmailVerificationExpiry *time.Time `json:"-"`
	ForgotPasswordToken     *string    `json:"-"`
	ForgotPasswordExpiry    *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GoogleUserInfo holds the subset of a validated Google ID token payload the
// application cares about.
type GoogleUserInfo struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

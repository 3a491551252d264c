package dto

import (
	"time"

	"github.com/hardiknj/auth_session_app/internal/core/domain"
)

// UserResponse is the safe, client-facing shape of a user record.
type UserResponse struct {
	ID         string    `json:"id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	LoginType  string    `json:"loginType"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to its client-facing shape.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.UserID,
		Fullname:   user.Fullname,
		Email:      user.Email,
		Role:       string(user.Role),
		LoginType:  string(user.LoginType),
		IsVerified: user.IsVerified,
		CreatedAt:  user.CreatedAt,
	}
}

package dto

// RegisterRequest is the payload for POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
	Fullname string `json:"fullname" binding:"required,min=2,max=50"`
}

// LoginRequest is the payload for POST /auth/login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// EmailRequest carries a bare email (resend verification, forgot password).
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the payload for POST /auth/password/reset/:token.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,strongpassword"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// GoogleLoginRequest is the payload for POST /auth/login/google.
type GoogleLoginRequest struct {
	IDToken    string `json:"idToken" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// UpdateRoleRequest is the payload for PATCH /admin/users/:userId.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/dto"
	"github.com/hardiknj/auth_session_app/internal/middleware"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
)

// refreshTokenHeader is the fallback transport for clients that cannot send cookies.
const refreshTokenHeader = "x-refresh-token"

// AuthHandler handles registration, login, token refresh and the email flows.
type AuthHandler struct {
	userService    portssvc.UserSvcFacade
	sessionService portssvc.SessionSvcFacade
	googleAuth     portssvc.GoogleAuthSvcFacade
	cfg            *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(services *portssvc.ServiceContainer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		userService:    services.User,
		sessionService: services.Session,
		googleAuth:     services.GoogleAuth,
		cfg:            cfg,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer, limitMiddleware gin.HandlerFunc) {
	h := NewAuthHandler(services, cfg)

	auth := rg.Group("/api/v1/auth", limitMiddleware)
	{
		auth.POST("/register", h.Register)
		auth.GET("/verify/:token", h.VerifyEmail)
		auth.POST("/email/resend", h.ResendEmailVerification)
		auth.POST("/login", h.Login)
		auth.POST("/login/google", h.GoogleLogin)
		auth.POST("/password/forgot", h.ForgotPassword)
		auth.POST("/password/reset/:token", h.ResetPassword)
		auth.GET("/refresh-token", h.RefreshToken)

		protected := auth.Group("", middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/logout", h.Logout)
			protected.POST("/logout/all", h.LogoutAll)
			protected.GET("/profile", h.GetProfile)

			registerSessionRoutes(protected, cfg, services.Session)
		}
	}
}

// extractRefreshToken reads the refresh token from the cookie, falling back to the
// x-refresh-token header for cookie-less clients.
func (h *AuthHandler) extractRefreshToken(c *gin.Context) string {
	if token, err := c.Cookie(h.cfg.RefreshTokenCookieName); err == nil && token != "" {
		return token
	}
	return c.GetHeader(refreshTokenHeader)
}

// setRefreshCookie stores the refresh token in an HTTP-only cookie scoped to the
// auth routes so it never travels on other requests.
func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, maxAge time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, int(maxAge.Seconds()), h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *AuthHandler) refreshCookieMaxAge(rememberMe bool) time.Duration {
	if rememberMe {
		return h.cfg.RememberMeExpiryDuration
	}
	return h.cfg.RefreshTokenExpiryDuration
}

// Register godoc
// @Summary Register a new user
// @Description Creates an unverified account and emails a verification link.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration info"
// @Success 201 {object} APIResponse{data=dto.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			respondError(c, http.StatusConflict, "Email is already registered")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to register user", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to register user")
		return
	}

	respondSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "User registered successfully. Please verify your email.")
}

// VerifyEmail godoc
// @Summary Verify email address
// @Description Consumes a verification token and marks the account verified. Tokens are single use.
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 404 {object} ErrorResponse "Token invalid or expired"
// @Router /auth/verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Param("token")

	user, err := h.userService.VerifyEmail(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Verification token is invalid or expired")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to verify email", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Email verified successfully")
}

// ResendEmailVerification godoc
// @Summary Resend the verification email
// @Description Reissues the verification token for an unverified account.
// @Tags auth
// @Accept json
// @Produce json
// @Param email body dto.EmailRequest true "Account email"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse "Email already verified"
// @Failure 404 {object} ErrorResponse
// @Router /auth/email/resend [post]
func (h *AuthHandler) ResendEmailVerification(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.userService.ResendEmailVerification(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			respondError(c, http.StatusNotFound, "No account found for that email")
		case errors.Is(err, apperrors.ErrValidation):
			respondError(c, http.StatusBadRequest, "Email is already verified")
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to resend verification email", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Failed to resend verification email")
		}
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Verification email sent")
}

// Login godoc
// @Summary User login
// @Description Authenticates with email and password, creates a session and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Failure 403 {object} ErrorResponse "Email not verified"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnauthorized):
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, apperrors.ErrForbidden):
			respondError(c, http.StatusForbidden, "Please verify your email before logging in")
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Login failed", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	h.completeLogin(c, user, req.RememberMe)
}

// GoogleLogin godoc
// @Summary Login with Google
// @Description Validates a Google ID token, creating a verified account on first sign-in.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} APIResponse{data=dto.LoginResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Invalid Google token"
// @Router /auth/login/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	info, err := h.googleAuth.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid Google token")
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), *info)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Google sign-in failed", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	h.completeLogin(c, user, req.RememberMe)
}

// completeLogin creates the session, sets the refresh cookie and writes the login response.
func (h *AuthHandler) completeLogin(c *gin.Context, user *domain.User, rememberMe bool) {
	meta := portssvc.LoginMetadata{
		UserAgent:  c.Request.UserAgent(),
		IPAddress:  c.ClientIP(),
		RememberMe: rememberMe,
	}

	accessToken, refreshToken, err := h.sessionService.Login(c.Request.Context(), user, meta)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to create session", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Login failed")
		return
	}

	h.setRefreshCookie(c, refreshToken, h.refreshCookieMaxAge(rememberMe))

	respondSuccess(c, http.StatusOK, dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.ToUserResponse(user),
	}, "Login successful")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Emails a reset link. Always succeeds so the response never reveals whether the email is registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param email body dto.EmailRequest true "Account email"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Router /auth/password/forgot [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to process password reset request", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to process request")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "If that email is registered, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Reset password
// @Description Consumes a reset token (single use), sets the new password and revokes every session.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token"
// @Param password body dto.ResetPasswordRequest true "New password"
// @Success 200 {object} APIResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Token invalid or expired"
// @Router /auth/password/reset/{token} [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Reset token is invalid or expired")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to reset password", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Password has been reset. Please log in again.")
}

// RefreshToken godoc
// @Summary Refresh the access token
// @Description Exchanges the refresh token (cookie or x-refresh-token header) for a new token pair. The refresh token is rotated on every use.
// @Tags auth
// @Produce json
// @Success 200 {object} APIResponse{data=dto.RefreshTokenResponse}
// @Failure 401 {object} ErrorResponse "Token missing or expired"
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /auth/refresh-token [get]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken == "" {
		respondError(c, http.StatusUnauthorized, "Refresh token is missing")
		return
	}

	accessToken, newRefreshToken, err := h.sessionService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrRefreshTokenExpired):
			h.clearRefreshCookie(c)
			respondError(c, http.StatusUnauthorized, "Session has expired. Please log in again.")
		case errors.Is(err, apperrors.ErrNotFound):
			h.clearRefreshCookie(c)
			respondError(c, http.StatusNotFound, "Session not found. Please log in again.")
		case errors.Is(err, apperrors.ErrUnauthorized):
			h.clearRefreshCookie(c)
			respondError(c, http.StatusUnauthorized, "Invalid refresh token")
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to refresh token", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Failed to refresh token")
		}
		return
	}

	// The rotated token keeps the session's remaining lifetime server-side; the
	// cookie just needs to outlive it.
	h.setRefreshCookie(c, newRefreshToken, h.cfg.RememberMeExpiryDuration)

	respondSuccess(c, http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, "Token refreshed successfully")
}

// Logout godoc
// @Summary Logout the current session
// @Description Deletes the session matching the caller's refresh token and clears the cookie. Idempotent.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken := h.extractRefreshToken(c)
	if refreshToken != "" {
		if err := h.sessionService.Logout(c.Request.Context(), refreshToken); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to logout", slog.String("error", err.Error()))
			respondError(c, http.StatusInternalServerError, "Failed to logout")
			return
		}
	}

	h.clearRefreshCookie(c)
	respondSuccess(c, http.StatusOK, nil, "Logged out successfully")
}

// LogoutAll godoc
// @Summary Logout everywhere
// @Description Deletes every session of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout/all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	removed, err := h.sessionService.LogoutAll(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to logout all sessions", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to logout all sessions")
		return
	}

	h.clearRefreshCookie(c)
	respondSuccess(c, http.StatusOK, gin.H{"sessionsRemoved": removed}, "Logged out from all devices")
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to fetch profile", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to fetch profile")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "Profile fetched successfully")
}

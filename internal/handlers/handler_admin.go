package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/dto"
	"github.com/hardiknj/auth_session_app/internal/middleware"
)

// AdminHandler exposes the elevated user and session management endpoints.
type AdminHandler struct {
	userService    portssvc.UserSvcFacade
	sessionService portssvc.SessionSvcFacade
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade) *AdminHandler {
	return &AdminHandler{userService: us, sessionService: ss}
}

// registerAdminRoutes sets up the admin routes. The group must already carry
// AuthMiddleware; the role gate is applied here.
func registerAdminRoutes(rg *gin.RouterGroup, us portssvc.UserSvcFacade, ss portssvc.SessionSvcFacade) {
	h := NewAdminHandler(us, ss)

	admin := rg.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.GET("/users/:userId", h.GetUserSessions)
		admin.PATCH("/users/:userId", h.UpdateUserRole)
		admin.DELETE("/users/:userId", h.DeleteUser)
		admin.POST("/users/session/:sessionId", h.ForceLogoutSession)
	}
}

// ListUsers godoc
// @Summary List users with session summaries
// @Description Lists verified users (excluding the caller) annotated with derived status, latest activity and session count.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=[]dto.AdminUserResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	users, err := h.userService.ListUsersWithSessionSummary(c.Request.Context(), adminID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list users", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	respondSuccess(c, http.StatusOK, users, "Users fetched successfully")
}

// GetUserSessions godoc
// @Summary List a user's sessions
// @Description Lists all sessions of a given user for the admin detail view.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} APIResponse{data=[]dto.SessionResponse}
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /admin/users/{userId} [get]
func (h *AdminHandler) GetUserSessions(c *gin.Context) {
	userID := c.Param("userId")

	if _, err := h.userService.GetUserByID(c.Request.Context(), userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to fetch user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, http.StatusInternalServerError, "Failed to fetch user sessions")
		return
	}

	sessions, err := h.sessionService.ListSessionsForAdmin(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list user sessions", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, http.StatusInternalServerError, "Failed to fetch user sessions")
		return
	}

	if len(sessions) == 0 {
		respondSuccess(c, http.StatusOK, nil, "No sessions are active")
		return
	}

	respondSuccess(c, http.StatusOK, sessions, "User sessions fetched successfully")
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param role body dto.UpdateRoleRequest true "New role"
// @Success 200 {object} APIResponse{data=dto.UserResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /admin/users/{userId} [patch]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := c.Param("userId")

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid role")
		return
	}

	user, err := h.userService.UpdateUserRole(c.Request.Context(), adminID, userID, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update user role", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, http.StatusInternalServerError, "Failed to update user role")
		return
	}

	respondSuccess(c, http.StatusOK, dto.ToUserResponse(user), "User role updated successfully")
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user and all of their sessions.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} APIResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID := c.Param("userId")

	if err := h.userService.DeleteUser(c.Request.Context(), adminID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to delete user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		respondError(c, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "User deleted successfully")
}

// ForceLogoutSession godoc
// @Summary Force-logout a session
// @Description Deletes any user's session by id.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} APIResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /admin/users/session/{sessionId} [post]
func (h *AdminHandler) ForceLogoutSession(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID := c.Param("sessionId")

	if err := h.sessionService.ForceLogoutSession(c.Request.Context(), adminID, sessionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Session not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to force logout session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		respondError(c, http.StatusInternalServerError, "Failed to logout session")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Session deleted successfully")
}

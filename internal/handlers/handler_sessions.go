package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/middleware"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
)

// SessionHandler exposes the self-service session management endpoints.
type SessionHandler struct {
	sessionService portssvc.SessionSvcFacade
	cfg            *config.Config
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(ss portssvc.SessionSvcFacade, cfg *config.Config) *SessionHandler {
	return &SessionHandler{sessionService: ss, cfg: cfg}
}

// registerSessionRoutes sets up the self-service session routes on the
// authenticated /auth group.
func registerSessionRoutes(rg *gin.RouterGroup, cfg *config.Config, ss portssvc.SessionSvcFacade) {
	h := NewSessionHandler(ss, cfg)

	rg.GET("/sessions", h.GetActiveSessions)
	rg.POST("/sessions/:sessionId", h.LogoutSpecificSession)
}

// GetActiveSessions godoc
// @Summary List the caller's sessions
// @Description Lists every session of the authenticated user with device, location and derived status. The session matching the caller's refresh token is flagged current.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse{data=[]dto.SessionResponse}
// @Failure 401 {object} ErrorResponse
// @Router /auth/sessions [get]
func (h *SessionHandler) GetActiveSessions(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	currentRefreshToken, _ := c.Cookie(h.cfg.RefreshTokenCookieName)
	if currentRefreshToken == "" {
		currentRefreshToken = c.GetHeader(refreshTokenHeader)
	}

	sessions, err := h.sessionService.ListSessionsForUser(c.Request.Context(), userID, currentRefreshToken)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list sessions", slog.String("error", err.Error()))
		respondError(c, http.StatusInternalServerError, "Failed to fetch sessions")
		return
	}

	respondSuccess(c, http.StatusOK, sessions, "Sessions fetched successfully")
}

// LogoutSpecificSession godoc
// @Summary Logout one of the caller's sessions
// @Description Deletes a single caller-owned session by id. Sessions of other users are indistinguishable from unknown ids.
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param sessionId path string true "Session ID"
// @Success 200 {object} APIResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Session not found"
// @Router /auth/sessions/{sessionId} [post]
func (h *SessionHandler) LogoutSpecificSession(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	sessionID := c.Param("sessionId")

	if err := h.sessionService.LogoutSessionByID(c.Request.Context(), userID, sessionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Session not found")
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to logout session", slog.String("error", err.Error()), slog.String("session_id", sessionID))
		respondError(c, http.StatusInternalServerError, "Failed to logout session")
		return
	}

	respondSuccess(c, http.StatusOK, nil, "Session logged out successfully")
}

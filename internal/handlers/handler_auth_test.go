package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/hardiknj/auth_session_app/internal/apperrors"
	"github.com/hardiknj/auth_session_app/internal/core/domain"
	portssvc "github.com/hardiknj/auth_session_app/internal/core/ports/services"
	"github.com/hardiknj/auth_session_app/internal/dto"
	"github.com/hardiknj/auth_session_app/internal/handlers"
	"github.com/hardiknj/auth_session_app/internal/platform/config"
	"github.com/hardiknj/auth_session_app/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ResendEmailVerification(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}
func (m *MockUserService) ResetPassword(ctx context.Context, token string, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsersWithSessionSummary(ctx context.Context, actingAdminID string) ([]dto.AdminUserResponse, error) {
	args := m.Called(ctx, actingAdminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.AdminUserResponse), args.Error(1)
}
func (m *MockUserService) UpdateUserRole(ctx context.Context, actingAdminID string, userID string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, actingAdminID, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, actingAdminID string, userID string) error {
	args := m.Called(ctx, actingAdminID, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, user *domain.User, meta portssvc.LoginMetadata) (string, string, error) {
	args := m.Called(ctx, user, meta)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockSessionService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}
func (m *MockSessionService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}
func (m *MockSessionService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockSessionService) LogoutSessionByID(ctx context.Context, userID string, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}
func (m *MockSessionService) ForceLogoutSession(ctx context.Context, actingAdminID string, sessionID string) error {
	args := m.Called(ctx, actingAdminID, sessionID)
	return args.Error(0)
}
func (m *MockSessionService) ListSessionsForUser(ctx context.Context, userID string, currentRefreshToken string) ([]dto.SessionResponse, error) {
	args := m.Called(ctx, userID, currentRefreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SessionResponse), args.Error(1)
}
func (m *MockSessionService) ListSessionsForAdmin(ctx context.Context, userID string) ([]dto.SessionResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.SessionResponse), args.Error(1)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock GoogleAuthService ---
type MockGoogleAuthService struct {
	mock.Mock
}

func (m *MockGoogleAuthService) ValidateGoogleIDToken(ctx context.Context, idToken string) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

var _ portssvc.GoogleAuthSvcFacade = (*MockGoogleAuthService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	cfg                *config.Config
	mockUserService    *MockUserService
	mockSessionService *MockSessionService
	mockGoogleAuth     *MockGoogleAuthService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "test-issuer",
		RefreshTokenSecret:         "test-refresh-secret",
		RefreshTokenExpiryDuration: 24 * time.Hour,
		RememberMeExpiryDuration:   720 * time.Hour,
		RefreshTokenCookieName:     "refreshToken",
		RefreshTokenCookiePath:     "/api/v1/auth",
		ClientURL:                  "http://localhost:5173",
		AuthRateLimit:              "1000-S", // Effectively unlimited for tests
	}

	suite.mockUserService = new(MockUserService)
	suite.mockSessionService = new(MockSessionService)
	suite.mockGoogleAuth = new(MockGoogleAuthService)

	services := &portssvc.ServiceContainer{
		User:       suite.mockUserService,
		Session:    suite.mockSessionService,
		GoogleAuth: suite.mockGoogleAuth,
	}

	err := handlers.RegisterRoutes(suite.router, suite.cfg, services)
	suite.Require().NoError(err)
}

// generateTestToken creates an access token the way the login flow would.
func (suite *AuthHandlerTestSuite) generateTestToken(userID string, role domain.Role) string {
	token, err := utils.GenerateAccessJWT(userID, "caller@example.com", "test caller", string(role),
		suite.cfg.JWTSecret, time.Hour, suite.cfg.JWTIssuer)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *AuthHandlerTestSuite) postJSON(url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) get(url string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) testUser() *domain.User {
	return &domain.User{
		UserID:     uuid.NewString(),
		Fullname:   "test user",
		Email:      "test@example.com",
		Role:       domain.RoleUser,
		LoginType:  domain.LoginTypeEmailPassword,
		IsVerified: true,
		CreatedAt:  time.Now(),
	}
}

// --- Test Cases ---

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	user := suite.testUser()
	suite.mockUserService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(user, nil).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "Sup3r$ecret",
		Fullname: "test user",
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var body struct {
		StatusCode int              `json:"statusCode"`
		Data       dto.UserResponse `json:"data"`
		Message    string           `json:"message"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(http.StatusCreated, body.StatusCode)
	suite.Equal(user.UserID, body.Data.ID)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_WeakPasswordRejected() {
	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "test@example.com",
		Password: "weak",
		Fullname: "test user",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "Register", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmailConflict() {
	suite.mockUserService.On("Register", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).
		Return(nil, apperrors.ErrDuplicate).Once()

	w := suite.postJSON("/api/v1/auth/register", dto.RegisterRequest{
		Email:    "taken@example.com",
		Password: "Sup3r$ecret",
		Fullname: "test user",
	}, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogin_SuccessSetsRefreshCookie() {
	user := suite.testUser()
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "test@example.com", "Sup3r$ecret").
		Return(user, nil).Once()
	suite.mockSessionService.On("Login", mock.Anything, user, mock.MatchedBy(func(meta portssvc.LoginMetadata) bool {
		return !meta.RememberMe
	})).Return("access-token-value", "refresh-token-value", nil).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "Sup3r$ecret",
	}, nil)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Data dto.LoginResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("access-token-value", body.Data.AccessToken)
	suite.Equal("refresh-token-value", body.Data.RefreshToken)
	suite.Equal(user.UserID, body.Data.User.ID)

	setCookie := w.Header().Get("Set-Cookie")
	suite.Contains(setCookie, "refreshToken=refresh-token-value")
	suite.Contains(setCookie, "Path=/api/v1/auth")
	suite.Contains(setCookie, "HttpOnly")
}

func (suite *AuthHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "test@example.com", "wrong").
		Return(nil, apperrors.ErrUnauthorized).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "test@example.com",
		Password: "wrong",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "Login", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogin_UnverifiedAccountForbidden() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "pending@example.com", "Sup3r$ecret").
		Return(nil, apperrors.ErrForbidden).Once()

	w := suite.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "pending@example.com",
		Password: "Sup3r$ecret",
	}, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_HeaderFallbackRotatesToken() {
	suite.mockSessionService.On("Refresh", mock.Anything, "old-refresh-token").
		Return("new-access-token", "new-refresh-token", nil).Once()

	w := suite.get("/api/v1/auth/refresh-token", map[string]string{
		"x-refresh-token": "old-refresh-token",
	})

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Data dto.RefreshTokenResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("new-access-token", body.Data.AccessToken)
	suite.Equal("new-refresh-token", body.Data.RefreshToken)
	suite.Contains(w.Header().Get("Set-Cookie"), "refreshToken=new-refresh-token")
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingTokenUnauthorized() {
	w := suite.get("/api/v1/auth/refresh-token", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestRefresh_UnknownSessionNotFound() {
	suite.mockSessionService.On("Refresh", mock.Anything, "revoked-token").
		Return("", "", apperrors.ErrNotFound).Once()

	w := suite.get("/api/v1/auth/refresh-token", map[string]string{
		"x-refresh-token": "revoked-token",
	})

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRefresh_ExpiredSessionUnauthorized() {
	suite.mockSessionService.On("Refresh", mock.Anything, "stale-token").
		Return("", "", apperrors.ErrRefreshTokenExpired).Once()

	w := suite.get("/api/v1/auth/refresh-token", map[string]string{
		"x-refresh-token": "stale-token",
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogout_RequiresAuthentication() {
	w := suite.postJSON("/api/v1/auth/logout", nil, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSessionService.AssertNotCalled(suite.T(), "Logout", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestLogout_ClearsCookie() {
	userID := uuid.NewString()
	suite.mockSessionService.On("Logout", mock.Anything, "live-refresh-token").
		Return(nil).Once()

	w := suite.postJSON("/api/v1/auth/logout", nil, map[string]string{
		"Authorization":   "Bearer " + suite.generateTestToken(userID, domain.RoleUser),
		"x-refresh-token": "live-refresh-token",
	})

	suite.Equal(http.StatusOK, w.Code)
	setCookie := w.Header().Get("Set-Cookie")
	suite.Contains(setCookie, "refreshToken=")
	suite.True(strings.Contains(setCookie, "Max-Age=0") || strings.Contains(setCookie, "Expires="))
}

func (suite *AuthHandlerTestSuite) TestGetProfile_ReturnsCaller() {
	user := suite.testUser()
	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).
		Return(user, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(user.UserID, domain.RoleUser))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(user.UserID, body.Data.ID)
	suite.Equal(user.Email, body.Data.Email)
}

func (suite *AuthHandlerTestSuite) TestGetActiveSessions_PassesRefreshTokenThrough() {
	userID := uuid.NewString()
	current := true
	sessions := []dto.SessionResponse{
		{ID: uuid.NewString(), Device: "Desktop - Chrome", Status: "active", Current: &current},
		{ID: uuid.NewString(), Device: "Mobile - Safari", Status: "expired"},
	}
	suite.mockSessionService.On("ListSessionsForUser", mock.Anything, userID, "my-refresh-token").
		Return(sessions, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))
	req.Header.Set("x-refresh-token", "my-refresh-token")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Data []dto.SessionResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Data, 2)
	suite.Require().NotNil(body.Data[0].Current)
	suite.True(*body.Data[0].Current)
	suite.Nil(body.Data[1].Current)
}

func (suite *AuthHandlerTestSuite) TestGetActiveSessions_NoSessionsIsNotAnError() {
	userID := uuid.NewString()
	suite.mockSessionService.On("ListSessionsForUser", mock.Anything, userID, "").
		Return([]dto.SessionResponse{}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/auth/sessions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID, domain.RoleUser))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		StatusCode int                   `json:"statusCode"`
		Data       []dto.SessionResponse `json:"data"`
		Message    string                `json:"message"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(http.StatusOK, body.StatusCode)
	suite.Empty(body.Data)
	suite.Equal("Sessions fetched successfully", body.Message)
}

func (suite *AuthHandlerTestSuite) TestAdminRoutes_ForbiddenForRegularUser() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString(), domain.RoleUser))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ListUsersWithSessionSummary", mock.Anything, mock.Anything)
}

func (suite *AuthHandlerTestSuite) TestAdminListUsers_Success() {
	adminID := uuid.NewString()
	users := []dto.AdminUserResponse{
		{ID: uuid.NewString(), Fullname: "Active Alice", Status: "active", SessionsCount: 2},
		{ID: uuid.NewString(), Fullname: "Idle Carol", Status: "inactive", SessionsCount: 0},
	}
	suite.mockUserService.On("ListUsersWithSessionSummary", mock.Anything, adminID).
		Return(users, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID, domain.RoleAdmin))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body struct {
		Data []dto.AdminUserResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Data, 2)
}

func (suite *AuthHandlerTestSuite) TestAdminForceLogout_UnknownSessionNotFound() {
	adminID := uuid.NewString()
	suite.mockSessionService.On("ForceLogoutSession", mock.Anything, adminID, "missing-session").
		Return(apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/admin/users/session/missing-session", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID, domain.RoleAdmin))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

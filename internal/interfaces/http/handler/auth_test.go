package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	identityapp "github.com/ims/backend/internal/application/identity"
	"github.com/ims/backend/internal/domain/identity"
	"github.com/ims/backend/internal/infrastructure/auth"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/ims/backend/internal/interfaces/http/middleware"
)

type authHandlerFixture struct {
	userRepo   *MockUserRepository
	jwtService *auth.JWTService
	blacklist  *auth.InMemoryTokenBlacklist
	handler    *AuthHandler
	router     *gin.Engine
}

func newAuthHandlerFixture() *authHandlerFixture {
	f := &authHandlerFixture{
		userRepo:  new(MockUserRepository),
		blacklist: auth.NewInMemoryTokenBlacklist(),
	}
	f.jwtService = auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-handler-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ims-test",
		MaxRefreshCount:        5,
	})
	authService := identityapp.NewAuthService(f.userRepo, f.jwtService, f.blacklist, zap.NewNop())
	f.handler = NewAuthHandler(authService)

	gin.SetMode(gin.TestMode)
	f.router = gin.New()
	f.handler.RegisterRoutes(f.router.Group(""))
	return f
}

func activeUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser("john.doe", password, identity.RoleStaff)
	assert.NoError(t, err)
	return user
}

func loginBody(username, password string) *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	return bytes.NewBuffer(body)
}

func TestAuthHandler_Login_Success(t *testing.T) {
	f := newAuthHandlerFixture()

	user := activeUser(t, "correct-horse-battery")
	f.userRepo.On("FindByUsername", mock.Anything, "john.doe").Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john.doe", "correct-horse-battery"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool                      `json:"success"`
		Data    identityapp.LoginResponse `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.Data.Tokens.AccessToken)
	assert.NotEmpty(t, response.Data.Tokens.RefreshToken)
	assert.Equal(t, "john.doe", response.Data.User.Username)
	assert.NotNil(t, user.LastLoginAt)
	f.userRepo.AssertExpectations(t)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	f := newAuthHandlerFixture()

	user := activeUser(t, "correct-horse-battery")
	f.userRepo.On("FindByUsername", mock.Anything, "john.doe").Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john.doe", "not-the-password"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	f := newAuthHandlerFixture()

	f.userRepo.On("FindByUsername", mock.Anything, "nobody.here").Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("nobody.here", "whatever-password"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	// Unknown users get the same response as a wrong password
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_LocksAfterRepeatedFailures(t *testing.T) {
	f := newAuthHandlerFixture()

	user := activeUser(t, "correct-horse-battery")
	f.userRepo.On("FindByUsername", mock.Anything, "john.doe").Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)

	var lastCode int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john.doe", "not-the-password"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)
		lastCode = w.Code
	}

	assert.Equal(t, http.StatusForbidden, lastCode)
	assert.Equal(t, identity.UserStatusLocked, user.Status)

	// Even the right password is rejected while locked
	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john.doe", "correct-horse-battery"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_Refresh_RotatesTokens(t *testing.T) {
	f := newAuthHandlerFixture()

	user := activeUser(t, "correct-horse-battery")
	f.userRepo.On("FindByUsername", mock.Anything, "john.doe").Return(user, nil)
	f.userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	f.userRepo.On("Update", mock.Anything, user).Return(nil)

	loginReq := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("john.doe", "correct-horse-battery"))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	f.router.ServeHTTP(loginW, loginReq)
	assert.Equal(t, http.StatusOK, loginW.Code)

	var loginResponse struct {
		Data identityapp.LoginResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(loginW.Body.Bytes(), &loginResponse))
	refreshToken := loginResponse.Data.Tokens.RefreshToken

	refreshBody, _ := json.Marshal(map[string]string{"refresh_token": refreshToken})
	refreshReq := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(refreshBody))
	refreshReq.Header.Set("Content-Type", "application/json")
	refreshW := httptest.NewRecorder()
	f.router.ServeHTTP(refreshW, refreshReq)
	assert.Equal(t, http.StatusOK, refreshW.Code)

	var refreshResponse struct {
		Data identityapp.TokenResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(refreshW.Body.Bytes(), &refreshResponse))
	assert.NotEmpty(t, refreshResponse.Data.AccessToken)
	assert.NotEqual(t, refreshToken, refreshResponse.Data.RefreshToken)

	// The rotated refresh token is single-use
	replayReq := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewBuffer(refreshBody))
	replayReq.Header.Set("Content-Type", "application/json")
	replayW := httptest.NewRecorder()
	f.router.ServeHTTP(replayW, replayReq)
	assert.Equal(t, http.StatusUnauthorized, replayW.Code)
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	f := newAuthHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", loginBody("jd", "short"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.userRepo.AssertNotCalled(t, "FindByUsername")
}

func TestAuthHandler_Logout_BlacklistsTokens(t *testing.T) {
	f := newAuthHandlerFixture()

	user := activeUser(t, "correct-horse-battery")
	pair, err := f.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	assert.NoError(t, err)

	accessClaims, err := f.jwtService.ValidateAccessToken(pair.AccessToken)
	assert.NoError(t, err)

	// Logout runs behind the auth middleware, so the claims are injected here
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTClaimsKey, accessClaims)
		c.Next()
	})
	f.handler.RegisterRoutes(router.Group(""))

	body, _ := json.Marshal(map[string]string{"refresh_token": pair.RefreshToken})
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)

	accessRevoked, err := f.blacklist.IsBlacklisted(context.Background(), accessClaims.ID)
	assert.NoError(t, err)
	assert.True(t, accessRevoked)

	refreshClaims, err := f.jwtService.ValidateRefreshToken(pair.RefreshToken)
	assert.NoError(t, err)
	refreshRevoked, err := f.blacklist.IsBlacklisted(context.Background(), refreshClaims.ID)
	assert.NoError(t, err)
	assert.True(t, refreshRevoked)
}

func TestAuthHandler_Logout_WithoutClaims(t *testing.T) {
	f := newAuthHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()

	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ims/backend/internal/infrastructure/auth"
	"github.com/ims/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "middleware-test-secret-key",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ims-test",
		MaxRefreshCount:        5,
	})
}

func protectedRouter(cfg JWTMiddlewareConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(JWTAuthMiddlewareWithConfig(cfg))
	engine.GET("/api/v1/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetJWTUserID(c),
			"username": GetJWTUsername(c),
			"role":     GetJWTRole(c),
		})
	})
	engine.POST("/api/v1/auth/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "jane",
		Role:     "manager",
	})
	require.NoError(t, err)

	engine := protectedRouter(JWTMiddlewareConfig{JWTService: jwtService})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), userID.String())
	assert.Contains(t, w.Body.String(), "jane")
}

func TestJWTMiddlewareRejectsBadHeaders(t *testing.T) {
	engine := protectedRouter(JWTMiddlewareConfig{JWTService: newTestJWTService()})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestJWTMiddlewareRejectsRefreshTokenOnAccessEndpoint(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jane",
		Role:     "staff",
	})
	require.NoError(t, err)

	engine := protectedRouter(JWTMiddlewareConfig{JWTService: jwtService})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.RefreshToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddlewareSkipPaths(t *testing.T) {
	engine := protectedRouter(JWTMiddlewareConfig{
		JWTService: newTestJWTService(),
		SkipPaths:  []string{"/api/v1/auth/login"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTMiddlewareBlacklistedToken(t *testing.T) {
	jwtService := newTestJWTService()
	blacklist := auth.NewInMemoryTokenBlacklist()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jane",
		Role:     "staff",
	})
	require.NoError(t, err)

	claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Hour))

	engine := protectedRouter(JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "revoked")
}

func TestRequireRole(t *testing.T) {
	engine := gin.New()
	engine.GET("/admin",
		func(c *gin.Context) { c.Set(JWTRoleKey, "staff") },
		RequireRole("admin"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	engine.GET("/reports",
		func(c *gin.Context) { c.Set(JWTRoleKey, "manager") },
		RequireRole("admin", "manager"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

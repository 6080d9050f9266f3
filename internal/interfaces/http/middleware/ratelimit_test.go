package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("10.0.0.1"))
	}
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Other keys have their own budget
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	limiter := NewRateLimiter(1, 20*time.Millisecond)

	assert.True(t, limiter.Allow("key"))
	assert.False(t, limiter.Allow("key"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, limiter.Allow("key"))
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	engine.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_RATE_LIMITED")
}

func TestRateLimitByKeyMiddleware(t *testing.T) {
	engine := gin.New()
	engine.Use(RateLimitByKey(NewRateLimiter(1, time.Minute), func(c *gin.Context) string {
		return c.Query("user")
	}))
	engine.POST("/login", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login?user=alice", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login?user=alice", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different key is unaffected
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login?user=bob", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is an in-memory fixed-window limiter. Each key gets limit
// requests per window; counters reset when a window elapses. State lives in
// process memory, which is acceptable for a single-instance deployment.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
}

type window struct {
	remaining int
	startedAt time.Time
}

// NewRateLimiter allows limit requests per period for each key. A background
// goroutine drops windows that have been idle for two periods.
func NewRateLimiter(limit int, period time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
	}
	go rl.evictIdle()
	return rl
}

func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(rl.period * 2)
	defer ticker.Stop()
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, w := range rl.windows {
			if now.Sub(w.startedAt) > rl.period*2 {
				delete(rl.windows, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow consumes one request from the key's window, reporting whether the
// request may proceed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.startedAt) >= rl.period {
		rl.windows[key] = &window{remaining: rl.limit - 1, startedAt: now}
		return true
	}
	if w.remaining > 0 {
		w.remaining--
		return true
	}
	return false
}

// Remaining reports how many requests the key has left in its current window.
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || time.Since(w.startedAt) >= rl.period {
		return rl.limit
	}
	return w.remaining
}

// RateLimit limits requests per client IP and reports the quota in
// X-RateLimit headers.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !limiter.Allow(key) {
			abortRateLimited(c)
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}

// RateLimitByKey limits with a caller-chosen key. The login endpoint uses it
// to throttle per username rather than per IP.
func RateLimitByKey(limiter *RateLimiter, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFunc(c)) {
			abortRateLimited(c)
			return
		}
		c.Next()
	}
}

func abortRateLimited(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_RATE_LIMITED",
			"message": "Too many requests. Please try again later.",
		},
	})
}

package middleware

import (
	"Wordrush/logger"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type limiterWithTime struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter keeps one token bucket per client
type RateLimiter struct {
	rps   float64
	burst int

	mu       sync.Mutex
	limiters map[string]*limiterWithTime
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{rps: rps, burst: burst, limiters: make(map[string]*limiterWithTime)}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if lim, ok := rl.limiters[key]; ok {
		lim.lastAccess = time.Now()
		return lim.limiter
	}
	lim := &limiterWithTime{
		limiter:    rate.NewLimiter(rate.Limit(rl.rps), rl.burst),
		lastAccess: time.Now(),
	}
	rl.limiters[key] = lim
	return lim.limiter
}

// Cleanup drops limiters idle for longer than maxIdle
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for key, lim := range rl.limiters {
		if lim.lastAccess.Before(cutoff) {
			delete(rl.limiters, key)
			removed++
		}
	}
	return removed
}

// Middleware limits by player id, falling back to the client ip before
// Identity has run
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := PlayerID(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !rl.getLimiter(key).Allow() {
			logger.Debugf("[RATE-LIMIT] %s %s throttled for %s", c.Request.Method, c.Request.URL.Path, key)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please slow down.", "code": "rate_limited"})
			return
		}
		c.Next()
	}
}

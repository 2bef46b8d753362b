package middleware

import (
	"net/http"
	"sync"
	"time"

	"go-contact-backend/internal/delivery/http/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for the per-IP rate limiter
type RateLimitConfig struct {
	// Requests per second
	RPS int
	// Burst size (number of requests that can be made in a single burst)
	Burst int
}

// ipLimiter tracks one client's token bucket and its last use, so idle
// buckets can be evicted.
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
	mu       sync.Mutex
}

// RateLimitMiddleware limits submissions per client IP. State is kept
// in-process: the service is single-purpose and each instance protects
// only itself, so there is nothing for a shared store to coordinate.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	var (
		limiters    sync.Map
		cleanupOnce sync.Once
	)

	get := func(ip string) *ipLimiter {
		if v, ok := limiters.Load(ip); ok {
			return v.(*ipLimiter)
		}
		entry := &ipLimiter{limiter: rate.NewLimiter(rate.Limit(config.RPS), config.Burst)}
		actual, _ := limiters.LoadOrStore(ip, entry)
		return actual.(*ipLimiter)
	}

	startCleanup := func() {
		go func() {
			ticker := time.NewTicker(5 * time.Minute)
			for range ticker.C {
				cutoff := time.Now().Add(-10 * time.Minute)
				limiters.Range(func(key, value interface{}) bool {
					entry := value.(*ipLimiter)
					entry.mu.Lock()
					if entry.lastSeen.Before(cutoff) {
						limiters.Delete(key)
					}
					entry.mu.Unlock()
					return true
				})
			}
		}()
	}

	return func(c *gin.Context) {
		cleanupOnce.Do(startCleanup)

		entry := get(c.ClientIP())
		entry.mu.Lock()
		entry.lastSeen = time.Now()
		entry.mu.Unlock()

		if !entry.limiter.Allow() {
			response.Error(c, http.StatusTooManyRequests,
				"Zu viele Anfragen. Bitte versuchen Sie es in einigen Minuten erneut.", "")
			c.Abort()
			return
		}

		c.Next()
	}
}

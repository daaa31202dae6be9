package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterInfo is a struct that holds a rate limiter and the last time it was seen.
type limiterInfo struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitByIP applies rate limiting to requests per IP address. Idle
// limiters are dropped every cleanupInterval once unused for expiration; the
// cleanup goroutine stops when ctx is done.
func RateLimitByIP(ctx context.Context, rps int, cleanupInterval time.Duration, expiration time.Duration) gin.HandlerFunc {
	var (
		limiters sync.Map
		mu       sync.Mutex
	)

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				limiters.Range(func(key, value interface{}) bool {
					info := value.(*limiterInfo)
					mu.Lock()
					stale := time.Since(info.lastSeen) > expiration
					mu.Unlock()
					if stale {
						limiters.Delete(key)
					}
					return true
				})
			}
		}
	}()

	return func(c *gin.Context) {
		ip := c.ClientIP()

		actual, _ := limiters.LoadOrStore(ip, &limiterInfo{
			limiter:  rate.NewLimiter(rate.Limit(rps), rps),
			lastSeen: time.Now(),
		})

		info := actual.(*limiterInfo)
		mu.Lock()
		info.lastSeen = time.Now()
		mu.Unlock()

		if !info.limiter.Allow() {
			rateLimitRejects.Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}

		c.Next()
	}
}

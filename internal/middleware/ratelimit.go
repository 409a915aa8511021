package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies a per-API-key token bucket: the bucket refills at
// rps tokens per second up to burst. Empty bucket means 429. The mutex
// guards the limiter map against concurrent requests.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *gin.Context) {
		key, exists := c.Get("api_key")
		if !exists {
			// Auth middleware didn't run on this route; nothing to key on.
			c.Next()
			return
		}

		apiKey := key.(string)

		mu.Lock()
		limiter, ok := limiters[apiKey]
		if !ok {
			limiter = rate.NewLimiter(rate.Limit(rps), burst)
			limiters[apiKey] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiterConfig sets the sustained rate and burst allowance.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// rateLimiterData pairs the limiter with a mutex guarding it.
type rateLimiterData struct {
	limiter *rate.Limiter
	mu      sync.Mutex
}

// NewRateLimiterMiddleware throttles the whole API with a single shared
// token bucket. Requests over the limit get a 429.
func NewRateLimiterMiddleware(config RateLimiterConfig) gin.HandlerFunc {
	data := &rateLimiterData{
		limiter: rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
	}

	return func(c *gin.Context) {
		data.mu.Lock()
		defer data.mu.Unlock()

		if !data.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/internal/dto"
	"golang.org/x/time/rate"
)

// RateLimiter throttles the AI-backed routes per caller. Keys are the
// authenticated user when available, the client IP otherwise.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewRateLimiter(cfg *config.Config) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(cfg.RateLimit.PerMinute) / 60.0),
		burst:    cfg.RateLimit.Burst,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	return limiter
}

// Middleware returns 429 with a retry hint when the caller's budget is spent.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := ctx.ClientIP()
		if userID := ctx.GetUint(ContextUserID); userID != 0 {
			key = fmt.Sprintf("user:%d", userID)
		}
		if !rl.limiterFor(key).Allow() {
			ctx.Header("Retry-After", "60")
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Message:           "Too many requests, slow down",
				RetryAfterSeconds: 60,
			})
			return
		}
		ctx.Next()
	}
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/config"
)

func TestRateLimiterBlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.RateLimit.PerMinute = 1
	cfg.RateLimit.Burst = 2

	limiter := NewRateLimiter(cfg)
	r := gin.New()
	r.GET("/limited", func(ctx *gin.Context) {
		ctx.Set(ContextUserID, uint(7))
	}, limiter.Middleware(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Fatalf("burst requests rejected: %v", statuses)
	}
	if statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", statuses[2])
	}
}

func TestRateLimiterIsPerUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.RateLimit.PerMinute = 1
	cfg.RateLimit.Burst = 1

	limiter := NewRateLimiter(cfg)
	var userID uint
	r := gin.New()
	r.GET("/limited", func(ctx *gin.Context) {
		ctx.Set(ContextUserID, userID)
	}, limiter.Middleware(), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	serve := func() int {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		return w.Code
	}

	userID = 1
	if code := serve(); code != http.StatusOK {
		t.Fatalf("first request for user 1: status = %d", code)
	}
	if code := serve(); code != http.StatusTooManyRequests {
		t.Fatalf("second request for user 1: status = %d, want 429", code)
	}

	// A different user has an untouched budget.
	userID = 2
	if code := serve(); code != http.StatusOK {
		t.Fatalf("first request for user 2: status = %d", code)
	}
}

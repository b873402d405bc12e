// AngelaMos | 2026
// ratelimit_test.go

package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/fitsyy/gym-backend/internal/middleware"
)

func TestRateLimiterFallsBackToLocalBucket(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	rl := middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
		Limit:   middleware.PerMinute(1, 2),
		KeyFunc: middleware.KeyByIP,
	})
	h := rl.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/v1/auth/magic-link", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitKeys(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.1.1.1, 2.2.2.2")
	assert.Equal(t, "ratelimit:ip:2.2.2.2", middleware.KeyByIP(req))

	ctx := context.WithValue(req.Context(), middleware.UserIDKey, "u1")
	req = req.WithContext(ctx)
	assert.Equal(t, "ratelimit:user:u1", middleware.KeyByUser(req))
	assert.Equal(t, "ratelimit:user:u1", middleware.KeyByTenant(req))

	req = req.WithContext(context.WithValue(ctx, middleware.TenantIDKey, "t1"))
	assert.Equal(t, "ratelimit:tenant:t1", middleware.KeyByTenant(req))
}

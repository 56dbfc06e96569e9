package limiter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MorseWayne/shop_front/internal/domain"
	"github.com/MorseWayne/shop_front/internal/middleware"
)

// stubLimiter 按预设结果应答的限流器
type stubLimiter struct {
	result  *LimitResult
	err     error
	lastKey string
}

func (s *stubLimiter) Allow(ctx context.Context, key string) (*LimitResult, error) {
	return s.AllowN(ctx, key, 1)
}

func (s *stubLimiter) AllowN(ctx context.Context, key string, n int64) (*LimitResult, error) {
	s.lastKey = key
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubLimiter) Reset(ctx context.Context, key string) error {
	return nil
}

func setupRouter(l Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit", SubmitRateLimitMiddleware(l), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestRateLimitMiddleware_Allowed(t *testing.T) {
	stub := &stubLimiter{result: &LimitResult{Allowed: true, Remaining: 4}}
	r := setupRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "4" {
		t.Errorf("remaining header = %q, want 4", got)
	}
}

func TestRateLimitMiddleware_Rejected(t *testing.T) {
	stub := &stubLimiter{result: &LimitResult{Allowed: false, Remaining: 0, RetryAfter: 3 * time.Second}}
	r := setupRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Retry-After"); got != "3" {
		t.Errorf("retry-after header = %q, want 3", got)
	}
}

func TestRateLimitMiddleware_LimiterFailure(t *testing.T) {
	stub := &stubLimiter{err: errors.New("redis down")}
	r := setupRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestUserKeyGenerator(t *testing.T) {
	stub := &stubLimiter{result: &LimitResult{Allowed: true}}
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/submit",
		func(c *gin.Context) {
			user := &domain.User{ID: "u42", Username: "alice"}
			c.Request = c.Request.WithContext(middleware.ContextWithUser(c.Request.Context(), user))
			c.Next()
		},
		SubmitRateLimitMiddleware(stub),
		func(c *gin.Context) { c.String(http.StatusOK, "ok") },
	)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if stub.lastKey != "user:u42" {
		t.Errorf("limit key = %q, want user:u42", stub.lastKey)
	}
}

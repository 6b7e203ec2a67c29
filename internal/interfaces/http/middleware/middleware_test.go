package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"fiction-catalog-api/pkg/logger"
)

type stubLimiter struct {
	allowed bool
	err     error
	keys    []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.err
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/api/stories/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func serve(r *gin.Engine, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitRejects(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	r := newEngine(RateLimit(RateLimitConfig{Enabled: true, RequestsPerSecond: 5}, limiter))

	w := serve(r, "/api/stories/abc", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "ratelimit:192.0.2.1:/api/stories/:id" {
		t.Fatalf("keys = %v", limiter.keys)
	}
	if w.Header().Get("X-RateLimit-Limit") != "5" {
		t.Fatalf("limit header = %q", w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := newEngine(RateLimit(RateLimitConfig{Enabled: true}, &stubLimiter{err: errors.New("redis down")}))

	if w := serve(r, "/api/stories/abc", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 when limiter errors", w.Code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	r := newEngine(RateLimit(RateLimitConfig{Enabled: false}, limiter))

	if w := serve(r, "/api/stories/abc", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if len(limiter.keys) != 0 {
		t.Fatalf("disabled limiter was consulted")
	}
}

func TestRequestIDPropagation(t *testing.T) {
	var seen any
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.RequestIDKey)
	})

	w := serve(r, "/x", map[string]string{RequestIDHeader: "req-42"})
	if w.Header().Get(RequestIDHeader) != "req-42" || seen != "req-42" {
		t.Fatalf("header %q, ctx %v", w.Header().Get(RequestIDHeader), seen)
	}

	w = serve(r, "/x", nil)
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("request id not generated")
	}
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(), AccessLog())

	w := serve(r, "/panic", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestCORSWildcardWithoutCredentials(t *testing.T) {
	r := newEngine(CORS(CORSConfig{}))

	w := serve(r, "/api/stories/abc", map[string]string{"Origin": "http://example.com"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("credentials should be off with wildcard origin, got %q", got)
	}
}

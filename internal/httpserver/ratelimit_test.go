package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func limitedRouter(t *testing.T, limiter *RateLimiter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", limiter.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiterBlocksAfterMax(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	r := limitedRouter(t, NewRateLimiter(client, 2, time.Minute, logDiscard()))

	for i := 0; i < 2; i++ {
		if rec := hit(r); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := hit(r)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") != "60" || rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Fatalf("unexpected headers %v", rec.Header())
	}

	mr.FastForward(time.Minute + time.Second)
	if rec := hit(r); rec.Code != http.StatusOK {
		t.Fatalf("expected window reset, got %d", rec.Code)
	}
}

func TestRateLimiterFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	r := limitedRouter(t, NewRateLimiter(client, 1, time.Minute, logDiscard()))
	mr.Close()

	for i := 0; i < 3; i++ {
		if rec := hit(r); rec.Code != http.StatusOK {
			t.Fatalf("expected pass-through when redis is down, got %d", rec.Code)
		}
	}
}

func TestNilRateLimiterPassesThrough(t *testing.T) {
	var limiter *RateLimiter
	r := limitedRouter(t, limiter)
	for i := 0; i < 3; i++ {
		if rec := hit(r); rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	redisdb "github.com/coperex/case-analysis/internal/infrastructure/db/redis"
)

type stubLimiter struct {
	decision redisdb.Decision
	err      error
	clients  []string
}

func (l *stubLimiter) Allow(_ context.Context, client string) (redisdb.Decision, error) {
	l.clients = append(l.clients, client)
	return l.decision, l.err
}

func runLimited(t *testing.T, limiter Limiter) (*httptest.ResponseRecorder, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := RateLimit(limiter, zerolog.Nop())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, called, err
}

func TestRateLimit_Allows(t *testing.T) {
	limiter := &stubLimiter{decision: redisdb.Decision{Allowed: true, Limit: 100, Remaining: 99, ResetAt: time.Now().Add(time.Minute)}}

	rec, called, err := runLimited(t, limiter)
	if err != nil || !called {
		t.Fatalf("expected request to pass, err=%v", err)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "99" {
		t.Fatalf("missing remaining header")
	}
	if len(limiter.clients) != 1 || limiter.clients[0] != "10.0.0.1" {
		t.Fatalf("expected client keyed by ip, got %v", limiter.clients)
	}
}

func TestRateLimit_Rejects(t *testing.T) {
	limiter := &stubLimiter{decision: redisdb.Decision{Allowed: false, Limit: 100, ResetAt: time.Now().Add(time.Minute)}}

	rec, called, err := runLimited(t, limiter)
	if called {
		t.Fatalf("should not reach next handler")
	}
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After header")
	}
}

func TestRateLimit_FailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}

	_, called, err := runLimited(t, limiter)
	if err != nil || !called {
		t.Fatalf("expected request to pass when limiter fails, err=%v", err)
	}
}

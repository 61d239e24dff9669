package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func TestRequestIDGenerated(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	if err := RequestID()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	rid, _ := c.Get("request_id").(string)
	if rid == "" {
		t.Fatal("expected a generated request id on the context")
	}
	if got := rec.Header().Get(RequestIDHeader); got != rid {
		t.Fatalf("response header = %q, want %q", got, rid)
	}
}

func TestRequestIDHonorsIncoming(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := RequestID()(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rid, _ := c.Get("request_id").(string); rid != "client-supplied" {
		t.Fatalf("request_id = %q, want client-supplied", rid)
	}
	if got := rec.Header().Get(RequestIDHeader); got != "client-supplied" {
		t.Fatalf("response header = %q, want client-supplied", got)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/health")
	c.Set("request_id", "rid-1")

	if err := Logger(zerolog.Nop())(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestLoggerPropagatesError(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")
	wantErr := echo.NewHTTPError(http.StatusTeapot, "nope")

	err := Logger(zerolog.Nop())(func(echo.Context) error { return wantErr })(c)
	if err != wantErr {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/")

	err := Recovery(zerolog.Nop())(func(echo.Context) error {
		panic("boom")
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Fatalf("code = %d, want 500", he.Code)
	}
}

func TestRecoveryLeavesNormalFlowAlone(t *testing.T) {
	c, rec := newTestContext(http.MethodGet, "/")

	if err := Recovery(zerolog.Nop())(okHandler)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRateLimitExhaustsBurst(t *testing.T) {
	mw := RateLimit(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 2})
	h := mw(okHandler)

	for i := 0; i < 2; i++ {
		c, _ := newTestContext(http.MethodPost, "/diagnoses")
		if err := h(c); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}

	c, _ := newTestContext(http.MethodPost, "/diagnoses")
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %v", err)
	}
	if c.Response().Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header on limited response")
	}
}

func TestRateLimitRefills(t *testing.T) {
	l := &limiter{
		buckets: make(map[string]*bucket),
		cfg:     RateLimitConfig{RequestsPerSecond: 10, Burst: 1},
	}
	now := time.Now()

	if !l.allow("ip", now) {
		t.Fatal("first request should pass")
	}
	if l.allow("ip", now) {
		t.Fatal("second immediate request should be limited")
	}
	if !l.allow("ip", now.Add(200*time.Millisecond)) {
		t.Fatal("request after refill window should pass")
	}
}

func TestRateLimitIsolatesKeys(t *testing.T) {
	l := &limiter{
		buckets: make(map[string]*bucket),
		cfg:     RateLimitConfig{RequestsPerSecond: 0.001, Burst: 1},
	}
	now := time.Now()

	if !l.allow("a", now) {
		t.Fatal("key a should pass")
	}
	if !l.allow("b", now) {
		t.Fatal("key b has its own bucket and should pass")
	}
	if l.allow("a", now) {
		t.Fatal("key a should now be limited")
	}
}

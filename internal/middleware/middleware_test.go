package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/makeup-studio/internal/auth"
	"github.com/BruksfildServices01/makeup-studio/internal/config"
)

const testSecret = "middleware-secret"

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})...)
	return r
}

func token(t *testing.T, email string, roles ...string) string {
	t.Helper()
	tok, err := auth.Issue([]byte(testSecret), email, roles, time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	return tok
}

func do(r *gin.Engine, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: testSecret}
	r := newRouter(AuthMiddleware(cfg), RequireRole(auth.RoleAdmin))

	if w := do(r, "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: expected 401, got %d", w.Code)
	}
	if w := do(r, "Authorization", "Basic abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong scheme: expected 401, got %d", w.Code)
	}
	if w := do(r, "Authorization", "Bearer garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", w.Code)
	}
	if w := do(r, "Authorization", "Bearer "+token(t, "ana@example.com", auth.RoleClient)); w.Code != http.StatusForbidden {
		t.Fatalf("client on admin route: expected 403, got %d", w.Code)
	}
	if w := do(r, "Authorization", "Bearer "+token(t, "admin@makeupstudio.com", auth.RoleAdmin)); w.Code != http.StatusOK {
		t.Fatalf("admin: expected 200, got %d", w.Code)
	}
}

func TestRequireRole_WithoutAuthentication(t *testing.T) {
	r := newRouter(RequireRole(auth.RoleAdmin))
	if w := do(r, "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// global, so pre-flight requests to routes without OPTIONS handlers reach it
	r.Use(CORSMiddleware([]string{"http://localhost:5173"}))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := do(r, "Origin", "http://localhost:5173")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials for a listed origin, got %q", got)
	}

	w = do(r, "Origin", "https://evil.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no cors header for unknown origin, got %q", got)
	}

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight: expected 204, got %d", rec.Code)
	}
}

func TestCORSMiddleware_AllowAllOmitsCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := do(r, "Origin", "https://anywhere.example.com")
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://anywhere.example.com" {
		t.Fatalf("expected origin echoed, got %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("allow-all must not grant credentials, got %q", got)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2))

	for i := 0; i < 2; i++ {
		if w := do(r, "", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := do(r, "", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	r := newRouter(RateLimitMiddleware(0))
	for i := 0; i < 5; i++ {
		if w := do(r, "", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	}
}

func TestRateLimiterStore_EvictsIdleClients(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(2)
	store.now = func() time.Time { return now }

	first := store.getLimiter("10.0.0.1")
	first.Allow()
	first.Allow()
	if store.getLimiter("10.0.0.1").Allow() {
		t.Fatalf("expected the burst to be spent")
	}

	now = now.Add(limiterIdleTTL + time.Second)
	store.getLimiter("10.0.0.2")

	if n := store.size(); n != 1 {
		t.Fatalf("expected the idle client to be evicted, %d limiters left", n)
	}
	if store.getLimiter("10.0.0.1") == first {
		t.Fatalf("expected a fresh limiter after eviction")
	}
}

func TestRateLimiterStore_KeepsActiveClients(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(60)
	store.now = func() time.Time { return now }

	store.getLimiter("10.0.0.1")
	for i := 0; i < 3; i++ {
		now = now.Add(limiterIdleTTL / 2)
		store.getLimiter("10.0.0.1")
	}
	now = now.Add(limiterIdleTTL / 2)
	store.getLimiter("10.0.0.2")

	if n := store.size(); n != 2 {
		t.Fatalf("expected both clients kept, got %d", n)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := newRouter(RequestLogger(zerolog.New(&buf), nil))

	w := do(r, RequestIDHeader, "req-123")
	if got := w.Header().Get(RequestIDHeader); got != "req-123" {
		t.Fatalf("expected request id to be echoed, got %q", got)
	}
	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Fatalf("expected request id in log line, got %s", buf.String())
	}

	w = do(r, "", "")
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatalf("expected a generated request id")
	}
}

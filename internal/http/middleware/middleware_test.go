package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"valleycars/internal/domain"

	"github.com/gin-gonic/gin"
)

type fakeVerifier map[string]domain.RequestContext

func (f fakeVerifier) Verify(token string) (domain.RequestContext, error) {
	if rc, ok := f[token]; ok {
		return rc, nil
	}
	return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token", Err: errors.New("unknown")}
}

func newTestEngine(v TokenVerifier, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.GET("/admin", AdminAuth(v), RequireRoles(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"sub": c.GetString("userID"), "rid": GetRequestID(c)})
	})
	return r
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	r := newTestEngine(fakeVerifier{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if len(w.Header().Get("X-Request-ID")) != 36 {
		t.Fatalf("expected generated uuid request id, got %q", w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("client request id not echoed: %q", w.Header().Get("X-Request-ID"))
	}
}

func TestAdminAuthAndRoles(t *testing.T) {
	v := fakeVerifier{
		"admin-token": {Subject: "a1", Role: "admin"},
		"staff-token": {Subject: "s1", Role: "staff"},
	}
	r := newTestEngine(v, "admin")

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer staff-token", http.StatusForbidden},
		{"admin", "bearer admin-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://valleyweddingcars.in"}))
	r.POST("/api/price-estimate", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/price-estimate", nil)
	req.Header.Set("Origin", "https://valleyweddingcars.in")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://valleyweddingcars.in" {
		t.Fatalf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/price-estimate", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown origin status = %d, want 403", w.Code)
	}
}

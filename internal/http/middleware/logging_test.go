package middleware

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	r := newEngine()
	r.Use(RequestID())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = RequestIDFrom(c)
		c.Status(http.StatusNoContent)
	})

	w := do(r, http.MethodGet, "/x", nil)
	got := w.Header().Get("X-Request-ID")
	if got == "" || got != seen {
		t.Fatalf("generated id header=%q ctx=%q", got, seen)
	}

	w = do(r, http.MethodGet, "/x", map[string]string{"x-request-id": "client-123"})
	if got := w.Header().Get("X-Request-ID"); got != "client-123" {
		t.Fatalf("propagated id = %q", got)
	}
}

func TestRequestID_OversizedHeaderReplaced(t *testing.T) {
	r := newEngine()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	long := strings.Repeat("a", maxRequestIDLength+1)
	w := do(r, http.MethodGet, "/x", map[string]string{"X-Request-ID": long})
	if got := w.Header().Get("X-Request-ID"); got == long || got == "" {
		t.Fatalf("oversized id should be replaced, got %q", got)
	}
}

func TestRecovery_PanicsToJSON500(t *testing.T) {
	buf := withCapturedLogger(t)
	r := newEngine()
	r.Use(RequestID(), Recovery())
	r.GET("/boom", func(*gin.Context) { panic("kaboom") })

	w := do(r, http.MethodGet, "/boom", map[string]string{"X-Request-ID": "rid-1"})
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeError(t, w)
	if body.Code != codeInternal || body.RequestID != "rid-1" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if !strings.Contains(buf.String(), "panic recovered") || !strings.Contains(buf.String(), "rid-1") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestRecovery_PanicAfterWrite_NoJSON(t *testing.T) {
	withCapturedLogger(t)
	r := newEngine()
	r.Use(Recovery())
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("late")
	})

	w := do(r, http.MethodGet, "/late", nil)
	if strings.Contains(w.Body.String(), codeInternal) {
		t.Fatalf("must not append JSON after a written body: %q", w.Body.String())
	}
}

func TestLoggerFrom_Fallback(t *testing.T) {
	r := newEngine()
	r.GET("/x", func(c *gin.Context) {
		if LoggerFrom(c) == nil {
			t.Fatalf("LoggerFrom returned nil")
		}
		c.Status(http.StatusNoContent)
	})
	do(r, http.MethodGet, "/x", nil)
}

func TestTruncateAndAsString(t *testing.T) {
	if truncate("abc", 0) != "abc" || truncate("abc", 5) != "abc" {
		t.Fatalf("truncate must not change short strings")
	}
	if got := truncate("abcdef", 3); got != "abc…" {
		t.Fatalf("truncate = %q", got)
	}
	if asString(42) != "" || asString("x") != "x" {
		t.Fatalf("asString mismatch")
	}
}

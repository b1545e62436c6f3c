package logging

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// captureLogOutput captures log output for testing by temporarily
// redirecting the logger to write to a buffer
func captureLogOutput(f func()) string {
	var buf bytes.Buffer

	oldLogger := defaultLogger
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	defaultLogger = slog.New(handler)

	f()

	defaultLogger = oldLogger
	return buf.String()
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat("json"); got != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, want FormatJSON", got)
	}
	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("ParseFormat(text) = %v, want FormatText", got)
	}
	if got := ParseFormat(""); got != FormatText {
		t.Errorf("ParseFormat(empty) = %v, want FormatText", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID on empty context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID = %q, want req-123", got)
	}
}

func TestFetchEvent(t *testing.T) {
	out := captureLogOutput(func() {
		FetchEvent("cache_miss", "https://example.org/psalms", "verses", 176)
	})
	for _, want := range []string{"verse_fetch", "cache_miss", "example.org", "176"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestBatchEvent(t *testing.T) {
	out := captureLogOutput(func() {
		BatchEvent(4, 2, 2, 15*time.Millisecond)
	})
	for _, want := range []string{"batch_complete", `"total":4`, `"succeeded":2`, `"failed":2`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	var seenID string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = GetRequestID(r.Context())
	}))

	t.Run("generates an ID", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if seenID == "" {
			t.Errorf("no request ID in context")
		}
		if got := rec.Header().Get("X-Request-ID"); got != seenID {
			t.Errorf("response header ID %q != context ID %q", got, seenID)
		}
	})

	t.Run("honors existing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-7")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if seenID != "upstream-7" {
			t.Errorf("context ID = %q, want upstream-7", seenID)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	out := captureLogOutput(func() {
		handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate", nil))
	})

	for _, want := range []string{"http_request", "/generate", "418"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

// Package server provides shared utilities for the HTTP server.
package server

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/FocuswithJustin/Tehillim119/internal/logging"
)

// AbsPath returns the absolute path of a file, or the original path if it fails.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// SecurityHeadersMiddleware adds security headers to all responses.
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self'; img-src 'self' data:; font-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// TimingMiddleware logs request duration for profiling.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		if duration > 100*time.Millisecond {
			logging.Warn("slow request", "method", r.Method, "path", r.URL.Path, "duration", duration)
		} else {
			logging.Debug("request timing", "method", r.Method, "path", r.URL.Path, "duration", duration)
		}
	})
}

package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing", "", ""},
		{"bearer", "Bearer rk_abc123_secret", "rk_abc123_secret"},
		{"token_scheme", "Token rk_abc123_secret", "rk_abc123_secret"},
		{"basic_rejected", "Basic dXNlcjpwYXNz", ""},
		{"bare_value_rejected", "rk_abc123_secret", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractToken(req); got != tt.want {
				t.Errorf("extractToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAuth_RejectsBeforeLookup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := AuthConfig{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	// Requests failing token extraction or format checks never reach
	// the repository, so a bare config is enough here.
	handler := Auth(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	tests := []struct {
		name   string
		header string
	}{
		{"no_header", ""},
		{"malformed_token", "Bearer not-a-token"},
		{"wrong_prefix", "Bearer pk_abc123_0123456789abcdef0123456789abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON error body, got Content-Type %s", ct)
			}
		})
	}
}

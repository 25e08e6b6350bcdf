package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubPinger implements HealthChecker with a fixed result.
type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(ctx context.Context) error {
	return s.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name         string
		db           HealthChecker
		cache        HealthChecker
		wantStatus   int
		wantOverall  string
		wantPostgres string
		wantRedis    string
	}{
		{
			name:         "all_healthy",
			db:           &stubPinger{},
			cache:        &stubPinger{},
			wantStatus:   http.StatusOK,
			wantOverall:  "ok",
			wantPostgres: "ok",
			wantRedis:    "ok",
		},
		{
			name:         "database_down",
			db:           &stubPinger{err: errors.New("connection refused")},
			cache:        &stubPinger{},
			wantStatus:   http.StatusServiceUnavailable,
			wantOverall:  "unhealthy",
			wantPostgres: "error: connection refused",
			wantRedis:    "ok",
		},
		{
			name:         "redis_down",
			db:           &stubPinger{},
			cache:        &stubPinger{err: errors.New("no route to host")},
			wantStatus:   http.StatusServiceUnavailable,
			wantOverall:  "unhealthy",
			wantPostgres: "ok",
			wantRedis:    "error: no route to host",
		},
		{
			name:         "nothing_configured",
			wantStatus:   http.StatusOK,
			wantOverall:  "ok",
			wantPostgres: "not configured",
			wantRedis:    "not configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, tt.cache)

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			h.Readyz(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Status != tt.wantOverall {
				t.Errorf("expected status %q, got %q", tt.wantOverall, response.Status)
			}
			if response.Checks["postgres"] != tt.wantPostgres {
				t.Errorf("unexpected postgres check: %s", response.Checks["postgres"])
			}
			if response.Checks["redis"] != tt.wantRedis {
				t.Errorf("unexpected redis check: %s", response.Checks["redis"])
			}
		})
	}
}

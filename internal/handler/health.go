package handler

import (
	"context"
	"net/http"
	"time"
)

const readinessTimeout = 5 * time.Second

// HealthChecker is the connectivity probe a dependency exposes.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

// NewHealthHandler wires the readiness checks. Nil dependencies are
// reported as not configured rather than failing the probe.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// HealthResponse is the body of both probes.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports liveness only, with no dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz pings postgres and redis and answers 503 unless both respond.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	pgResult, pgOK := checkDependency(ctx, h.db)
	redisResult, redisOK := checkDependency(ctx, h.cache)

	resp := HealthResponse{
		Status: "ok",
		Checks: map[string]string{
			"postgres": pgResult,
			"redis":    redisResult,
		},
	}

	code := http.StatusOK
	if !pgOK || !redisOK {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, resp)
}

func checkDependency(ctx context.Context, dep HealthChecker) (string, bool) {
	if dep == nil {
		return "not configured", true
	}
	if err := dep.Ping(ctx); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

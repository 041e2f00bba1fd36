package api

import (
	"context"
	"net/http"
	"time"
)

// Checker performs a health check against one external dependency.
type Checker interface {
	HealthCheck(ctx context.Context) error
}

// checkTimeout bounds each dependency probe during readiness checks.
const checkTimeout = 2 * time.Second

// HealthHandlers holds dependency checkers for health and readiness probes.
type HealthHandlers struct {
	checkers map[string]Checker
}

// NewHealthHandlers creates a new HealthHandlers instance. Checkers are keyed
// by dependency name ("database", "redis"); pass only the ones configured.
func NewHealthHandlers(checkers map[string]Checker) *HealthHandlers {
	return &HealthHandlers{checkers: checkers}
}

// Health handles GET /health - liveness probe. Always returns 200 while the
// process is serving requests.
func (h *HealthHandlers) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}

// ReadyResponse represents the readiness probe response.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Ready handles GET /ready - readiness probe. Returns 503 when any configured
// dependency fails its check.
func (h *HealthHandlers) Ready(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string, len(h.checkers))
	healthy := true

	for name, checker := range h.checkers {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := checker.HealthCheck(ctx)
		cancel()

		if err != nil {
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			checks[name] = "ok"
		}
	}

	status := http.StatusOK
	resp := ReadyResponse{Status: "ready", Checks: checks}
	if !healthy {
		status = http.StatusServiceUnavailable
		resp.Status = "not ready"
	}

	WriteJSON(w, r, status, resp)
}

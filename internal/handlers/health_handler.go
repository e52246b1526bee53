package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

type HealthResponse struct {
	Status  string                 `json:"status"`
	Service string                 `json:"service"`
	Version string                 `json:"version"`
	Checks  map[string]HealthCheck `json:"checks,omitempty"`
}

type HealthCheck struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Pinger is anything with a liveness check (mongo client, redis cache).
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports overall service health from its dependency checks.
type HealthHandler struct {
	version string
	checks  map[string]Pinger
}

func NewHealthHandler(version string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		version: version,
		checks:  checks,
	}
}

// GetOverallHealth godoc
// @Summary Service health
// @Description Pings every dependency and reports healthy/unhealthy per check.
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) GetOverallHealth(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Service: "lead-management-api",
		Version: h.version,
		Checks:  make(map[string]HealthCheck),
	}

	allHealthy := true
	for name, pinger := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		start := time.Now()
		err := pinger.Ping(ctx)
		cancel()

		check := HealthCheck{
			Status:  "healthy",
			Latency: time.Since(start).String(),
		}
		if err != nil {
			check.Status = "unhealthy"
			check.Error = err.Error()
			allHealthy = false
		}
		response.Checks[name] = check
	}

	w.Header().Set("Content-Type", "application/json")
	if allHealthy {
		response.Status = "healthy"
		w.WriteHeader(http.StatusOK)
	} else {
		response.Status = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(response)
}

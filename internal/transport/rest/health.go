package rest

import (
	"net/http"
	"time"
)

// readiness reports whether downstream dependencies are usable.
type readiness interface {
	Load() bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	ready   readiness
	version string
}

func NewHealthHandler(ready readiness, version string) *HealthHandler {
	return &HealthHandler{ready: ready, version: version}
}

// HealthResponse is the JSON response for /live and /ready.
type HealthResponse struct {
	Status     string            `json:"status"`
	Version    string            `json:"version,omitempty"`
	Components map[string]string `json:"components,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   h.version,
		Timestamp: time.Now(),
	})
}

// Ready returns 503 while the translator is reported unhealthy.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:     "down",
			Version:    h.version,
			Components: map[string]string{"translator": "down"},
			Timestamp:  time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: map[string]string{"translator": "ok"},
		Timestamp:  time.Now(),
	})
}

package rest

import (
	"net/http"
	"strconv"
	"time"
)

// modelStatus reports whether the pretrained model handle is available.
type modelStatus interface {
	ModelReady() bool
}

// exampleCounter reports the preloaded example pool.
type exampleCounter interface {
	Names() []string
	Has(name string) bool
	Len(name string) int
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	model    modelStatus
	examples exampleCounter
	version  string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(model modelStatus, examples exampleCounter, version string) *HealthHandler {
	return &HealthHandler{model: model, examples: examples, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if the model handle exists, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.model.ModelReady() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component status and version.
// A missing model makes the service "down"; an empty example pool only
// "degraded", since typed input still works.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components := make(map[string]CompStatus)
	overallStatus := "ok"

	if h.model.ModelReady() {
		components["model"] = CompStatus{Status: "ok"}
	} else {
		components["model"] = CompStatus{Status: "down"}
		overallStatus = "down"
	}

	total := 0
	for _, name := range h.examples.Names() {
		total += h.examples.Len(name)
	}
	if total > 0 {
		components["examples"] = CompStatus{Status: "ok", Detail: strconv.Itoa(total) + " sentences"}
	} else {
		components["examples"] = CompStatus{Status: "empty"}
		if overallStatus == "ok" {
			overallStatus = "degraded"
		}
	}

	status := http.StatusOK
	if overallStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

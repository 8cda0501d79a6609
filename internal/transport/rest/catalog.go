package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// checkpointLister lists checkpoints available from the model backend.
type checkpointLister interface {
	Checkpoints(ctx context.Context) ([]provider.Checkpoint, error)
}

// CatalogHandler serves the dataset registry and checkpoint listings.
type CatalogHandler struct {
	registry    []string
	examples    exampleCounter
	checkpoints checkpointLister
	log         *slog.Logger
}

// NewCatalogHandler creates a CatalogHandler. checkpoints may be nil when
// the model failed to initialize.
func NewCatalogHandler(registry []string, examples exampleCounter, checkpoints checkpointLister, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		registry:    registry,
		examples:    examples,
		checkpoints: checkpoints,
		log:         logger.With("handler", "catalog"),
	}
}

// datasetPayload.Loaded is false when preload skipped the dataset as unknown
// to the catalog.
type datasetPayload struct {
	Name     string `json:"name"`
	Loaded   bool   `json:"loaded"`
	Examples int    `json:"examples"`
}

type datasetsResponse struct {
	Default  string           `json:"default,omitempty"`
	Datasets []datasetPayload `json:"datasets"`
}

type checkpointPayload struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
}

// Datasets handles GET /api/v1/datasets.
func (h *CatalogHandler) Datasets(w http.ResponseWriter, r *http.Request) {
	resp := datasetsResponse{
		Default:  defaultDataset(h.registry),
		Datasets: make([]datasetPayload, 0, len(h.registry)),
	}
	for _, name := range h.registry {
		resp.Datasets = append(resp.Datasets, datasetPayload{
			Name:     name,
			Loaded:   h.examples.Has(name),
			Examples: h.examples.Len(name),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// Checkpoints handles GET /api/v1/checkpoints.
func (h *CatalogHandler) Checkpoints(w http.ResponseWriter, r *http.Request) {
	if h.checkpoints == nil {
		writeError(w, http.StatusServiceUnavailable, "model unavailable")
		return
	}

	cps, err := h.checkpoints.Checkpoints(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "list checkpoints", slog.String("error", err.Error()))
		if errors.Is(err, provider.ErrCheckpointsUnsupported) || errors.Is(err, provider.ErrBackendNotCompiled) {
			writeError(w, http.StatusNotImplemented, "checkpoint listing not supported")
			return
		}
		writeError(w, http.StatusServiceUnavailable, "could not list checkpoints")
		return
	}

	out := make([]checkpointPayload, 0, len(cps))
	for _, cp := range cps {
		out = append(out, checkpointPayload{Name: cp.Name, Description: cp.Description, Version: cp.Version})
	}
	writeJSON(w, http.StatusOK, map[string]any{"checkpoints": out})
}

package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/absa-demo/internal/service/analysis"
	"github.com/heartmarshall/absa-demo/pkg/ctxutil"
)

const maxAnalyzeBody = 64 << 10

// analyzer defines the minimal interface needed by the analysis handlers.
type analyzer interface {
	Analyze(ctx context.Context, text, dataset string) analysis.Result
	ModelReady() bool
}

// AnalyzeHandler serves the JSON inference endpoint.
type AnalyzeHandler struct {
	svc      analyzer
	registry []string
	log      *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler. Requests without a dataset
// use the first registry name, as the web form does.
func NewAnalyzeHandler(svc analyzer, registry []string, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{svc: svc, registry: registry, log: logger.With("handler", "analyze")}
}

type analyzeRequest struct {
	Text    string `json:"text"`
	Dataset string `json:"dataset"`
}

type analyzeResponse struct {
	Sentence string          `json:"sentence"`
	Outcome  string          `json:"outcome"`
	Columns  []string        `json:"columns"`
	Rows     [][]string      `json:"rows"`
	Aspects  []aspectPayload `json:"aspects,omitempty"`
}

type aspectPayload struct {
	Aspect     string  `json:"aspect"`
	Sentiment  string  `json:"sentiment"`
	Confidence float64 `json:"confidence"`
	Position   []int   `json:"position"`
}

// Analyze handles POST /api/v1/analyze. Model-level failures are reported
// in the table with status 200; only malformed requests are rejected.
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := req.Dataset
	if name == "" {
		name = defaultDataset(h.registry)
	}

	ctxutil.RecordDataset(r.Context(), name)
	res := h.svc.Analyze(r.Context(), req.Text, name)

	writeJSON(w, http.StatusOK, toAnalyzeResponse(res))
}

func toAnalyzeResponse(res analysis.Result) analyzeResponse {
	resp := analyzeResponse{
		Sentence: res.Sentence,
		Outcome:  res.Outcome,
		Columns:  res.Table.Columns,
		Rows:     res.Table.Rows,
	}
	for _, a := range res.Table.Aspects {
		pos := a.Position
		if pos == nil {
			pos = []int{}
		}
		resp.Aspects = append(resp.Aspects, aspectPayload{
			Aspect:     a.Aspect,
			Sentiment:  a.Sentiment,
			Confidence: a.Confidence,
			Position:   pos,
		})
	}
	return resp
}

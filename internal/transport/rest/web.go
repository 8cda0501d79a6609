package rest

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/absa-demo/internal/service/analysis"
	"github.com/heartmarshall/absa-demo/pkg/ctxutil"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// WebHandler serves the HTML demo form.
type WebHandler struct {
	svc      analyzer
	registry []string
	examples exampleCounter
	log      *slog.Logger
}

// NewWebHandler creates a WebHandler. The first registry name is the
// default dataset selection.
func NewWebHandler(svc analyzer, registry []string, examples exampleCounter, logger *slog.Logger) *WebHandler {
	return &WebHandler{
		svc:      svc,
		registry: registry,
		examples: examples,
		log:      logger.With("handler", "web"),
	}
}

type pageData struct {
	Text      string
	Datasets  []datasetOption
	Submitted bool
	Sentence  string
	Kind      string // error, message or result; styles the table
	Columns   []string
	Rows      [][]string
}

type datasetOption struct {
	Name     string
	Examples int
	Selected bool
}

// Form handles GET /.
func (h *WebHandler) Form(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, pageData{Datasets: h.options(defaultDataset(h.registry))})
}

// Submit handles POST /.
func (h *WebHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAnalyzeBody)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	text := r.PostFormValue("text")
	selected := r.PostFormValue("dataset")
	if selected == "" {
		selected = defaultDataset(h.registry)
	}

	ctxutil.RecordDataset(r.Context(), selected)
	res := h.svc.Analyze(r.Context(), text, selected)

	h.render(w, r, pageData{
		Text:      text,
		Datasets:  h.options(selected),
		Submitted: true,
		Sentence:  res.Sentence,
		Kind:      tableKind(res.Table),
		Columns:   res.Table.Columns,
		Rows:      res.Table.Rows,
	})
}

// defaultDataset is the dataset used when a request names none.
func defaultDataset(registry []string) string {
	if len(registry) == 0 {
		return ""
	}
	return registry[0]
}

func (h *WebHandler) options(selected string) []datasetOption {
	opts := make([]datasetOption, 0, len(h.registry))
	for _, name := range h.registry {
		opts = append(opts, datasetOption{
			Name:     name,
			Examples: h.examples.Len(name),
			Selected: name == selected,
		})
	}
	return opts
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, data pageData) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.log.ErrorContext(r.Context(), "render page", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w) //nolint:errcheck
}

func tableKind(t analysis.Table) string {
	switch {
	case t.IsError():
		return "error"
	case t.IsMessage():
		return "message"
	default:
		return "result"
	}
}

package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/absa-demo/internal/config"
	"github.com/heartmarshall/absa-demo/internal/transport/middleware"
)

// RouterDeps holds everything the HTTP surface needs.
type RouterDeps struct {
	Logger      *slog.Logger
	Analyzer    analyzer
	Examples    exampleCounter
	Checkpoints checkpointLister
	Registry    []string
	Version     string
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	RatePerMin  int
	// Gatherer is exposed on MetricsPath when both are set.
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

// NewRouter wires all routes. Inference routes (POST / and the analyze API)
// are rate limited; probes, listings and metrics are not.
func NewRouter(d RouterDeps) http.Handler {
	health := NewHealthHandler(d.Analyzer, d.Examples, d.Version)
	analyze := NewAnalyzeHandler(d.Analyzer, d.Registry, d.Logger)
	catalog := NewCatalogHandler(d.Registry, d.Examples, d.Checkpoints, d.Logger)
	web := NewWebHandler(d.Analyzer, d.Registry, d.Examples, d.Logger)

	limit := func(h http.HandlerFunc) http.Handler { return h }
	if d.RateLimiter != nil && d.RatePerMin > 0 {
		mw := d.RateLimiter.Limit(d.RatePerMin)
		limit = func(h http.HandlerFunc) http.Handler { return mw(h) }
	}

	r := mux.NewRouter()

	r.HandleFunc("/live", health.Live).Methods(http.MethodGet)
	r.HandleFunc("/ready", health.Ready).Methods(http.MethodGet)
	r.HandleFunc("/health", health.Health).Methods(http.MethodGet)

	if d.Gatherer != nil && d.MetricsPath != "" {
		r.Handle(d.MetricsPath, promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}

	// Registered on the root router: a mux subrouter reports a method
	// mismatch as 404 instead of 405.
	r.Handle("/api/v1/analyze", limit(analyze.Analyze)).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/datasets", catalog.Datasets).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/checkpoints", catalog.Checkpoints).Methods(http.MethodGet)

	r.HandleFunc("/", web.Form).Methods(http.MethodGet)
	r.Handle("/", limit(web.Submit)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return middleware.Standard(d.Logger, d.CORS)(r)
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the demo.
type Metrics struct {
	analyses        *prometheus.CounterVec
	analysisLatency *prometheus.HistogramVec
	examplesLoaded  *prometheus.GaugeVec
	modelUp         prometheus.Gauge
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		analyses: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "absa_analyses_total",
				Help: "Analysis requests by outcome",
			},
			[]string{"outcome"},
		),
		analysisLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "absa_analysis_duration_seconds",
				Help:    "Analysis latency including model inference",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"outcome"},
		),
		examplesLoaded: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "absa_examples_loaded",
				Help: "Preloaded example sentences per dataset",
			},
			[]string{"dataset"},
		),
		modelUp: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "absa_model_up",
				Help: "1 if the pretrained model handle was initialized",
			},
		),
	}
}

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(outcome).Inc()
	m.analysisLatency.WithLabelValues(outcome).Observe(d.Seconds())
}

// SetExamplesLoaded records the size of a dataset's example pool.
func (m *Metrics) SetExamplesLoaded(dataset string, n int) {
	if m == nil {
		return
	}
	m.examplesLoaded.WithLabelValues(dataset).Set(float64(n))
}

// SetModelUp records whether the model handle is available.
func (m *Metrics) SetModelUp(up bool) {
	if m == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	m.modelUp.Set(v)
}

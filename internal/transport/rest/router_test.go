package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/absa-demo/internal/config"
	"github.com/heartmarshall/absa-demo/internal/metrics"
	"github.com/heartmarshall/absa-demo/internal/service/analysis"
	"github.com/heartmarshall/absa-demo/internal/transport/middleware"
)

func newTestRouter(t *testing.T, ratePerMin int) (http.Handler, *analyzerMock) {
	t.Helper()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SetModelUp(true)

	svc := &analyzerMock{
		Ready: true,
		AnalyzeFunc: func(_ context.Context, text, _ string) analysis.Result {
			return okResult(text)
		},
	}

	rl := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rl.Stop)

	h := NewRouter(RouterDeps{
		Logger:      newTestLogger(),
		Analyzer:    svc,
		Examples:    examplesMock{"Laptop14": 2},
		Registry:    []string{"Laptop14"},
		Version:     "test",
		CORS:        config.CORSConfig{AllowedOrigins: "*", AllowedMethods: "GET,POST", AllowedHeaders: "Content-Type"},
		RateLimiter: rl,
		RatePerMin:  ratePerMin,
		Gatherer:    reg,
		MetricsPath: "/metrics",
	})
	return h, svc
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, 60)

	tests := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/live", "", http.StatusOK},
		{http.MethodGet, "/ready", "", http.StatusOK},
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/api/v1/datasets", "", http.StatusOK},
		{http.MethodGet, "/api/v1/checkpoints", "", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/v1/analyze", `{"text":"x"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/analyze", "", http.StatusMethodNotAllowed},
		{http.MethodPost, "/api/v1/datasets", "", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/v1/checkpoints", "", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/v1/nope", "", http.StatusNotFound},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t, 60)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "absa_model_up 1")
}

func TestRouter_AnalyzeIsRateLimited(t *testing.T) {
	t.Parallel()

	h, svc := newTestRouter(t, 1)

	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(`{"text":"x"}`))
		req.RemoteAddr = "9.9.9.9:1000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
	assert.Len(t, svc.AnalyzeCalls(), 1)

	// Probes are not limited.
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.RemoteAddr = "9.9.9.9:1000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_MethodNotAllowedIsJSON(t *testing.T) {
	t.Parallel()

	h, svc := newTestRouter(t, 60)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analyze", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"method not allowed"}`, rec.Body.String())
	assert.Empty(t, svc.AnalyzeCalls())
}

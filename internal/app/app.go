package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/heartmarshall/absa-demo/internal/adapter/provider/onnx"
	"github.com/heartmarshall/absa-demo/internal/adapter/provider/remote"
	"github.com/heartmarshall/absa-demo/internal/app/preload"
	"github.com/heartmarshall/absa-demo/internal/config"
	"github.com/heartmarshall/absa-demo/internal/dataset"
	"github.com/heartmarshall/absa-demo/internal/metrics"
	"github.com/heartmarshall/absa-demo/internal/provider"
	"github.com/heartmarshall/absa-demo/internal/service/analysis"
	"github.com/heartmarshall/absa-demo/internal/transport/middleware"
	"github.com/heartmarshall/absa-demo/internal/transport/rest"
)

// Model is the pretrained ATEPC model handle.
type Model interface {
	Predict(ctx context.Context, text string) (*provider.Prediction, error)
	Checkpoints(ctx context.Context) ([]provider.Checkpoint, error)
}

// modelOpener builds and opens the configured model backend.
type modelOpener func(ctx context.Context, cfg config.ModelConfig, logger *slog.Logger) (Model, error)

// Runtime holds every component built at startup. Its fields are read-only
// once Init returns; Close releases the model and the rate limiter.
type Runtime struct {
	Catalog  *dataset.Catalog
	Pool     *dataset.Pool
	Preload  map[string]preload.DatasetResult
	Model    Model // nil when the model failed to initialize
	ModelErr error
	Metrics  *metrics.Metrics
	Registry *prometheus.Registry
	Service  *analysis.Service
	Handler  http.Handler

	limiter *middleware.RateLimiter
}

// Init builds the runtime in order: dataset catalog, preloaded example pool,
// model handle, metrics, analysis service and HTTP handler. A model that
// fails to open is logged and left nil; Init itself only fails on programmer
// error.
func Init(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	return initWith(ctx, cfg, logger, openModel)
}

func initWith(ctx context.Context, cfg *config.Config, logger *slog.Logger, open modelOpener) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("app: init: nil config")
	}

	rt := &Runtime{}

	rt.Catalog = dataset.NewCatalog(cfg.Datasets.Root)
	loader := dataset.NewLoader(logger, rt.Catalog)
	pipeline := preload.NewPipeline(logger, rt.Catalog, loader, cfg.Datasets.Names)
	rt.Pool = pipeline.Run()
	rt.Preload = pipeline.Results()

	model, err := open(ctx, cfg.Model, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialize model",
			slog.String("backend", cfg.Model.Backend),
			slog.String("checkpoint", cfg.Model.Checkpoint),
			slog.String("error", err.Error()),
		)
		rt.ModelErr = err
		model = nil
	}
	rt.Model = model

	rt.Registry = prometheus.NewRegistry()
	rt.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	rt.Metrics = metrics.New(rt.Registry)
	rt.Metrics.SetModelUp(rt.Model != nil)
	for _, name := range rt.Pool.Names() {
		rt.Metrics.SetExamplesLoaded(name, rt.Pool.Len(name))
	}

	rt.Service = analysis.NewService(logger, rt.Model, rt.Pool, rt.Metrics, cfg.Analysis.MaxInputRunes)

	rt.limiter = middleware.NewRateLimiter(5 * time.Minute)

	deps := rest.RouterDeps{
		Logger:      logger,
		Analyzer:    rt.Service,
		Examples:    rt.Pool,
		Checkpoints: rt.Model,
		Registry:    cfg.Datasets.Names,
		Version:     BuildVersion(),
		CORS:        cfg.CORS,
		RateLimiter: rt.limiter,
		RatePerMin:  cfg.Analysis.RateLimitPerMinute,
	}
	if cfg.Metrics.Enabled {
		deps.Gatherer = rt.Registry
		deps.MetricsPath = cfg.Metrics.Path
	}
	rt.Handler = rest.NewRouter(deps)

	return rt, nil
}

// Close releases the model handle and background workers.
func (rt *Runtime) Close() error {
	if rt.limiter != nil {
		rt.limiter.Stop()
		rt.limiter = nil
	}
	if c, ok := rt.Model.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func openModel(ctx context.Context, cfg config.ModelConfig, logger *slog.Logger) (Model, error) {
	switch cfg.Backend {
	case config.BackendRemote:
		p := remote.NewProvider(cfg.BaseURL, cfg.Checkpoint, cfg.Timeout, logger)
		if err := p.Open(ctx); err != nil {
			return nil, err
		}
		return p, nil
	case config.BackendHugot:
		p := onnx.NewProvider(cfg.ModelPath, cfg.OnnxFilename, cfg.Checkpoint, logger)
		if err := p.Open(ctx); err != nil {
			p.Close() //nolint:errcheck
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("app: unknown model backend %q", cfg.Backend)
	}
}

// Run is the application entry point. It loads configuration, initializes
// the logger and runtime, and serves HTTP until ctx is cancelled or the
// process receives SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("model_backend", cfg.Model.Backend),
		slog.String("checkpoint", cfg.Model.Checkpoint),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := Init(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Close() //nolint:errcheck

	logCheckpoints(ctx, logger, rt.Model)

	if rt.Model == nil {
		logger.Warn("model failed to initialize; analysis requests will report it as unavailable")
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rt.Handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, logger, srv, cfg.Server.ShutdownTimeout)
}

// logCheckpoints lists the checkpoints offered by the model backend.
// Failure is not fatal.
func logCheckpoints(ctx context.Context, logger *slog.Logger, m Model) {
	if m == nil {
		return
	}
	cps, err := m.Checkpoints(ctx)
	if err != nil {
		logger.WarnContext(ctx, "could not list available checkpoints", slog.String("error", err.Error()))
		return
	}
	names := make([]string, 0, len(cps))
	for _, cp := range cps {
		names = append(names, cp.Name)
	}
	logger.InfoContext(ctx, "available ATEPC checkpoints", slog.Any("checkpoints", names))
}

func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("app: http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	return nil
}

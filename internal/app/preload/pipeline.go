// Package preload builds the in-memory example pool from the configured
// dataset registry at startup.
package preload

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/absa-demo/internal/dataset"
)

// catalog is the dataset membership check consulted before loading.
type catalog interface {
	Has(name string) bool
}

// exampleLoader reads the examples of one dataset.
type exampleLoader interface {
	Load(name string) ([]string, dataset.Stats)
}

// DatasetResult holds the outcome of preloading a single dataset.
type DatasetResult struct {
	Stats    dataset.Stats
	Skipped  bool
	Duration time.Duration
	Err      error
}

// Pipeline preloads the examples of every registry dataset.
type Pipeline struct {
	log      *slog.Logger
	catalog  catalog
	loader   exampleLoader
	registry []string
	results  map[string]DatasetResult
}

// NewPipeline creates a new Pipeline for the given dataset registry.
func NewPipeline(log *slog.Logger, c catalog, l exampleLoader, registry []string) *Pipeline {
	return &Pipeline{
		log:      log.With("component", "preload"),
		catalog:  c,
		loader:   l,
		registry: registry,
		results:  make(map[string]DatasetResult),
	}
}

// Results returns per-dataset results after Run completes.
func (p *Pipeline) Results() map[string]DatasetResult {
	return p.results
}

// HasErrors returns true if any dataset was skipped or had unreadable files.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Stats.FailedFiles > 0 || r.Stats.MissingFiles > 0 {
			return true
		}
	}
	return false
}

// Run loads every registry dataset the catalog knows and returns the pool.
// Datasets unknown to the catalog are logged and left out of the pool.
func (p *Pipeline) Run() *dataset.Pool {
	p.log.Info("loading dataset examples", slog.Int("datasets", len(p.registry)))

	examples := make(map[string][]string, len(p.registry))
	for _, name := range p.registry {
		start := time.Now()

		if !p.catalog.Has(name) {
			p.results[name] = DatasetResult{
				Skipped:  true,
				Duration: time.Since(start),
				Err:      fmt.Errorf("dataset %q: %w", name, dataset.ErrUnknownDataset),
			}
			p.log.Warn("dataset not found in catalog, skipping", slog.String("dataset", name))
			continue
		}

		lines, stats := p.loader.Load(name)
		examples[name] = lines

		result := DatasetResult{Stats: stats, Duration: time.Since(start)}
		p.results[name] = result

		p.log.Info("dataset loaded",
			slog.String("dataset", name),
			slog.Int("files", stats.Files),
			slog.Int("lines", stats.TotalLines),
			slog.Int("kept", stats.Kept),
			slog.Int("duplicates", stats.Duplicates),
			slog.Int("missing_files", stats.MissingFiles),
			slog.Int("failed_files", stats.FailedFiles),
			slog.Duration("duration", result.Duration),
		)
	}

	pool := dataset.NewPool(p.registry, examples)
	p.log.Info("dataset examples loading complete", slog.Int("datasets_loaded", len(pool.Names())))
	return pool
}

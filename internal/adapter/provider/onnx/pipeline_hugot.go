//go:build hugot

package onnx

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// Provider runs ATEPC token classification with an ONNX model via hugot.
type Provider struct {
	modelPath    string
	onnxFilename string
	checkpoint   string
	log          *slog.Logger

	mu       sync.Mutex
	session  *hugot.Session
	pipeline *pipelines.TokenClassificationPipeline
}

// NewProvider creates a Provider for the exported checkpoint in modelPath.
func NewProvider(modelPath, onnxFilename, checkpoint string, logger *slog.Logger) *Provider {
	return &Provider{
		modelPath:    modelPath,
		onnxFilename: onnxFilename,
		checkpoint:   checkpoint,
		log:          logger.With("adapter", "onnx_model"),
	}
}

// Open creates the inference session and loads the pipeline.
func (p *Provider) Open(ctx context.Context) error {
	session, err := hugot.NewGoSession()
	if err != nil {
		return fmt.Errorf("onnx: create session: %w", err)
	}

	cfg := hugot.TokenClassificationConfig{
		Name:         p.checkpoint,
		ModelPath:    p.modelPath,
		OnnxFilename: p.onnxFilename,
		Options: []pipelines.PipelineOption[*pipelines.TokenClassificationPipeline]{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}

	pipeline, err := hugot.NewPipeline(session, cfg)
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("onnx: load pipeline: %w", err)
	}
	if err := pipeline.Validate(); err != nil {
		_ = session.Destroy()
		return fmt.Errorf("onnx: validate pipeline: %w", err)
	}

	p.mu.Lock()
	p.session = session
	p.pipeline = pipeline
	p.mu.Unlock()

	p.log.InfoContext(ctx, "onnx pipeline loaded", slog.String("model_path", p.modelPath))
	return nil
}

// Predict extracts aspects and their sentiments from text.
func (p *Provider) Predict(ctx context.Context, text string) (*provider.Prediction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pipeline == nil {
		return nil, fmt.Errorf("onnx: predict: %w", provider.ErrModelUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := p.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("onnx: run pipeline: %w", err)
	}
	if len(out.Entities) == 0 {
		return toPrediction(text, nil), nil
	}

	entities := make([]entity, 0, len(out.Entities[0]))
	for _, e := range out.Entities[0] {
		entities = append(entities, entity{
			Label: e.Entity,
			Word:  e.Word,
			Score: float64(e.Score),
			Start: int(e.Start),
			End:   int(e.End),
		})
	}

	return toPrediction(text, entities), nil
}

// Checkpoints reports the single checkpoint loaded from disk.
func (p *Provider) Checkpoints(_ context.Context) ([]provider.Checkpoint, error) {
	return []provider.Checkpoint{{
		Name:        p.checkpoint,
		Description: "ONNX export at " + p.modelPath,
	}}, nil
}

// Close releases the inference session.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil
	}
	err := p.session.Destroy()
	p.session = nil
	p.pipeline = nil
	return err
}

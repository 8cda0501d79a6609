//go:build !hugot

package onnx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// Provider is a placeholder used when the binary is built without the "hugot" tag.
type Provider struct {
	modelPath string
}

// NewProvider creates a Provider that cannot be opened.
func NewProvider(modelPath, _, _ string, _ *slog.Logger) *Provider {
	return &Provider{modelPath: modelPath}
}

// Open always fails: rebuild with -tags hugot to enable in-process inference.
func (p *Provider) Open(context.Context) error {
	return fmt.Errorf("onnx: open %s: %w", p.modelPath, provider.ErrBackendNotCompiled)
}

// Predict always fails.
func (p *Provider) Predict(context.Context, string) (*provider.Prediction, error) {
	return nil, fmt.Errorf("onnx: predict: %w", provider.ErrBackendNotCompiled)
}

// Checkpoints always fails.
func (p *Provider) Checkpoints(context.Context) ([]provider.Checkpoint, error) {
	return nil, fmt.Errorf("onnx: checkpoints: %w", provider.ErrBackendNotCompiled)
}

// Close is a no-op.
func (p *Provider) Close() error { return nil }

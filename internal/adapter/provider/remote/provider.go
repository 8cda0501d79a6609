// Package remote talks to a model server that hosts a pretrained ATEPC
// checkpoint over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

const (
	defaultTimeout = 30 * time.Second
	retryDelay     = 500 * time.Millisecond
	taskATEPC      = "ATEPC"
)

// Provider runs ATEPC predictions against a model server.
type Provider struct {
	baseURL    string
	checkpoint string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// NewProvider creates a Provider for the model server at baseURL serving checkpoint.
// A non-positive timeout falls back to 30s.
func NewProvider(baseURL, checkpoint string, timeout time.Duration, logger *slog.Logger) *Provider {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		checkpoint: checkpoint,
		httpClient: &http.Client{Timeout: timeout},
		retryDelay: retryDelay,
		log:        logger.With("adapter", "remote_model"),
	}
}

// Open verifies the model server is reachable and serves the configured checkpoint.
func (p *Provider) Open(ctx context.Context) error {
	cps, err := p.Checkpoints(ctx)
	if err != nil {
		return fmt.Errorf("remote: open: %w", err)
	}
	for _, cp := range cps {
		if strings.EqualFold(cp.Name, p.checkpoint) {
			p.log.InfoContext(ctx, "model checkpoint available",
				slog.String("checkpoint", cp.Name),
				slog.String("version", cp.Version),
			)
			return nil
		}
	}
	return fmt.Errorf("remote: open %q: %w", p.checkpoint, provider.ErrCheckpointNotFound)
}

// Predict extracts aspects and their sentiments from text.
func (p *Provider) Predict(ctx context.Context, text string) (*provider.Prediction, error) {
	body, err := json.Marshal(apiPredictRequest{
		Text:          text,
		Checkpoint:    p.checkpoint,
		PredSentiment: true,
	})
	if err != nil {
		return nil, fmt.Errorf("remote: encode request: %w", err)
	}

	p.log.DebugContext(ctx, "predict request", slog.Int("text_len", len(text)))

	newReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}

	var pred apiPrediction
	if err := p.do(ctx, newReq, &pred); err != nil {
		return nil, err
	}

	result := mapPrediction(text, pred)

	p.log.DebugContext(ctx, "predict response", slog.Int("aspects", len(result.Aspects)))

	return result, nil
}

// Checkpoints lists the ATEPC checkpoints the model server can serve.
func (p *Provider) Checkpoints(ctx context.Context) ([]provider.Checkpoint, error) {
	newReq := func() (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/checkpoints?task="+taskATEPC, nil)
	}

	var cps []apiCheckpoint
	if err := p.do(ctx, newReq, &cps); err != nil {
		return nil, err
	}

	result := make([]provider.Checkpoint, 0, len(cps))
	for _, cp := range cps {
		result = append(result, provider.Checkpoint{
			Name:        cp.Name,
			Description: cp.Description,
			Version:     cp.Version,
		})
	}
	return result, nil
}

// do executes the request built by newReq and decodes a 200 JSON body into out.
func (p *Provider) do(ctx context.Context, newReq func() (*http.Request, error), out any) error {
	resp, err := p.doWithRetry(ctx, newReq)
	if err != nil {
		p.log.ErrorContext(ctx, "model request failed", slog.String("error", err.Error()))
		return fmt.Errorf("remote: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("remote: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Detail != "" {
			return fmt.Errorf("remote: unexpected status %d: %s", resp.StatusCode, apiErr.Detail)
		}
		return fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("remote: decode json: %w", err)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, newReq func() (*http.Request, error)) (*http.Response, error) {
	req, err := newReq()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "model request retry", slog.String("path", req.URL.Path), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.retryDelay):
	}

	req, err = newReq()
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return p.httpClient.Do(req)
}

// mapPrediction converts the server result into a provider.Prediction.
// The echoed sentence falls back to the request text.
func mapPrediction(text string, pred apiPrediction) *provider.Prediction {
	sentence := pred.Sentence
	if sentence == "" {
		sentence = text
	}
	return &provider.Prediction{
		Sentence:    sentence,
		Tokens:      pred.Tokens,
		Aspects:     pred.Aspect,
		Sentiments:  pred.Sentiment,
		Confidences: pred.Confidence,
		Positions:   pred.Position,
	}
}

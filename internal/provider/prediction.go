package provider

import "errors"

// Sentinel errors returned by model providers.
var (
	ErrModelUnavailable       = errors.New("model unavailable")
	ErrCheckpointsUnsupported = errors.New("checkpoint listing not supported")
	ErrCheckpointNotFound     = errors.New("checkpoint not found")
	ErrBackendNotCompiled     = errors.New("model backend not compiled into this binary")
)

// Prediction is the ATEPC result for one sentence. Aspects, Sentiments,
// Confidences and Positions are parallel: index i describes the i-th
// detected aspect. Positions holds the token indices the aspect spans.
type Prediction struct {
	Sentence    string
	Tokens      []string
	Aspects     []string
	Sentiments  []string
	Confidences []float64
	Positions   [][]int
}

// HasAspects reports whether at least one aspect was detected.
func (p *Prediction) HasAspects() bool {
	return p != nil && len(p.Aspects) > 0
}

// Checkpoint describes a pretrained model snapshot a provider can serve.
type Checkpoint struct {
	Name        string
	Description string
	Version     string
}

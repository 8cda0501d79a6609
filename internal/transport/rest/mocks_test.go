package rest

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/heartmarshall/absa-demo/internal/provider"
	"github.com/heartmarshall/absa-demo/internal/service/analysis"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type analyzeCall struct {
	Text    string
	Dataset string
}

type analyzerMock struct {
	AnalyzeFunc func(ctx context.Context, text, dataset string) analysis.Result
	Ready       bool

	mu    sync.Mutex
	calls []analyzeCall
}

func (m *analyzerMock) Analyze(ctx context.Context, text, dataset string) analysis.Result {
	m.mu.Lock()
	m.calls = append(m.calls, analyzeCall{Text: text, Dataset: dataset})
	m.mu.Unlock()
	if m.AnalyzeFunc == nil {
		panic("analyzerMock.AnalyzeFunc: method is nil but Analyze was just called")
	}
	return m.AnalyzeFunc(ctx, text, dataset)
}

func (m *analyzerMock) ModelReady() bool { return m.Ready }

func (m *analyzerMock) AnalyzeCalls() []analyzeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]analyzeCall(nil), m.calls...)
}

type examplesMock map[string]int

func (m examplesMock) Names() []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (m examplesMock) Has(name string) bool {
	_, ok := m[name]
	return ok
}

func (m examplesMock) Len(name string) int { return m[name] }

type checkpointListerMock struct {
	CheckpointsFunc func(ctx context.Context) ([]provider.Checkpoint, error)
}

func (m *checkpointListerMock) Checkpoints(ctx context.Context) ([]provider.Checkpoint, error) {
	if m.CheckpointsFunc == nil {
		panic("checkpointListerMock.CheckpointsFunc: method is nil but Checkpoints was just called")
	}
	return m.CheckpointsFunc(ctx)
}

func okResult(sentence string) analysis.Result {
	return analysis.Result{
		Sentence: sentence,
		Outcome:  analysis.OutcomeOK,
		Table: analysis.Table{
			Columns: []string{analysis.ColumnAspect, analysis.ColumnSentiment, analysis.ColumnConfidence, analysis.ColumnPosition},
			Rows:    [][]string{{"battery life", "Positive", "0.9876", "[0, 1]"}},
			Aspects: []analysis.AspectRow{{Aspect: "battery life", Sentiment: "Positive", Confidence: 0.9876, Position: []int{0, 1}}},
		},
	}
}

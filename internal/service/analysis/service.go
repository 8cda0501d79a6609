// Package analysis turns a free-text request into an aspect sentiment table.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// User-facing messages.
const (
	MsgModelNotInitialized = "Model not initialized. Please check logs."
	MsgModelUnavailable    = "Model Unavailable"
	MsgNoExamples          = "No examples available for this dataset or input text provided."
	MsgProvideText         = "Please provide text or select a valid dataset."
	MsgNoAspects           = "No aspects detected for the given text."
	msgErrorPrefix         = "An error occurred: "
)

// Outcomes recorded per call.
const (
	OutcomeOK               = "ok"
	OutcomeNoAspects        = "no_aspects"
	OutcomeNoExamples       = "no_examples"
	OutcomeModelUnavailable = "model_unavailable"
	OutcomeError            = "error"
)

type extractor interface {
	Predict(ctx context.Context, text string) (*provider.Prediction, error)
}

type examplePool interface {
	Pick(name string, pick func(n int) int) (string, bool)
}

type recorder interface {
	ObserveAnalysis(outcome string, d time.Duration)
}

// Result is the outcome of one analysis: the table to render and the
// sentence that was analysed (or a guidance message when none was).
type Result struct {
	Table    Table
	Sentence string
	Outcome  string
}

// Service resolves the sentence to analyse, runs the model and shapes its output.
// It holds only read-only collaborators and is safe for concurrent use.
type Service struct {
	log      *slog.Logger
	model    extractor
	pool     examplePool
	metrics  recorder
	maxRunes int
	pick     func(n int) int
}

// NewService creates a new analysis service. model may be nil when the
// pretrained model failed to initialize; every call then reports it as
// unavailable. maxRunes <= 0 disables input truncation.
func NewService(logger *slog.Logger, model extractor, pool examplePool, metrics recorder, maxRunes int) *Service {
	return &Service{
		log:      logger.With("service", "analysis"),
		model:    model,
		pool:     pool,
		metrics:  metrics,
		maxRunes: maxRunes,
		pick:     rand.IntN,
	}
}

// ModelReady reports whether a model handle is available.
func (s *Service) ModelReady() bool {
	return s.model != nil
}

// Analyze runs aspect sentiment analysis on text. Blank text is replaced by a
// random example from dataset. It never fails: every problem is reported as a
// one-row message or error table.
func (s *Service) Analyze(ctx context.Context, text, dataset string) Result {
	start := time.Now()
	res := s.analyze(ctx, text, dataset)

	if s.metrics != nil {
		s.metrics.ObserveAnalysis(res.Outcome, time.Since(start))
	}
	return res
}

func (s *Service) analyze(ctx context.Context, text, dataset string) Result {
	if s.model == nil {
		return Result{
			Table:    ErrorTable(MsgModelNotInitialized),
			Sentence: MsgModelUnavailable,
			Outcome:  OutcomeModelUnavailable,
		}
	}

	sentence := strings.TrimSpace(text)
	if sentence == "" {
		example, ok := s.pool.Pick(dataset, s.pick)
		if !ok {
			s.log.InfoContext(ctx, "no examples for dataset", slog.String("dataset", dataset))
			return Result{
				Table:    MessageTable(MsgNoExamples),
				Sentence: MsgProvideText,
				Outcome:  OutcomeNoExamples,
			}
		}
		sentence = example
	}
	sentence = truncateRunes(sentence, s.maxRunes)

	s.log.InfoContext(ctx, "performing inference",
		slog.String("sentence", sentence),
		slog.String("dataset", dataset),
	)

	pred, err := s.predict(ctx, sentence)
	if err != nil {
		s.log.ErrorContext(ctx, "inference failed",
			slog.String("dataset", dataset),
			slog.String("error", err.Error()),
		)
		return Result{
			Table:    ErrorTable(msgErrorPrefix + err.Error()),
			Sentence: sentence,
			Outcome:  OutcomeError,
		}
	}

	if !pred.HasAspects() {
		return Result{
			Table:    MessageTable(MsgNoAspects),
			Sentence: sentence,
			Outcome:  OutcomeNoAspects,
		}
	}

	return Result{
		Table:    PredictionTable(pred),
		Sentence: sentence,
		Outcome:  OutcomeOK,
	}
}

// predict calls the model and converts a panic inside it into an error.
func (s *Service) predict(ctx context.Context, sentence string) (pred *provider.Prediction, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	return s.model.Predict(ctx, sentence)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

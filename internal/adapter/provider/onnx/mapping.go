// Package onnx runs an exported ATEPC checkpoint in-process as a token
// classification pipeline. The real implementation is compiled with the
// "hugot" build tag; without it Open reports provider.ErrBackendNotCompiled.
package onnx

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// entity is a backend-neutral aggregated token classification span.
type entity struct {
	Label string
	Word  string
	Score float64
	Start int
	End   int
}

// tokenSpan is the byte range of a whitespace-delimited token.
type tokenSpan struct {
	text       string
	start, end int
}

// splitTokens splits text on whitespace, keeping byte offsets.
func splitTokens(text string) []tokenSpan {
	var spans []tokenSpan
	start := -1
	for i, r := range text {
		if unicode.IsSpace(r) {
			if start >= 0 {
				spans = append(spans, tokenSpan{text: text[start:i], start: start, end: i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		spans = append(spans, tokenSpan{text: text[start:], start: start, end: len(text)})
	}
	return spans
}

// positionsFor returns the indices of tokens overlapping [start, end).
func positionsFor(tokens []tokenSpan, start, end int) []int {
	var idx []int
	for i, t := range tokens {
		if t.start < end && start < t.end {
			idx = append(idx, i)
		}
	}
	return idx
}

// sentimentFromLabel extracts the polarity from an aspect label such as
// "ASP-Positive" or "B-ASP-Negative". Labels without a dash are returned as is.
func sentimentFromLabel(label string) string {
	if i := strings.LastIndex(label, "-"); i >= 0 {
		return label[i+1:]
	}
	return label
}

// toPrediction folds aggregated entities into parallel prediction sequences.
// Entities whose label carries no sentiment (e.g. "O") are dropped.
func toPrediction(text string, entities []entity) *provider.Prediction {
	tokens := splitTokens(text)

	pred := &provider.Prediction{
		Sentence:    text,
		Tokens:      make([]string, 0, len(tokens)),
		Aspects:     []string{},
		Sentiments:  []string{},
		Confidences: []float64{},
		Positions:   [][]int{},
	}
	for _, t := range tokens {
		pred.Tokens = append(pred.Tokens, t.text)
	}

	for _, e := range entities {
		sentiment := sentimentFromLabel(e.Label)
		if sentiment == "" || sentiment == "O" {
			continue
		}
		word := strings.TrimSpace(e.Word)
		if e.Start >= 0 && e.End <= len(text) && e.Start < e.End {
			word = text[e.Start:e.End]
		}
		pred.Aspects = append(pred.Aspects, word)
		pred.Sentiments = append(pred.Sentiments, sentiment)
		pred.Confidences = append(pred.Confidences, e.Score)
		pred.Positions = append(pred.Positions, positionsFor(tokens, e.Start, e.End))
	}

	return pred
}

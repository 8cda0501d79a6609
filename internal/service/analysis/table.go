package analysis

import (
	"strconv"
	"strings"

	"github.com/heartmarshall/absa-demo/internal/provider"
)

// Column headers of the tables produced by the service.
const (
	ColumnMessage    = "Message"
	ColumnError      = "Error"
	ColumnAspect     = "Aspect"
	ColumnSentiment  = "Sentiment"
	ColumnConfidence = "Confidence"
	ColumnPosition   = "Position"
)

// confidenceDecimals is the precision confidences are rounded to.
const confidenceDecimals = 4

// Table is a rendered result: a header row and string cells.
type Table struct {
	Columns []string
	Rows    [][]string
	// Aspects carries typed rows when the table holds predictions.
	Aspects []AspectRow
}

// AspectRow is one detected aspect with its rounded confidence.
type AspectRow struct {
	Aspect     string
	Sentiment  string
	Confidence float64
	Position   []int
}

// IsError reports whether the table is a one-row error table.
func (t Table) IsError() bool {
	return len(t.Columns) == 1 && t.Columns[0] == ColumnError
}

// IsMessage reports whether the table is a one-row informational table.
func (t Table) IsMessage() bool {
	return len(t.Columns) == 1 && t.Columns[0] == ColumnMessage
}

// MessageTable builds a one-row informational table.
func MessageTable(msg string) Table {
	return Table{Columns: []string{ColumnMessage}, Rows: [][]string{{msg}}}
}

// ErrorTable builds a one-row error table.
func ErrorTable(msg string) Table {
	return Table{Columns: []string{ColumnError}, Rows: [][]string{{msg}}}
}

// PredictionTable builds one row per detected aspect. The parallel sequences
// are indexed by aspect; a shorter sequence leaves its cells empty.
func PredictionTable(pred *provider.Prediction) Table {
	t := Table{
		Columns: []string{ColumnAspect, ColumnSentiment, ColumnConfidence, ColumnPosition},
		Rows:    make([][]string, 0, len(pred.Aspects)),
		Aspects: make([]AspectRow, 0, len(pred.Aspects)),
	}

	for i, aspect := range pred.Aspects {
		row := AspectRow{Aspect: aspect}
		sentiment, confidence, position := "", "", ""

		if i < len(pred.Sentiments) {
			row.Sentiment = pred.Sentiments[i]
			sentiment = row.Sentiment
		}
		if i < len(pred.Confidences) {
			row.Confidence = RoundConfidence(pred.Confidences[i])
			confidence = FormatConfidence(row.Confidence)
		}
		if i < len(pred.Positions) {
			row.Position = pred.Positions[i]
			position = FormatPosition(row.Position)
		}

		t.Aspects = append(t.Aspects, row)
		t.Rows = append(t.Rows, []string{aspect, sentiment, confidence, position})
	}

	return t
}

// RoundConfidence rounds c to four decimal places using the correctly
// rounded decimal form of its exact binary value, so values stored just
// below a tie (0.55555 is 0.555549999...) round down.
func RoundConfidence(c float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(c, 'f', confidenceDecimals, 64), 64)
	if err != nil {
		return c
	}
	return r
}

// FormatConfidence renders an already rounded confidence without trailing zeros.
func FormatConfidence(c float64) string {
	return strconv.FormatFloat(c, 'f', -1, 64)
}

// FormatPosition renders token indices as a bracketed list, e.g. "[3, 4]".
func FormatPosition(pos []int) string {
	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

package dataset

import "strings"

// Markup found in ATEPC dataset lines.
const (
	LabelDelimiter = "$LABEL$"
	AspectBegin    = "[B-ASP]"
	AspectEnd      = "[E-ASP]"
)

// CleanLine turns a raw dataset line into a plain example sentence: the label
// suffix is cut at the first delimiter, aspect markers are removed, and
// surrounding whitespace is trimmed. An empty result means the line is unusable.
func CleanLine(line string) string {
	if before, _, found := strings.Cut(line, LabelDelimiter); found {
		line = before
	}
	line = strings.ReplaceAll(line, AspectBegin, "")
	line = strings.ReplaceAll(line, AspectEnd, "")
	return strings.TrimSpace(line)
}

// dedupeExamples keeps the first occurrence of every sentence across a
// dataset's files and reports how many repeats were dropped. The result is
// never nil.
func dedupeExamples(lines []string) ([]string, int) {
	seen := make(map[string]struct{}, len(lines))
	kept := make([]string, 0, len(lines))

	for _, l := range lines {
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		kept = append(kept, l)
	}

	return kept, len(lines) - len(kept)
}

package dataset

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const maxLineBytes = 1024 * 1024

// resolver locates the files backing a dataset.
type resolver interface {
	Resolve(name string) ([]string, error)
}

// Stats holds loader statistics for logging.
type Stats struct {
	Files        int
	MissingFiles int
	FailedFiles  int
	TotalLines   int
	EmptyLines   int
	Duplicates   int
	Kept         int
}

// Loader reads example sentences for a dataset from its resolved files.
type Loader struct {
	log      *slog.Logger
	resolver resolver
}

// NewLoader creates a Loader that resolves files through r.
func NewLoader(logger *slog.Logger, r resolver) *Loader {
	return &Loader{
		log:      logger.With("component", "dataset_loader"),
		resolver: r,
	}
}

// Load returns the unique cleaned example sentences of the named dataset in
// first-seen order across all of its files. It never fails: unresolvable
// datasets, missing files and unreadable files are logged and contribute
// nothing.
func (l *Loader) Load(name string) ([]string, Stats) {
	var stats Stats

	files, err := l.resolver.Resolve(name)
	if err != nil {
		l.log.Error("resolve dataset files", slog.String("dataset", name), slog.String("error", err.Error()))
		return []string{}, stats
	}

	var all []string
	for _, path := range files {
		stats.Files++
		l.log.Info("loading examples", slog.String("dataset", name), slog.String("path", path))

		lines, total, err := readCleanLines(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				stats.MissingFiles++
				l.log.Warn("dataset file not found", slog.String("dataset", name), slog.String("path", path))
				continue
			}
			stats.FailedFiles++
			l.log.Error("load dataset file", slog.String("dataset", name), slog.String("path", path), slog.String("error", err.Error()))
			continue
		}

		stats.TotalLines += total
		stats.EmptyLines += total - len(lines)
		all = append(all, lines...)
	}

	unique, dropped := dedupeExamples(all)
	stats.Kept = len(unique)
	stats.Duplicates = dropped

	return unique, stats
}

// readCleanLines reads a whole file as UTF-8 text and returns its non-empty
// cleaned lines plus the number of raw lines. Either the whole file is used or
// none of it: an invalid encoding or an oversized line fails the file.
func readCleanLines(path string) ([]string, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read file: %w", err)
	}

	// Drops a leading BOM; UTF-16 files with a BOM are transcoded to UTF-8.
	data, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
	if err != nil {
		return nil, 0, fmt.Errorf("decode: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, 0, fmt.Errorf("decode: invalid UTF-8")
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		lines []string
		total int
	)
	for scanner.Scan() {
		total++
		if cleaned := CleanLine(scanner.Text()); cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("scanner error: %w", err)
	}

	return lines, total, nil
}

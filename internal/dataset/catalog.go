// Package dataset resolves, reads and cleans the ATEPC benchmark files that
// supply example sentences to the demo. It never talks to the model.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// ErrUnknownDataset is returned when a name is not part of the catalog.
var ErrUnknownDataset = errors.New("unknown dataset")

// inferenceMarker tags the split of a dataset that holds inference examples.
const inferenceMarker = ".inference"

// ignoreMarkers exclude files that sit next to real splits (backups, disabled files).
var ignoreMarkers = []string{".ignore", ".bak", ".tmp"}

// Entry describes one catalog dataset. Keys are the directory name fragments
// its files live under; composite datasets list several.
type Entry struct {
	Name string
	Keys []string
}

// knownEntries mirrors the ATEPC dataset catalog of the upstream library.
func knownEntries() []Entry {
	semEval := []string{"Laptop14", "Restaurant14", "Restaurant15", "Restaurant16"}
	return []Entry{
		{Name: "Laptop14", Keys: []string{"Laptop14"}},
		{Name: "Restaurant14", Keys: []string{"Restaurant14"}},
		{Name: "Restaurant15", Keys: []string{"Restaurant15"}},
		{Name: "Restaurant16", Keys: []string{"Restaurant16"}},
		{Name: "SemEval", Keys: semEval},
		{Name: "Twitter", Keys: []string{"Twitter"}},
		{Name: "TShirt", Keys: []string{"TShirt"}},
		{Name: "Television", Keys: []string{"Television"}},
		{Name: "MAMS", Keys: []string{"MAMS"}},
		{Name: "Phone", Keys: []string{"Phone"}},
		{Name: "Car", Keys: []string{"Car"}},
		{Name: "Notebook", Keys: []string{"Notebook"}},
		{Name: "Camera", Keys: []string{"Camera"}},
		{Name: "Shampoo", Keys: []string{"Shampoo"}},
		{Name: "MOOC", Keys: []string{"MOOC"}},
		{Name: "Yelp", Keys: []string{"Yelp"}},
		{Name: "Chinese", Keys: []string{"Phone", "Car", "Notebook", "Camera"}},
		{Name: "English", Keys: append(slices.Clone(semEval), "Twitter", "MAMS", "TShirt", "Television", "Yelp")},
		{Name: "Multilingual", Keys: []string{"Multilingual"}},
	}
}

// Catalog knows the ATEPC datasets and where their downloaded files live.
type Catalog struct {
	root    string
	entries map[string]Entry
}

// NewCatalog creates a Catalog rooted at the directory datasets were downloaded to.
func NewCatalog(root string) *Catalog {
	entries := make(map[string]Entry)
	for _, e := range knownEntries() {
		entries[e.Name] = e
	}
	return &Catalog{root: root, entries: entries}
}

// Has reports whether name is a dataset known to the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.entries[name]
	return ok
}

// Names returns all catalog dataset names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for n := range c.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the sorted paths of the inference files backing name.
// A file matches when its path relative to the root contains one of the
// dataset's keys (case-insensitive) and its base name carries the inference
// marker without an ignore marker. A missing root yields no files, not an
// error; an unreadable entry below the root is skipped.
func (c *Catalog) Resolve(name string) ([]string, error) {
	entry, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("dataset: resolve %q: %w", name, ErrUnknownDataset)
	}

	keys := make([]string, len(entry.Keys))
	for i, k := range entry.Keys {
		keys[i] = strings.ToLower(k)
	}

	var files []string
	err := filepath.WalkDir(c.root, c.collect(keys, &files))
	if err != nil {
		return nil, fmt.Errorf("dataset: resolve %q: %w", name, err)
	}

	sort.Strings(files)
	return files, nil
}

// collect returns the walk function appending matching inference files to files.
func (c *Catalog) collect(keys []string, files *[]string) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == c.root {
				if errors.Is(err, fs.ErrNotExist) {
					return fs.SkipAll
				}
				return err
			}
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		base := strings.ToLower(d.Name())
		if !strings.Contains(base, inferenceMarker) || hasIgnoreMarker(base) {
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return nil
		}
		rel = strings.ToLower(rel)
		for _, k := range keys {
			if strings.Contains(rel, k) {
				*files = append(*files, path)
				return nil
			}
		}
		return nil
	}
}

func hasIgnoreMarker(base string) bool {
	for _, m := range ignoreMarkers {
		if strings.Contains(base, m) {
			return true
		}
	}
	return false
}

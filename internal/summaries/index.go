package summaries

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// Index is a lazy, build-once lookup from normalized book title to full
// summary. The dataset file is read at most once per Index lifetime; after
// the first build the map is read-only and safe for concurrent readers.
type Index struct {
	path     string
	once     sync.Once
	byTitle  map[string]string
	buildErr error

	// readFile is swapped in tests to count dataset reads.
	readFile func(string) ([]byte, error)
}

// NewIndex creates an index over the dataset file at path. Nothing is read
// until the first lookup.
func NewIndex(path string) *Index {
	return &Index{path: path, readFile: os.ReadFile}
}

// GetSummaryByTitle returns the full summary for the given title, matched
// case-insensitively with surrounding whitespace ignored. A missing title
// yields an empty string, not an error; callers supply their own fallback.
func (i *Index) GetSummaryByTitle(title string) (string, error) {
	i.once.Do(i.build)
	if i.buildErr != nil {
		return "", i.buildErr
	}
	return i.byTitle[normalize(title)], nil
}

func (i *Index) build() {
	data, err := i.readFile(i.path)
	if err != nil {
		i.buildErr = fmt.Errorf("reading dataset %s: %w", i.path, err)
		return
	}
	var records []domain.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		i.buildErr = fmt.Errorf("parsing dataset %s: %w", i.path, err)
		return
	}
	m := make(map[string]string, len(records))
	for _, r := range records {
		m[normalize(r.Title)] = r.FullSummary
	}
	i.byTitle = m
}

func normalize(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

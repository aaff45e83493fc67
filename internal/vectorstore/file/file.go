package file

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// Storage is a brute-force cosine-distance vector store persisted as a JSON
// collection file under a configurable directory.
type Storage struct {
	mu        sync.RWMutex
	path      string
	dimension int
	entries   []domain.Entry
}

type Config struct {
	// Dir is the storage directory for collection files.
	Dir string
	// Collection names the persistent collection inside Dir.
	Collection string
}

type collectionFile struct {
	Dimension int            `json:"dimension"`
	Entries   []domain.Entry `json:"entries"`
}

// NewStorage opens the collection under cfg.Dir, loading any persisted
// entries. The directory is created if missing.
func NewStorage(cfg Config) (*Storage, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "./vectors"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "book_summaries"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Storage{path: filepath.Join(dir, collection+".json")}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	var cf collectionFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	s.dimension = cf.Dimension
	s.entries = cf.Entries
	return s, nil
}

func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	return s.persistLocked()
}

func (s *Storage) Upsert(ctx context.Context, entries []domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		if s.dimension != 0 && len(e.Vector) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	s.entries = append(s.entries, entries...)
	return s.persistLocked()
}

func (s *Storage) Search(ctx context.Context, vector []float64, k int) ([]domain.Neighbor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 {
		k = 3
	}
	results := make([]domain.Neighbor, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, domain.Neighbor{
			ID:       e.ID,
			Distance: cosineDistance(e.Vector, vector),
			Meta:     e.Meta,
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k > len(results) {
		k = len(results)
	}
	return results[:k], nil
}

func (s *Storage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.persistLocked()
}

func (s *Storage) persistLocked() error {
	data, err := json.Marshal(collectionFile{Dimension: s.dimension, Entries: s.entries})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

func cosineDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(na)*math.Sqrt(nb))
}

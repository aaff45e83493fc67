package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
	"github.com/TiberiuRabi/LLM-Library/internal/vectorstore/file"
)

// mockEmbedder returns a deterministic vector per text.
type mockEmbedder struct {
	texts []string
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	m.texts = append(m.texts, text)
	return []float64{float64(len(text)), 1}, nil
}

// orderStore records the sequence of store calls.
type orderStore struct {
	calls []string
}

func (o *orderStore) Init(ctx context.Context, dimension int) error {
	o.calls = append(o.calls, "init")
	return nil
}

func (o *orderStore) Upsert(ctx context.Context, entries []domain.Entry) error {
	o.calls = append(o.calls, "upsert")
	return nil
}

func (o *orderStore) Search(ctx context.Context, vector []float64, k int) ([]domain.Neighbor, error) {
	return nil, nil
}

func (o *orderStore) Clear(ctx context.Context) error {
	o.calls = append(o.calls, "clear")
	return nil
}

const dataset = `[
  {"title":"Dune","themes":["politics","desert"],"short_summary":"Sands.","full_summary":"Full Dune text."},
  {"title":"1984","themes":["surveillance"],"short_summary":"Big Brother.","full_summary":"Full 1984 text."}
]`

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "books.json")
	if err := os.WriteFile(path, []byte(dataset), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDocumentFormat(t *testing.T) {
	doc := Document(domain.BookRecord{
		Title:        "Dune",
		Themes:       []string{"politics", "desert"},
		ShortSummary: "Sands.",
	})
	if doc != "Dune\nThemes: politics, desert\nSands." {
		t.Errorf("unexpected document text: %q", doc)
	}
}

func TestBuildPopulatesStore(t *testing.T) {
	store, err := file.NewStorage(file.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(&mockEmbedder{}, store, zerolog.Nop())

	n, err := b.Build(context.Background(), writeDataset(t))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}

	hits, err := store.Search(context.Background(), []float64{30, 1}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 stored entries, got %d", len(hits))
	}
	if hits[0].Meta.FullSummary == "" {
		t.Error("metadata should carry the full summary")
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	store, err := file.NewStorage(file.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(&mockEmbedder{}, store, zerolog.Nop())
	path := writeDataset(t)

	first, err := b.Build(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Build(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("entry counts differ between runs: %d vs %d", first, second)
	}

	hits, err := store.Search(context.Background(), []float64{1, 1}, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != first {
		t.Errorf("expected %d entries after re-run, got %d", first, len(hits))
	}
}

// Clear drops the whole collection on some backends, so Init must follow it
// to recreate the collection before any points are written.
func TestBuildClearsBeforeInitBeforeUpsert(t *testing.T) {
	store := &orderStore{}
	b := NewBuilder(&mockEmbedder{}, store, zerolog.Nop())

	if _, err := b.Build(context.Background(), writeDataset(t)); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := []string{"clear", "init", "upsert"}
	if len(store.calls) != len(want) {
		t.Fatalf("unexpected calls: %v", store.calls)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Fatalf("expected call order %v, got %v", want, store.calls)
		}
	}
}

func TestBuildEmbedsTheDocumentText(t *testing.T) {
	store, err := file.NewStorage(file.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	emb := &mockEmbedder{}
	b := NewBuilder(emb, store, zerolog.Nop())

	if _, err := b.Build(context.Background(), writeDataset(t)); err != nil {
		t.Fatal(err)
	}
	if len(emb.texts) != 2 || !strings.HasPrefix(emb.texts[0], "Dune\nThemes:") {
		t.Errorf("unexpected embedded texts: %v", emb.texts)
	}
}

func TestBuildFailsOnMissingDataset(t *testing.T) {
	store, err := file.NewStorage(file.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(&mockEmbedder{}, store, zerolog.Nop())

	if _, err := b.Build(context.Background(), filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing dataset")
	}
}

func TestBuildFailsOnEmptyDataset(t *testing.T) {
	store, err := file.NewStorage(file.Config{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "books.json")
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := NewBuilder(&mockEmbedder{}, store, zerolog.Nop())

	if _, err := b.Build(context.Background(), path); err == nil {
		t.Fatal("expected error for empty dataset")
	}
}

package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// LoadRecords reads the book dataset: a JSON array of records with a
// required title and optional themes and summaries.
func LoadRecords(path string) ([]domain.BookRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %s: %w", path, err)
	}
	var records []domain.BookRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	return records, nil
}

// Document builds the embedding input for one record. The same text is
// embedded at index time and matched against query embeddings later.
func Document(r domain.BookRecord) string {
	return fmt.Sprintf("%s\nThemes: %s\n%s", r.Title, strings.Join(r.Themes, ", "), r.ShortSummary)
}

// Builder populates the vector store from the dataset.
type Builder struct {
	embedder domain.Embedder
	store    domain.VectorStore
	log      zerolog.Logger
}

// NewBuilder creates a Builder with injected collaborators.
func NewBuilder(embedder domain.Embedder, store domain.VectorStore, log zerolog.Logger) *Builder {
	return &Builder{embedder: embedder, store: store, log: log}
}

// Build clears the collection and rebuilds it from the dataset at path.
// Entry ids derive from record position, so a re-run replaces rather than
// accumulates. Returns the number of entries written.
func (b *Builder) Build(ctx context.Context, path string) (int, error) {
	records, err := LoadRecords(path)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("dataset %s contains no records", path)
	}

	entries := make([]domain.Entry, 0, len(records))
	for i, r := range records {
		doc := Document(r)
		vec, err := b.embedder.Embed(ctx, doc)
		if err != nil {
			return 0, fmt.Errorf("embedding %q: %w", r.Title, err)
		}
		entries = append(entries, domain.Entry{
			ID:       fmt.Sprintf("b%d", i),
			Document: doc,
			Meta: domain.BookMeta{
				Title:        r.Title,
				Themes:       r.Themes,
				ShortSummary: r.ShortSummary,
				FullSummary:  r.FullSummary,
			},
			Vector: vec,
		})
	}

	// Clear first: the qdrant adapter drops the whole collection, so Init
	// must come after to recreate it before points are written.
	if err := b.store.Clear(ctx); err != nil {
		return 0, fmt.Errorf("clearing store: %w", err)
	}
	if err := b.store.Init(ctx, len(entries[0].Vector)); err != nil {
		return 0, fmt.Errorf("initializing store: %w", err)
	}
	if err := b.store.Upsert(ctx, entries); err != nil {
		return 0, fmt.Errorf("upserting entries: %w", err)
	}

	b.log.Info().Int("entries", len(entries)).Str("dataset", path).Msg("vector store rebuilt")
	return len(entries), nil
}

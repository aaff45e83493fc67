package retriever

import (
	"context"
	"fmt"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// Retriever turns a free-text query into a ranked list of candidate books by
// embedding the query and running a nearest-neighbor search.
type Retriever struct {
	embedder domain.Embedder
	store    domain.VectorStore
}

// New creates a Retriever with injected collaborators.
func New(embedder domain.Embedder, store domain.VectorStore) *Retriever {
	return &Retriever{embedder: embedder, store: store}
}

// Search returns up to k candidates in the order the store provides them
// (nearest first). Zero matches is not an error at this layer.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]domain.CandidateHit, error) {
	if k <= 0 {
		k = 3
	}
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	neighbors, err := r.store.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("searching vectors: %w", err)
	}
	hits := make([]domain.CandidateHit, 0, len(neighbors))
	for _, n := range neighbors {
		hits = append(hits, domain.CandidateHit{
			Title:    n.Meta.Title,
			Distance: n.Distance,
			Meta:     n.Meta,
		})
	}
	return hits, nil
}

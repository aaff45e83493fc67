package domain

import "context"

// BookRecord is a single entry of the book dataset.
type BookRecord struct {
	Title        string   `json:"title"`
	Themes       []string `json:"themes,omitempty"`
	ShortSummary string   `json:"short_summary,omitempty"`
	FullSummary  string   `json:"full_summary,omitempty"`
}

// BookMeta is the metadata stored alongside each embedded document.
// It mirrors the dataset record so a hit is self-contained.
type BookMeta struct {
	Title        string   `json:"title"`
	Themes       []string `json:"themes,omitempty"`
	ShortSummary string   `json:"short_summary,omitempty"`
	FullSummary  string   `json:"full_summary,omitempty"`
}

// Entry is a document prepared for the vector store: the embedding input
// text, its vector and the record metadata.
type Entry struct {
	ID       string
	Document string
	Meta     BookMeta
	Vector   []float64
}

// Neighbor is a raw nearest-neighbor result from the vector store.
// Distance is smaller-is-closer.
type Neighbor struct {
	ID       string
	Distance float64
	Meta     BookMeta
}

// CandidateHit is a retrieval result eligible for selection.
type CandidateHit struct {
	Title    string
	Distance float64
	Meta     BookMeta
}

// Message is a single turn of a chat exchange (role + content).
type Message struct {
	Role    string
	Content string
}

// Completion describes a single chat-completion call.
type Completion struct {
	Messages    []Message
	Temperature float64
	ForceJSON   bool
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ChatModel generates a text reply for a chat exchange.
type ChatModel interface {
	Complete(ctx context.Context, req Completion) (string, error)
}

// VectorStore persists embedded documents and supports similarity search.
type VectorStore interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, entries []Entry) error
	Search(ctx context.Context, vector []float64, k int) ([]Neighbor, error)
	Clear(ctx context.Context) error
}

package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/TiberiuRabi/LLM-Library/internal/domain"
)

// Storage is a minimal REST client to Qdrant.
// It assumes cosine distance and creates the collection if missing.
type Storage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "book_summaries"
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Storage) Init(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the same schema
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Storage) Upsert(ctx context.Context, entries []domain.Entry) error {
	points := make([]map[string]any, len(entries))
	for i, e := range entries {
		// Qdrant only accepts unsigned-integer or UUID point ids; the
		// string entry id travels in the payload instead.
		points[i] = map[string]any{
			"id":     i,
			"vector": e.Vector,
			"payload": map[string]any{
				"ref":           e.ID,
				"title":         e.Meta.Title,
				"themes":        e.Meta.Themes,
				"short_summary": e.Meta.ShortSummary,
				"full_summary":  e.Meta.FullSummary,
				"document":      e.Document,
			},
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(ctx, fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Storage) Search(ctx context.Context, vector []float64, k int) ([]domain.Neighbor, error) {
	if k <= 0 {
		k = 3
	}
	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.Neighbor, 0, len(resp.Result))
	for _, r := range resp.Result {
		n := domain.Neighbor{
			ID: fmt.Sprint(r.ID),
			// Qdrant reports cosine similarity; callers expect smaller-is-closer
			Distance: 1 - r.Score,
		}
		if v, ok := r.Payload["ref"].(string); ok {
			n.ID = v
		}
		if v, ok := r.Payload["title"].(string); ok {
			n.Meta.Title = v
		}
		if v, ok := r.Payload["short_summary"].(string); ok {
			n.Meta.ShortSummary = v
		}
		if v, ok := r.Payload["full_summary"].(string); ok {
			n.Meta.FullSummary = v
		}
		if vs, ok := r.Payload["themes"].([]any); ok {
			for _, t := range vs {
				if ts, ok := t.(string); ok {
					n.Meta.Themes = append(n.Meta.Themes, ts)
				}
			}
		}
		results = append(results, n)
	}
	return results, nil
}

func (s *Storage) Clear(ctx context.Context) error {
	// Best-effort: drop collection
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (s *Storage) putJSON(ctx context.Context, url string, body any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(ctx context.Context, url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		dec := json.NewDecoder(resp.Body)
		return dec.Decode(out)
	}
	return nil
}

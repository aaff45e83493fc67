package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

func TestEmbedReplacesNewlinesWithSpaces(t *testing.T) {
	var gotInput string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Input string `json:"input"`
			Model string `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
		}
		gotInput = req.Input
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.1, 0.2}}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	vec, err := c.Embed(context.Background(), "Dune\nThemes: desert\nSands.")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if gotInput != "Dune Themes: desert Sands." {
		t.Errorf("newlines not cleaned: %q", gotInput)
	}
	if len(vec) != 2 {
		t.Errorf("unexpected vector: %v", vec)
	}
	if c.Dimension() != 2 {
		t.Errorf("dimension not recorded: %d", c.Dimension())
	}
}

// Embed runs concurrently under request handling; the dimension write on the
// first success must not race with parallel embeds. Run with -race.
func TestEmbedConcurrentCallsRecordDimensionOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{0.1, 0.2}}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Embed(context.Background(), "text"); err != nil {
				t.Errorf("embed failed: %v", err)
			}
			_ = c.Dimension()
		}()
	}
	wg.Wait()
	if c.Dimension() != 2 {
		t.Errorf("dimension not recorded: %d", c.Dimension())
	}
}

func TestEmbedSendsAuthAndModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing auth header: %q", r.Header.Get("Authorization"))
		}
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "text-embedding-3-small" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"embedding": []float64{1}}},
		})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(context.Background(), "text"); err != nil {
		t.Fatalf("embed failed: %v", err)
	}
}

func TestEmbedFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-bad"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected error for HTTP failure")
	}
}

func TestEmbedFailsOnEmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Embed(context.Background(), "text"); err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

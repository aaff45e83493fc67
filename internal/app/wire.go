// Package app assembles collaborators from configuration for the entrypoints.
package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/config"
	"github.com/TiberiuRabi/LLM-Library/internal/decision"
	"github.com/TiberiuRabi/LLM-Library/internal/domain"
	embedopenai "github.com/TiberiuRabi/LLM-Library/internal/embedding/openai"
	chatopenai "github.com/TiberiuRabi/LLM-Library/internal/llm/openai"
	"github.com/TiberiuRabi/LLM-Library/internal/retriever"
	"github.com/TiberiuRabi/LLM-Library/internal/service"
	"github.com/TiberiuRabi/LLM-Library/internal/summaries"
	"github.com/TiberiuRabi/LLM-Library/internal/vectorstore/file"
	"github.com/TiberiuRabi/LLM-Library/internal/vectorstore/qdrant"
)

// NewEmbedder builds the embeddings client from configuration.
func NewEmbedder(cfg *config.AppConfig) (*embedopenai.Client, error) {
	return embedopenai.NewClient(embedopenai.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.OpenAI.EmbedModel,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
}

// NewStore builds the configured vector store adapter.
func NewStore(cfg *config.AppConfig) (domain.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "file", "":
		return file.NewStorage(file.Config{
			Dir:        cfg.VectorStore.Path,
			Collection: cfg.VectorStore.Collection,
		})
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			return nil, fmt.Errorf("qdrant config missing")
		}
		return qdrant.NewStorage(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		}), nil
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.VectorStore.Type)
	}
}

// NewRecommender assembles the full recommendation service.
func NewRecommender(cfg *config.AppConfig, log zerolog.Logger) (*service.Recommender, error) {
	embedder, err := NewEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(cfg)
	if err != nil {
		return nil, err
	}
	chat, err := chatopenai.NewClient(chatopenai.Config{
		BaseURL: cfg.OpenAI.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.OpenAI.ChatModel,
		Timeout: time.Duration(cfg.OpenAI.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	return service.New(
		retriever.New(embedder, store),
		decision.NewMaker(chat),
		summaries.NewIndex(cfg.DatasetPath),
		cfg.DefaultK,
		log,
	), nil
}

package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// OpenAIConfig holds settings for the embedding and chat collaborators.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	ChatModel   string `yaml:"chat_model"`
	EmbedModel  string `yaml:"embed_model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type       string        `yaml:"type"`
	Path       string        `yaml:"path"`
	Collection string        `yaml:"collection"`
	Qdrant     *QdrantConfig `yaml:"qdrant,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server      ServerConfig      `yaml:"server"`
	DatasetPath string            `yaml:"dataset_path"`
	DefaultK    int               `yaml:"default_k"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`

	// APIKey is sourced from the environment only, never from the file.
	APIKey string `yaml:"-"`
}

// ErrMissingAPIKey signals that OPENAI_API_KEY is not set. The process must
// refuse to serve traffic in that case.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is missing")

// Load reads a config from a specified path and applies environment
// overrides. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	applyEnv(cfg)
	return cfg, nil
}

// Validate checks that required settings are present.
func (c *AppConfig) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server:      ServerConfig{Addr: ":8080"},
		DatasetPath: "data/book_summaries.json",
		DefaultK:    3,
		OpenAI: OpenAIConfig{
			ChatModel:   "gpt-4o",
			EmbedModel:  "text-embedding-3-small",
			TimeoutSecs: 30,
		},
		VectorStore: VectorStoreConfig{
			Type:       "file",
			Path:       "./vectors",
			Collection: "book_summaries",
		},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.DatasetPath == "" {
		cfg.DatasetPath = "data/book_summaries.json"
	}
	if cfg.DefaultK <= 0 {
		cfg.DefaultK = 3
	}
	if cfg.OpenAI.ChatModel == "" {
		cfg.OpenAI.ChatModel = "gpt-4o"
	}
	if cfg.OpenAI.EmbedModel == "" {
		cfg.OpenAI.EmbedModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = 30
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "file"
	}
	if cfg.VectorStore.Path == "" {
		cfg.VectorStore.Path = "./vectors"
	}
	if cfg.VectorStore.Collection == "" {
		cfg.VectorStore.Collection = "book_summaries"
	}
	if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
		if cfg.VectorStore.Qdrant.TimeoutSecs == 0 {
			cfg.VectorStore.Qdrant.TimeoutSecs = 15
		}
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	if v := os.Getenv("OPENAI_MODEL_NAME"); v != "" {
		cfg.OpenAI.ChatModel = v
	}
	if v := os.Getenv("OPENAI_EMBED_MODEL"); v != "" {
		cfg.OpenAI.EmbedModel = v
	}
	if v := os.Getenv("VECTOR_STORE_PATH"); v != "" {
		cfg.VectorStore.Path = v
	}
}

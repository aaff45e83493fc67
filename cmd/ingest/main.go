package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/app"
	"github.com/TiberiuRabi/LLM-Library/internal/config"
	"github.com/TiberiuRabi/LLM-Library/internal/ingest"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	embedder, err := app.NewEmbedder(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build embedder")
	}
	store, err := app.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build vector store")
	}

	n, err := ingest.NewBuilder(embedder, store, log).Build(context.Background(), cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("ingest failed")
	}
	log.Info().Int("entries", n).Msg("done")
}

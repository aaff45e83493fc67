package main

import (
	"flag"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/TiberiuRabi/LLM-Library/internal/app"
	"github.com/TiberiuRabi/LLM-Library/internal/config"
	"github.com/TiberiuRabi/LLM-Library/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "config.yaml", "Path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Keep request logs off the interactive screen.
	logFile, err := os.OpenFile("librarian-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()
	zlog := zerolog.New(logFile).With().Timestamp().Logger()

	svc, err := app.NewRecommender(cfg, zlog)
	if err != nil {
		log.Fatalf("failed to assemble service: %v", err)
	}

	if _, err := tea.NewProgram(tui.New(svc)).Run(); err != nil {
		log.Fatal(err)
	}
}

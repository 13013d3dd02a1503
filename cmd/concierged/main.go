package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"

	"concierge/internal/booking"
	"concierge/internal/chunker"
	"concierge/internal/config"
	"concierge/internal/domain"
	openaiembed "concierge/internal/embedding/openai"
	"concierge/internal/ingest"
	"concierge/internal/llm"
	"concierge/internal/server"
	"concierge/internal/service"
	"concierge/internal/vectorstore/memory"
	"concierge/internal/vectorstore/qdrant"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/concierge/config.yaml if not provided)")
	flag.Parse()

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Assemble components
	embedder, err := openaiembed.NewClient(openaiembed.Config{
		BaseURL:   cfg.Embedder.BaseURL,
		APIKeyEnv: cfg.Embedder.APIKeyEnv,
		Model:     cfg.Embedder.Model,
		Timeout:   time.Duration(cfg.Embedder.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("embedder init failed: %v", err)
	}

	chatModel, err := llm.NewClient(llm.Config{
		BaseURL:     cfg.Chat.BaseURL,
		APIKeyEnv:   cfg.Chat.APIKeyEnv,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		Timeout:     time.Duration(cfg.Chat.TimeoutSecs) * time.Second,
	})
	if err != nil {
		log.Fatalf("chat model init failed: %v", err)
	}

	var store domain.VectorStore
	switch cfg.VectorStore.Type {
	case "memory", "":
		store = memory.NewStore()
	case "qdrant":
		if cfg.VectorStore.Qdrant == nil {
			log.Fatalf("qdrant config missing")
		}
		store = qdrant.NewStore(qdrant.Config{
			URL:        cfg.VectorStore.Qdrant.URL,
			APIKey:     cfg.VectorStore.Qdrant.APIKey,
			Collection: cfg.VectorStore.Qdrant.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Qdrant.TimeoutSecs) * time.Second,
		})
	default:
		log.Fatalf("unknown vector store: %s", cfg.VectorStore.Type)
	}

	bookings, err := booking.LoadStore(cfg.Bookings.Path)
	if err != nil {
		log.Fatalf("failed to load bookings: %v", err)
	}

	svc := service.NewConcierge(
		ingest.NewLoader(cfg.Documents.Dir),
		chunker.NewCharacterChunker(cfg.Chunker.ChunkSize, cfg.Chunker.ChunkOverlap),
		embedder,
		store,
		bookings,
		chatModel,
		service.Config{MaxIterations: cfg.Chat.MaxIterations},
	)

	if err := svc.IngestGuides(context.Background()); err != nil {
		log.Fatalf("ingest failed: %v", err)
	}

	srv := server.New(svc)
	if err := srv.Start(server.Addr(cfg.Server.Addr, cfg.Server.Port)); err != nil {
		log.Fatal(err)
	}
}

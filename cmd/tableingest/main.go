package main

// @title           Table Ingest API
// @version         1.0
// @description     Converts PDFs with complex multi-header tables into small RAG-ready text documents.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token. Format: "Bearer {token}"

import (
	"log"
	"log/slog"
	"os"

	"github.com/tableingest/service/internal/chunker"
	"github.com/tableingest/service/internal/config"
	"github.com/tableingest/service/internal/core/services"
	"github.com/tableingest/service/internal/extractors"
	"github.com/tableingest/service/internal/httpapi"
)

var version = "dev"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	log.Printf("tableingest %s starting", version)

	cfg := config.Load()

	registry := extractors.DefaultRegistry(cfg.LatticeLineScale, cfg.StreamEdgeTol, cfg.StreamRowTol)
	orchestrator := services.NewOrchestrator(services.OrchestratorConfig{
		Registry: registry,
		Workers:  cfg.ExtractorWorkers,
		Logger:   logger,
	})
	normalizer := services.NewNormalizer(cfg)

	primaryReader := extractors.NewUnipdfReader()
	secondaryReader := extractors.NewSimpleReader()
	fallback := services.NewFallback(primaryReader, secondaryReader, cfg.MaxTextPages)

	ingest := services.NewIngestService(services.IngestServiceConfig{
		Orchestrator: orchestrator,
		Normalizer:   normalizer,
		Fallback:     fallback,
		PageReader:   primaryReader,
		Pages:        config.ParsePages(cfg.PDFPages),
		ChunkConfig: chunker.Config{
			MaxChars:     cfg.MaxDocChars,
			OverlapChars: cfg.OverlapChars,
		},
		Logger: logger,
	})

	server := httpapi.NewServer(httpapi.Config{
		Host:   "0.0.0.0",
		Port:   cfg.Port,
		APIKey: cfg.EngineAPIKey,
	}, ingest, logger)

	if err := server.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

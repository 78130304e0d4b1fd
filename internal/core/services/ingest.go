package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/tableingest/service/internal/chunker"
	"github.com/tableingest/service/internal/config"
	"github.com/tableingest/service/internal/core/domain"
	"github.com/tableingest/service/internal/core/ports/driven"
	"github.com/tableingest/service/internal/core/ports/driving"
)

var _ driving.IngestService = (*IngestService)(nil)

// IngestService is the single driving-port implementation: it wires the
// orchestrator, normalizer, deduper, emitter, fallback, and chunker into
// the full pipeline described by the system overview.
type IngestService struct {
	orchestrator *Orchestrator
	normalizer   *Normalizer
	fallback     *Fallback
	pageReader   driven.PageTextReader

	pages    config.PageSet
	chunkCfg chunker.Config
	logger   *slog.Logger
}

// IngestServiceConfig configures a new IngestService.
type IngestServiceConfig struct {
	Orchestrator *Orchestrator
	Normalizer   *Normalizer
	Fallback     *Fallback
	PageReader   driven.PageTextReader
	Pages        config.PageSet
	ChunkConfig  chunker.Config
	Logger       *slog.Logger
}

// NewIngestService builds an IngestService from its configuration.
func NewIngestService(cfg IngestServiceConfig) *IngestService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IngestService{
		orchestrator: cfg.Orchestrator,
		normalizer:   cfg.Normalizer,
		fallback:     cfg.Fallback,
		pageReader:   cfg.PageReader,
		pages:        cfg.Pages,
		chunkCfg:     cfg.ChunkConfig,
		logger:       logger,
	}
}

// Process is the full pipeline: PDF detection, extraction, normalization,
// dedup, emission, fallback, and chunking.
func (s *IngestService) Process(ctx context.Context, content []byte, source, contentType string) ([]domain.Document, error) {
	if source == "" {
		source = "upload"
	}

	if !looksLikePDF(content, source, contentType) {
		doc := BasicText(content, source)
		return chunker.ChunkAll([]domain.Document{doc}, s.chunkCfg), nil
	}

	path, cleanup, err := writeTempFile(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	defer cleanup()

	numPages, err := s.pageReader.PageCount(ctx, path)
	if err != nil {
		numPages = 0
	}
	selected := s.pages.Pages(numPages)

	candidates := s.orchestrator.Extract(ctx, path, selected)

	var surviving []domain.Table
	for _, raw := range candidates {
		normalized, ok := s.normalizer.Normalize(raw)
		if !ok {
			continue
		}
		surviving = append(surviving, normalized)
	}
	surviving = Dedupe(surviving)

	s.logger.Info("processed document",
		"source", source,
		"candidate_tables", len(candidates),
		"surviving_tables", len(surviving),
	)

	var docs []domain.Document
	if len(surviving) > 0 {
		docs = Emit(surviving, source)
	} else {
		docs = []domain.Document{s.fallback.PDFText(ctx, path, source, selected)}
	}

	return chunker.ChunkAll(docs, s.chunkCfg), nil
}

// looksLikePDF applies the PDF-detection rule: Content-Type contains "pdf",
// or the filename ends in ".pdf" (case-insensitive), or — guarding against
// a mislabeled Content-Type — DetectContentType sniffs the body's magic
// bytes as a PDF.
func looksLikePDF(content []byte, source, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "pdf") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(source), ".pdf") {
		return true
	}
	return strings.Contains(http.DetectContentType(content), "pdf")
}

// writeTempFile hands the request body to the extractors via a temporary
// file, deleted on every exit path by the returned cleanup func.
func writeTempFile(content []byte) (path string, cleanup func(), err error) {
	f, err := os.CreateTemp("", "tableingest-*.pdf")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}
	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}

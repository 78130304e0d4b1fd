package driving

import (
	"context"

	"github.com/tableingest/service/internal/core/domain"
)

// IngestService is the driving port consumed by the HTTP adapter: it turns
// raw document bytes into a flat, RAG-ready stream of Documents.
type IngestService interface {
	// Process extracts tables (or falls back to plain text), normalizes,
	// deduplicates, emits, and chunks the document at content, returning the
	// final documents in deterministic order. source is the original
	// filename (or "upload" if none was given); contentType drives the
	// PDF-vs-text branch.
	Process(ctx context.Context, content []byte, source, contentType string) ([]domain.Document, error)
}

package driven

import (
	"context"

	"github.com/tableingest/service/internal/core/domain"
)

// TableExtractor is a single table-extraction strategy (lattice, stream, or
// plumber). Each adapter inspects the same source PDF independently and
// reports candidate tables; extractors never mutate shared state and never
// fail the request — errors are logged and treated as zero candidates.
type TableExtractor interface {
	// Extract scans the PDF at path for candidate tables on the given pages.
	// pages is nil or empty to mean "all pages".
	Extract(ctx context.Context, path string, pages []int) ([]domain.Table, error)

	// Strategy identifies which strategy this adapter implements.
	Strategy() domain.Strategy
}

// ExtractorRegistry holds the configured set of TableExtractor strategies,
// run concurrently by the orchestrator.
type ExtractorRegistry interface {
	// All returns every registered extractor, in a stable order.
	All() []TableExtractor

	// Register adds an extractor to the registry.
	Register(TableExtractor)
}

// PageTextReader extracts best-effort plain text per page, used by the
// fallback path, and reports page counts, used by the ingest service to
// resolve the page selector.
type PageTextReader interface {
	// PageTexts returns the plain text of each requested page, keyed by page number.
	// pages is nil or empty to mean "all pages".
	PageTexts(ctx context.Context, path string, pages []int) (map[int]string, error)

	// PageCount reports the total number of pages in the document.
	PageCount(ctx context.Context, path string) (int, error)
}

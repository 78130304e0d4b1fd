package services

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tableingest/service/internal/core/domain"
	"github.com/tableingest/service/internal/core/ports/driven"
)

// Orchestrator runs every registered TableExtractor strategy concurrently,
// bounded by a worker limit, then merges and sorts their candidates. A
// strategy that errors is logged and treated as zero candidates — the
// orchestrator itself never fails.
type Orchestrator struct {
	registry driven.ExtractorRegistry
	workers  int
	logger   *slog.Logger
}

// OrchestratorConfig configures a new Orchestrator.
type OrchestratorConfig struct {
	Registry driven.ExtractorRegistry
	Workers  int
	Logger   *slog.Logger
}

// NewOrchestrator builds an Orchestrator from its configuration.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 3
	}
	return &Orchestrator{registry: cfg.Registry, workers: workers, logger: logger}
}

// Extract runs every strategy against path, bounded by Workers concurrent
// goroutines, and returns the merged candidates sorted by
// (page, strategy_rank, content_hash).
func (o *Orchestrator) Extract(ctx context.Context, path string, pages []int) []domain.Table {
	extractors := o.registry.All()
	results := make([][]domain.Table, len(extractors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, ex := range extractors {
		i, ex := i, ex
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					o.logger.Warn("extractor strategy panicked",
						"strategy", ex.Strategy(),
						"error", r,
					)
				}
			}()
			tables, err := ex.Extract(gctx, path, pages)
			if err != nil {
				o.logger.Warn("extractor strategy failed",
					"strategy", ex.Strategy(),
					"error", err,
				)
				return nil
			}
			results[i] = tables
			return nil
		})
	}
	// Every closure above returns nil (a failing or panicking strategy just
	// leaves its slot empty), so Wait never reports an error.
	_ = g.Wait()

	var merged []domain.Table
	for _, tables := range results {
		merged = append(merged, tables...)
	}
	sortTables(merged)
	return merged
}

func sortTables(tables []domain.Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		return tables[i].SortKey().Less(tables[j].SortKey())
	})
}

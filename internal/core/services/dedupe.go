package services

import (
	"sort"

	"github.com/tableingest/service/internal/core/domain"
)

// Dedupe sorts normalized tables by (page, strategy_rank, content_hash) and
// keeps only the first occurrence of each content hash. Because lattice
// sorts before stream before plumber, the higher-structure strategy wins
// ties between otherwise-identical tables.
func Dedupe(tables []domain.Table) []domain.Table {
	sorted := make([]domain.Table, len(tables))
	copy(sorted, tables)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortKey().Less(sorted[j].SortKey())
	})

	seen := make(map[string]struct{}, len(sorted))
	out := make([]domain.Table, 0, len(sorted))
	for _, t := range sorted {
		if _, ok := seen[t.ContentHash]; ok {
			continue
		}
		seen[t.ContentHash] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Package domain holds the core types shared by every stage of the
// extraction pipeline: tables, documents, and the strategies that produce
// them. Nothing in this package performs I/O.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Strategy identifies which table-extraction adapter produced a candidate.
type Strategy string

const (
	StrategyLattice Strategy = "lattice"
	StrategyStream  Strategy = "stream"
	StrategyPlumber Strategy = "plumber"
)

// rank is the tie-break order used when sorting and deduplicating
// candidates: earlier (lower-rank) strategies win. Lattice has the most
// structural evidence (ruled lines), plumber the least.
func (s Strategy) rank() int {
	switch s {
	case StrategyLattice:
		return 0
	case StrategyStream:
		return 1
	case StrategyPlumber:
		return 2
	default:
		return 99
	}
}

// Cell is a single normalized table cell.
type Cell = string

// Table is an ordered sequence of rows with a required header row of equal
// arity. Tables are built by extractors, mutated only by the normalizer,
// and frozen at deduplication.
type Table struct {
	Columns     []string
	Rows        [][]Cell
	Page        int
	Strategy    Strategy
	ContentHash string
}

// NumCols reports the table's column arity.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// unitSeparator and recordSeparator delimit the canonical serialization
// hashed for deduplication: ASCII unit/record separators so no real table
// content can collide with the delimiter.
const (
	unitSeparator   = ""
	recordSeparator = ""
)

// CanonicalSerialization builds the canonical textual form hashed for
// deduplication: normalized headers joined with the unit separator, then
// each data row's cells joined the same way, then rows joined with the
// record separator.
func (t *Table) CanonicalSerialization() string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Columns, unitSeparator))
	for _, row := range t.Rows {
		b.WriteString(recordSeparator)
		b.WriteString(strings.Join(row, unitSeparator))
	}
	return b.String()
}

// ComputeContentHash computes and assigns the table's content_hash.
func (t *Table) ComputeContentHash() string {
	sum := sha256.Sum256([]byte(t.CanonicalSerialization()))
	t.ContentHash = hex.EncodeToString(sum[:])
	return t.ContentHash
}

// TableID formats the stable table identifier p{page:03}_t{index:03}_{hash8}.
// index is the 1-based ordinal of the table on its page after dedup/sort.
func TableID(page, index int, contentHash string) string {
	hash8 := contentHash
	if len(hash8) > 8 {
		hash8 = hash8[:8]
	}
	return fmt.Sprintf("p%03d_t%03d_%s", page, index, hash8)
}

// SortKey orders candidates by (page, strategy_rank, content_hash); this is
// both the merge order and the dedup tie-break (earlier strategy wins).
type SortKey struct {
	Page         int
	StrategyRank int
	ContentHash  string
}

func (t *Table) SortKey() SortKey {
	return SortKey{Page: t.Page, StrategyRank: t.Strategy.rank(), ContentHash: t.ContentHash}
}

// Less implements the deterministic total order required by spec: page,
// then strategy rank, then content hash.
func (k SortKey) Less(o SortKey) bool {
	if k.Page != o.Page {
		return k.Page < o.Page
	}
	if k.StrategyRank != o.StrategyRank {
		return k.StrategyRank < o.StrategyRank
	}
	return k.ContentHash < o.ContentHash
}

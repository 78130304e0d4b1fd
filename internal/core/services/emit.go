package services

import (
	"strings"

	"github.com/tableingest/service/internal/core/domain"
)

// entityLikeThreshold is the fraction of column-0 data cells that must be
// non-empty and non-numeric for a table to qualify for row-level emission.
const entityLikeThreshold = 0.70

// Emit produces the markdown snapshot (always) and row-level documents
// (when column 0 is entity-like) for a deduplicated table. Tables on the
// same page are numbered in the order given, per page.
func Emit(tables []domain.Table, source string) []domain.Document {
	var docs []domain.Document
	pageIndex := make(map[int]int)

	for _, t := range tables {
		pageIndex[t.Page]++
		tableID := domain.TableID(t.Page, pageIndex[t.Page], t.ContentHash)
		extractor := string(t.Strategy)

		docs = append(docs, domain.Document{
			PageContent: renderMarkdown(t),
			Metadata: domain.Metadata{
				Source:    source,
				Page:      t.Page,
				Extractor: extractor,
				TableID:   tableID,
				Format:    domain.FormatTableMarkdown,
			},
		})

		if !isEntityLike(t) {
			continue
		}
		for _, row := range t.Rows {
			text := renderRowKV(t.Columns, row)
			if text == "" {
				continue
			}
			docs = append(docs, domain.Document{
				PageContent: text,
				Metadata: domain.Metadata{
					Source:    source,
					Page:      t.Page,
					Extractor: extractor,
					TableID:   tableID,
					Format:    domain.FormatRowKV,
				},
			})
		}
	}
	return docs
}

// renderMarkdown renders a table as a GitHub-style pipe table.
func renderMarkdown(t domain.Table) string {
	var b strings.Builder
	b.WriteString("| ")
	b.WriteString(strings.Join(t.Columns, " | "))
	b.WriteString(" |\n|")
	for range t.Columns {
		b.WriteString(" --- |")
	}
	for _, row := range t.Rows {
		b.WriteString("\n| ")
		b.WriteString(strings.Join(row, " | "))
		b.WriteString(" |")
	}
	return b.String()
}

// renderRowKV renders one data row as "<header>: <value>" lines, skipping
// pairs where either the header or the value is empty.
func renderRowKV(columns []string, row []domain.Cell) string {
	var lines []string
	for c, value := range row {
		if value == "" || c >= len(columns) || columns[c] == "" {
			continue
		}
		lines = append(lines, columns[c]+": "+value)
	}
	return strings.Join(lines, "\n")
}

// isEntityLike applies the entity-likeness gate to column 0: at least
// entityLikeThreshold of its data cells must be non-empty and non-numeric.
func isEntityLike(t domain.Table) bool {
	if len(t.Rows) == 0 {
		return false
	}
	nonEmpty := 0
	nonNumeric := 0
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		cell := row[0]
		if cell == "" {
			continue
		}
		nonEmpty++
		if !isNumericCell(cell) {
			nonNumeric++
		}
	}
	if nonEmpty == 0 {
		return false
	}
	return float64(nonNumeric)/float64(len(t.Rows)) >= entityLikeThreshold
}

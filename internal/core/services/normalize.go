package services

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/tableingest/service/internal/config"
	"github.com/tableingest/service/internal/core/domain"
)

// Normalizer turns a raw candidate Table into a clean, hashed Table, or
// rejects it. It is deterministic and pure: normalize(normalize(t)) ==
// normalize(t).
type Normalizer struct {
	maxHeaderRows int
	minRows       int
	minCols       int
}

// NewNormalizer builds a Normalizer from the pipeline's quality-gate and
// header-reconstruction configuration.
func NewNormalizer(cfg config.Config) *Normalizer {
	return &Normalizer{
		maxHeaderRows: cfg.MaxHeaderRows,
		minRows:       cfg.MinRows,
		minCols:       cfg.MinCols,
	}
}

// Normalize runs the full cell/column cleanup, header reconstruction, and
// quality-gate pipeline on a raw table. A non-empty raw.Columns is treated
// as the table's first row. ok is false when the table is rejected by the
// quality gate; callers must drop it silently.
func (n *Normalizer) Normalize(raw domain.Table) (table domain.Table, ok bool) {
	input := raw.Rows
	if len(raw.Columns) > 0 {
		input = append([][]domain.Cell{raw.Columns}, raw.Rows...)
	}
	rows := cleanCells(input)
	rows = dropEmptyColumns(rows)
	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return domain.Table{}, false
	}

	headerRows, dataRows := n.reconstructHeader(rows)
	columns := flattenHeader(headerRows)

	dataRows = cleanCells(dataRows)
	dataRows = dropEmptyRows(dataRows)

	if len(dataRows) < n.minRows || len(columns) < n.minCols {
		return domain.Table{}, false
	}
	if allNumeric(dataRows) {
		return domain.Table{}, false
	}

	out := domain.Table{
		Columns:  columns,
		Rows:     dataRows,
		Page:     raw.Page,
		Strategy: raw.Strategy,
	}
	out.ComputeContentHash()
	return out, true
}

// cleanCells returns a normalized copy of every cell: tabs/newlines become single
// spaces, whitespace runs collapse, leading/trailing space is trimmed, and
// non-breaking spaces fold to regular spaces.
func cleanCells(rows [][]domain.Cell) [][]domain.Cell {
	out := make([][]domain.Cell, len(rows))
	for i, row := range rows {
		cleaned := make([]domain.Cell, len(row))
		for j, cell := range row {
			cleaned[j] = cleanCell(cell)
		}
		out[i] = cleaned
	}
	return out
}

func cleanCell(cell string) string {
	cell = strings.Map(func(r rune) rune {
		switch r {
		case '\t', '\n', '\r':
			return ' '
		case ' ':
			return ' '
		default:
			return r
		}
	}, cell)
	cell = strings.Join(strings.Fields(cell), " ")
	return strings.TrimSpace(cell)
}

// dropEmptyColumns removes columns that are empty across every row.
func dropEmptyColumns(rows [][]domain.Cell) [][]domain.Cell {
	if len(rows) == 0 {
		return rows
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	keep := make([]bool, width)
	for c := 0; c < width; c++ {
		for _, row := range rows {
			if c < len(row) && row[c] != "" {
				keep[c] = true
				break
			}
		}
	}
	out := make([][]domain.Cell, len(rows))
	for i, row := range rows {
		var filtered []domain.Cell
		for c := 0; c < width; c++ {
			if !keep[c] {
				continue
			}
			if c < len(row) {
				filtered = append(filtered, row[c])
			} else {
				filtered = append(filtered, "")
			}
		}
		out[i] = filtered
	}
	return out
}

// dropEmptyRows removes rows that are empty across every cell.
func dropEmptyRows(rows [][]domain.Cell) [][]domain.Cell {
	out := make([][]domain.Cell, 0, len(rows))
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if cell != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

// reconstructHeader determines how many of the leading rows are header
// rows (bounded by maxHeaderRows) and splits them from the data rows. A
// row counts as a header row when it has fewer distinct non-empty tokens
// than there are columns, or when at least one cell is empty — either
// signals a spanning header rather than a fully-populated data row. When
// no leading row qualifies, the first row is still taken as the header.
func (n *Normalizer) reconstructHeader(rows [][]domain.Cell) (header, data [][]domain.Cell) {
	if len(rows) == 0 {
		return nil, nil
	}
	numCols := len(rows[0])

	limit := n.maxHeaderRows
	if limit > len(rows) {
		limit = len(rows)
	}

	h := 0
	for i := 0; i < limit; i++ {
		if looksLikeHeaderRow(rows[i], numCols) {
			h = i + 1
		} else {
			break
		}
	}
	if h == 0 && limit > 0 {
		h = 1
	}
	return rows[:h], rows[h:]
}

func looksLikeHeaderRow(row []domain.Cell, numCols int) bool {
	distinct := make(map[string]struct{})
	hasEmpty := false
	for _, cell := range row {
		if cell == "" {
			hasEmpty = true
			continue
		}
		distinct[cell] = struct{}{}
	}
	return len(distinct) < numCols || hasEmpty
}

// flattenHeader collapses the header rows into one header per column: the
// " | "-joined concatenation of each row's non-empty header cell for that
// column, forward-filling spanning headers rightward within each row.
func flattenHeader(headerRows [][]domain.Cell) []string {
	if len(headerRows) == 0 {
		return nil
	}
	numCols := len(headerRows[0])
	columns := make([]string, numCols)

	for _, row := range headerRows {
		filled := forwardFill(row)
		for c := 0; c < numCols; c++ {
			if c >= len(filled) || filled[c] == "" {
				continue
			}
			if columns[c] == "" {
				columns[c] = filled[c]
			} else {
				columns[c] = columns[c] + " | " + filled[c]
			}
		}
	}

	for c, name := range columns {
		if name == "" {
			columns[c] = columnPlaceholder(c)
		}
	}
	return columns
}

// forwardFill carries the last non-empty header cell rightward to cover
// spanned columns within a single header row.
func forwardFill(row []domain.Cell) []domain.Cell {
	out := make([]domain.Cell, len(row))
	last := ""
	for i, cell := range row {
		if cell != "" {
			last = cell
		}
		out[i] = last
	}
	return out
}

func columnPlaceholder(index int) string {
	return "col_" + strconv.Itoa(index)
}

// allNumeric reports whether every data cell across every row is
// numeric-only, meaning the table carries no semantic content.
func allNumeric(rows [][]domain.Cell) bool {
	sawNonEmpty := false
	for _, row := range rows {
		for _, cell := range row {
			if cell == "" {
				continue
			}
			sawNonEmpty = true
			if !isNumericCell(cell) {
				return false
			}
		}
	}
	return sawNonEmpty
}

// isNumericCell reports whether cell contains only digits, spaces,
// decimal separators, currency signs, percent signs, or sign characters.
func isNumericCell(cell string) bool {
	for _, r := range cell {
		if unicode.IsDigit(r) {
			continue
		}
		switch r {
		case ' ', '.', ',', '+', '-', '%':
			continue
		}
		if unicode.Is(unicode.Sc, r) {
			continue
		}
		return false
	}
	return true
}

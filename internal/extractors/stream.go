package extractors

import (
	"context"
	"math"
	"os"
	"sort"

	unipdfextractor "github.com/unidoc/unipdf/v4/extractor"
	"github.com/unidoc/unipdf/v4/model"

	"github.com/tableingest/service/internal/core/domain"
)

// Stream infers column boundaries from whitespace alignment: TextMarks are
// grouped into rows by Y-position (within rowTol), then the X-start
// positions seen across rows are clustered (within edgeTol) into a shared
// set of column boundaries.
type Stream struct {
	edgeTol float64
	rowTol  float64
}

// NewStream builds the whitespace-alignment strategy. edgeTol and rowTol
// are in the same units as the PDF's text-space coordinates (points,
// scaled by the tuning knobs' conventional /10 factor so the defaults of
// 200/10 line up with a few points of slack).
func NewStream(edgeTol, rowTol int) *Stream {
	if edgeTol <= 0 {
		edgeTol = 200
	}
	if rowTol <= 0 {
		rowTol = 10
	}
	return &Stream{edgeTol: float64(edgeTol) / 10, rowTol: float64(rowTol) / 10}
}

func (s *Stream) Strategy() domain.Strategy { return domain.StrategyStream }

func (s *Stream) Extract(ctx context.Context, path string, pages []int) ([]domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, err
	}
	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, err
	}

	var tables []domain.Table
	for _, pageNum := range selectPages(pages, numPages) {
		page, err := pdfReader.GetPage(pageNum)
		if err != nil {
			continue
		}
		ex, err := unipdfextractor.New(page)
		if err != nil {
			continue
		}
		pageText, _, _, err := ex.ExtractPageText()
		if err != nil {
			continue
		}
		if t, ok := s.buildTable(pageText.Marks().Elements(), pageNum); ok {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

type markRow struct {
	y     float64
	marks []unipdfextractor.TextMark
}

func (s *Stream) buildTable(marks []unipdfextractor.TextMark, pageNum int) (domain.Table, bool) {
	var rows []markRow
	for _, m := range marks {
		if m.Meta || isBlank(m.Text) {
			continue
		}
		y := (m.BBox.Lly + m.BBox.Ury) / 2
		placed := false
		for i := range rows {
			if math.Abs(rows[i].y-y) <= s.rowTol {
				rows[i].marks = append(rows[i].marks, m)
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, markRow{y: y, marks: []unipdfextractor.TextMark{m}})
		}
	}
	if len(rows) < 2 {
		return domain.Table{}, false
	}
	// Top of page first.
	sort.Slice(rows, func(i, j int) bool { return rows[i].y > rows[j].y })
	for i := range rows {
		sort.Slice(rows[i].marks, func(a, b int) bool {
			return rows[i].marks[a].BBox.Llx < rows[i].marks[b].BBox.Llx
		})
	}

	columns := clusterColumns(rows, s.edgeTol)
	if len(columns) < 2 {
		return domain.Table{}, false
	}

	grid := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(columns))
		for _, m := range row.marks {
			col := nearestColumn(m.BBox.Llx, columns)
			if cells[col] != "" {
				cells[col] += " " + m.Text
			} else {
				cells[col] = m.Text
			}
		}
		grid[i] = cells
	}

	return domain.Table{
		Columns:  grid[0],
		Rows:     grid[1:],
		Page:     pageNum,
		Strategy: domain.StrategyStream,
	}, true
}

// clusterColumns collects every mark's left edge across all rows and
// merges edges within edgeTol of each other into a single column anchor.
func clusterColumns(rows []markRow, edgeTol float64) []float64 {
	var edges []float64
	for _, row := range rows {
		for _, m := range row.marks {
			edges = append(edges, m.BBox.Llx)
		}
	}
	sort.Float64s(edges)

	var columns []float64
	for _, e := range edges {
		if len(columns) == 0 || e-columns[len(columns)-1] > edgeTol {
			columns = append(columns, e)
		}
	}
	return columns
}

func nearestColumn(x float64, columns []float64) int {
	best := 0
	bestDist := math.Abs(x - columns[0])
	for i, c := range columns {
		if d := math.Abs(x - c); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' {
			return false
		}
	}
	return true
}

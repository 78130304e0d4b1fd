package extractors

import (
	"context"
	"math"
	"os"
	"sort"

	"github.com/unidoc/unipdf/v4/contentstream"
	"github.com/unidoc/unipdf/v4/core"
	unipdfextractor "github.com/unidoc/unipdf/v4/extractor"
	"github.com/unidoc/unipdf/v4/model"

	"github.com/tableingest/service/internal/core/domain"
)

// Lattice detects tables delimited by explicit ruled lines: it walks the
// page content stream for stroked rectangles and line segments, keeps the
// ones long enough to be grid lines (tuned by lineScale), and builds a
// grid from the distinct horizontal/vertical coordinates. TextMarks are
// then assigned to grid cells by bounding box.
type Lattice struct {
	lineScale int
}

// NewLattice builds the ruled-line strategy. lineScale is the minimum line
// length, as a fraction of the page's shorter dimension (length/lineScale),
// below which a stroked segment is too short to be a grid line.
func NewLattice(lineScale int) *Lattice {
	if lineScale <= 0 {
		lineScale = 40
	}
	return &Lattice{lineScale: lineScale}
}

func (l *Lattice) Strategy() domain.Strategy { return domain.StrategyLattice }

func (l *Lattice) Extract(ctx context.Context, path string, pages []int) ([]domain.Table, error) {
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
		hLines, vLines, err := rulingLines(page, l.lineScale)
		if err != nil || len(hLines) < 2 || len(vLines) < 2 {
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

		if t, ok := buildGridTable(pageText.Marks().Elements(), hLines, vLines, pageNum); ok {
			tables = append(tables, t)
		}
	}
	return tables, nil
}

// rulingLines walks the page's content stream and returns the distinct Y
// coordinates of long horizontal strokes and X coordinates of long
// vertical strokes.
func rulingLines(page *model.PdfPage, lineScale int) (hLines, vLines []float64, err error) {
	contents, err := page.GetAllContentStreams()
	if err != nil {
		return nil, nil, err
	}
	parser := contentstream.NewContentStreamParser(contents)
	ops, err := parser.Parse()
	if err != nil {
		return nil, nil, err
	}

	mbox, err := page.GetMediaBox()
	if err != nil || mbox == nil {
		mbox = &model.PdfRectangle{Urx: 612, Ury: 792}
	}
	minLen := math.Min(mbox.Urx-mbox.Llx, mbox.Ury-mbox.Lly) / float64(lineScale)

	var curX, curY float64
	hSet := map[float64]struct{}{}
	vSet := map[float64]struct{}{}

	for _, op := range *ops {
		switch op.Operand {
		case "m":
			if x, y, ok := xy(op); ok {
				curX, curY = x, y
			}
		case "l":
			if x, y, ok := xy(op); ok {
				if math.Abs(y-curY) < 0.5 && math.Abs(x-curX) >= minLen {
					hSet[round1(curY)] = struct{}{}
				}
				if math.Abs(x-curX) < 0.5 && math.Abs(y-curY) >= minLen {
					vSet[round1(curX)] = struct{}{}
				}
				curX, curY = x, y
			}
		case "re":
			if len(op.Params) == 4 {
				x, errX := core.GetNumberAsFloat(op.Params[0])
				y, errY := core.GetNumberAsFloat(op.Params[1])
				w, errW := core.GetNumberAsFloat(op.Params[2])
				h, errH := core.GetNumberAsFloat(op.Params[3])
				if errX == nil && errY == nil && errW == nil && errH == nil {
					if math.Abs(w) >= minLen {
						hSet[round1(y)] = struct{}{}
						hSet[round1(y+h)] = struct{}{}
					}
					if math.Abs(h) >= minLen {
						vSet[round1(x)] = struct{}{}
						vSet[round1(x+w)] = struct{}{}
					}
				}
			}
		}
	}

	hLines = sortedKeys(hSet)
	vLines = sortedKeys(vSet)
	return hLines, vLines, nil
}

func xy(op *contentstream.ContentStreamOperation) (x, y float64, ok bool) {
	if len(op.Params) != 2 {
		return 0, 0, false
	}
	x, errX := core.GetNumberAsFloat(op.Params[0])
	y, errY := core.GetNumberAsFloat(op.Params[1])
	return x, y, errX == nil && errY == nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}

func sortedKeys(set map[float64]struct{}) []float64 {
	out := make([]float64, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Float64s(out)
	return out
}

// buildGridTable assigns each TextMark to the grid cell its bounding box
// falls into and returns the resulting raw table.
func buildGridTable(marks []unipdfextractor.TextMark, hLines, vLines []float64, pageNum int) (domain.Table, bool) {
	numRows := len(hLines) - 1
	numCols := len(vLines) - 1
	if numRows < 1 || numCols < 1 {
		return domain.Table{}, false
	}

	cells := make([][]string, numRows)
	for i := range cells {
		cells[i] = make([]string, numCols)
	}

	for _, m := range marks {
		if m.Meta {
			continue
		}
		cx := (m.BBox.Llx + m.BBox.Urx) / 2
		cy := (m.BBox.Lly + m.BBox.Ury) / 2
		col := bucketOf(cx, vLines)
		row := bucketOf(cy, hLines)
		if row < 0 || col < 0 {
			continue
		}
		// Rows run top-to-bottom on the page; Y increases upward, so the
		// topmost ruling band is the last bucket.
		row = numRows - 1 - row
		if cells[row][col] != "" {
			cells[row][col] += m.Text
		} else {
			cells[row][col] = m.Text
		}
	}

	return domain.Table{
		Columns:  cells[0],
		Rows:     cells[1:],
		Page:     pageNum,
		Strategy: domain.StrategyLattice,
	}, true
}

// bucketOf returns the index i such that boundaries[i] <= v < boundaries[i+1].
func bucketOf(v float64, boundaries []float64) int {
	for i := 0; i < len(boundaries)-1; i++ {
		if v >= boundaries[i] && v < boundaries[i+1] {
			return i
		}
	}
	return -1
}

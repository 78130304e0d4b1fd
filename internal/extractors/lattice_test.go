package extractors

import (
	"testing"

	unipdfextractor "github.com/unidoc/unipdf/v4/extractor"
	"github.com/unidoc/unipdf/v4/model"

	"github.com/tableingest/service/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mark(text string, llx, lly, urx, ury float64) unipdfextractor.TextMark {
	return unipdfextractor.TextMark{
		Text: text,
		BBox: model.PdfRectangle{Llx: llx, Lly: lly, Urx: urx, Ury: ury},
	}
}

// A 2x2 grid: header row "Country"/"Price" on top, one data row below.
// hLines/vLines are boundaries in ascending page-space order: Y increases
// upward, so the header band is [10,20) and the data band is [0,10).
func TestBuildGridTable_AssignsMarksToCells(t *testing.T) {
	hLines := []float64{0, 10, 20}
	vLines := []float64{0, 50, 100}

	marks := []unipdfextractor.TextMark{
		mark("Country", 0, 10, 50, 20),
		mark("Price", 50, 10, 100, 20),
		mark("Argentina", 0, 0, 50, 10),
		mark("0,27", 50, 0, 100, 10),
	}

	tbl, ok := buildGridTable(marks, hLines, vLines, 3)
	require.True(t, ok)
	assert.Equal(t, domain.StrategyLattice, tbl.Strategy)
	assert.Equal(t, 3, tbl.Page)
	assert.Equal(t, []string{"Country", "Price"}, tbl.Columns)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, []string{"Argentina", "0,27"}, tbl.Rows[0])
}

func TestBuildGridTable_ConcatenatesMarksInSameCell(t *testing.T) {
	hLines := []float64{0, 10}
	vLines := []float64{0, 100}

	marks := []unipdfextractor.TextMark{
		mark("Hello", 0, 0, 50, 10),
		mark("World", 0, 0, 50, 10),
	}

	tbl, ok := buildGridTable(marks, hLines, vLines, 1)
	require.True(t, ok)
	require.Len(t, tbl.Columns, 1)
	assert.Equal(t, "HelloWorld", tbl.Columns[0])
}

func TestBuildGridTable_SkipsMetaMarks(t *testing.T) {
	hLines := []float64{0, 10}
	vLines := []float64{0, 100}

	marks := []unipdfextractor.TextMark{
		mark("Real", 0, 0, 50, 10),
		{Text: " ", Meta: true, BBox: model.PdfRectangle{Llx: 0, Lly: 0, Urx: 50, Ury: 10}},
	}

	tbl, ok := buildGridTable(marks, hLines, vLines, 1)
	require.True(t, ok)
	assert.Equal(t, "Real", tbl.Columns[0])
}

func TestBuildGridTable_MarkOutsideGridIsDropped(t *testing.T) {
	hLines := []float64{0, 10}
	vLines := []float64{0, 100}

	marks := []unipdfextractor.TextMark{
		mark("InGrid", 0, 0, 50, 10),
		mark("Stray", 500, 500, 550, 510),
	}

	tbl, ok := buildGridTable(marks, hLines, vLines, 1)
	require.True(t, ok)
	assert.Equal(t, "InGrid", tbl.Columns[0])
}

func TestBuildGridTable_TooFewLinesFails(t *testing.T) {
	_, ok := buildGridTable(nil, []float64{0}, []float64{0, 100}, 1)
	assert.False(t, ok)

	_, ok = buildGridTable(nil, []float64{0, 10}, []float64{0}, 1)
	assert.False(t, ok)
}

func TestBucketOf(t *testing.T) {
	boundaries := []float64{0, 10, 20, 30}
	assert.Equal(t, 0, bucketOf(5, boundaries))
	assert.Equal(t, 1, bucketOf(10, boundaries))
	assert.Equal(t, 2, bucketOf(29.9, boundaries))
	assert.Equal(t, -1, bucketOf(30, boundaries))
	assert.Equal(t, -1, bucketOf(-1, boundaries))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 1.2, round1(1.23))
	assert.Equal(t, 1.3, round1(1.26))
}

func TestSortedKeys(t *testing.T) {
	set := map[float64]struct{}{3: {}, 1: {}, 2: {}}
	assert.Equal(t, []float64{1, 2, 3}, sortedKeys(set))
}

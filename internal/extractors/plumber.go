package extractors

import (
	"context"
	"os"

	unipdfextractor "github.com/unidoc/unipdf/v4/extractor"
	"github.com/unidoc/unipdf/v4/model"

	"github.com/tableingest/service/internal/core/domain"
)

// Plumber is the text-box grouping fallback, useful when neither ruled
// lines nor clean whitespace alignment exist. It delegates the actual
// paragraph/box clustering to unipdf's own table detection
// (PageText.Tables), which groups text paragraphs into a grid purely from
// their bounding boxes — no ruling lines, no alignment assumption.
type Plumber struct{}

// NewPlumber builds the text-box-grouping strategy.
func NewPlumber() *Plumber {
	return &Plumber{}
}

func (p *Plumber) Strategy() domain.Strategy { return domain.StrategyPlumber }

func (p *Plumber) Extract(ctx context.Context, path string, pages []int) ([]domain.Table, error) {
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
		for _, tt := range pageText.Tables() {
			if table, ok := convertTextTable(tt, pageNum); ok {
				tables = append(tables, table)
			}
		}
	}
	return tables, nil
}

func convertTextTable(tt unipdfextractor.TextTable, pageNum int) (domain.Table, bool) {
	if len(tt.Cells) == 0 {
		return domain.Table{}, false
	}
	rows := make([][]string, len(tt.Cells))
	for i, row := range tt.Cells {
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = c.Text
		}
		rows[i] = cells
	}
	if len(rows) < 2 {
		return domain.Table{}, false
	}
	return domain.Table{
		Columns:  rows[0],
		Rows:     rows[1:],
		Page:     pageNum,
		Strategy: domain.StrategyPlumber,
	}, true
}

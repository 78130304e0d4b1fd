// Package extractors implements the three table-detection strategies
// (lattice, stream, plumber) plus the plain-text readers the fallback path
// and the strategies themselves build on.
package extractors

import (
	"context"
	"os"

	"github.com/unidoc/unipdf/v4/extractor"
	"github.com/unidoc/unipdf/v4/model"
)

// UnipdfReader is the primary PageTextReader, backed by unipdf's text
// extraction and positional TextMark data.
type UnipdfReader struct{}

// NewUnipdfReader builds the primary page-text reader.
func NewUnipdfReader() *UnipdfReader {
	return &UnipdfReader{}
}

// PageCount opens path and reports its page count.
func (r *UnipdfReader) PageCount(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return 0, err
	}
	return pdfReader.GetNumPages()
}

// PageTexts extracts the plain text of each selected page.
func (r *UnipdfReader) PageTexts(ctx context.Context, path string, pages []int) (map[int]string, error) {
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

	selected := selectPages(pages, numPages)
	out := make(map[int]string, len(selected))
	for _, pageNum := range selected {
		page, err := pdfReader.GetPage(pageNum)
		if err != nil {
			continue
		}
		ex, err := extractor.New(page)
		if err != nil {
			continue
		}
		text, err := ex.ExtractText()
		if err != nil {
			continue
		}
		out[pageNum] = text
	}
	return out, nil
}

// pageMarks returns the positional TextMarks for one page. The stream and
// lattice strategies do not call it; they read marks from their own
// already-open reader.
func pageMarks(path string, pageNum int) ([]extractor.TextMark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, err
	}
	page, err := pdfReader.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	ex, err := extractor.New(page)
	if err != nil {
		return nil, err
	}
	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		return nil, err
	}
	return pageText.Marks().Elements(), nil
}

// pageTables returns unipdf's own paragraph-clustered tables for a page.
// The plumber strategy does not call it; it reads tables from its own
// already-open reader.
func pageTables(path string, pageNum int) ([]extractor.TextTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, err
	}
	page, err := pdfReader.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	ex, err := extractor.New(page)
	if err != nil {
		return nil, err
	}
	pageText, _, _, err := ex.ExtractPageText()
	if err != nil {
		return nil, err
	}
	return pageText.Tables(), nil
}

// selectPages resolves a page selector (nil/empty means "all") against the
// document's actual page count, ignoring selected pages that don't exist.
func selectPages(pages []int, numPages int) []int {
	if len(pages) == 0 {
		out := make([]int, numPages)
		for i := range out {
			out[i] = i + 1
		}
		return out
	}
	var out []int
	for _, p := range pages {
		if p >= 1 && p <= numPages {
			out = append(out, p)
		}
	}
	return out
}


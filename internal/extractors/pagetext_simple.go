package extractors

import (
	"context"

	"github.com/ledongthuc/pdf"
)

// SimpleReader is a secondary, dependency-light PageTextReader used when
// the primary unipdf-backed reader yields no usable text for a page —
// keeps the fallback path resilient to malformed or unusual PDFs.
type SimpleReader struct{}

// NewSimpleReader builds the secondary page-text reader.
func NewSimpleReader() *SimpleReader {
	return &SimpleReader{}
}

// PageCount opens path and reports its page count.
func (r *SimpleReader) PageCount(ctx context.Context, path string) (int, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return doc.NumPage(), nil
}

// PageTexts extracts the plain text of each selected page using the
// lightweight reader.
func (r *SimpleReader) PageTexts(ctx context.Context, path string, pages []int) (map[int]string, error) {
	f, doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := doc.NumPage()
	selected := selectPages(pages, numPages)

	out := make(map[int]string, len(selected))
	for _, pageNum := range selected {
		page := doc.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		out[pageNum] = text
	}
	return out, nil
}

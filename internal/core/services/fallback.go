package services

import (
	"context"
	"sort"
	"strings"

	"github.com/tableingest/service/internal/core/domain"
	"github.com/tableingest/service/internal/core/ports/driven"
)

const noExtractableTextMessage = "No text could be extracted from this document; it likely requires OCR."

// Fallback produces the per-page text document used when the extractor
// orchestrator yields no surviving tables, and the best-effort plain-text
// path for non-PDF inputs.
type Fallback struct {
	primary   driven.PageTextReader
	secondary driven.PageTextReader
	maxPages  int
}

// NewFallback builds a Fallback. secondary is consulted for any selected
// page the primary reader fails to produce text for; with an empty
// selection it is not consulted.
func NewFallback(primary, secondary driven.PageTextReader, maxPages int) *Fallback {
	if maxPages <= 0 {
		maxPages = 200
	}
	return &Fallback{primary: primary, secondary: secondary, maxPages: maxPages}
}

// PDFText concatenates per-page extracted text (up to maxPages) into one
// document tagged fallback_text. If no page yields text, returns an
// explanatory document instead of an empty result.
func (fb *Fallback) PDFText(ctx context.Context, path, source string, selected []int) domain.Document {
	pages, err := fb.collectPages(ctx, path, selected)
	if err != nil || len(pages) == 0 {
		return explanatoryDocument(source, domain.FormatFallbackText)
	}

	var b strings.Builder
	for i, p := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(p.text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return explanatoryDocument(source, domain.FormatFallbackText)
	}

	return domain.Document{
		PageContent: text,
		Metadata: domain.Metadata{
			Source:    source,
			Page:      pages[0].page,
			Extractor: "fallback_text",
			Format:    domain.FormatFallbackText,
		},
	}
}

type pageEntry struct {
	page int
	text string
}

func (fb *Fallback) collectPages(ctx context.Context, path string, selected []int) ([]pageEntry, error) {
	texts, err := fb.primary.PageTexts(ctx, path, selected)
	if err != nil {
		texts = map[int]string{}
	}

	missing := missingPages(texts, selected)
	if len(missing) > 0 && fb.secondary != nil {
		secondaryTexts, err := fb.secondary.PageTexts(ctx, path, missing)
		if err == nil {
			for page, text := range secondaryTexts {
				if strings.TrimSpace(text) != "" {
					texts[page] = text
				}
			}
		}
	}

	var pages []int
	for page, text := range texts {
		if strings.TrimSpace(text) != "" {
			pages = append(pages, page)
		}
	}
	sort.Ints(pages)
	if len(pages) > fb.maxPages {
		pages = pages[:fb.maxPages]
	}

	out := make([]pageEntry, 0, len(pages))
	for _, p := range pages {
		out = append(out, pageEntry{page: p, text: texts[p]})
	}
	return out, nil
}

// missingPages reports which of the selected pages have no text yet, so
// the secondary reader can be tried just for those. An empty selection
// yields no pages.
func missingPages(texts map[int]string, selected []int) []int {
	var out []int
	for _, page := range selected {
		if strings.TrimSpace(texts[page]) == "" {
			out = append(out, page)
		}
	}
	return out
}

// BasicText decodes content best-effort as UTF-8 for non-PDF inputs.
// Empty or undecodable input yields an explanatory document.
func BasicText(content []byte, source string) domain.Document {
	text := strings.TrimSpace(sanitizeUTF8(string(content)))
	if text == "" {
		return explanatoryDocument(source, domain.FormatBasicText)
	}
	return domain.Document{
		PageContent: text,
		Metadata: domain.Metadata{
			Source: source,
			Page:   1,
			Format: domain.FormatBasicText,
		},
	}
}

// sanitizeUTF8 drops invalid UTF-8 byte sequences rather than failing.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

func explanatoryDocument(source string, format domain.Format) domain.Document {
	return domain.Document{
		PageContent: noExtractableTextMessage,
		Metadata: domain.Metadata{
			Source: source,
			Page:   1,
			Format: format,
		},
	}
}

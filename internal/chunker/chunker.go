// Package chunker splits long documents into overlapping, fixed-size
// windows by raw character count. Unlike a sentence- or paragraph-aware
// splitter, it never looks for a break point: the downstream indexer owns
// tokenization, and this layer must be deterministic.
package chunker

import (
	"github.com/tableingest/service/internal/core/domain"
)

// Config controls the chunk window and overlap, in raw characters.
type Config struct {
	MaxChars     int
	OverlapChars int
}

// Chunk splits doc into one or more documents if its text exceeds
// cfg.MaxChars. Documents under the budget are returned unchanged (no
// chunk metadata). Split documents carry 1-based Chunk/ChunksTotal
// metadata.
func Chunk(doc domain.Document, cfg Config) []domain.Document {
	text := []rune(doc.PageContent)
	if len(text) <= cfg.MaxChars {
		return []domain.Document{doc}
	}

	stride := cfg.MaxChars - cfg.OverlapChars
	if stride <= 0 {
		stride = cfg.MaxChars
	}

	var windows []string
	for start := 0; start < len(text); start += stride {
		end := start + cfg.MaxChars
		if end > len(text) {
			end = len(text)
		}
		windows = append(windows, string(text[start:end]))
		if end >= len(text) {
			break
		}
	}

	out := make([]domain.Document, len(windows))
	for i, w := range windows {
		meta := doc.Metadata
		meta.Chunk = i + 1
		meta.ChunksTotal = len(windows)
		out[i] = domain.Document{PageContent: w, Metadata: meta}
	}
	return out
}

// ChunkAll applies Chunk to every document in docs, in order.
func ChunkAll(docs []domain.Document, cfg Config) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, Chunk(d, cfg)...)
	}
	return out
}

package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tableingest/service/internal/core/domain"
)

func TestChunk_UnderBudgetPassesThrough(t *testing.T) {
	doc := domain.Document{PageContent: "short text"}
	out := Chunk(doc, Config{MaxChars: 100, OverlapChars: 10})

	require.Len(t, out, 1)
	assert.Equal(t, "short text", out[0].PageContent)
	assert.Zero(t, out[0].Metadata.Chunk)
	assert.Zero(t, out[0].Metadata.ChunksTotal)
}

func TestChunk_SplitsWithOverlap(t *testing.T) {
	text := strings.Repeat("a", 25)
	doc := domain.Document{PageContent: text}
	out := Chunk(doc, Config{MaxChars: 10, OverlapChars: 2})

	require.Len(t, out, 3)
	for i, d := range out {
		assert.Equal(t, i+1, d.Metadata.Chunk)
		assert.Equal(t, 3, d.Metadata.ChunksTotal)
	}
	assert.LessOrEqual(t, len(out[len(out)-1].PageContent), 10)
}

func TestChunk_ReassemblesOriginalWithOverlapRemoved(t *testing.T) {
	text := "0123456789abcdefghij"
	doc := domain.Document{PageContent: text}
	cfg := Config{MaxChars: 8, OverlapChars: 3}
	out := Chunk(doc, cfg)

	var rebuilt strings.Builder
	stride := cfg.MaxChars - cfg.OverlapChars
	for i, d := range out {
		if i == 0 {
			rebuilt.WriteString(d.PageContent)
			continue
		}
		rebuilt.WriteString(d.PageContent[min(cfg.OverlapChars, len(d.PageContent)):])
		_ = stride
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunk_ZeroOverlapStillCoversWholeText(t *testing.T) {
	text := strings.Repeat("b", 21)
	doc := domain.Document{PageContent: text}
	out := Chunk(doc, Config{MaxChars: 7, OverlapChars: 0})

	require.Len(t, out, 3)
	var rebuilt strings.Builder
	for _, d := range out {
		rebuilt.WriteString(d.PageContent)
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunkAll_AppliesToEveryDocument(t *testing.T) {
	docs := []domain.Document{
		{PageContent: "short"},
		{PageContent: strings.Repeat("x", 15)},
	}
	out := ChunkAll(docs, Config{MaxChars: 10, OverlapChars: 2})

	assert.Len(t, out, 1+2)
}

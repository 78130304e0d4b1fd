package domain

// Format identifies how a Document's text was produced.
type Format string

const (
	FormatTableMarkdown Format = "table_md"
	FormatRowKV         Format = "row_kv"
	FormatFallbackText  Format = "fallback_text"
	FormatBasicText     Format = "basic_text"
)

// Metadata carries the provenance fields attached to every emitted Document.
// ChunksTotal and Chunk are only set once a Document has been split by the
// chunker; zero value means "not chunked".
type Metadata struct {
	Source      string `json:"source"`
	Page        int    `json:"page"`
	Extractor   string `json:"extractor,omitempty"`
	TableID     string `json:"table_id,omitempty"`
	Format      Format `json:"format"`
	Chunk       int    `json:"chunk,omitempty"`
	ChunksTotal int    `json:"chunks_total,omitempty"`
}

// Document is the final unit handed to the caller: a block of text plus
// the metadata describing where it came from.
type Document struct {
	PageContent string   `json:"page_content"`
	Metadata    Metadata `json:"metadata"`
}

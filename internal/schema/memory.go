package schema

// MemoryBankVector is the only bank type stackpilot registers.
const MemoryBankVector = "vector"

// MemoryBankParams configures a vector bank on registration.
type MemoryBankParams struct {
	MemoryBankType      string `json:"memory_bank_type"`
	EmbeddingModel      string `json:"embedding_model"`
	ChunkSizeInTokens   int    `json:"chunk_size_in_tokens"`
	OverlapSizeInTokens int    `json:"overlap_size_in_tokens,omitempty"`
}

// MemoryBank is a registered server-side vector collection.
type MemoryBank struct {
	MemoryBankID string           `json:"memory_bank_id"`
	ProviderID   string           `json:"provider_id,omitempty"`
	Params       MemoryBankParams `json:"params"`
}

// Document is inserted into a memory bank. Content is a URL, a data URL,
// or inline text.
type Document struct {
	DocumentID string         `json:"document_id"`
	Content    string         `json:"content"`
	MimeType   string         `json:"mime_type,omitempty"`
	Metadata   map[string]any `json:"metadata"`
}

// InsertDocumentsRequest is the body of a memory insert request.
type InsertDocumentsRequest struct {
	BankID    string     `json:"bank_id"`
	Documents []Document `json:"documents"`
}

// QueryDocumentsRequest is the body of a memory query request.
type QueryDocumentsRequest struct {
	BankID string         `json:"bank_id"`
	Query  string         `json:"query"`
	Params map[string]any `json:"params,omitempty"`
}

// Chunk is one retrieved piece of a document.
type Chunk struct {
	Content    string `json:"content"`
	TokenCount int    `json:"token_count"`
	DocumentID string `json:"document_id"`
}

// QueryDocumentsResponse pairs chunks with their scores by index.
type QueryDocumentsResponse struct {
	Chunks []Chunk   `json:"chunks"`
	Scores []float64 `json:"scores"`
}

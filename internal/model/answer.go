package model

import "time"

// Answer is the query engine's response to a question about a document.
// Cached is true when the answer was served from the Redis cache.
type Answer struct {
	DocumentID       string    `json:"document_id"`
	Question         string    `json:"question"`
	Answer           string    `json:"answer"`
	Model            string    `json:"model"`
	Cached           bool      `json:"cached"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	CreatedAt        time.Time `json:"created_at"`
}

// HoldingChange describes one ISIN's difference between two statements.
type HoldingChange struct {
	ISIN     string  `json:"isin"`
	Name     string  `json:"name"`
	OldValue float64 `json:"old_value"`
	NewValue float64 `json:"new_value"`
	DeltaPct float64 `json:"delta_pct"`
}

// Comparison is the structured diff between two documents' holdings,
// optionally accompanied by an LLM-written narrative.
type Comparison struct {
	DocumentA string          `json:"document_a"`
	DocumentB string          `json:"document_b"`
	Added     []HoldingChange `json:"added"`
	Removed   []HoldingChange `json:"removed"`
	Changed   []HoldingChange `json:"changed"`
	Summary   string          `json:"summary,omitempty"`
}

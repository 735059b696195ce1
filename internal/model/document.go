package model

import "time"

// DocumentStatus tracks a statement through its processing lifecycle.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "uploaded"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusFailed     DocumentStatus = "failed"
)

// Valid reports whether s is one of the known statuses.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusUploaded, DocumentStatusProcessing, DocumentStatusProcessed, DocumentStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo enforces the uploaded → processing → processed|failed lifecycle.
// Reprocessing a processed or failed document is allowed.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	switch s {
	case DocumentStatusUploaded:
		return next == DocumentStatusProcessing
	case DocumentStatusProcessing:
		return next == DocumentStatusProcessed || next == DocumentStatusFailed
	case DocumentStatusProcessed, DocumentStatusFailed:
		return next == DocumentStatusProcessing
	}
	return false
}

// Document represents an uploaded financial statement.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string         `json:"id"`
	Filename    string         `json:"filename"`
	StoragePath string         `json:"storage_path"`
	Size        int64          `json:"size"`
	ContentType string         `json:"content_type"`
	Status      DocumentStatus `json:"status"`
	PageCount   int            `json:"page_count"`
	Error       string         `json:"error,omitempty"`
	UploadedAt  time.Time      `json:"uploaded_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

package model

import "time"

// BatchStatus tracks a batch job through its lifecycle.
type BatchStatus string

const (
	BatchStatusPending   BatchStatus = "pending"
	BatchStatusRunning   BatchStatus = "running"
	BatchStatusCompleted BatchStatus = "completed"
	BatchStatusFailed    BatchStatus = "failed"
	BatchStatusCancelled BatchStatus = "cancelled"
)

// Terminal reports whether the job can make no further progress.
func (s BatchStatus) Terminal() bool {
	switch s {
	case BatchStatusCompleted, BatchStatusFailed, BatchStatusCancelled:
		return true
	}
	return false
}

// BatchJobType names the work a batch job performs over its items.
type BatchJobType string

const (
	// BatchJobReprocess re-runs extraction for each document in the job.
	BatchJobReprocess BatchJobType = "reprocess_documents"
)

// BatchJob is a persisted batch run over a set of documents.
// Progress is a whole percentage: round(100*(Processed+Failed)/Total).
type BatchJob struct {
	ID         string       `json:"id"`
	Type       BatchJobType `json:"type"`
	Status     BatchStatus  `json:"status"`
	Total      int          `json:"total_items"`
	Processed  int          `json:"processed_items"`
	Failed     int          `json:"failed_items"`
	Progress   int          `json:"progress"`
	Error      string       `json:"error,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
	StartedAt  *time.Time   `json:"started_at,omitempty"`
	FinishedAt *time.Time   `json:"finished_at,omitempty"`
}

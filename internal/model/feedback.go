package model

import "time"

// Feedback is a user rating attached to a processed document.
// Rating is constrained to 1..5 by the service layer and a DB check.
type Feedback struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Package notify sends email notifications about document processing.
//
// No repo in our stack carries a mail library; delivery is a single
// plain-auth SMTP send, so net/smtp covers it. The substance is the
// rendered template, which is tested independently of delivery.
package notify

import "context"

// ProcessingResult carries the fields rendered into the completion email.
type ProcessingResult struct {
	DocumentID string
	Filename   string
	Holdings   int
	TotalValue float64
	Currency   string
}

// Notifier delivers processing notifications. Implementations must be safe
// for concurrent use.
type Notifier interface {
	ProcessingComplete(ctx context.Context, res ProcessingResult) error
}

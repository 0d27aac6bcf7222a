package catalog

import "github.com/revendamais/plan-quoter/pkg/money"

// Plan is a base subscription plan. Exactly one plan is part of every selection.
type Plan struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Vehicles int    `json:"vehicles"`
	Users    int    `json:"users,omitempty"`
	Storage  string `json:"storage,omitempty"`

	// MonthlyPrice is the recurring rate when paying month to month
	MonthlyPrice money.Money `json:"monthlyPrice"`

	// AnnualPrice is the discounted monthly rate billed when paying for 12 months
	AnnualPrice money.Money `json:"annualPrice"`
}

// Service is a recurring add-on. AnnualPrice is nil when the service has no annual discount.
type Service struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	MonthlyPrice money.Money  `json:"monthlyPrice"`
	AnnualPrice  *money.Money `json:"annualPrice,omitempty"`
}

// AnnualRate returns the annual rate, falling back to the monthly rate.
func (s Service) AnnualRate() money.Money {
	if s.AnnualPrice != nil {
		return *s.AnnualPrice
	}
	return s.MonthlyPrice
}

// HasAnnualDiscount reports whether the annual rate differs from the monthly rate.
func (s Service) HasAnnualDiscount() bool {
	return !s.AnnualRate().Equal(s.MonthlyPrice)
}

// WebsiteOption is a website package with a one-time setup price.
type WebsiteOption struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price money.Money `json:"price"`
}

// CrmOption is a CRM tier with a monthly rate and an optional one-time setup fee.
type CrmOption struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	MonthlyPrice money.Money `json:"monthlyPrice"`
	SetupFee     money.Money `json:"setupFee"`
}

// AdditionalProduct is a metered extra billed per unit per period.
type AdditionalProduct struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	UnitPrice money.Money `json:"unitPrice"`
	UnitLabel string      `json:"unitLabel,omitempty"`
}

// Spec is the raw content used to build a Catalog. Slice order is the
// declared order used for enumeration and default selection.
type Spec struct {
	Name     string
	Version  string
	Currency string
	Locale   string

	AdhesionFee money.Money

	Plans      []Plan
	Services   []Service
	Websites   []WebsiteOption
	CrmOptions []CrmOption
	Products   []AdditionalProduct
}

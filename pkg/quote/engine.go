// Package quote computes price quotes from a catalog and a selection.
//
// Compute is a pure function: it reads an immutable catalog and a selection
// snapshot, and returns a fresh Quote with no aliasing into either input.
// Monthly recurring charges are billed for one or three months; the
// twelve-month view uses each item's annual rate. Setup fees apply once in
// every view, while the adhesion fee is charged on the one-month view only.
package quote

import (
	"errors"
	"fmt"

	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
)

// ErrNegativeQuantity is returned when a selection carries a quantity below zero.
var ErrNegativeQuantity = errors.New("negative product quantity")

// Compute builds the quote for sel. It fails as a whole if sel references an
// identifier that is not in cat, or carries a negative quantity.
func Compute(cat *catalog.Catalog, sel Selection) (*Quote, error) {
	plan, err := cat.Plan(sel.PlanID)
	if err != nil {
		return nil, fmt.Errorf("resolve plan: %w", err)
	}

	q := &Quote{Plan: plan}
	monthly := plan.MonthlyPrice
	annual := plan.AnnualPrice
	q.Lines = append(q.Lines, Line{
		Family:   catalog.FamilyPlan,
		ID:       plan.ID,
		Name:     plan.Name,
		Quantity: 1,
		Monthly:  plan.MonthlyPrice,
		Annual:   plan.AnnualPrice,
	})

	// Reject unknown ids before pricing so lines can follow catalog order.
	for _, id := range sel.ServiceIDs() {
		if _, err := cat.Service(id); err != nil {
			return nil, fmt.Errorf("resolve service: %w", err)
		}
	}
	for _, svc := range cat.Services() {
		if !sel.HasService(svc.ID) {
			continue
		}
		monthly = monthly.Add(svc.MonthlyPrice)
		annual = annual.Add(svc.AnnualRate())
		q.Lines = append(q.Lines, Line{
			Family:   catalog.FamilyService,
			ID:       svc.ID,
			Name:     svc.Name,
			Quantity: 1,
			Monthly:  svc.MonthlyPrice,
			Annual:   svc.AnnualRate(),
		})
	}

	if sel.CrmID != "" {
		crm, err := cat.Crm(sel.CrmID)
		if err != nil {
			return nil, fmt.Errorf("resolve crm: %w", err)
		}
		// CRM carries no annual discount.
		monthly = monthly.Add(crm.MonthlyPrice)
		annual = annual.Add(crm.MonthlyPrice)
		q.CrmSetup = crm.SetupFee
		q.Lines = append(q.Lines, Line{
			Family:   catalog.FamilyCrm,
			ID:       crm.ID,
			Name:     crm.Name,
			Quantity: 1,
			Monthly:  crm.MonthlyPrice,
			Annual:   crm.MonthlyPrice,
			OneTime:  crm.SetupFee,
		})
	}

	for id, n := range sel.Quantities {
		if _, err := cat.Product(id); err != nil {
			return nil, fmt.Errorf("resolve product: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("product %q quantity %d: %w", id, n, ErrNegativeQuantity)
		}
	}
	for _, prod := range cat.Products() {
		n := sel.Quantities[prod.ID]
		if n == 0 {
			continue
		}
		amount := prod.UnitPrice.Mul(int64(n))
		monthly = monthly.Add(amount)
		annual = annual.Add(amount)
		q.Lines = append(q.Lines, Line{
			Family:   catalog.FamilyProduct,
			ID:       prod.ID,
			Name:     prod.Name,
			Quantity: n,
			Monthly:  amount,
			Annual:   amount,
		})
	}

	if sel.WebsiteID != "" {
		site, err := cat.Website(sel.WebsiteID)
		if err != nil {
			return nil, fmt.Errorf("resolve website: %w", err)
		}
		line := Line{
			Family:   catalog.FamilyWebsite,
			ID:       site.ID,
			Name:     site.Name,
			Quantity: 1,
		}
		if !sel.WebsiteWaived {
			q.WebsiteSetup = site.Price
			line.OneTime = site.Price
		}
		q.Lines = append(q.Lines, line)
	}

	q.MonthlyRecurring = monthly
	q.AnnualRecurring = annual
	q.SetupExtra = q.WebsiteSetup.Add(q.CrmSetup)

	q.OneMonth = term(OneMonth, 1, cat.AdhesionFee(), q.SetupExtra, monthly)
	q.ThreeMonths = term(ThreeMonths, 3, money.Zero, q.SetupExtra, monthly)
	q.ThreeMonths.AdhesionWaived = true
	q.TwelveMonths = term(TwelveMonths, 12, money.Zero, q.SetupExtra, annual)
	q.TwelveMonths.AdhesionWaived = true

	return q, nil
}

// MustCompute is like Compute but panics on an invalid selection.
func MustCompute(cat *catalog.Catalog, sel Selection) *Quote {
	q, err := Compute(cat, sel)
	if err != nil {
		panic(err)
	}
	return q
}

func term(months, installments int, adhesion, setup, rate money.Money) TermView {
	recurring := rate.Mul(int64(months))
	oneTime := adhesion.Add(setup)
	return TermView{
		Months:        months,
		Installments:  installments,
		Adhesion:      adhesion,
		Setup:         setup,
		RecurringRate: rate,
		Recurring:     recurring,
		OneTime:       oneTime,
		Total:         oneTime.Add(recurring),
	}
}

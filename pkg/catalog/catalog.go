// Package catalog holds the immutable price list the quote engine reads from.
//
// Each item family is stored twice: as a slice in declared order (for
// enumeration and default selection) and as a map keyed by identifier (for
// lookup). Looking up an identifier that is not in the catalog is a caller
// contract violation and is reported as ErrUnknownID, or panics with the Must
// variants.
package catalog

import (
	"errors"
	"fmt"

	"github.com/revendamais/plan-quoter/pkg/money"
)

var (
	// ErrUnknownID is returned when an identifier is not present in its family.
	ErrUnknownID = errors.New("unknown catalog identifier")

	// ErrDuplicateID is returned by New when an identifier repeats within a family.
	ErrDuplicateID = errors.New("duplicate catalog identifier")
)

// Family names a kind of catalog item.
type Family string

const (
	FamilyPlan    Family = "plan"
	FamilyService Family = "service"
	FamilyWebsite Family = "website"
	FamilyCrm     Family = "crm"
	FamilyProduct Family = "product"
)

// LookupError describes a failed lookup. It unwraps to ErrUnknownID.
type LookupError struct {
	Family Family
	ID     string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Family, e.ID, ErrUnknownID.Error())
}

func (e *LookupError) Unwrap() error { return ErrUnknownID }

// Catalog is an immutable price list. It is safe for concurrent use.
type Catalog struct {
	name     string
	version  string
	currency string
	locale   string

	adhesionFee money.Money

	plans      []Plan
	services   []Service
	websites   []WebsiteOption
	crmOptions []CrmOption
	products   []AdditionalProduct

	planByID    map[string]Plan
	serviceByID map[string]Service
	websiteByID map[string]WebsiteOption
	crmByID     map[string]CrmOption
	productByID map[string]AdditionalProduct
}

// New builds a Catalog from a Spec. The spec's slices are copied.
func New(spec Spec) (*Catalog, error) {
	if len(spec.Plans) == 0 {
		return nil, fmt.Errorf("catalog must declare at least one plan")
	}
	if spec.AdhesionFee.IsNegative() {
		return nil, fmt.Errorf("adhesion fee must not be negative")
	}

	c := &Catalog{
		name:        spec.Name,
		version:     spec.Version,
		currency:    spec.Currency,
		locale:      spec.Locale,
		adhesionFee: spec.AdhesionFee,
		plans:       append([]Plan(nil), spec.Plans...),
		services:    append([]Service(nil), spec.Services...),
		websites:    append([]WebsiteOption(nil), spec.Websites...),
		crmOptions:  append([]CrmOption(nil), spec.CrmOptions...),
		products:    append([]AdditionalProduct(nil), spec.Products...),
	}
	if c.currency == "" {
		c.currency = money.DefaultCurrency
	}
	if c.locale == "" {
		c.locale = money.DefaultLocale
	}

	var err error
	if c.planByID, err = index(FamilyPlan, c.plans, func(p Plan) (string, []money.Money) {
		return p.ID, []money.Money{p.MonthlyPrice, p.AnnualPrice}
	}); err != nil {
		return nil, err
	}
	if c.serviceByID, err = index(FamilyService, c.services, func(s Service) (string, []money.Money) {
		return s.ID, []money.Money{s.MonthlyPrice, s.AnnualRate()}
	}); err != nil {
		return nil, err
	}
	if c.websiteByID, err = index(FamilyWebsite, c.websites, func(w WebsiteOption) (string, []money.Money) {
		return w.ID, []money.Money{w.Price}
	}); err != nil {
		return nil, err
	}
	if c.crmByID, err = index(FamilyCrm, c.crmOptions, func(o CrmOption) (string, []money.Money) {
		return o.ID, []money.Money{o.MonthlyPrice, o.SetupFee}
	}); err != nil {
		return nil, err
	}
	if c.productByID, err = index(FamilyProduct, c.products, func(p AdditionalProduct) (string, []money.Money) {
		return p.ID, []money.Money{p.UnitPrice}
	}); err != nil {
		return nil, err
	}

	return c, nil
}

// index builds the lookup map for one family, rejecting empty or duplicate
// identifiers and negative prices.
func index[T any](family Family, items []T, key func(T) (string, []money.Money)) (map[string]T, error) {
	m := make(map[string]T, len(items))
	for i, item := range items {
		id, prices := key(item)
		if id == "" {
			return nil, fmt.Errorf("%s at index %d has an empty identifier", family, i)
		}
		if _, exists := m[id]; exists {
			return nil, fmt.Errorf("%s %q: %w", family, id, ErrDuplicateID)
		}
		for _, p := range prices {
			if p.IsNegative() {
				return nil, fmt.Errorf("%s %q has a negative price", family, id)
			}
		}
		m[id] = item
	}
	return m, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Version returns the price table label, e.g. "Tabela Vigente 2024".
func (c *Catalog) Version() string { return c.version }

// Currency returns the ISO currency code prices are expressed in.
func (c *Catalog) Currency() string { return c.currency }

// Locale returns the display locale for formatting amounts.
func (c *Catalog) Locale() string { return c.locale }

// AdhesionFee returns the one-time fee charged only on month-to-month terms.
func (c *Catalog) AdhesionFee() money.Money { return c.adhesionFee }

// Formatter returns an amount formatter for the catalog's currency and locale.
func (c *Catalog) Formatter() *money.Formatter {
	return money.NewFormatter(c.currency, c.locale)
}

// Plans returns the plans in declared order.
func (c *Catalog) Plans() []Plan { return append([]Plan(nil), c.plans...) }

// Services returns the services in declared order.
func (c *Catalog) Services() []Service { return append([]Service(nil), c.services...) }

// Websites returns the website options in declared order.
func (c *Catalog) Websites() []WebsiteOption { return append([]WebsiteOption(nil), c.websites...) }

// CrmOptions returns the CRM options in declared order.
func (c *Catalog) CrmOptions() []CrmOption { return append([]CrmOption(nil), c.crmOptions...) }

// Products returns the additional products in declared order.
func (c *Catalog) Products() []AdditionalProduct {
	return append([]AdditionalProduct(nil), c.products...)
}

// DefaultPlan returns the first declared plan.
func (c *Catalog) DefaultPlan() Plan { return c.plans[0] }

// Plan looks up a plan by identifier.
func (c *Catalog) Plan(id string) (Plan, error) {
	p, ok := c.planByID[id]
	if !ok {
		return Plan{}, &LookupError{Family: FamilyPlan, ID: id}
	}
	return p, nil
}

// Service looks up a service by identifier.
func (c *Catalog) Service(id string) (Service, error) {
	s, ok := c.serviceByID[id]
	if !ok {
		return Service{}, &LookupError{Family: FamilyService, ID: id}
	}
	return s, nil
}

// Website looks up a website option by identifier.
func (c *Catalog) Website(id string) (WebsiteOption, error) {
	w, ok := c.websiteByID[id]
	if !ok {
		return WebsiteOption{}, &LookupError{Family: FamilyWebsite, ID: id}
	}
	return w, nil
}

// Crm looks up a CRM option by identifier.
func (c *Catalog) Crm(id string) (CrmOption, error) {
	o, ok := c.crmByID[id]
	if !ok {
		return CrmOption{}, &LookupError{Family: FamilyCrm, ID: id}
	}
	return o, nil
}

// Product looks up an additional product by identifier.
func (c *Catalog) Product(id string) (AdditionalProduct, error) {
	p, ok := c.productByID[id]
	if !ok {
		return AdditionalProduct{}, &LookupError{Family: FamilyProduct, ID: id}
	}
	return p, nil
}

// MustPlan is like Plan but panics on an unknown identifier.
func (c *Catalog) MustPlan(id string) Plan { return must(c.Plan(id)) }

// MustService is like Service but panics on an unknown identifier.
func (c *Catalog) MustService(id string) Service { return must(c.Service(id)) }

// MustWebsite is like Website but panics on an unknown identifier.
func (c *Catalog) MustWebsite(id string) WebsiteOption { return must(c.Website(id)) }

// MustCrm is like Crm but panics on an unknown identifier.
func (c *Catalog) MustCrm(id string) CrmOption { return must(c.Crm(id)) }

// MustProduct is like Product but panics on an unknown identifier.
func (c *Catalog) MustProduct(id string) AdditionalProduct { return must(c.Product(id)) }

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

package quote

import (
	"sort"

	"github.com/revendamais/plan-quoter/pkg/catalog"
)

// Selection is the user's current set of choices. It is a value type: every
// transition returns a new Selection and leaves the receiver untouched.
type Selection struct {
	PlanID        string
	Services      map[string]bool
	WebsiteID     string
	WebsiteWaived bool
	CrmID         string
	Quantities    map[string]int
}

// NewSelection returns the initial selection for a catalog: the first plan,
// nothing else selected, and a zero quantity for every additional product.
func NewSelection(cat *catalog.Catalog) Selection {
	quantities := make(map[string]int)
	for _, p := range cat.Products() {
		quantities[p.ID] = 0
	}
	return Selection{
		PlanID:     cat.DefaultPlan().ID,
		Services:   make(map[string]bool),
		Quantities: quantities,
	}
}

// Clone returns a deep copy of s.
func (s Selection) Clone() Selection {
	out := s
	out.Services = make(map[string]bool, len(s.Services))
	for id, on := range s.Services {
		if on {
			out.Services[id] = true
		}
	}
	out.Quantities = make(map[string]int, len(s.Quantities))
	for id, n := range s.Quantities {
		out.Quantities[id] = n
	}
	return out
}

// SelectPlan replaces the selected plan.
func (s Selection) SelectPlan(id string) Selection {
	out := s.Clone()
	out.PlanID = id
	return out
}

// ToggleService adds the service if absent, removes it otherwise.
func (s Selection) ToggleService(id string) Selection {
	out := s.Clone()
	if out.Services[id] {
		delete(out.Services, id)
	} else {
		out.Services[id] = true
	}
	return out
}

// HasService reports whether the service is selected.
func (s Selection) HasService(id string) bool {
	return s.Services[id]
}

// ServiceIDs returns the selected service identifiers, sorted.
func (s Selection) ServiceIDs() []string {
	ids := make([]string, 0, len(s.Services))
	for id, on := range s.Services {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// SetWebsite selects a website option. An empty id clears the website and its waiver.
func (s Selection) SetWebsite(id string) Selection {
	out := s.Clone()
	out.WebsiteID = id
	if id == "" {
		out.WebsiteWaived = false
	}
	return out
}

// ToggleWebsite selects the website, or clears it if it is already selected.
func (s Selection) ToggleWebsite(id string) Selection {
	if s.WebsiteID == id {
		return s.SetWebsite("")
	}
	return s.SetWebsite(id)
}

// SetWebsiteWaived sets the website fee waiver. It has no effect without a website.
func (s Selection) SetWebsiteWaived(waived bool) Selection {
	out := s.Clone()
	out.WebsiteWaived = waived && out.WebsiteID != ""
	return out
}

// SetCrmOption selects a CRM option. An empty id clears it.
func (s Selection) SetCrmOption(id string) Selection {
	out := s.Clone()
	out.CrmID = id
	return out
}

// ToggleCrmOption selects the CRM option, or clears it if it is already selected.
func (s Selection) ToggleCrmOption(id string) Selection {
	if s.CrmID == id {
		return s.SetCrmOption("")
	}
	return s.SetCrmOption(id)
}

// SetQuantity sets the quantity of an additional product. Negative values clamp to zero.
func (s Selection) SetQuantity(id string, n int) Selection {
	if n < 0 {
		n = 0
	}
	out := s.Clone()
	out.Quantities[id] = n
	return out
}

// AdjustQuantity adds delta to the quantity of an additional product, clamping at zero.
func (s Selection) AdjustQuantity(id string, delta int) Selection {
	return s.SetQuantity(id, s.Quantities[id]+delta)
}

// Quantity returns the quantity of an additional product.
func (s Selection) Quantity(id string) int {
	return s.Quantities[id]
}

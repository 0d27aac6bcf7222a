package quote

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
)

// scenarioCatalog is a single-plan catalog mirroring the worked examples.
func scenarioCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Spec{
		AdhesionFee: money.FromInt(1000),
		Plans: []catalog.Plan{
			{ID: "p1.0", Name: "Plano 1.0", Vehicles: 50, MonthlyPrice: money.FromInt(550), AnnualPrice: money.FromInt(500)},
		},
		Websites: []catalog.WebsiteOption{
			{ID: "top", Name: "Modelo TOP", Price: money.FromInt(2000)},
		},
		CrmOptions: []catalog.CrmOption{
			{ID: "no_whats", Name: "Sem Integração Whats", MonthlyPrice: money.FromInt(150)},
		},
		Products: []catalog.AdditionalProduct{
			{ID: "user", Name: "Usuário Adicional", UnitPrice: money.FromInt(20)},
		},
	})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	return c
}

func assertMoney(t *testing.T, label string, got, want money.Money) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", label, got, want)
	}
}

func TestCompute_CrmAndExtrasScenario(t *testing.T) {
	cat := scenarioCatalog(t)
	sel := NewSelection(cat).SetCrmOption("no_whats").SetQuantity("user", 2)

	q, err := Compute(cat, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoney(t, "monthlyRecurring", q.MonthlyRecurring, money.FromInt(740))
	assertMoney(t, "annualRecurring", q.AnnualRecurring, money.FromInt(690))
	assertMoney(t, "setupExtra", q.SetupExtra, money.Zero)
	assertMoney(t, "1 month total", q.OneMonth.Total, money.FromInt(1740))
	assertMoney(t, "3 months total", q.ThreeMonths.Total, money.FromInt(2220))
	assertMoney(t, "12 months total", q.TwelveMonths.Total, money.FromInt(8280))
	assertMoney(t, "12 months installment", q.TwelveMonths.PerInstallment(), money.FromInt(690))
}

func TestCompute_WaivedWebsiteScenario(t *testing.T) {
	cat := scenarioCatalog(t)
	sel := NewSelection(cat).SetWebsite("top").SetWebsiteWaived(true)

	q, err := Compute(cat, sel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoney(t, "setupExtra", q.SetupExtra, money.Zero)
	assertMoney(t, "websiteSetup", q.WebsiteSetup, money.Zero)
	assertMoney(t, "1 month total", q.OneMonth.Total, money.FromInt(1000+550))

	var found bool
	for _, l := range q.Lines {
		if l.Family == catalog.FamilyWebsite && l.ID == "top" {
			found = true
			assertMoney(t, "waived website line", l.OneTime, money.Zero)
		}
	}
	if !found {
		t.Error("waived website should still appear as a quote line")
	}
}

// selections returns a spread of selections over the built-in catalog.
func selections(cat *catalog.Catalog) map[string]Selection {
	base := NewSelection(cat)
	return map[string]Selection{
		"default":       base,
		"all services":  base.ToggleService("nf").ToggleService("assinatura").ToggleService("renave"),
		"website":       base.SelectPlan("p2.0").SetWebsite("super"),
		"waived":        base.SetWebsite("top").SetWebsiteWaived(true),
		"crm with fee":  base.SetCrmOption("whats"),
		"everything":    base.SelectPlan("p3.0").ToggleService("nf").SetWebsite("top").SetCrmOption("whats").SetQuantity("cnpj", 2).SetQuantity("storage", 5),
		"extras only":   base.SetQuantity("user", 3).SetQuantity("user_premium", 1),
		"crm no fee":    base.SetCrmOption("no_whats").ToggleService("renave"),
		"plan switched": base.SelectPlan("p1.0"),
	}
}

func TestCompute_TermInvariants(t *testing.T) {
	cat := catalog.Default()

	for name, sel := range selections(cat) {
		t.Run(name, func(t *testing.T) {
			q, err := Compute(cat, sel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertMoney(t, "setupExtra", q.SetupExtra, q.WebsiteSetup.Add(q.CrmSetup))

			want1 := money.Sum(cat.AdhesionFee(), q.WebsiteSetup, q.CrmSetup, q.MonthlyRecurring)
			assertMoney(t, "1 month total", q.OneMonth.Total, want1)
			if q.OneMonth.Total.Cmp(q.SetupExtra) < 0 || q.OneMonth.Total.Cmp(q.MonthlyRecurring) < 0 {
				t.Error("1 month total must dominate setup and monthly recurring")
			}

			assertMoney(t, "3 months total", q.ThreeMonths.Total, q.SetupExtra.Add(q.MonthlyRecurring.Mul(3)))
			assertMoney(t, "3 months adhesion", q.ThreeMonths.Adhesion, money.Zero)
			assertMoney(t, "12 months total", q.TwelveMonths.Total, q.SetupExtra.Add(q.AnnualRecurring.Mul(12)))
			assertMoney(t, "12 months adhesion", q.TwelveMonths.Adhesion, money.Zero)

			for _, v := range q.Terms() {
				assertMoney(t, "setup is term independent", v.Setup, q.SetupExtra)
				assertMoney(t, "total = one-time + recurring", v.Total, v.OneTime.Add(v.Recurring))
			}
			if q.OneMonth.AdhesionWaived || !q.ThreeMonths.AdhesionWaived || !q.TwelveMonths.AdhesionWaived {
				t.Error("adhesion must be waived on 3 and 12 month terms only")
			}
		})
	}
}

func TestCompute_RecurringComposition(t *testing.T) {
	cat := catalog.Default()
	sel := NewSelection(cat).
		SelectPlan("p2.0").
		ToggleService("nf").
		ToggleService("renave").
		SetCrmOption("whats").
		SetQuantity("user", 2).
		SetQuantity("cnpj", 1)

	q := MustCompute(cat, sel)

	// 750 + 250 + 30 + 240 + 2*20 + 90
	assertMoney(t, "monthly", q.MonthlyRecurring, money.FromInt(1400))
	// 700 + 200 + 30 + 240 + 2*20 + 90
	assertMoney(t, "annual", q.AnnualRecurring, money.FromInt(1300))
	assertMoney(t, "crm setup", q.CrmSetup, money.FromInt(390))
	assertMoney(t, "12 month rate", q.TwelveMonths.RecurringRate, money.FromInt(1300))
	assertMoney(t, "3 month rate", q.ThreeMonths.RecurringRate, money.FromInt(1400))

	wantLines := []string{"p2.0", "nf", "renave", "whats", "user", "cnpj"}
	if len(q.Lines) != len(wantLines) {
		t.Fatalf("expected %d lines, got %d", len(wantLines), len(q.Lines))
	}
	for i, id := range wantLines {
		if q.Lines[i].ID != id {
			t.Errorf("line %d: expected %s, got %s", i, id, q.Lines[i].ID)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	cat := catalog.Default()

	for name, sel := range selections(cat) {
		t.Run(name, func(t *testing.T) {
			first, err := json.Marshal(MustCompute(cat, sel))
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			second, err := json.Marshal(MustCompute(cat, sel))
			if err != nil {
				t.Fatalf("marshal failed: %v", err)
			}
			if string(first) != string(second) {
				t.Errorf("quotes differ:\n%s\n%s", first, second)
			}
		})
	}
}

func TestCompute_QuantityMonotonicity(t *testing.T) {
	cat := catalog.Default()

	for name, sel := range selections(cat) {
		for _, prod := range cat.Products() {
			t.Run(name+"/"+prod.ID, func(t *testing.T) {
				before := MustCompute(cat, sel)
				after := MustCompute(cat, sel.AdjustQuantity(prod.ID, 1))

				assertMoney(t, "1 month delta", after.OneMonth.Total.Sub(before.OneMonth.Total), prod.UnitPrice)
				assertMoney(t, "3 months delta", after.ThreeMonths.Total.Sub(before.ThreeMonths.Total), prod.UnitPrice.Mul(3))
				assertMoney(t, "12 months delta", after.TwelveMonths.Total.Sub(before.TwelveMonths.Total), prod.UnitPrice.Mul(12))
			})
		}
	}
}

func TestCompute_WaiverProperty(t *testing.T) {
	cat := catalog.Default()

	for _, site := range cat.Websites() {
		t.Run(site.ID, func(t *testing.T) {
			sel := NewSelection(cat).SetCrmOption("whats").SetWebsite(site.ID)
			charged := MustCompute(cat, sel)
			waived := MustCompute(cat, sel.SetWebsiteWaived(true))

			assertMoney(t, "setup delta", charged.SetupExtra.Sub(waived.SetupExtra), site.Price)
			for i, v := range charged.Terms() {
				w := waived.Terms()[i]
				assertMoney(t, "one-time delta", v.OneTime.Sub(w.OneTime), site.Price)
				assertMoney(t, "recurring unchanged", v.Recurring, w.Recurring)
			}
			assertMoney(t, "monthly unchanged", charged.MonthlyRecurring, waived.MonthlyRecurring)
			assertMoney(t, "annual unchanged", charged.AnnualRecurring, waived.AnnualRecurring)
		})
	}
}

func TestCompute_SetupNotWaivedByCommitment(t *testing.T) {
	cat := catalog.Default()
	q := MustCompute(cat, NewSelection(cat).SetCrmOption("whats").SetWebsite("top"))

	for _, v := range q.Terms() {
		assertMoney(t, "setup", v.Setup, money.FromInt(2390))
	}
	assertMoney(t, "1 month one-time", q.OneMonth.OneTime, money.FromInt(3390))
	assertMoney(t, "12 months one-time", q.TwelveMonths.OneTime, money.FromInt(2390))
}

func TestCompute_Errors(t *testing.T) {
	cat := catalog.Default()
	base := NewSelection(cat)

	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{"unknown plan", base.SelectPlan("p9"), catalog.ErrUnknownID},
		{"empty plan", base.SelectPlan(""), catalog.ErrUnknownID},
		{"unknown service", base.ToggleService("fax"), catalog.ErrUnknownID},
		{"unknown website", base.SetWebsite("mega"), catalog.ErrUnknownID},
		{"unknown crm", base.SetCrmOption("salesforce"), catalog.ErrUnknownID},
		{"unknown product", base.SetQuantity("printer", 1), catalog.ErrUnknownID},
		{"negative quantity", func() Selection { s := base.Clone(); s.Quantities["user"] = -1; return s }(), ErrNegativeQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compute(cat, tt.sel)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if q != nil {
				t.Error("expected no quote on failure")
			}
		})
	}
}

func TestCompute_DoesNotAliasSelection(t *testing.T) {
	cat := catalog.Default()
	sel := NewSelection(cat).ToggleService("nf").SetQuantity("user", 1)
	snapshot := sel.Clone()

	_ = MustCompute(cat, sel)

	if len(sel.Services) != len(snapshot.Services) || sel.Quantities["user"] != snapshot.Quantities["user"] {
		t.Error("Compute must not modify the selection")
	}
}

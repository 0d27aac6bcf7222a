package catalog

import "github.com/revendamais/plan-quoter/pkg/money"

// DefaultSpec returns the built-in price list.
func DefaultSpec() Spec {
	annual := func(s string) *money.Money {
		m := money.MustParse(s)
		return &m
	}

	return Spec{
		Name:        "RevendaMais",
		Version:     "Tabela Vigente 2024",
		Currency:    "BRL",
		Locale:      "pt-BR",
		AdhesionFee: money.FromInt(1000),
		Plans: []Plan{
			{ID: "p0.5", Name: "Plano 0.5 (S/Mod. Financeiro)", Vehicles: 25, Users: 5, Storage: "1GB", MonthlyPrice: money.FromInt(450), AnnualPrice: money.FromInt(400)},
			{ID: "p1.0", Name: "Plano 1.0", Vehicles: 50, Users: 10, Storage: "2GB", MonthlyPrice: money.FromInt(550), AnnualPrice: money.FromInt(500)},
			{ID: "p2.0", Name: "Plano 2.0", Vehicles: 100, Users: 15, Storage: "3GB", MonthlyPrice: money.FromInt(750), AnnualPrice: money.FromInt(700)},
			{ID: "p3.0", Name: "Plano 3.0", Vehicles: 150, Users: 20, Storage: "4GB", MonthlyPrice: money.FromInt(850), AnnualPrice: money.FromInt(800)},
		},
		Services: []Service{
			{ID: "nf", Name: "Notas Fiscais", MonthlyPrice: money.FromInt(250), AnnualPrice: annual("200")},
			{ID: "assinatura", Name: "Assinatura Eletrônica", MonthlyPrice: money.FromInt(50), AnnualPrice: annual("50")},
			{ID: "renave", Name: "Integração Renave", MonthlyPrice: money.FromInt(30), AnnualPrice: annual("30")},
		},
		Websites: []WebsiteOption{
			{ID: "top", Name: "Modelo TOP", Price: money.FromInt(2000)},
			{ID: "super", Name: "Modelo SUPER", Price: money.FromInt(4500)},
		},
		CrmOptions: []CrmOption{
			{ID: "whats", Name: "Integração Whats (3 usuários)", MonthlyPrice: money.FromInt(240), SetupFee: money.FromInt(390)},
			{ID: "no_whats", Name: "Sem Integração Whats (3 usuários)", MonthlyPrice: money.FromInt(150), SetupFee: money.Zero},
		},
		Products: []AdditionalProduct{
			{ID: "storage", Name: "Armazenamento Adicional", UnitPrice: money.FromInt(15)},
			{ID: "user", Name: "Usuário Adicional (s/chat premium)", UnitPrice: money.FromInt(20)},
			{ID: "user_premium", Name: "Usuário Adicional (c/chat premium)", UnitPrice: money.FromInt(50)},
			{ID: "cnpj", Name: "CNPJ Adicional", UnitPrice: money.FromInt(90)},
		},
	}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultSpec())
	if err != nil {
		panic("catalog: built-in price list is invalid: " + err.Error())
	}
	return c
}

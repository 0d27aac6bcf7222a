package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	hclfunc "github.com/revendamais/plan-quoter/internal/hclfunc"
	"github.com/revendamais/plan-quoter/pkg/catalog"
	"github.com/revendamais/plan-quoter/pkg/money"
)

// ParseFile parses an HCL price list file
func ParseFile(path string) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("price list file not found: %s", absPath)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(absPath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	return decode(file)
}

// ParseBytes parses an HCL price list from a byte slice
func ParseBytes(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}

	return decode(file)
}

func decode(file *hcl.File) (*File, error) {
	// PASS 1: Decode with empty context to extract variable definitions.
	// Diagnostics about unresolved var.X references are expected here.
	var partial File
	_ = gohcl.DecodeBody(file.Body, hclfunc.NewEvalContext(nil), &partial)

	resolvedVars := resolveVariables(partial.Variables)

	// PASS 2: Re-decode with resolved variables in context
	var cfg File
	diags := gohcl.DecodeBody(file.Body, hclfunc.NewEvalContextWithVars(resolvedVars), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode price list: %s", diags.Error())
	}

	return &cfg, nil
}

// resolveVariables resolves variable values from their definitions.
// The first non-empty environment variable wins, then the default.
func resolveVariables(variables []*VariableConfig) map[string]string {
	resolved := make(map[string]string)

	for _, v := range variables {
		if v == nil {
			continue
		}

		var value string
		for _, envName := range v.Env {
			if envVal := os.Getenv(envName); envVal != "" {
				value = envVal
				break
			}
		}

		if value == "" && v.Default != "" {
			value = v.Default
		}

		resolved[v.Name] = value
	}

	return resolved
}

// ToSpec converts a validated catalog block into a catalog.Spec
func (c *CatalogConfig) ToSpec() (catalog.Spec, error) {
	spec := catalog.Spec{
		Name:     c.Name,
		Version:  c.Version,
		Currency: c.Currency,
		Locale:   c.Locale,
	}

	var err error
	if spec.AdhesionFee, err = parsePrice("adhesion_fee", c.AdhesionFee); err != nil {
		return spec, err
	}

	for _, p := range c.Plans {
		plan := catalog.Plan{ID: p.ID, Name: p.Name, Vehicles: p.Vehicles, Users: p.Users, Storage: p.Storage}
		if plan.MonthlyPrice, err = parsePrice("plan "+p.ID+" monthly_price", p.MonthlyPrice); err != nil {
			return spec, err
		}
		if plan.AnnualPrice, err = parsePrice("plan "+p.ID+" annual_price", p.AnnualPrice); err != nil {
			return spec, err
		}
		spec.Plans = append(spec.Plans, plan)
	}

	for _, s := range c.Services {
		svc := catalog.Service{ID: s.ID, Name: s.Name}
		if svc.MonthlyPrice, err = parsePrice("service "+s.ID+" monthly_price", s.MonthlyPrice); err != nil {
			return spec, err
		}
		if s.AnnualPrice != nil {
			annual, err := parsePrice("service "+s.ID+" annual_price", *s.AnnualPrice)
			if err != nil {
				return spec, err
			}
			svc.AnnualPrice = &annual
		}
		spec.Services = append(spec.Services, svc)
	}

	for _, w := range c.Websites {
		site := catalog.WebsiteOption{ID: w.ID, Name: w.Name}
		if site.Price, err = parsePrice("website "+w.ID+" price", w.Price); err != nil {
			return spec, err
		}
		spec.Websites = append(spec.Websites, site)
	}

	for _, o := range c.CrmOptions {
		crm := catalog.CrmOption{ID: o.ID, Name: o.Name}
		if crm.MonthlyPrice, err = parsePrice("crm "+o.ID+" monthly_price", o.MonthlyPrice); err != nil {
			return spec, err
		}
		if o.SetupFee != "" {
			if crm.SetupFee, err = parsePrice("crm "+o.ID+" setup_fee", o.SetupFee); err != nil {
				return spec, err
			}
		}
		spec.CrmOptions = append(spec.CrmOptions, crm)
	}

	for _, p := range c.Products {
		prod := catalog.AdditionalProduct{ID: p.ID, Name: p.Name, UnitLabel: p.UnitLabel}
		if prod.UnitPrice, err = parsePrice("product "+p.ID+" unit_price", p.UnitPrice); err != nil {
			return spec, err
		}
		spec.Products = append(spec.Products, prod)
	}

	return spec, nil
}

func parsePrice(field, value string) (money.Money, error) {
	m, err := money.Parse(value)
	if err != nil {
		return money.Zero, fmt.Errorf("%s: %w", field, err)
	}
	if m.IsNegative() {
		return money.Zero, fmt.Errorf("%s: price must not be negative", field)
	}
	return m, nil
}

// Build validates a parsed file and builds the catalog it describes
func Build(cfg *File) (*catalog.Catalog, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	spec, err := cfg.Catalog.ToSpec()
	if err != nil {
		return nil, fmt.Errorf("catalog %q: %w", cfg.Catalog.Name, err)
	}

	return catalog.New(spec)
}

// LoadCatalogFile parses, validates and builds the catalog in an HCL file
func LoadCatalogFile(path string) (*catalog.Catalog, error) {
	cfg, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Build(cfg)
}

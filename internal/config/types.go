package config

// File is the root of a price list file.
type File struct {
	// Variables contains variable definitions
	Variables []*VariableConfig `hcl:"variable,block"`

	// Catalog is the price list
	Catalog *CatalogConfig `hcl:"catalog,block"`
}

// VariableConfig represents an HCL variable block definition
type VariableConfig struct {
	// Name is the variable name (block label)
	Name string `hcl:"name,label"`

	// Default is the value used when no environment variable is set
	Default string `hcl:"default,optional"`

	// Env is a list of environment variable names to check for value, in order
	Env []string `hcl:"env,optional"`

	// Description documents the variable purpose
	Description string `hcl:"description,optional"`
}

// CatalogConfig represents a catalog block. Prices are decimal strings;
// HCL numbers are accepted and converted without going through a float.
type CatalogConfig struct {
	Name        string `hcl:"name,label"`
	Version     string `hcl:"version,optional"`
	Currency    string `hcl:"currency,optional"`
	Locale      string `hcl:"locale,optional"`
	AdhesionFee string `hcl:"adhesion_fee,attr"`

	Plans      []*PlanConfig    `hcl:"plan,block"`
	Services   []*ServiceConfig `hcl:"service,block"`
	Websites   []*WebsiteConfig `hcl:"website,block"`
	CrmOptions []*CrmConfig     `hcl:"crm,block"`
	Products   []*ProductConfig `hcl:"product,block"`
}

// PlanConfig represents a plan block
type PlanConfig struct {
	ID           string `hcl:"id,label"`
	Name         string `hcl:"name,attr"`
	Vehicles     int    `hcl:"vehicles,optional"`
	Users        int    `hcl:"users,optional"`
	Storage      string `hcl:"storage,optional"`
	MonthlyPrice string `hcl:"monthly_price,attr"`
	AnnualPrice  string `hcl:"annual_price,attr"`
}

// ServiceConfig represents a service block. AnnualPrice is optional.
type ServiceConfig struct {
	ID           string  `hcl:"id,label"`
	Name         string  `hcl:"name,attr"`
	MonthlyPrice string  `hcl:"monthly_price,attr"`
	AnnualPrice  *string `hcl:"annual_price,optional"`
}

// WebsiteConfig represents a website block
type WebsiteConfig struct {
	ID    string `hcl:"id,label"`
	Name  string `hcl:"name,attr"`
	Price string `hcl:"price,attr"`
}

// CrmConfig represents a crm block
type CrmConfig struct {
	ID           string `hcl:"id,label"`
	Name         string `hcl:"name,attr"`
	MonthlyPrice string `hcl:"monthly_price,attr"`
	SetupFee     string `hcl:"setup_fee,optional"`
}

// ProductConfig represents a product block
type ProductConfig struct {
	ID        string `hcl:"id,label"`
	Name      string `hcl:"name,attr"`
	UnitPrice string `hcl:"unit_price,attr"`
	UnitLabel string `hcl:"unit_label,optional"`
}

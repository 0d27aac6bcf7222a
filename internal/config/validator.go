package config

import (
	"fmt"
	"strings"
)

// Validate validates a parsed price list and returns an error if invalid
func Validate(cfg *File) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Catalog == nil {
		return fmt.Errorf("a catalog block is required")
	}

	c := cfg.Catalog
	if !isValidName(c.Name) {
		return fmt.Errorf("catalog name must contain only alphanumeric characters, dots, hyphens, and underscores")
	}

	if len(c.Plans) == 0 {
		return fmt.Errorf("at least one plan must be defined")
	}

	if err := checkDuplicates("plan", len(c.Plans), func(i int) string { return c.Plans[i].ID }); err != nil {
		return err
	}
	if err := checkDuplicates("service", len(c.Services), func(i int) string { return c.Services[i].ID }); err != nil {
		return err
	}
	if err := checkDuplicates("website", len(c.Websites), func(i int) string { return c.Websites[i].ID }); err != nil {
		return err
	}
	if err := checkDuplicates("crm", len(c.CrmOptions), func(i int) string { return c.CrmOptions[i].ID }); err != nil {
		return err
	}
	if err := checkDuplicates("product", len(c.Products), func(i int) string { return c.Products[i].ID }); err != nil {
		return err
	}

	for _, p := range c.Plans {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("plan %q: name is required", p.ID)
		}
		if p.Vehicles < 0 || p.Users < 0 {
			return fmt.Errorf("plan %q: vehicle and user limits must not be negative", p.ID)
		}
	}

	if _, err := c.ToSpec(); err != nil {
		return fmt.Errorf("catalog %q: %w", c.Name, err)
	}

	return nil
}

// checkDuplicates checks identifiers within one family for validity and uniqueness
func checkDuplicates(family string, n int, id func(int) string) error {
	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		name := id(i)
		if !isValidName(name) {
			return fmt.Errorf("%s at index %d: invalid identifier %q", family, i, name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate %s identifier: %q", family, name)
		}
		seen[name] = true
	}
	return nil
}

// isValidName checks if a name contains only valid characters
func isValidName(name string) bool {
	if name == "" {
		return false
	}

	for _, ch := range name {
		if !isIdentifierChar(ch) {
			return false
		}
	}

	return true
}

// isIdentifierChar allows plan ids such as "p0.5" and "user_premium"
func isIdentifierChar(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '-' ||
		ch == '_' ||
		ch == '.'
}

// FormatError formats a validation error with helpful context
func FormatError(err error, configPath string) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Price list validation failed:\n")
	sb.WriteString(fmt.Sprintf("  File: %s\n", configPath))
	sb.WriteString(fmt.Sprintf("  Error: %s\n", err.Error()))

	return sb.String()
}

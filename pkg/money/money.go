// Package money provides a decimal-safe monetary amount used across the catalog
// and the quote engine. Arithmetic never rounds; rounding to the smallest
// currency unit only happens when an amount is formatted for display.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-rounding monetary amount. The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// FromInt returns an amount of whole currency units.
func FromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// FromDecimal wraps a decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Parse parses a decimal string such as "550" or "19.90".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for static data.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// Mul returns m multiplied by an integer factor (a quantity or a number of months).
func (m Money) Mul(n int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(n))}
}

// Div returns m divided into n parts, rounded to cents. Display only.
func (m Money) Div(n int64) Money {
	if n <= 0 {
		return m
	}
	return Money{d: m.d.DivRound(decimal.NewFromInt(n), 2)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m.d.IsZero() }

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m.d.IsNegative() }

// Equal reports whether both amounts are numerically equal (1.0 == 1.00).
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

// Cmp compares m and o, returning -1, 0 or +1.
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Round returns the amount rounded half-up to cents.
func (m Money) Round() Money {
	return Money{d: m.d.Round(2)}
}

// String renders the amount with two decimal places and no currency symbol.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes the amount as a decimal string to keep precision.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.d = d
	return nil
}

// Sum adds all amounts.
func Sum(amounts ...Money) Money {
	total := Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

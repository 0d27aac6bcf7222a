package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency and DefaultLocale match the built-in price list.
const (
	DefaultCurrency = "BRL"
	DefaultLocale   = "pt-BR"
)

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
}

// Formatter renders amounts for display in a given currency and locale.
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter creates a formatter. Unknown locales fall back to DefaultLocale.
func NewFormatter(currency, locale string) *Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Formatter{
		currency: strings.ToUpper(currency),
		printer:  message.NewPrinter(tag),
	}
}

// Symbol returns the display symbol for the formatter's currency, or the ISO code.
func (f *Formatter) Symbol() string {
	if s, ok := currencySymbols[f.currency]; ok {
		return s
	}
	return f.currency
}

// Format renders m rounded to cents, e.g. "R$ 1.740,00".
func (f *Formatter) Format(m Money) string {
	v, _ := m.Round().Decimal().Float64()
	return f.Symbol() + " " + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Package display formats keyword metrics for the results table.
package display

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter renders volumes with locale digit grouping and CPC values with a currency symbol.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
}

// NewFormatter builds a formatter for a BCP 47 locale and an ISO 4217 currency code.
func NewFormatter(locale, currencyCode string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	p := message.NewPrinter(tag)
	return &Formatter{
		printer: p,
		unit:    unit,
		symbol:  p.Sprint(currency.NarrowSymbol(unit)),
	}, nil
}

// MustFormatter is NewFormatter for known-good settings.
func MustFormatter(locale, currencyCode string) *Formatter {
	f, err := NewFormatter(locale, currencyCode)
	if err != nil {
		panic(err)
	}
	return f
}

// Default returns the Korean locale formatter with won CPC values.
func Default() *Formatter {
	return MustFormatter("ko", "KRW")
}

// Volume formats a search volume with grouped digits, e.g. 4,400.
func (f *Formatter) Volume(n int) string {
	return f.printer.Sprintf("%d", n)
}

// CPC formats a cost per click with the currency symbol, e.g. ₩ 720.
func (f *Formatter) CPC(n int) string {
	return f.symbol + " " + f.printer.Sprintf("%d", n)
}

// Currency returns the ISO code of the CPC currency.
func (f *Formatter) Currency() string {
	return f.unit.String()
}

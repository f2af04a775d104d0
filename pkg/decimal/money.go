package decimal

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// String returns the plain two-decimal representation
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as US currency with thousands separators, e.g. "-$1,234.50"
func (m Money) Format() string {
	rounded := m.Round()
	if rounded.IsNegative() {
		return "-$" + printer.Sprintf("%.2f", rounded.Abs().InexactFloat64())
	}
	return "$" + printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatRate renders a fractional rate (0.07) as a percentage with the given decimals ("7.0%")
func FormatRate(rate decimal.Decimal, places int32) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(places) + "%"
}

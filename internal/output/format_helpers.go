package output

import (
	"strconv"

	money "github.com/firefly/retirement-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD currency with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal that is already a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.07) as "7.0%".
func FormatRate(rate decimal.Decimal) string { return money.FormatRate(rate, 1) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

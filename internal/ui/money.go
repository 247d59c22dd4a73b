package ui

import "github.com/shopspring/decimal"

// Money formats an amount as dollars, rounded half away from zero to
// cents. Rounding happens here only; totals stay unrounded elsewhere.
func Money(amount float64) string {
	return "$" + decimal.NewFromFloat(amount).StringFixed(2)
}

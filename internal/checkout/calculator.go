package checkout

import (
	"dutyfree-pos/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Subtotal is the sum of line totals.
func Subtotal(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.TotalPrice)
	}
	return sum
}

// TaxAmount sums the tax of each line at the rate captured on that line, so
// a later change to the product's rate does not touch lines already rung up.
func TaxAmount(lines []domain.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.TotalPrice.Mul(line.TaxRate).Div(hundred))
	}
	return sum
}

// Total is Subtotal plus TaxAmount. No rounding is applied here.
func Total(lines []domain.CartLine) decimal.Decimal {
	return Compute(lines).Total
}

// Compute returns the full breakdown in one pass over lines.
func Compute(lines []domain.CartLine) domain.Totals {
	subtotal := Subtotal(lines)
	tax := TaxAmount(lines)
	return domain.Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

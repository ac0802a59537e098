// Package pricing picks the unit price of a product for a currency.
package pricing

import (
	"dutyfree-pos/internal/domain"

	"github.com/shopspring/decimal"
)

// PriceFor returns the price configured on p for currency c. Each currency
// is an independent field; nothing is converted. A missing price, or an
// unknown currency, resolves to zero.
func PriceFor(p domain.Product, c domain.Currency) decimal.Decimal {
	var price decimal.NullDecimal
	switch c {
	case domain.CurrencyXOF:
		price = p.PriceXOF
	case domain.CurrencyEUR:
		price = p.PriceEUR
	case domain.CurrencyUSD:
		price = p.PriceUSD
	}
	if !price.Valid {
		return decimal.Zero
	}
	return price.Decimal
}

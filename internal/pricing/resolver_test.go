package pricing

import (
	"testing"

	"dutyfree-pos/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func TestPriceFor(t *testing.T) {
	product := domain.Product{
		ID:       "p1",
		PriceXOF: price(1000),
		PriceEUR: decimal.NewNullDecimal(decimal.RequireFromString("1.52")),
	}

	tests := []struct {
		name     string
		currency domain.Currency
		want     string
	}{
		{name: "xof", currency: domain.CurrencyXOF, want: "1000"},
		{name: "eur", currency: domain.CurrencyEUR, want: "1.52"},
		{name: "missing usd is zero", currency: domain.CurrencyUSD, want: "0"},
		{name: "unknown currency is zero", currency: domain.Currency("GBP"), want: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PriceFor(product, tt.currency)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestPriceForDoesNotConvert(t *testing.T) {
	product := domain.Product{ID: "p1", PriceXOF: price(655)}
	assert.True(t, PriceFor(product, domain.CurrencyEUR).IsZero())
}

package domain

import (
	"fmt"
	"strings"
)

// Currency is one of the fixed set of currencies a product can be priced in.
type Currency string

const (
	CurrencyXOF Currency = "XOF"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{CurrencyXOF, CurrencyEUR, CurrencyUSD}

// ParseCurrency normalises v and checks it against the supported set.
func ParseCurrency(v string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(v)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, v)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyXOF, CurrencyEUR, CurrencyUSD:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}

// PaymentMethod is the tender used to settle a sale.
type PaymentMethod string

const (
	PaymentCash        PaymentMethod = "CASH"
	PaymentCard        PaymentMethod = "CARD"
	PaymentMobileMoney PaymentMethod = "MOBILE_MONEY"
)

// ParsePaymentMethod normalises v and checks it against the supported set.
func ParsePaymentMethod(v string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(v)))
	switch m {
	case PaymentCash, PaymentCard, PaymentMobileMoney:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedPaymentMethod, v)
}

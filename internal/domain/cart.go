package domain

import "github.com/shopspring/decimal"

// CartLine is one product entry of the cart. Name, unit price and tax rate
// are snapshots taken when the line was added (or repriced); TotalPrice is
// always Quantity × UnitPrice and is never set on its own.
type CartLine struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"productId"`
	ProductName     string          `json:"productName"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

// Totals is the checkout breakdown of a cart.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
}

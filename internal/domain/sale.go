package domain

import "github.com/shopspring/decimal"

// Payment is a single tender record attached to a sale request.
type Payment struct {
	Method   PaymentMethod   `json:"method"`
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// SaleRequest is the compound transaction submitted at checkout.
type SaleRequest struct {
	Items    []CartLine `json:"items"`
	Currency Currency   `json:"currency"`
	Payments []Payment  `json:"payments"`
}

// SaleReceipt is what the Sales API acknowledges after accepting a sale.
type SaleReceipt struct {
	ID         string `json:"id"`
	SaleNumber string `json:"saleNumber,omitempty"`
	Status     string `json:"status,omitempty"`
}

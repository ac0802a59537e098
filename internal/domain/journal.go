package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus is the outcome of a recorded checkout attempt.
type JournalStatus string

const (
	JournalCompleted JournalStatus = "completed"
	JournalFailed    JournalStatus = "failed"
)

// JournalEntry is the terminal's own record of a checkout attempt that
// reached the Sales API.
type JournalEntry struct {
	ID            string          `json:"id"`
	TerminalID    string          `json:"terminalId"`
	CashierID     string          `json:"cashierId,omitempty"`
	Currency      Currency        `json:"currency"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	Total         decimal.Decimal `json:"total"`
	LineCount     int             `json:"lineCount"`
	Status        JournalStatus   `json:"status"`
	SaleNumber    string          `json:"saleNumber,omitempty"`
	Error         string          `json:"error,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

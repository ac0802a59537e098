package terminal

import (
	"context"
	"time"

	"dutyfree-pos/internal/checkout"
	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/repository/journal"

	"github.com/rs/zerolog"
)

// Cashier resolves the operator currently logged in at the desk.
type Cashier interface {
	User() (domain.User, bool)
}

type journalRecorder struct {
	repo       journal.Repository
	terminalID string
	cashier    Cashier
	logger     zerolog.Logger
	timeout    time.Duration
}

// NewRecorder writes every checkout attempt to the journal. Journal
// failures are logged and never reach the checkout.
func NewRecorder(repo journal.Repository, terminalID string, cashier Cashier, logger zerolog.Logger) checkout.Recorder {
	return &journalRecorder{
		repo:       repo,
		terminalID: terminalID,
		cashier:    cashier,
		logger:     logger.With().Str("component", "journal").Logger(),
		timeout:    5 * time.Second,
	}
}

func (r *journalRecorder) Record(ctx context.Context, a checkout.Attempt) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.repo.Record(ctx, entryFor(r.terminalID, r.cashier, a)); err != nil {
		r.logger.Error().Err(err).Msg("journal write failed")
	}
}

func entryFor(terminalID string, cashier Cashier, a checkout.Attempt) domain.JournalEntry {
	e := domain.JournalEntry{
		TerminalID: terminalID,
		Currency:   a.Request.Currency,
		Subtotal:   a.Totals.Subtotal,
		TaxAmount:  a.Totals.TaxAmount,
		Total:      a.Totals.Total,
		LineCount:  len(a.Request.Items),
		Status:     domain.JournalCompleted,
	}
	if len(a.Request.Payments) > 0 {
		e.PaymentMethod = a.Request.Payments[0].Method
	}
	if cashier != nil {
		if u, ok := cashier.User(); ok {
			e.CashierID = u.ID
		}
	}
	if a.Receipt != nil {
		e.SaleNumber = a.Receipt.SaleNumber
	}
	if a.Err != nil {
		e.Status = domain.JournalFailed
		e.Error = a.Err.Error()
	}
	return e
}

package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/shopspring/decimal"
)

type JournalReader interface {
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error)
}

var header = []string{
	"id", "created_at", "terminal_id", "cashier_id", "status", "sale_number",
	"currency", "payment_method", "line_count", "subtotal", "tax_amount", "total", "error",
}

// CSVExporter writes journal entries of a time range as CSV.
type CSVExporter struct {
	writer  *csv.Writer
	journal JournalReader
}

func NewCSVExporter(w io.Writer, journal JournalReader) *CSVExporter {
	return &CSVExporter{writer: csv.NewWriter(w), journal: journal}
}

// Run writes a header and one row per entry in [from, to) and returns the
// entries written.
func (e *CSVExporter) Run(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	if !to.After(from) {
		return nil, fmt.Errorf("empty range %s - %s", from.Format(time.RFC3339), to.Format(time.RFC3339))
	}
	entries, err := e.journal.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}

	if err := e.writer.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, entry := range entries {
		if err := e.writer.Write(row(entry)); err != nil {
			return nil, fmt.Errorf("write row %s: %w", entry.ID, err)
		}
	}
	e.writer.Flush()
	if err := e.writer.Error(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}
	return entries, nil
}

func row(e domain.JournalEntry) []string {
	return []string{
		e.ID,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.TerminalID,
		e.CashierID,
		string(e.Status),
		e.SaleNumber,
		string(e.Currency),
		string(e.PaymentMethod),
		strconv.Itoa(e.LineCount),
		e.Subtotal.String(),
		e.TaxAmount.String(),
		e.Total.String(),
		e.Error,
	}
}

// Summary is the completed turnover of one currency.
type Summary struct {
	Currency  domain.Currency
	Sales     int
	Failed    int
	Subtotal  decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

// Summarize groups entries per currency. Failed attempts are counted but
// never added to the amounts.
func Summarize(entries []domain.JournalEntry) []Summary {
	byCurrency := map[domain.Currency]*Summary{}
	for _, e := range entries {
		s, ok := byCurrency[e.Currency]
		if !ok {
			s = &Summary{Currency: e.Currency}
			byCurrency[e.Currency] = s
		}
		if e.Status != domain.JournalCompleted {
			s.Failed++
			continue
		}
		s.Sales++
		s.Subtotal = s.Subtotal.Add(e.Subtotal)
		s.TaxAmount = s.TaxAmount.Add(e.TaxAmount)
		s.Total = s.Total.Add(e.Total)
	}
	out := make([]Summary, 0, len(byCurrency))
	for _, s := range byCurrency {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

package journal

import (
	"context"
	"fmt"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger.With().Str("component", "journal").Logger()}
}

const columns = `id::text, terminal_id, COALESCE(cashier_id, ''), currency, payment_method,
subtotal::text, tax_amount::text, total::text, line_count, status,
COALESCE(sale_number, ''), COALESCE(error, ''), created_at`

func (r *postgresRepo) Record(ctx context.Context, in domain.JournalEntry) (*domain.JournalEntry, error) {
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	q := `
INSERT INTO sale_journal (id, terminal_id, cashier_id, currency, payment_method, subtotal, tax_amount, total, line_count, status, sale_number, error)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6::numeric, $7::numeric, $8::numeric, $9, $10, NULLIF($11, ''), NULLIF($12, ''))
RETURNING ` + columns

	row := r.pool.QueryRow(ctx, q,
		in.ID,
		in.TerminalID,
		in.CashierID,
		string(in.Currency),
		string(in.PaymentMethod),
		in.Subtotal.String(),
		in.TaxAmount.String(),
		in.Total.String(),
		in.LineCount,
		string(in.Status),
		in.SaleNumber,
		in.Error,
	)
	out, err := scanEntry(row)
	if err != nil {
		r.logger.Error().Err(err).Str("status", string(in.Status)).Msg("record checkout")
		return nil, err
	}
	r.logger.Debug().Str("id", out.ID).Str("status", string(out.Status)).Msg("checkout recorded")
	return out, nil
}

func (r *postgresRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.JournalEntry, error) {
	q := `
SELECT ` + columns + `
FROM sale_journal
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at, id
`
	rows, err := r.pool.Query(ctx, q, from, to)
	if err != nil {
		r.logger.Error().Err(err).Time("from", from).Time("to", to).Msg("list journal")
		return nil, err
	}
	defer rows.Close()

	var result []domain.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		e                    domain.JournalEntry
		currency, method     string
		status               string
		subtotal, tax, total string
	)
	if err := row.Scan(
		&e.ID,
		&e.TerminalID,
		&e.CashierID,
		&currency,
		&method,
		&subtotal,
		&tax,
		&total,
		&e.LineCount,
		&status,
		&e.SaleNumber,
		&e.Error,
		&e.CreatedAt,
	); err != nil {
		return nil, err
	}
	e.Currency = domain.Currency(currency)
	e.PaymentMethod = domain.PaymentMethod(method)
	e.Status = domain.JournalStatus(status)

	var err error
	if e.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
		return nil, fmt.Errorf("journal %s subtotal: %w", e.ID, err)
	}
	if e.TaxAmount, err = decimal.NewFromString(tax); err != nil {
		return nil, fmt.Errorf("journal %s tax: %w", e.ID, err)
	}
	if e.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("journal %s total: %w", e.ID, err)
	}
	return &e, nil
}

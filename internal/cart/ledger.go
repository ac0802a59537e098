// Package cart holds the in-memory line items of the sale being rung up.
package cart

import (
	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is an ordered set of cart lines keyed by product id. It is not
// safe for concurrent use; callers serialise access.
type Ledger struct {
	lines []domain.CartLine
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Add puts one unit of p in the cart. A product already present gets its
// quantity bumped; otherwise a new line is appended priced in currency.
// Stock is not checked here, the Sales API validates it at checkout.
func (l *Ledger) Add(p domain.Product, currency domain.Currency) (domain.CartLine, error) {
	if p.ID == "" {
		return domain.CartLine{}, domain.ErrInvalidProduct
	}
	if i := l.index(p.ID); i >= 0 {
		l.setQuantity(i, l.lines[i].Quantity+1)
		return l.lines[i], nil
	}
	unit := pricing.PriceFor(p, currency)
	line := domain.CartLine{
		ID:              uuid.NewString(),
		ProductID:       p.ID,
		ProductName:     p.DisplayName(),
		Quantity:        1,
		UnitPrice:       unit,
		TaxRate:         p.TaxRate,
		DiscountPercent: decimal.Zero,
		TotalPrice:      unit,
	}
	l.lines = append(l.lines, line)
	return line, nil
}

// UpdateQuantity moves the quantity of the line for productID by delta.
// A line whose quantity would drop to zero or below is removed. It reports
// false when no line matches.
func (l *Ledger) UpdateQuantity(productID string, delta int) bool {
	i := l.index(productID)
	if i < 0 {
		return false
	}
	next := l.lines[i].Quantity + delta
	if next <= 0 {
		l.removeAt(i)
		return true
	}
	l.setQuantity(i, next)
	return true
}

// Remove deletes the line for productID if there is one.
func (l *Ledger) Remove(productID string) {
	if i := l.index(productID); i >= 0 {
		l.removeAt(i)
	}
}

// RepriceAll recomputes every line in currency from productsByID. Lines
// whose product is no longer in the catalog keep their previous price; the
// ids of those lines are returned so the caller can flag them.
func (l *Ledger) RepriceAll(currency domain.Currency, productsByID map[string]domain.Product) []string {
	var stale []string
	for i := range l.lines {
		p, ok := productsByID[l.lines[i].ProductID]
		if !ok {
			stale = append(stale, l.lines[i].ProductID)
			continue
		}
		l.lines[i].UnitPrice = pricing.PriceFor(p, currency)
		l.lines[i].TotalPrice = lineTotal(l.lines[i].UnitPrice, l.lines[i].Quantity)
	}
	return stale
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Len() int {
	return len(l.lines)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.lines) == 0
}

func (l *Ledger) index(productID string) int {
	for i, line := range l.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (l *Ledger) setQuantity(i, qty int) {
	l.lines[i].Quantity = qty
	l.lines[i].TotalPrice = lineTotal(l.lines[i].UnitPrice, qty)
}

func (l *Ledger) removeAt(i int) {
	l.lines = append(l.lines[:i], l.lines[i+1:]...)
}

func lineTotal(unit decimal.Decimal, qty int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(qty)))
}

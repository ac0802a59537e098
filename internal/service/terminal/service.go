// Package terminal runs the cart of one cash desk: the ledger, the active
// currency, the catalog it prices from and the checkout submitter.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dutyfree-pos/internal/cart"
	"dutyfree-pos/internal/checkout"
	"dutyfree-pos/internal/domain"

	"github.com/rs/zerolog"
)

// ErrCartLocked is returned for any cart change while a checkout awaits the
// Sales API.
var ErrCartLocked = errors.New("cart is locked during checkout")

// Catalog is the product snapshot the cart prices from.
type Catalog interface {
	Get(id string) (domain.Product, error)
	ByID() map[string]domain.Product
	Refresh(ctx context.Context) (map[string]domain.Product, error)
}

// Submitter sends a cart to the Sales API.
type Submitter interface {
	Submit(ctx context.Context, ledger checkout.Ledger, currency domain.Currency, method domain.PaymentMethod) (*checkout.Attempt, error)
}

// Snapshot is a consistent view of the cart.
type Snapshot struct {
	Lines       []domain.CartLine
	Currency    domain.Currency
	Totals      domain.Totals
	CheckingOut bool
}

type Service struct {
	terminalID string
	catalog    Catalog
	submitter  Submitter
	logger     zerolog.Logger

	mu          sync.Mutex
	ledger      *cart.Ledger
	currency    domain.Currency
	checkingOut bool
}

func New(terminalID string, currency domain.Currency, catalog Catalog, submitter Submitter, logger zerolog.Logger) *Service {
	return &Service{
		terminalID: terminalID,
		catalog:    catalog,
		submitter:  submitter,
		logger:     logger.With().Str("component", "terminal").Str("terminal", terminalID).Logger(),
		ledger:     cart.NewLedger(),
		currency:   currency,
	}
}

// Add puts one unit of the catalog product in the cart.
func (s *Service) Add(productID string) (domain.CartLine, error) {
	p, err := s.catalog.Get(productID)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("product %s: %w", productID, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return domain.CartLine{}, ErrCartLocked
	}
	return s.ledger.Add(p, s.currency)
}

// UpdateQuantity adds delta to the line's quantity, dropping it at zero.
func (s *Service) UpdateQuantity(productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCartLocked
	}
	if !s.ledger.UpdateQuantity(productID, delta) {
		return fmt.Errorf("cart line %s: %w", productID, domain.ErrNotFound)
	}
	return nil
}

func (s *Service) Remove(productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCartLocked
	}
	s.ledger.Remove(productID)
	return nil
}

func (s *Service) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCartLocked
	}
	s.ledger.Clear()
	return nil
}

// SetCurrency switches the active currency and reprices every line.
func (s *Service) SetCurrency(c domain.Currency) error {
	if !c.Valid() {
		return domain.ErrUnsupportedCurrency
	}
	products := s.catalog.ByID()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		return ErrCartLocked
	}
	s.currency = c
	s.reprice(products)
	return nil
}

// RefreshCatalog reloads the catalog and reprices the cart against it.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	s.mu.Lock()
	busy := s.checkingOut
	s.mu.Unlock()
	if busy {
		return 0, ErrCartLocked
	}

	products, err := s.catalog.Refresh(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut {
		// The new snapshot is picked up by the next reprice.
		return len(products), nil
	}
	s.reprice(products)
	return len(products), nil
}

// reprice must be called with mu held.
func (s *Service) reprice(products map[string]domain.Product) {
	stale := s.ledger.RepriceAll(s.currency, products)
	if len(stale) > 0 {
		s.logger.Warn().Strs("product_ids", stale).Str("currency", s.currency.String()).
			Msg("products missing from catalog, keeping previous price")
	}
}

func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.ledger.Lines()
	return Snapshot{
		Lines:       lines,
		Currency:    s.currency,
		Totals:      checkout.Compute(lines),
		CheckingOut: s.checkingOut,
	}
}

// Checkout submits the cart in the active currency with a single payment.
// The cart is locked until the Sales API answers.
func (s *Service) Checkout(ctx context.Context, method domain.PaymentMethod) (*checkout.Attempt, error) {
	s.mu.Lock()
	if s.checkingOut {
		s.mu.Unlock()
		return nil, ErrCartLocked
	}
	s.checkingOut = true
	currency := s.currency
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.checkingOut = false
		s.mu.Unlock()
	}()

	return s.submitter.Submit(ctx, lockedLedger{s}, currency, method)
}

// OnSession clears the cart when the operator session ends.
func (s *Service) OnSession(user *domain.User) {
	if user != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkingOut || s.ledger.IsEmpty() {
		return
	}
	s.logger.Info().Int("lines", s.ledger.Len()).Msg("session ended, cart cleared")
	s.ledger.Clear()
}

// lockedLedger is the submitter's view of the ledger while Checkout holds
// the checkout flag.
type lockedLedger struct {
	s *Service
}

func (l lockedLedger) Lines() []domain.CartLine {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return l.s.ledger.Lines()
}

func (l lockedLedger) Clear() {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.ledger.Clear()
}

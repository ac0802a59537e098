// Package checkout totals the cart and submits it to the Sales API as one sale.
package checkout

import (
	"context"
	"sync"
	"sync/atomic"

	"dutyfree-pos/internal/domain"

	"github.com/rs/zerolog"
)

// State of the submitter.
type State int32

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// SaleCreator is the part of the Sales API the submitter needs.
type SaleCreator interface {
	CreateSale(ctx context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error)
}

// Ledger is the cart as seen by the submitter. Implementations must be safe
// to call from the goroutine running Submit.
type Ledger interface {
	Lines() []domain.CartLine
	Clear()
}

// Attempt describes a checkout that reached the Sales API.
type Attempt struct {
	Request domain.SaleRequest
	Totals  domain.Totals
	Receipt *domain.SaleReceipt
	Err     error
}

// Recorder is told about every attempt that reached the network.
type Recorder interface {
	Record(ctx context.Context, a Attempt)
}

// Submitter drives Idle -> Submitting -> {Succeeded, Failed}. Only one
// submission may be in flight; nothing is retried.
type Submitter struct {
	api      SaleCreator
	logger   zerolog.Logger
	recorder Recorder

	inFlight atomic.Bool
	mu       sync.RWMutex
	state    State
}

// NewSubmitter builds a Submitter. recorder may be nil.
func NewSubmitter(api SaleCreator, recorder Recorder, logger zerolog.Logger) *Submitter {
	return &Submitter{
		api:      api,
		recorder: recorder,
		logger:   logger.With().Str("component", "checkout").Logger(),
		state:    StateIdle,
	}
}

// State returns the state of the current or last submission. Each Submit
// starts from StateIdle.
func (s *Submitter) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Submitting reports whether a sale is currently awaiting the Sales API.
func (s *Submitter) Submitting() bool {
	return s.inFlight.Load()
}

// Submit sends the cart with a single payment of the full total. On
// success the ledger is cleared; on any failure it is left exactly as it was.
// Every error returned is a *Error.
func (s *Submitter) Submit(ctx context.Context, ledger Ledger, currency domain.Currency, method domain.PaymentMethod) (*Attempt, error) {
	if !currency.Valid() {
		return nil, validationError(domain.ErrUnsupportedCurrency, "Devise non prise en charge")
	}
	if _, err := domain.ParsePaymentMethod(string(method)); err != nil {
		return nil, validationError(err, "Moyen de paiement non pris en charge")
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, validationError(ErrInProgress, inProgressMessage)
	}
	defer s.inFlight.Store(false)
	s.setState(StateIdle)

	lines := ledger.Lines()
	if len(lines) == 0 {
		return nil, validationError(ErrEmptyCart, emptyCartMessage)
	}

	s.setState(StateSubmitting)
	totals := Compute(lines)
	req := domain.SaleRequest{
		Items:    lines,
		Currency: currency,
		Payments: []domain.Payment{{
			Method:   method,
			Amount:   totals.Total,
			Currency: currency,
		}},
	}

	receipt, err := s.api.CreateSale(ctx, req)
	attempt := &Attempt{Request: req, Totals: totals, Receipt: receipt, Err: err}
	if err != nil {
		s.setState(StateFailed)
		cerr := classify(err)
		attempt.Err = cerr
		s.logger.Warn().Err(err).Str("kind", cerr.Kind.String()).
			Int("lines", len(lines)).Str("total", totals.Total.String()).Str("currency", currency.String()).
			Msg("sale rejected, cart kept")
		s.record(ctx, *attempt)
		return attempt, cerr
	}

	ledger.Clear()
	s.setState(StateSucceeded)
	ev := s.logger.Info().Int("lines", len(lines)).Str("total", totals.Total.String()).
		Str("currency", currency.String()).Str("method", string(method))
	if receipt != nil {
		ev = ev.Str("sale_number", receipt.SaleNumber)
	}
	ev.Msg("sale recorded")
	s.record(ctx, *attempt)
	return attempt, nil
}

func (s *Submitter) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Submitter) record(ctx context.Context, a Attempt) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(context.WithoutCancel(ctx), a)
}

package checkout

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"dutyfree-pos/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLedger struct {
	lines   []domain.CartLine
	cleared bool
}

func (l *stubLedger) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *stubLedger) Clear() {
	l.lines = nil
	l.cleared = true
}

type stubSales struct {
	calls   int
	lastReq domain.SaleRequest
	receipt *domain.SaleReceipt
	err     error
	onCall  func()
}

func (s *stubSales) CreateSale(_ context.Context, req domain.SaleRequest) (*domain.SaleReceipt, error) {
	s.calls++
	s.lastReq = req
	if s.onCall != nil {
		s.onCall()
	}
	return s.receipt, s.err
}

type stubRecorder struct {
	attempts []Attempt
}

func (r *stubRecorder) Record(_ context.Context, a Attempt) {
	r.attempts = append(r.attempts, a)
}

type stubStatusErr struct {
	status  int
	message string
}

func (e *stubStatusErr) Error() string         { return e.message }
func (e *stubStatusErr) StatusCode() int       { return e.status }
func (e *stubStatusErr) ServerMessage() string { return e.message }

func TestSubmitEmptyCartNeverCallsAPI(t *testing.T) {
	api := &stubSales{}
	rec := &stubRecorder{}
	s := NewSubmitter(api, rec, zerolog.Nop())

	_, err := s.Submit(context.Background(), &stubLedger{}, domain.CurrencyXOF, domain.PaymentCash)

	require.Error(t, err)
	assert.True(t, IsKind(err, KindValidation))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 0, api.calls)
	assert.Empty(t, rec.attempts)
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmitEmptyCartAfterSaleReturnsToIdle(t *testing.T) {
	api := &stubSales{receipt: &domain.SaleReceipt{ID: "1"}}
	s := NewSubmitter(api, nil, zerolog.Nop())
	ledger := &stubLedger{lines: []domain.CartLine{line("p1", "1000", 1, "18")}}

	_, err := s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentCash)
	require.NoError(t, err)
	require.Equal(t, StateSucceeded, s.State())

	_, err = s.Submit(context.Background(), &stubLedger{}, domain.CurrencyXOF, domain.PaymentCash)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, StateIdle, s.State())
}

func TestSubmitSendsSinglePaymentOfTotal(t *testing.T) {
	api := &stubSales{receipt: &domain.SaleReceipt{ID: "42", SaleNumber: "S-0042"}}
	rec := &stubRecorder{}
	s := NewSubmitter(api, rec, zerolog.Nop())
	ledger := &stubLedger{lines: []domain.CartLine{line("p1", "1000", 2, "18")}}

	attempt, err := s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentCash)
	require.NoError(t, err)

	require.Equal(t, 1, api.calls)
	req := api.lastReq
	assert.Equal(t, domain.CurrencyXOF, req.Currency)
	require.Len(t, req.Items, 1)
	require.Len(t, req.Payments, 1)
	assert.Equal(t, domain.PaymentCash, req.Payments[0].Method)
	assert.Equal(t, domain.CurrencyXOF, req.Payments[0].Currency)
	assert.True(t, req.Payments[0].Amount.Equal(dec("2360")), req.Payments[0].Amount.String())

	assert.True(t, ledger.cleared)
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, "S-0042", attempt.Receipt.SaleNumber)
	assert.True(t, attempt.Totals.Subtotal.Equal(dec("2000")))
	require.Len(t, rec.attempts, 1)
	assert.NoError(t, rec.attempts[0].Err)
	assert.False(t, s.Submitting())
}

func TestSubmitFailureKeepsCart(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "network", err: errors.New("dial tcp: connection refused"), kind: KindTransport},
		{name: "deadline", err: context.DeadlineExceeded, kind: KindTransport},
		{name: "server error", err: &stubStatusErr{status: http.StatusBadGateway, message: "upstream down"}, kind: KindTransport},
		{name: "rejection", err: &stubStatusErr{status: http.StatusConflict, message: "Stock insuffisant"}, kind: KindRejection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &stubSales{err: tt.err}
			rec := &stubRecorder{}
			s := NewSubmitter(api, rec, zerolog.Nop())
			original := []domain.CartLine{line("p1", "1000", 2, "18"), line("p2", "500", 1, "0")}
			ledger := &stubLedger{lines: append([]domain.CartLine(nil), original...)}

			_, err := s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentCard)

			require.Error(t, err)
			assert.True(t, IsKind(err, tt.kind), "got %v", err)
			assert.ErrorIs(t, err, tt.err)
			assert.False(t, ledger.cleared)
			assert.Equal(t, original, ledger.lines)
			assert.Equal(t, StateFailed, s.State())
			assert.Equal(t, 1, api.calls, "no automatic retry")
			require.Len(t, rec.attempts, 1)
			assert.Error(t, rec.attempts[0].Err)
		})
	}
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	ledger := &stubLedger{lines: []domain.CartLine{line("p1", "1000", 1, "0")}}
	api := &stubSales{receipt: &domain.SaleReceipt{ID: "1"}}
	s := NewSubmitter(api, nil, zerolog.Nop())

	var nestedErr error
	api.onCall = func() {
		assert.True(t, s.Submitting())
		assert.Equal(t, StateSubmitting, s.State())
		_, nestedErr = s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentCash)
	}

	_, err := s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentCash)
	require.NoError(t, err)
	assert.ErrorIs(t, nestedErr, ErrInProgress)
	assert.True(t, IsKind(nestedErr, KindValidation))
	assert.Equal(t, 1, api.calls)
}

func TestSubmitValidatesPaymentMethod(t *testing.T) {
	api := &stubSales{}
	s := NewSubmitter(api, nil, zerolog.Nop())
	ledger := &stubLedger{lines: []domain.CartLine{line("p1", "1000", 1, "0")}}

	_, err := s.Submit(context.Background(), ledger, domain.CurrencyXOF, domain.PaymentMethod("CHEQUE"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedPaymentMethod)
	assert.Equal(t, 0, api.calls)
}

func TestNotification(t *testing.T) {
	assert.Equal(t, emptyCartMessage, Notification(validationError(ErrEmptyCart, emptyCartMessage)))
	assert.Equal(t, "Impossible d'enregistrer la vente: Stock insuffisant",
		Notification(classify(&stubStatusErr{status: http.StatusBadRequest, message: "Stock insuffisant"})))
	assert.Equal(t, failedSaleMessage, Notification(errors.New("boom")))
}

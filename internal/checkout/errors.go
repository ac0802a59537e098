package checkout

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrEmptyCart rejects a checkout with nothing to sell.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInProgress rejects a second checkout while one is awaiting the Sales API.
	ErrInProgress = errors.New("checkout already in progress")
)

// Kind classifies a checkout failure.
type Kind int

const (
	// KindValidation failures are decided locally and never reach the network.
	KindValidation Kind = iota + 1
	// KindTransport covers connectivity failures, timeouts and 5xx answers.
	KindTransport
	// KindRejection is a structured refusal from the Sales API, e.g. insufficient stock.
	KindRejection
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindRejection:
		return "rejection"
	}
	return "unknown"
}

const (
	emptyCartMessage  = "Panier vide: ajoutez des produits avant de procéder au paiement"
	inProgressMessage = "Un paiement est déjà en cours"
	failedSaleMessage = "Impossible d'enregistrer la vente"
)

// Error is the single shape every checkout failure takes at the submitter
// boundary. Message is safe to show to the cashier.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("checkout %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("checkout %s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Notification is the text surfaced to the cashier for err.
func Notification(err error) string {
	var cerr *Error
	if errors.As(err, &cerr) {
		if cerr.Detail != "" {
			return cerr.Message + ": " + cerr.Detail
		}
		return cerr.Message
	}
	return failedSaleMessage
}

// IsKind reports whether err is a checkout Error of kind k.
func IsKind(err error, k Kind) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.Kind == k
}

func validationError(err error, message string) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// statusError is satisfied by transport errors that carry an HTTP status
// and a server supplied message.
type statusError interface {
	error
	StatusCode() int
	ServerMessage() string
}

// classify turns a failed Sales API call into a transport or rejection
// error. Anything without an HTTP status, deadlines included, is transport.
func classify(err error) *Error {
	var serr statusError
	if !errors.As(err, &serr) {
		return &Error{Kind: KindTransport, Message: failedSaleMessage, Err: err}
	}
	kind := KindTransport
	if code := serr.StatusCode(); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		kind = KindRejection
	}
	return &Error{Kind: kind, Message: failedSaleMessage, Detail: serr.ServerMessage(), Err: err}
}

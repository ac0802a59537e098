package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidProduct indicates a product without a usable identity.
	ErrInvalidProduct = errors.New("product id required")
	// ErrUnsupportedCurrency is returned for currencies outside XOF, EUR and USD.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	// ErrUnsupportedPaymentMethod is returned for payment methods outside CASH, CARD and MOBILE_MONEY.
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
)

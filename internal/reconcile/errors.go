package reconcile

import (
	"errors"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

var (
	ErrInvalidAmount        = errors.New("payment amount must be a positive number")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
)

// PaymentRejectedError is returned when the commerce API declines a payment.
type PaymentRejectedError struct {
	StatusCode int
	Message    string
}

func (e *PaymentRejectedError) Error() string {
	return fmt.Sprintf("payment rejected (status %d): %s", e.StatusCode, e.Message)
}

// CancelRejectedError is returned when the commerce API refuses to cancel an order,
// typically because it was already settled.
type CancelRejectedError struct {
	StatusCode int
	Message    string
}

func (e *CancelRejectedError) Error() string {
	return fmt.Sprintf("cancel rejected (status %d): %s", e.StatusCode, e.Message)
}

type UnrecognizedStatusError struct {
	Status domain.OrderStatus
}

func (e *UnrecognizedStatusError) Error() string {
	return fmt.Sprintf("unrecognized order status %q", string(e.Status))
}

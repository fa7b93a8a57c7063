package cart

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCart   = errors.New("cart is empty, nothing to checkout")
	ErrInvalidLine = errors.New("invalid cart line")
)

// CheckoutFailedError is returned when the order could not be created.
// The cart is left exactly as it was before the attempt.
type CheckoutFailedError struct {
	// StatusCode is the HTTP status of the order-creation response, or 0 on transport failure.
	StatusCode int
	Diagnostic string
	Err        error
}

func (e *CheckoutFailedError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("checkout failed: status=%d: %s", e.StatusCode, e.Diagnostic)
	}
	return fmt.Sprintf("checkout failed: %s", e.Diagnostic)
}

func (e *CheckoutFailedError) Unwrap() error {
	return e.Err
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/commerce"
	"github.com/fjod/storefront/internal/reconcile"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// withTimeout bounds ctx by d; a non-positive d leaves ctx without a deadline.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondErrorDetails(w, status, code, message, "")
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// handleError converts a domain or remote-call error into an HTTP response.
// Every failure ends up as an inline message; nothing propagates as a fault.
func handleError(w http.ResponseWriter, err error) {
	var (
		checkoutErr *cart.CheckoutFailedError
		payErr      *reconcile.PaymentRejectedError
		cancelErr   *reconcile.CancelRejectedError
		statusErr   *reconcile.UnrecognizedStatusError
		fetchErr    *commerce.FetchError
	)

	switch {
	case errors.Is(err, cart.ErrEmptyCart):
		respondError(w, http.StatusBadRequest, "empty_cart", err.Error())
	case errors.Is(err, reconcile.ErrInvalidAmount):
		respondErrorDetails(w, http.StatusBadRequest, "invalid_amount", "payment amount must be a positive number", err.Error())
	case errors.Is(err, reconcile.ErrUnknownPaymentMethod):
		respondErrorDetails(w, http.StatusBadRequest, "invalid_method", "unknown payment method", err.Error())
	case errors.Is(err, commerce.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "commerce api unavailable, try again later")
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "commerce api did not answer in time")
	case errors.As(err, &checkoutErr):
		respondErrorDetails(w, http.StatusBadGateway, "checkout_failed", "order could not be created", checkoutErr.Diagnostic)
	case errors.As(err, &payErr):
		respondError(w, http.StatusUnprocessableEntity, "payment_rejected", payErr.Message)
	case errors.As(err, &cancelErr):
		respondError(w, http.StatusConflict, "cancel_rejected", cancelErr.Message)
	case errors.As(err, &statusErr):
		respondError(w, http.StatusBadGateway, "unrecognized_status", statusErr.Error())
	case errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusNotFound:
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.As(err, &fetchErr):
		respondErrorDetails(w, http.StatusBadGateway, "fetch_failed", "could not load "+fetchErr.Op, err.Error())
	default:
		respondErrorDetails(w, http.StatusBadGateway, "upstream_error", "commerce api request failed", err.Error())
	}
}

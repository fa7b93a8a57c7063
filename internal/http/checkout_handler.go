package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

type Checkouter interface {
	Checkout(ctx context.Context, customerID int64) (int64, error)
}

type CheckoutHandler struct {
	cart              Checkouter
	defaultCustomerID int64
	timeout           time.Duration
}

func NewCheckoutHandler(cart Checkouter, defaultCustomerID int64, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		cart:              cart,
		defaultCustomerID: defaultCustomerID,
		timeout:           timeout,
	}
}

type CheckoutRequestDTO struct {
	CustomerID int64 `json:"customerId"`
}

type CheckoutResponseDTO struct {
	OrderID int64  `json:"orderId"`
	Message string `json:"message"`
}

// POST /api/v1/checkout
// The body is optional; without a customerId the configured default customer is used.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.CustomerID < 0 {
		respondError(w, http.StatusBadRequest, "invalid_customer_id", "customerId must be positive")
		return
	}
	customerID := req.CustomerID
	if customerID == 0 {
		customerID = h.defaultCustomerID
	}

	orderID, err := h.cart.Checkout(ctx, customerID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, CheckoutResponseDTO{
		OrderID: orderID,
		Message: "order placed",
	})
}

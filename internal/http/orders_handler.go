package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/money"
	"github.com/fjod/storefront/internal/reconcile"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderReader interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	GetOrder(ctx context.Context, orderID int64) (*domain.Order, error)
}

type OrderActions interface {
	SubmitPayment(ctx context.Context, orderID int64, amount string, method domain.PaymentMethod) error
	CancelOrder(ctx context.Context, orderID int64) error
}

type OrdersHandler struct {
	orders  OrderReader
	actions OrderActions
	variant reconcile.MethodVariant
	timeout time.Duration
	log     *zap.Logger
}

func NewOrdersHandler(orders OrderReader, actions OrderActions, variant reconcile.MethodVariant, timeout time.Duration, log *zap.Logger) *OrdersHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrdersHandler{
		orders:  orders,
		actions: actions,
		variant: variant,
		timeout: timeout,
		log:     log,
	}
}

type OrderSummaryDTO struct {
	ID             int64              `json:"id"`
	CustomerName   string             `json:"customerName"`
	Status         domain.OrderStatus `json:"status"`
	CreatedAt      domain.Timestamp   `json:"createdAt"`
	TotalCents     int64              `json:"totalCents"`
	Total          string             `json:"total"`
	PaidCents      int64              `json:"paidCents"`
	RemainingCents int64              `json:"remainingCents"`
	State          string             `json:"state"`
}

// amountInput accepts the payment amount as a JSON string ("30.00") or number (30.0).
type amountInput string

func (a *amountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amountInput(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or numeric string")
	}
	*a = amountInput(n.String())
	return nil
}

type PaymentRequestDTO struct {
	Amount amountInput          `json:"amount"`
	Method domain.PaymentMethod `json:"method"`
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx)
	if err != nil {
		handleError(w, err)
		return
	}

	dtos := make([]OrderSummaryDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, h.summary(o))
	}

	respondJSON(w, http.StatusOK, dtos)
}

func (h *OrdersHandler) summary(o domain.Order) OrderSummaryDTO {
	dto := OrderSummaryDTO{
		ID:             o.ID,
		CustomerName:   o.CustomerName,
		Status:         o.Status,
		CreatedAt:      o.CreatedAt,
		TotalCents:     o.TotalCents,
		Total:          money.FormatMajor(o.TotalCents),
		PaidCents:      o.PaidCents(),
		RemainingCents: o.RemainingCents(),
	}
	view, err := reconcile.Reconcile(o, h.variant)
	if err != nil {
		h.log.Warn("order with unrecognized status in listing", zap.Int64("order_id", o.ID), zap.Error(err))
		dto.State = "unrecognized"
		return dto
	}
	dto.State = view.State.String()
	return dto
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	view, err := h.view(ctx, orderID)
	if err != nil {
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// POST /api/v1/orders/{order_id}/payments
func (h *OrdersHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	if !h.actionAllowed(ctx, w, orderID, func(v *reconcile.View) bool { return v.CanPay }) {
		return
	}

	if err := h.actions.SubmitPayment(ctx, orderID, string(req.Amount), req.Method); err != nil {
		handleError(w, err)
		return
	}

	h.respondRefreshed(ctx, w, orderID, http.StatusCreated)
}

// POST /api/v1/orders/{order_id}/cancel
func (h *OrdersHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	if !h.actionAllowed(ctx, w, orderID, func(v *reconcile.View) bool { return v.CanCancel }) {
		return
	}

	if err := h.actions.CancelOrder(ctx, orderID); err != nil {
		handleError(w, err)
		return
	}

	h.respondRefreshed(ctx, w, orderID, http.StatusOK)
}

func (h *OrdersHandler) view(ctx context.Context, orderID int64) (*reconcile.View, error) {
	order, err := h.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return reconcile.Reconcile(*order, h.variant)
}

// actionAllowed re-fetches the order and refuses the action unless its
// classification permits it.
func (h *OrdersHandler) actionAllowed(ctx context.Context, w http.ResponseWriter, orderID int64, allowed func(*reconcile.View) bool) bool {
	view, err := h.view(ctx, orderID)
	if err != nil {
		handleError(w, err)
		return false
	}
	if !allowed(view) {
		respondErrorDetails(w, http.StatusConflict, "order_locked",
			"order does not accept this action", "order is "+view.State.String())
		return false
	}
	return true
}

// respondRefreshed answers with the order as the server sees it after an action.
func (h *OrdersHandler) respondRefreshed(ctx context.Context, w http.ResponseWriter, orderID int64, status int) {
	view, err := h.view(ctx, orderID)
	if err != nil {
		h.log.Warn("order refresh after action failed", zap.Int64("order_id", orderID), zap.Error(err))
		respondJSON(w, status, map[string]any{"orderId": orderID})
		return
	}
	respondJSON(w, status, view)
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a positive integer")
		return 0, false
	}
	return orderID, true
}

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/money"
	"github.com/go-chi/chi/v5"
)

type CartStore interface {
	AddItem(ctx context.Context, productID int64, name string, unitPriceCents int64) error
	RemoveItem(ctx context.Context, productID int64) error
	ChangeQuantity(ctx context.Context, productID int64, delta int) error
	Lines() []domain.CartLine
	TotalCents() int64
	TotalQuantity() int
}

type CartHandler struct {
	store CartStore
}

func NewCartHandler(store CartStore) *CartHandler {
	return &CartHandler{store: store}
}

type AddItemRequestDTO struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

type ChangeQuantityRequestDTO struct {
	Delta *int `json:"delta"`
}

type CartLineDTO struct {
	ProductID      int64  `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
	SubtotalCents  int64  `json:"subtotalCents"`
	Subtotal       string `json:"subtotal"`
}

type CartResponseDTO struct {
	Message       string        `json:"message,omitempty"`
	Lines         []CartLineDTO `json:"lines"`
	TotalCents    int64         `json:"totalCents"`
	Total         string        `json:"total"`
	TotalQuantity int           `json:"totalQuantity"`
}

func (h *CartHandler) cartResponse(message string) CartResponseDTO {
	lines := h.store.Lines()
	dtos := make([]CartLineDTO, 0, len(lines))
	for _, l := range lines {
		dtos = append(dtos, CartLineDTO{
			ProductID:      l.ProductID,
			Name:           l.Name,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			SubtotalCents:  l.SubtotalCents(),
			Subtotal:       money.FormatMajor(l.SubtotalCents()),
		})
	}
	total := h.store.TotalCents()
	return CartResponseDTO{
		Message:       message,
		Lines:         dtos,
		TotalCents:    total,
		Total:         money.FormatMajor(total),
		TotalQuantity: h.store.TotalQuantity(),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse(""))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be positive")
		return
	}
	if req.UnitPriceCents < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "unitPriceCents must not be negative")
		return
	}

	if err := h.store.AddItem(r.Context(), req.ProductID, req.Name, req.UnitPriceCents); err != nil {
		respondErrorDetails(w, http.StatusInternalServerError, "persist_failed", "cart could not be saved", err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, h.cartResponse(cart.AddedMessage(req.Name)))
}

// PATCH /api/v1/cart/items/{product_id}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req ChangeQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Delta == nil {
		respondError(w, http.StatusBadRequest, "missing_delta", "delta is required")
		return
	}

	if err := h.store.ChangeQuantity(r.Context(), productID, *req.Delta); err != nil {
		respondErrorDetails(w, http.StatusInternalServerError, "persist_failed", "cart could not be saved", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(""))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	if err := h.store.RemoveItem(r.Context(), productID); err != nil {
		respondErrorDetails(w, http.StatusInternalServerError, "persist_failed", "cart could not be saved", err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse(""))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}

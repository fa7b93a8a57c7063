package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/fjod/storefront/internal/commerce"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/money"
)

type ProductSearcher interface {
	SearchProducts(ctx context.Context, q commerce.ProductQuery) ([]domain.Product, error)
}

type ProductHandler struct {
	products ProductSearcher
	timeout  time.Duration
}

func NewProductHandler(products ProductSearcher, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

type ProductResponse struct {
	domain.Product
	Price string `json:"price"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// GET /api/v1/products?name=&category=&active=
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := withTimeout(r.Context(), h.timeout)
	defer cancel()

	q := commerce.ProductQuery{
		Name:     r.URL.Query().Get("name"),
		Category: r.URL.Query().Get("category"),
		Active:   true,
	}
	if raw := r.URL.Query().Get("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_active", "active must be true or false")
			return
		}
		q.Active = active
	}

	res, err := h.products.SearchProducts(ctx, q)
	if err != nil {
		handleError(w, err)
		return
	}

	products := make([]ProductResponse, len(res))
	for i, p := range res {
		products[i] = ProductResponse{Product: p, Price: money.FormatMajor(p.PriceCents)}
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

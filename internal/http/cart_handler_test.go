package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, httptest.NewRequest(method, path, bytes.NewReader([]byte(body))))
	return recorder
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) CartResponseDTO {
	t.Helper()
	var resp CartResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestGetCart_Empty(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cart", "")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.Empty(t, resp.Lines)
	assert.Equal(t, "0.00", resp.Total)
	assert.Equal(t, 0, resp.TotalQuantity)
}

func TestAddItem_Success(t *testing.T) {
	env := setupTestRouter(t)
	body := `{"productId":1,"name":"Teclado","unitPriceCents":15000}`

	env.do(t, http.MethodPost, "/api/v1/cart/items", body)
	rec := env.do(t, http.MethodPost, "/api/v1/cart/items", body)

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeCart(t, rec)
	assert.Equal(t, "Teclado added", resp.Message)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, 2, resp.Lines[0].Quantity)
	assert.Equal(t, "300.00", resp.Lines[0].Subtotal)
	assert.Equal(t, int64(30000), resp.TotalCents)
	assert.Equal(t, 2, resp.TotalQuantity)
}

func TestAddItem_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
	}{
		{"invalid json", "invalid json", "invalid_request"},
		{"missing product", `{"name":"X","unitPriceCents":10}`, "invalid_product_id"},
		{"negative price", `{"productId":1,"unitPriceCents":-10}`, "invalid_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestRouter(t)

			rec := env.do(t, http.MethodPost, "/api/v1/cart/items", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Code)
		})
	}
}

func TestChangeQuantity(t *testing.T) {
	env := setupTestRouter(t)
	require.NoError(t, env.store.AddItem(context.Background(), 3, "Mouse", 4990))

	rec := env.do(t, http.MethodPatch, "/api/v1/cart/items/3", `{"delta":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeCart(t, rec).Lines[0].Quantity)

	rec = env.do(t, http.MethodPatch, "/api/v1/cart/items/3", `{"delta":-100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeCart(t, rec).Lines[0].Quantity)
}

func TestChangeQuantity_BadInput(t *testing.T) {
	env := setupTestRouter(t)

	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPatch, "/api/v1/cart/items/abc", `{"delta":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPatch, "/api/v1/cart/items/1", `{}`).Code)
}

func TestRemoveItem(t *testing.T) {
	env := setupTestRouter(t)
	require.NoError(t, env.store.AddItem(context.Background(), 3, "Mouse", 4990))

	rec := env.do(t, http.MethodDelete, "/api/v1/cart/items/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Lines)

	rec = env.do(t, http.MethodDelete, "/api/v1/cart/items/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	env := setupTestRouter(t)

	rec := env.do(t, http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, "given-id", rec.Header().Get("X-Request-ID"))
}

package commerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"github.com/fjod/storefront/internal/domain"
)

var ErrMissingOrderID = errors.New("order response carries no id")

// ListOrders returns all orders newest first, by reversing the order they arrive in.
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.getJSON(ctx, "orders", "/orders", nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	slices.Reverse(orders)
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order domain.Order
	if err := c.getJSON(ctx, "order", fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateOrder posts the order and returns the identifier assigned by the server.
// The response is either the created order object or a bare identifier.
func (c *Client) CreateOrder(ctx context.Context, req domain.OrderRequest) (int64, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders", nil, req)
	if err != nil {
		return 0, err
	}
	return decodeOrderID(body)
}

func decodeOrderID(body []byte) (int64, error) {
	var created struct {
		ID *int64 `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err == nil {
		if created.ID == nil {
			return 0, ErrMissingOrderID
		}
		return *created.ID, nil
	}

	var id int64
	if err := json.Unmarshal(body, &id); err != nil {
		return 0, fmt.Errorf("decode order response: %w", err)
	}
	return id, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/orders/%d", orderID), nil, domain.StatusUpdate{Status: status})
	return err
}

package commerce

import (
	"context"
	"net/http"

	"github.com/fjod/storefront/internal/domain"
)

func (c *Client) CreatePayment(ctx context.Context, req domain.PaymentRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/payments", nil, req)
	return err
}

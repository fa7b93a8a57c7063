package commerce

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fjod/storefront/internal/domain"
)

// ProductQuery filters the catalogue. Empty Name and Category are omitted;
// Active is always sent.
type ProductQuery struct {
	Name     string
	Category string
	Active   bool
}

func (c *Client) SearchProducts(ctx context.Context, q ProductQuery) ([]domain.Product, error) {
	query := url.Values{}
	if q.Name != "" {
		query.Set("name", q.Name)
	}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	query.Set("active", strconv.FormatBool(q.Active))

	var products []domain.Product
	if err := c.getJSON(ctx, "products", "/products", query, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

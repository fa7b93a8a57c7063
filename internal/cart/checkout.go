package cart

import (
	"context"
	"errors"

	"github.com/fjod/storefront/internal/domain"
	"go.uber.org/zap"
)

// statusCoder is implemented by transport errors that carry an HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Checkout submits the current lines as an order for customerID. On success the
// cart is cleared and persisted; on any failure it is left untouched.
//
// The cart lock is not held during the remote call, so lines may still be
// edited meanwhile; a successful checkout clears whatever is in the cart then.
func (s *Store) Checkout(ctx context.Context, customerID int64) (int64, error) {
	s.checkoutMu.Lock()
	defer s.checkoutMu.Unlock()

	req, ok := s.orderRequest(customerID)
	if !ok {
		return 0, ErrEmptyCart
	}

	orderID, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		s.log.Warn("checkout failed", zap.Int64("customer_id", customerID), zap.Error(err))
		return 0, checkoutFailed(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	if err := s.persist(ctx); err != nil {
		s.log.Error("order created but cleared cart was not persisted",
			zap.Int64("order_id", orderID), zap.Error(err))
	}
	s.notifier.CartChanged(nil, 0)

	s.log.Info("checkout completed", zap.Int64("order_id", orderID), zap.Int64("customer_id", customerID))
	return orderID, nil
}

func (s *Store) orderRequest(customerID int64) (domain.OrderRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return domain.OrderRequest{}, false
	}

	items := make([]domain.OrderRequestItem, 0, len(s.lines))
	for _, l := range s.lines {
		items = append(items, domain.OrderRequestItem{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return domain.OrderRequest{CustomerID: customerID, Items: items}, true
}

func checkoutFailed(err error) *CheckoutFailedError {
	failed := &CheckoutFailedError{Diagnostic: err.Error(), Err: err}
	var sc statusCoder
	if errors.As(err, &sc) {
		failed.StatusCode = sc.HTTPStatus()
	}
	return failed
}

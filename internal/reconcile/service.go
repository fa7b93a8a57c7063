package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/money"
	"go.uber.org/zap"
)

type PaymentCreator interface {
	CreatePayment(ctx context.Context, req domain.PaymentRequest) error
}

type StatusUpdater interface {
	UpdateOrderStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

// rejection is implemented by errors for responses the server answered with a
// non-success status.
type rejection interface {
	HTTPStatus() int
	ServerMessage() string
}

// Service issues the two order actions. It keeps no order state between calls;
// callers re-fetch the order after every action.
type Service struct {
	payments PaymentCreator
	orders   StatusUpdater
	log      *zap.Logger
}

func NewService(payments PaymentCreator, orders StatusUpdater, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{payments: payments, orders: orders, log: log}
}

// SubmitPayment registers a payment of amount (major units, e.g. "30.00").
// Amounts are not clamped to the remaining balance; the server decides on overpayment.
func (s *Service) SubmitPayment(ctx context.Context, orderID int64, amount string, method domain.PaymentMethod) error {
	cents, err := money.ParseCents(amount)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if cents <= 0 {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}
	if !method.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, string(method))
	}

	req := domain.PaymentRequest{OrderID: orderID, AmountCents: cents, Method: method}
	if err := s.payments.CreatePayment(ctx, req); err != nil {
		var rej rejection
		if errors.As(err, &rej) {
			s.log.Warn("payment rejected",
				zap.Int64("order_id", orderID),
				zap.Int("status", rej.HTTPStatus()),
				zap.String("message", rej.ServerMessage()))
			return &PaymentRejectedError{StatusCode: rej.HTTPStatus(), Message: rej.ServerMessage()}
		}
		return fmt.Errorf("submit payment failed: %w", err)
	}

	s.log.Info("payment registered",
		zap.Int64("order_id", orderID),
		zap.Int64("amount_cents", cents),
		zap.String("method", string(method)))
	return nil
}

// CancelOrder moves the order to CANCELLED. There is no undo.
func (s *Service) CancelOrder(ctx context.Context, orderID int64) error {
	if err := s.orders.UpdateOrderStatus(ctx, orderID, domain.OrderStatusCancelled); err != nil {
		var rej rejection
		if errors.As(err, &rej) {
			s.log.Warn("cancel rejected",
				zap.Int64("order_id", orderID),
				zap.Int("status", rej.HTTPStatus()),
				zap.String("message", rej.ServerMessage()))
			return &CancelRejectedError{StatusCode: rej.HTTPStatus(), Message: rej.ServerMessage()}
		}
		return fmt.Errorf("cancel order failed: %w", err)
	}

	s.log.Info("order cancelled", zap.Int64("order_id", orderID))
	return nil
}

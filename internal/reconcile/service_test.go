package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCommerce struct {
	payments  []domain.PaymentRequest
	statuses  []domain.OrderStatus
	payErr    error
	updateErr error
}

func (m *mockCommerce) CreatePayment(_ context.Context, req domain.PaymentRequest) error {
	m.payments = append(m.payments, req)
	return m.payErr
}

func (m *mockCommerce) UpdateOrderStatus(_ context.Context, _ int64, status domain.OrderStatus) error {
	m.statuses = append(m.statuses, status)
	return m.updateErr
}

type rejectedErr struct {
	code int
	msg  string
}

func (e *rejectedErr) Error() string         { return e.msg }
func (e *rejectedErr) HTTPStatus() int       { return e.code }
func (e *rejectedErr) ServerMessage() string { return e.msg }

func newTestService() (*Service, *mockCommerce) {
	m := &mockCommerce{}
	return NewService(m, m, nil), m
}

func TestSubmitPayment_InvalidAmountsNeverReachServer(t *testing.T) {
	for _, amount := range []string{"0", "0.00", "-5", "-0.01", "abc", "", "0.004", "NaN", "1e99999999", "1e-99999999"} {
		sut, m := newTestService()

		err := sut.SubmitPayment(context.Background(), 1, amount, domain.PaymentMethodPix)

		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %q", amount)
		assert.Empty(t, m.payments, "amount %q", amount)
	}
}

func TestSubmitPayment_RoundsHalfAwayFromZero(t *testing.T) {
	sut, m := newTestService()

	require.NoError(t, sut.SubmitPayment(context.Background(), 7, "30.005", domain.PaymentMethodCard))

	require.Len(t, m.payments, 1)
	assert.Equal(t, domain.PaymentRequest{OrderID: 7, AmountCents: 3001, Method: domain.PaymentMethodCard}, m.payments[0])
}

func TestSubmitPayment_DoesNotClampToRemaining(t *testing.T) {
	sut, m := newTestService()

	require.NoError(t, sut.SubmitPayment(context.Background(), 7, "1000000", domain.PaymentMethodBoleto))

	assert.Equal(t, int64(100000000), m.payments[0].AmountCents)
}

func TestSubmitPayment_UnknownMethod(t *testing.T) {
	sut, m := newTestService()

	err := sut.SubmitPayment(context.Background(), 1, "10", "CASH")

	assert.ErrorIs(t, err, ErrUnknownPaymentMethod)
	assert.Empty(t, m.payments)
}

func TestSubmitPayment_Rejected(t *testing.T) {
	sut, m := newTestService()
	m.payErr = &rejectedErr{code: 409, msg: "Pedido já está pago"}

	err := sut.SubmitPayment(context.Background(), 1, "10", domain.PaymentMethodPix)

	var rejected *PaymentRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, 409, rejected.StatusCode)
	assert.Equal(t, "Pedido já está pago", rejected.Message)
}

func TestSubmitPayment_TransportFailure(t *testing.T) {
	sut, m := newTestService()
	transport := errors.New("connection reset")
	m.payErr = transport

	err := sut.SubmitPayment(context.Background(), 1, "10", domain.PaymentMethodPix)

	assert.ErrorIs(t, err, transport)
	var rejected *PaymentRejectedError
	assert.False(t, errors.As(err, &rejected))
}

func TestCancelOrder(t *testing.T) {
	sut, m := newTestService()

	require.NoError(t, sut.CancelOrder(context.Background(), 3))

	assert.Equal(t, []domain.OrderStatus{domain.OrderStatusCancelled}, m.statuses)
}

func TestCancelOrder_Rejected(t *testing.T) {
	sut, m := newTestService()
	m.updateErr = &rejectedErr{code: 400, msg: "Pedido pago não pode ser cancelado"}

	err := sut.CancelOrder(context.Background(), 3)

	var rejected *CancelRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, 400, rejected.StatusCode)
	assert.Contains(t, rejected.Error(), "não pode ser cancelado")
}

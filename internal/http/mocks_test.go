package http

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fjod/storefront/internal/cart"
	"github.com/fjod/storefront/internal/commerce"
	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/reconcile"
	"github.com/fjod/storefront/internal/storage"
	"github.com/go-chi/chi/v5"
)

// fakeCommerce stands in for the commerce API client.
type fakeCommerce struct {
	mu        sync.Mutex
	products  []domain.Product
	queries   []commerce.ProductQuery
	orders    map[int64]*domain.Order
	nextID    int64
	createErr error
	fetchErr  error
	payErr    error
	cancelErr error
	payments  []domain.PaymentRequest
	created   []domain.OrderRequest
}

func newFakeCommerce() *fakeCommerce {
	return &fakeCommerce{orders: make(map[int64]*domain.Order), nextID: 100}
}

func (f *fakeCommerce) SearchProducts(_ context.Context, q commerce.ProductQuery) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.products, nil
}

func (f *fakeCommerce) ListOrders(context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	out := make([]domain.Order, 0, len(f.orders))
	for id := f.nextID; id >= 0; id-- {
		if o, ok := f.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeCommerce) GetOrder(_ context.Context, orderID int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	o, ok := f.orders[orderID]
	if !ok {
		return nil, &commerce.FetchError{Op: "order", StatusCode: 404, Err: fmt.Errorf("order %d not found", orderID)}
	}
	cp := *o
	return &cp, nil
}

func (f *fakeCommerce) CreateOrder(_ context.Context, req domain.OrderRequest) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, req)
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	return f.nextID, nil
}

// CreatePayment applies the payment to the stored order the way the server does.
func (f *fakeCommerce) CreatePayment(_ context.Context, req domain.PaymentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, req)
	if f.payErr != nil {
		return f.payErr
	}
	o := f.orders[req.OrderID]
	paid := o.PaidCents() + req.AmountCents
	o.TotalPaidCents = &paid
	o.Payments = append(o.Payments, domain.Payment{AmountCents: req.AmountCents, Method: req.Method})
	if paid >= o.TotalCents {
		o.Status = domain.OrderStatusPaid
	}
	return nil
}

func (f *fakeCommerce) UpdateOrderStatus(_ context.Context, orderID int64, status domain.OrderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.orders[orderID].Status = status
	return nil
}

func (f *fakeCommerce) addOrder(o domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[o.ID] = &o
}

type testEnv struct {
	router   chi.Router
	commerce *fakeCommerce
	store    *cart.Store
	snap     *storage.MemoryStore
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	fc := newFakeCommerce()
	snap := storage.NewMemoryStore()
	store := cart.NewStore(context.Background(), snap, fc)
	service := reconcile.NewService(fc, fc, nil)

	router := NewRouter(RouterConfig{
		Cart:     NewCartHandler(store),
		Checkout: NewCheckoutHandler(store, 1, 5*time.Second),
		Products: NewProductHandler(fc, 5*time.Second),
		Orders:   NewOrdersHandler(fc, service, reconcile.VariantCard, 5*time.Second, nil),
	})
	return &testEnv{router: router, commerce: fc, store: store, snap: snap}
}

func int64p(v int64) *int64 { return &v }

package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
)

// mockStorage wraps a MemoryStore and can be told to fail.
type mockStorage struct {
	*storage.MemoryStore
	m       sync.Mutex
	saveErr error
	loadErr error
	saves   int
}

func newMockStorage() *mockStorage {
	return &mockStorage{MemoryStore: storage.NewMemoryStore()}
}

func (m *mockStorage) Load(ctx context.Context, key string) ([]byte, error) {
	m.m.Lock()
	err := m.loadErr
	m.m.Unlock()
	if err != nil {
		return nil, err
	}
	return m.MemoryStore.Load(ctx, key)
}

func (m *mockStorage) Save(ctx context.Context, key string, data []byte) error {
	m.m.Lock()
	m.saves++
	err := m.saveErr
	m.m.Unlock()
	if err != nil {
		return err
	}
	return m.MemoryStore.Save(ctx, key, data)
}

func (m *mockStorage) raw(key string) string {
	data, err := m.MemoryStore.Load(context.Background(), key)
	if err != nil {
		return ""
	}
	return string(data)
}

// statusErr mimics the commerce client's status error.
type statusErr struct {
	code int
	msg  string
}

func (e *statusErr) Error() string   { return fmt.Sprintf("status %d: %s", e.code, e.msg) }
func (e *statusErr) HTTPStatus() int { return e.code }

type mockOrders struct {
	m        sync.Mutex
	orderID  int64
	err      error
	requests []domain.OrderRequest
}

func (o *mockOrders) CreateOrder(_ context.Context, req domain.OrderRequest) (int64, error) {
	o.m.Lock()
	defer o.m.Unlock()
	o.requests = append(o.requests, req)
	if o.err != nil {
		return 0, o.err
	}
	return o.orderID, nil
}

func (o *mockOrders) calls() int {
	o.m.Lock()
	defer o.m.Unlock()
	return len(o.requests)
}

type recordingNotifier struct {
	events []string
	added  []string
	badges []int
}

func (n *recordingNotifier) ItemAdded(message string, totalQuantity int) {
	n.events = append(n.events, "added")
	n.added = append(n.added, message)
	n.badges = append(n.badges, totalQuantity)
}

func (n *recordingNotifier) CartChanged([]domain.CartLine, int64) {
	n.events = append(n.events, "changed")
}

// orderedNotifier checks that the snapshot is already saved when notified.
type orderedNotifier struct {
	store  *mockStorage
	key    string
	seen   []string
	failed bool
}

func (n *orderedNotifier) ItemAdded(string, int) { n.check() }

func (n *orderedNotifier) CartChanged([]domain.CartLine, int64) { n.check() }

func (n *orderedNotifier) check() {
	data, err := n.store.MemoryStore.Load(context.Background(), n.key)
	if errors.Is(err, storage.ErrNotFound) {
		n.failed = true
		return
	}
	n.seen = append(n.seen, string(data))
}

package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/fjod/storefront/internal/domain"
	"github.com/fjod/storefront/internal/storage"
	"go.uber.org/zap"
)

// DefaultStorageKey is the key the cart snapshot is saved under.
const DefaultStorageKey = "myCart"

// OrderCreator submits an order built from the cart and returns its identifier.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req domain.OrderRequest) (int64, error)
}

// Store owns the cart lines. Every mutation persists the whole snapshot and
// only then notifies, so a refresh never shows state that is not on disk.
type Store struct {
	mu         sync.Mutex
	checkoutMu sync.Mutex
	lines      []domain.CartLine
	storage    storage.SnapshotStore
	key        string
	orders     OrderCreator
	notifier   Notifier
	log        *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithStorageKey saves the snapshot under key instead of DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithNotifier sets the receiver of refresh requests.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// NewStore creates a store and rehydrates it from snap.
func NewStore(ctx context.Context, snap storage.SnapshotStore, orders OrderCreator, opts ...Option) *Store {
	s := &Store{
		storage:  snap,
		key:      DefaultStorageKey,
		orders:   orders,
		notifier: nopNotifier{},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}

	s.Load(ctx)
	return s
}

// Load replaces the in-memory cart with the persisted snapshot. Missing,
// unreadable or malformed snapshots all yield an empty cart.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil

	data, err := s.storage.Load(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warn("cart snapshot unreadable, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}

	lines, err := decodeLines(data)
	if err != nil {
		s.log.Warn("cart snapshot malformed, starting empty", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.lines = lines
}

func decodeLines(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if !l.Valid() {
			return nil, fmt.Errorf("%w: product %d", ErrInvalidLine, l.ProductID)
		}
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %d", ErrInvalidLine, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}
	}
	return lines, nil
}

// AddItem increments the line for productID or appends a new line with quantity 1.
func (s *Store) AddItem(ctx context.Context, productID int64, name string, unitPriceCents int64) error {
	if productID <= 0 || unitPriceCents < 0 {
		return fmt.Errorf("%w: product %d price %d", ErrInvalidLine, productID, unitPriceCents)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines[i].Quantity++
	} else {
		s.lines = append(s.lines, domain.CartLine{
			ProductID:      productID,
			Name:           name,
			UnitPriceCents: unitPriceCents,
			Quantity:       1,
		})
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.ItemAdded(AddedMessage(name), s.totalQuantity())
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent product is a no-op
// that still persists and refreshes.
func (s *Store) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.CartChanged(s.copyLines(), s.totalCents())
	return nil
}

// ChangeQuantity adds delta to the line quantity, never going below 1.
// Unknown products are ignored.
func (s *Store) ChangeQuantity(ctx context.Context, productID int64, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}

	q := s.lines[i].Quantity + delta
	switch {
	case delta > 0 && q < s.lines[i].Quantity:
		q = math.MaxInt // saturate rather than wrap
	case q < 1:
		q = 1
	}
	s.lines[i].Quantity = q

	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notifier.CartChanged(s.copyLines(), s.totalCents())
	return nil
}

// TotalCents sums unit price times quantity over all lines.
func (s *Store) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCents()
}

// TotalQuantity is the badge count.
func (s *Store) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalQuantity()
}

// Lines returns a copy of the cart in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLines()
}

func (s *Store) indexOf(productID int64) int {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Store) totalCents() int64 {
	var total int64
	for _, l := range s.lines {
		total += l.SubtotalCents()
	}
	return total
}

func (s *Store) totalQuantity() int {
	var total int
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

func (s *Store) copyLines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist must be called with mu held.
func (s *Store) persist(ctx context.Context) error {
	lines := s.lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.storage.Save(ctx, s.key, data); err != nil {
		s.log.Error("cart persist failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("persist cart failed: %w", err)
	}
	return nil
}

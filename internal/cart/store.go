// Package cart holds the shopping cart state container: the line-merging
// mutation rules, durable persistence of the whole cart under one storage key,
// and subscribe/notify for views that render from it.
package cart

import (
	"context"
	"errors"
	"sync"

	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/logging"
	"dermayooth-storefront/internal/metrics"
	"go.uber.org/zap"
)

// DefaultStorageKey is the durable key the storefront has always used.
const DefaultStorageKey = "dermayoothCart"

// ErrMissingProductID is returned by AddToCart when no product id is given.
var ErrMissingProductID = errors.New("cart: product id is required")

// MaxQuantity is the most units a single line can hold. Larger quantities are
// saturated to it.
const MaxQuantity = 999

// ClampQuantity bounds n to [1, MaxQuantity].
func ClampQuantity(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxQuantity:
		return MaxQuantity
	}
	return n
}

// Storage is a durable string key-value store. Get reports found=false for a
// missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Item is the data copied into a cart line when a product is added.
type Item struct {
	ProductID string
	Name      string
	UnitPrice string
	Image     string
	Quantity  int
}

// Listener receives a snapshot of the cart after every change.
type Listener func(lines []domain.CartLine)

// Store is the only writer of cart state. It is safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	logger  *zap.Logger

	mu        sync.Mutex
	lines     []domain.CartLine
	ready     bool
	listeners map[int]Listener
	nextID    int
}

// NewStore returns an empty, not yet loaded store persisting under key.
func NewStore(storage Storage, key string, logger *zap.Logger) *Store {
	if key == "" {
		key = DefaultStorageKey
	}
	return &Store{
		storage:   storage,
		key:       key,
		logger:    logging.OrNop(logger).With(zap.String("cart_key", key)),
		listeners: make(map[int]Listener),
	}
}

// Key returns the storage key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// Load replaces the in-memory cart with the persisted one. A missing,
// unreadable or malformed record yields an empty cart; the failure is logged
// and never returned. After Load the store is ready and saves are enabled.
func (s *Store) Load(ctx context.Context) {
	lines := s.read(ctx)

	s.mu.Lock()
	s.lines = lines
	s.ready = true
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

func (s *Store) read(ctx context.Context) []domain.CartLine {
	if s.storage == nil {
		return nil
	}
	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		metrics.CartStorageErrorsTotal.WithLabelValues("load").Inc()
		s.logger.Warn("cart load failed, starting empty", zap.Error(err))
		return nil
	}
	if !found {
		return nil
	}
	lines, err := Decode(raw)
	if err != nil {
		metrics.CartStorageErrorsTotal.WithLabelValues("decode").Inc()
		s.logger.Warn("stored cart is malformed, starting empty", zap.Error(err))
		return nil
	}
	return lines
}

// Ready reports whether Load has completed. Until then mutations are kept
// in memory only so an empty cart never overwrites stored data.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Line returns the line for productID, if present.
func (s *Store) Line(productID string) (domain.CartLine, bool) {
	id := NormalizeID(productID)
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.lines[i], true
	}
	return domain.CartLine{}, false
}

// AddToCart merges item into the cart: an existing line for the same product
// gains item.Quantity, otherwise a new line is appended. A quantity below 1
// counts as 1 and the line never exceeds MaxQuantity.
func (s *Store) AddToCart(ctx context.Context, item Item) error {
	id := NormalizeID(item.ProductID)
	if id == "" {
		return ErrMissingProductID
	}
	qty := ClampQuantity(item.Quantity)
	s.mutate(ctx, "add", func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == id {
				lines[i].Quantity = ClampQuantity(lines[i].Quantity + qty)
				return lines
			}
		}
		return append(lines, domain.CartLine{
			ProductID: id,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Image:     item.Image,
			Quantity:  qty,
		})
	})
	return nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to
// [1, MaxQuantity]. Unknown products are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	quantity = ClampQuantity(quantity)
	s.adjust(ctx, "update", productID, func(int) int { return quantity })
}

// Increment raises a line's quantity by one, up to MaxQuantity.
func (s *Store) Increment(ctx context.Context, productID string) {
	s.adjust(ctx, "update", productID, func(q int) int { return ClampQuantity(q + 1) })
}

// Decrement lowers a line's quantity by one. A line at quantity 1 is left
// alone; only RemoveFromCart deletes lines.
func (s *Store) Decrement(ctx context.Context, productID string) {
	s.adjust(ctx, "update", productID, func(q int) int { return ClampQuantity(q - 1) })
}

// adjust rewrites the quantity of one line under a single lock.
func (s *Store) adjust(ctx context.Context, op, productID string, next func(int) int) {
	id := NormalizeID(productID)
	s.mutate(ctx, op, func(lines []domain.CartLine) []domain.CartLine {
		for i := range lines {
			if lines[i].ProductID == id {
				lines[i].Quantity = next(lines[i].Quantity)
			}
		}
		return lines
	})
}

// RemoveFromCart deletes the line for productID if present.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) {
	id := NormalizeID(productID)
	s.mutate(ctx, "remove", func(lines []domain.CartLine) []domain.CartLine {
		out := lines[:0]
		for _, l := range lines {
			if l.ProductID != id {
				out = append(out, l)
			}
		}
		return out
	})
}

// ClearCart empties the cart.
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, "clear", func([]domain.CartLine) []domain.CartLine {
		return nil
	})
}

// Subscribe registers fn to be called after every change. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) mutate(ctx context.Context, op string, apply func([]domain.CartLine) []domain.CartLine) {
	s.mu.Lock()
	s.lines = apply(s.lines)
	snapshot := s.snapshotLocked()
	if s.ready {
		s.saveLocked(ctx, snapshot)
	}
	s.mu.Unlock()

	metrics.CartMutationsTotal.WithLabelValues(op).Inc()
	s.notify(snapshot)
}

// saveLocked writes the whole cart. Failures are logged and dropped; the
// in-memory cart stays authoritative.
func (s *Store) saveLocked(ctx context.Context, lines []domain.CartLine) {
	if s.storage == nil {
		return
	}
	raw, err := Encode(lines)
	if err != nil {
		metrics.CartStorageErrorsTotal.WithLabelValues("save").Inc()
		s.logger.Error("encode cart", zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		metrics.CartStorageErrorsTotal.WithLabelValues("save").Inc()
		s.logger.Warn("cart save failed", zap.Error(err), zap.Int("lines", len(lines)))
	}
}

func (s *Store) notify(snapshot []domain.CartLine) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.lines {
		if s.lines[i].ProductID == id {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

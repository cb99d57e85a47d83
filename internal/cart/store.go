package cart

import (
	"context"
	"sync"

	"pawmart-web/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store holds the authoritative cart snapshot for one session.
//
// Every mutation is followed by a full refetch instead of a local merge, and
// network operations are serialized so overlapping calls cannot interleave a
// stale response over a fresher one.
type Store struct {
	backend Backend

	opMu sync.Mutex // serializes backend round-trips

	mu   sync.RWMutex
	cart Cart
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend, cart: Empty()}
}

// FetchCart reloads the cart. Any failure settles the store on an empty cart;
// the error is logged, never returned.
func (s *Store) FetchCart(ctx context.Context) Cart {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.refresh(ctx)
	return s.Snapshot()
}

// AddItem asks the backend to add quantity units of productID, then refetches
// whether or not the add succeeded.
func (s *Store) AddItem(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrMissingProductID
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.backend.AddItem(ctx, productID, ClampQuantity(quantity))
	if err != nil {
		s.log(ctx, "AddItem").Warn("add to cart failed", zap.String("product_id", productID), zap.Error(err))
	}
	s.refresh(ctx)
	return err
}

// UpdateQuantity sets a line's quantity, coercing values below 1 up to 1.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	if itemID == "" {
		return ErrMissingItemID
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.backend.UpdateQuantity(ctx, itemID, ClampQuantity(quantity))
	if err != nil {
		s.log(ctx, "UpdateQuantity").Warn("update quantity failed", zap.String("item_id", itemID), zap.Error(err))
	}
	s.refresh(ctx)
	return err
}

func (s *Store) RemoveItem(ctx context.Context, itemID string) error {
	if itemID == "" {
		return ErrMissingItemID
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	err := s.backend.RemoveItem(ctx, itemID)
	if err != nil {
		s.log(ctx, "RemoveItem").Warn("remove item failed", zap.String("item_id", itemID), zap.Error(err))
	}
	s.refresh(ctx)
	return err
}

// Clear empties the server cart. The end state is known, so on success the
// local snapshot is set directly without a refetch; on failure it is untouched.
func (s *Store) Clear(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		s.log(ctx, "Clear").Warn("clear cart failed", zap.Error(err))
		return err
	}
	s.set(Empty())
	return nil
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.clone()
}

func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Total()
}

func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.ItemCount()
}

// Reset drops local state, used when the owning session ends.
func (s *Store) Reset() {
	s.set(Empty())
}

// refresh must be called with opMu held.
func (s *Store) refresh(ctx context.Context) {
	c, err := s.backend.GetCart(ctx)
	if err != nil || c == nil {
		s.log(ctx, "FetchCart").Warn("fetch cart failed, falling back to empty cart", zap.Error(err))
		s.set(Empty())
		return
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	s.set(*c)
}

func (s *Store) set(c Cart) {
	s.mu.Lock()
	s.cart = c
	s.mu.Unlock()
}

func (s *Store) log(ctx context.Context, method string) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "cart"),
		zap.String("method", method),
	)
}

// Package cart implements the shopping-cart store: a durably persisted
// collection of cart lines with merge-on-add semantics.
package cart

import (
	"sync"

	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/model"
	"github.com/MaykalDroshev-Hull/kasameri-bg-sub000/internal/statefile"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Namespace is the storage namespace for persisted cart lines.
const Namespace = "kasameri.cart.v1"

// Store holds the cart lines. Every mutating operation persists the full
// collection; Subtotal is recomputed on demand and never cached.
type Store struct {
	mu      sync.Mutex
	items   []model.CartItem
	storage statefile.Storage
	logger  zerolog.Logger
}

// NewStore creates a cart store, restoring any persisted lines.
func NewStore(storage statefile.Storage, logger zerolog.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger.With().Str("store", "cart").Logger(),
	}

	var items []model.CartItem
	found, err := storage.Load(Namespace, &items)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to restore cart state")
	} else if found {
		s.items = items
		s.logger.Debug().Int("line_count", len(items)).Msg("cart state restored")
	}

	return s
}

// Add appends the item as a new line, or merges its quantity into the
// existing line with the same (productId, varietyKey, notes) triple.
func (s *Store) Add(item model.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameLine(item.ProductID, item.VarietyKey, item.Notes) {
			s.items[i].Qty = s.items[i].Qty.Add(item.Qty)
			s.persist()
			return
		}
	}

	s.items = append(s.items, item)
	s.persist()
}

// UpdateQty replaces the quantity on the matching line. It does not clamp or
// floor; callers validate against product bounds first. No-op when the line
// is absent.
func (s *Store) UpdateQty(productID string, qty decimal.Decimal, varietyKey, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameLine(productID, varietyKey, notes) {
			s.items[i].Qty = qty
			s.persist()
			return
		}
	}
}

// Remove deletes the matching line. No-op when absent.
func (s *Store) Remove(productID, varietyKey, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].SameLine(productID, varietyKey, notes) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the cart. Called after successful order placement or on
// explicit user action.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Subtotal returns the sum of qty * pricePerUnit over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	subtotal := decimal.Zero
	for _, item := range s.items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	return subtotal
}

// Items returns a copy of the current cart lines.
func (s *Store) Items() []model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of cart lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// persist writes the full collection. Caller holds the lock. A persistence
// failure is logged but never fails the mutation.
func (s *Store) persist() {
	if err := s.storage.Save(Namespace, s.items); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart state")
	}
}

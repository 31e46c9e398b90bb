// Package cart owns the purchasable-selection state and its persistence.
//
// Lines are keyed by meal ID: adding the same meal again increments the
// existing line instead of duplicating it, and a quantity set to zero or
// below removes the line entirely — a stored quantity is always at least 1.
// Every mutation persists synchronously afterwards; Clear deletes the
// storage key itself rather than writing an empty array. Totals are
// recomputed from the lines on every read, never cached.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/foodhub/foodhub-go/core"
)

// Line is one distinct purchasable item plus the quantity selected.
type Line struct {
	core.Meal
	Quantity int `json:"quantity"`
}

// Store owns the cart lines. No network calls originate here; the only
// collaborator is the durable store.
type Store struct {
	mu    sync.RWMutex
	lines []Line

	storage  core.Storage
	notifier core.Notifier
	logger   core.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger core.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithNotifier sets the user-feedback side-effect target.
func WithNotifier(n core.Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// New creates an empty cart store. Call Hydrate once at application start
// to restore a persisted cart.
func New(storage core.Storage, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		notifier: &core.NoOpNotifier{},
		logger:   &core.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate restores persisted lines. An absent key means an empty cart; a
// corrupt value is discarded rather than wedging startup.
func (s *Store) Hydrate(ctx context.Context) error {
	raw, err := s.storage.Get(ctx, core.StorageKeyCart)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}

	var lines []Line
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.logger.Warn("Persisted cart corrupt, starting empty", map[string]interface{}{
			"operation": "cart_hydrate",
			"error":     err.Error(),
		})
		return nil
	}

	s.mu.Lock()
	s.lines = lines
	s.mu.Unlock()

	s.logger.Debug("Cart hydrated", map[string]interface{}{
		"operation": "cart_hydrate",
		"lines":     len(lines),
	})
	return nil
}

// AddItem adds one unit of the meal: a new line at quantity 1, or an
// increment of the existing line for the same meal ID.
func (s *Store) AddItem(ctx context.Context, meal core.Meal) {
	s.mu.Lock()
	found := false
	for i := range s.lines {
		if s.lines[i].ID == meal.ID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, Line{Meal: meal, Quantity: 1})
	}
	s.mu.Unlock()

	if found {
		s.notifier.Success(fmt.Sprintf("Increased %s quantity", meal.Title))
	} else {
		s.notifier.Success(fmt.Sprintf("Added %s to cart", meal.Title))
	}

	s.persist(ctx)
}

// RemoveItem deletes the line for mealID. Removing an absent line is a
// no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, mealID string) {
	s.mu.Lock()
	kept := s.lines[:0]
	for _, line := range s.lines {
		if line.ID != mealID {
			kept = append(kept, line)
		}
	}
	s.lines = kept
	s.mu.Unlock()

	s.notifier.Error("Removed from cart")

	s.persist(ctx)
}

// UpdateQuantity sets the line's quantity to an absolute value. A quantity
// of zero or below behaves exactly as RemoveItem.
func (s *Store) UpdateQuantity(ctx context.Context, mealID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, mealID)
		return
	}

	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].ID == mealID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the cart and deletes the persisted entry entirely, so a
// reload cannot resurrect old lines.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, core.StorageKeyCart); err != nil {
		s.logger.Error("Failed to delete persisted cart", map[string]interface{}{
			"operation": "cart_clear",
			"error":     err.Error(),
		})
	}
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of quantities, recomputed from the lines.
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity in cents, recomputed from
// the lines.
func (s *Store) TotalPrice() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total int64
	for _, line := range s.lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// persist writes the current lines to the durable store.
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	data, err := json.Marshal(s.lines)
	s.mu.RUnlock()
	if err != nil {
		s.logger.Error("Failed to encode cart", map[string]interface{}{
			"operation": "cart_persist",
			"error":     err.Error(),
		})
		return
	}
	if err := s.storage.Set(ctx, core.StorageKeyCart, string(data), 0); err != nil {
		s.logger.Error("Failed to persist cart", map[string]interface{}{
			"operation": "cart_persist",
			"error":     err.Error(),
		})
	}
}

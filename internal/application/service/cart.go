package service

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/restopos/backoffice/internal/domain/entity"
	"github.com/restopos/backoffice/pkg/apperror"
)

// CartLine is one pending line item in a cart. UnitPrice may be lowered
// line-by-line for discounts; OriginalPrice keeps the menu price at the
// time the line was added so the discount stays visible.
type CartLine struct {
	MenuItemID    uuid.UUID `json:"menu_item_id"`
	Name          string    `json:"name"`
	UnitPrice     int64     `json:"-"` // cents
	OriginalPrice int64     `json:"-"` // cents
	Quantity      int       `json:"quantity"`
}

// TotalPrice returns the line total in cents
func (l CartLine) TotalPrice() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (l CartLine) MarshalJSON() ([]byte, error) {
	type Alias CartLine
	return json.Marshal(&struct {
		Alias
		UnitPrice     float64 `json:"unit_price"`
		OriginalPrice float64 `json:"original_price"`
		TotalPrice    float64 `json:"total_price"`
	}{
		Alias:         Alias(l),
		UnitPrice:     float64(l.UnitPrice) / 100,
		OriginalPrice: float64(l.OriginalPrice) / 100,
		TotalPrice:    float64(l.TotalPrice()) / 100,
	})
}

// Cart is the in-memory, pre-commit collection of pending line items for
// one interactive session. Mutations bump the revision and notify change
// listeners so the UI can refresh its running total.
type Cart struct {
	mu        sync.RWMutex
	lines     []CartLine
	revision  uint64
	listeners []func(total int64)
}

// NewCart creates an empty cart
func NewCart() *Cart {
	return &Cart{}
}

// OnChange registers a listener invoked with the new total after every
// mutation.
func (c *Cart) OnChange(fn func(total int64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

// notifyLocked must be called with the write lock held.
func (c *Cart) notifyLocked() {
	c.revision++
	total := c.totalLocked()
	for _, fn := range c.listeners {
		fn(total)
	}
}

// AddLine merges the quantity into an existing line for the same menu item
// or appends a new line priced at the current menu price.
func (c *Cart) AddLine(item *entity.MenuItem, quantity int) error {
	if quantity <= 0 {
		return apperror.ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == item.ID {
			c.lines[i].Quantity += quantity
			c.notifyLocked()
			return nil
		}
	}

	c.lines = append(c.lines, CartLine{
		MenuItemID:    item.ID,
		Name:          item.Name,
		UnitPrice:     item.Price,
		OriginalPrice: item.Price,
		Quantity:      quantity,
	})
	c.notifyLocked()
	return nil
}

// RemoveLine drops the line for the given menu item
func (c *Cart) RemoveLine(menuItemID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.notifyLocked()
			return nil
		}
	}
	return apperror.NewNotFoundError("Cart line")
}

// SetQuantity updates a line's quantity; a non-positive quantity removes
// the line.
func (c *Cart) SetQuantity(menuItemID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return c.RemoveLine(menuItemID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].Quantity = quantity
			c.notifyLocked()
			return nil
		}
	}
	return apperror.NewNotFoundError("Cart line")
}

// SetPrice overrides a line's unit price (per-line discount). Negative
// prices are rejected; zero is allowed for comped items.
func (c *Cart) SetPrice(menuItemID uuid.UUID, priceCents int64) error {
	if priceCents < 0 {
		return apperror.ErrInvalidPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			c.lines[i].UnitPrice = priceCents
			c.notifyLocked()
			return nil
		}
	}
	return apperror.NewNotFoundError("Cart line")
}

// Clear removes all lines
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.notifyLocked()
}

func (c *Cart) totalLocked() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.TotalPrice()
	}
	return total
}

// Total returns the cart total in cents; 0 for an empty cart
func (c *Cart) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.totalLocked()
}

// Lines returns a copy of the current lines
func (c *Cart) Lines() []CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len returns the number of lines
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

// Revision returns the mutation counter; clients use it to detect stale
// snapshots.
func (c *Cart) Revision() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.revision
}

// Snapshot captures the cart state for rendering
func (c *Cart) Snapshot() *CartSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lines := make([]CartLine, len(c.lines))
	copy(lines, c.lines)
	return &CartSnapshot{
		Lines:    lines,
		Total:    c.totalLocked(),
		Revision: c.revision,
	}
}

// CartSnapshot is the rendered cart state returned after every mutation
type CartSnapshot struct {
	Lines    []CartLine `json:"lines"`
	Total    int64      `json:"-"` // cents
	Revision uint64     `json:"revision"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s CartSnapshot) MarshalJSON() ([]byte, error) {
	type Alias CartSnapshot
	return json.Marshal(&struct {
		Alias
		Total float64 `json:"total"`
	}{
		Alias: Alias(s),
		Total: float64(s.Total) / 100,
	})
}

// CartStore holds one cart per operator session. Carts are confined to a
// single interactive session, so the only locking needed is around the
// session map itself.
type CartStore struct {
	mu    sync.Mutex
	carts map[uuid.UUID]*Cart
}

// NewCartStore creates an empty cart store
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[uuid.UUID]*Cart)}
}

// Get returns the cart for the operator, creating it on first use
func (s *CartStore) Get(operatorID uuid.UUID) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[operatorID]
	if !ok {
		cart = NewCart()
		s.carts[operatorID] = cart
	}
	return cart
}

// Drop discards the operator's cart, if any
func (s *CartStore) Drop(operatorID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, operatorID)
}

package domain

import "sync"

// CartItem pairs a menu item with a positive quantity.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}

// Cart holds the in-progress selection: one entry per menu item ID, kept in
// insertion order. Entries never rest at quantity <= 0; an entry reaching
// zero is removed synchronously.
type Cart struct {
	mu    sync.RWMutex
	items []CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add increments the quantity of an existing entry by one, or appends a new
// entry with quantity 1. Existing entry order is preserved.
func (c *Cart) Add(item MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, CartItem{MenuItem: item, Quantity: 1})
}

// UpdateQuantity adjusts the entry with the given id by delta, flooring at
// zero. An entry reaching zero is removed. Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(itemID string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		q := c.items[i].Quantity + delta
		if q <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
		} else {
			c.items[i].Quantity = q
		}
		return
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Items returns a value snapshot of the cart. The snapshot is independent of
// later cart mutation, so it is safe to embed in an order.
func (c *Cart) Items() []CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]CartItem, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

// IsEmpty reports whether the cart has no entries.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items) == 0
}

// TotalQuantity is the sum of per-item quantities.
func (c *Cart) TotalQuantity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Terminal reports whether no further status change is expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether moving from s to next respects the order
// lifecycle: PENDING -> CONFIRMED -> DELIVERED, with CANCELLED reachable from
// any non-terminal state. No state ever returns to PENDING.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() || next == s || next == OrderStatusPending {
		return false
	}
	switch next {
	case OrderStatusConfirmed:
		return s == OrderStatusPending
	case OrderStatusDelivered:
		return s == OrderStatusConfirmed
	case OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the immutable-once-created record of a submitted purchase. Items
// is a value snapshot of the cart at submission time; only the backend
// transitions Status afterwards.
type Order struct {
	ID          string      `json:"id"`
	Items       []CartItem  `json:"items"`
	TotalAmount int         `json:"total_amount"`
	UserDetails UserDetails `json:"user_details"`
	Status      OrderStatus `json:"status"`
	PlacedAt    time.Time   `json:"placed_at"`
	PaymentID   string      `json:"payment_id"`
}

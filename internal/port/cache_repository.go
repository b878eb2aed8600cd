package port

import (
	"context"

	"github.com/quickbites/storefront/internal/core/domain"
)

type CacheRepository interface {
	// CurrentUser returns the logged-in profile, or (nil, nil) when nobody
	// is logged in.
	CurrentUser(ctx context.Context) (*domain.UserProfile, error)

	// SaveCurrentUser makes profile the current user.
	SaveCurrentUser(ctx context.Context, profile domain.UserProfile) error

	// ClearCurrentUser ends the session.
	ClearCurrentUser(ctx context.Context) error

	// SaveLastOrder stores the most recent order's items for quick reorder.
	SaveLastOrder(ctx context.Context, items []domain.CartItem) error

	// LastOrder returns the stored reorder shortcut, or (nil, nil) when none
	// has been saved.
	LastOrder(ctx context.Context) ([]domain.CartItem, error)

	// DeliveryFee looks up the currently configured delivery fee.
	DeliveryFee(ctx context.Context) (int, error)
}

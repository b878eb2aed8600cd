package port

import (
	"context"

	"github.com/quickbites/storefront/internal/core/domain"
)

type DatabaseRepository interface {
	// Menu returns the full catalog.
	Menu(ctx context.Context) ([]domain.MenuItem, error)

	// MenuItem fetches a single catalog entry. Returns (nil, nil) when the
	// id is unknown.
	MenuItem(ctx context.Context, id string) (*domain.MenuItem, error)

	// GenerateOrderID mints a globally unique order identifier.
	GenerateOrderID(ctx context.Context) (string, error)

	// SaveOrder persists a newly submitted order with its item snapshot.
	SaveOrder(ctx context.Context, order domain.Order) error

	// AdminPIN returns the static PIN guarding the admin entry path.
	AdminPIN(ctx context.Context) (string, error)
}

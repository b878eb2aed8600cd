package port

import (
	"context"
	"time"

	"github.com/quickbites/storefront/internal/core/domain"
)

// Notification is a local notification shown on the client.
type Notification struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type Notifier interface {
	// Notify dispatches a notification immediately.
	Notify(ctx context.Context, n Notification) error

	// Schedule queues a notification to fire at fireAt. IDs must be unique
	// per pending notification; reusing one silently overwrites the earlier
	// entry.
	Schedule(ctx context.Context, n Notification, fireAt time.Time) error

	// Cancel drops a pending notification by id. Unknown ids are a no-op.
	Cancel(ctx context.Context, id string) error
}

type Haptics interface {
	// NotifySuccess triggers a success pulse on the client. Best effort.
	NotifySuccess(ctx context.Context) error
}

type MessagingHandoff interface {
	// ShareOrderSummary hands a prefilled order-summary chat link to the
	// client. Best effort; never blocks the order flow.
	ShareOrderSummary(ctx context.Context, order domain.Order) error
}

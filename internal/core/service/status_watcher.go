package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/event"
	"github.com/quickbites/storefront/internal/port"
)

// StatusWatcher follows order row-change events for one logged-in profile and
// turns status transitions on that user's orders into local notifications.
// Events for other users' orders and no-op updates are dropped silently.
type StatusWatcher struct {
	profile  domain.UserProfile
	events   port.EventSubscriber
	notifier port.Notifier
	haptics  port.Haptics

	sub      port.Subscription
	stopOnce sync.Once
}

func NewStatusWatcher(profile domain.UserProfile, events port.EventSubscriber, notifier port.Notifier, haptics port.Haptics) *StatusWatcher {
	return &StatusWatcher{
		profile:  profile,
		events:   events,
		notifier: notifier,
		haptics:  haptics,
	}
}

// Start opens the single subscription this watcher owns.
func (w *StatusWatcher) Start(ctx context.Context) error {
	if w.events == nil {
		return fmt.Errorf("status watcher not configured")
	}
	sub, err := w.events.Subscribe(ctx, event.OrdersUpdatedTopic, w.handleEvent)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", event.OrdersUpdatedTopic, err)
	}
	w.sub = sub
	return nil
}

// Stop releases the subscription. Safe to call more than once; only the
// first call unsubscribes.
func (w *StatusWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.sub != nil {
			err = w.sub.Unsubscribe()
		}
	})
	return err
}

func (w *StatusWatcher) handleEvent(ctx context.Context, msg []byte) error {
	var evt event.OrderChanged
	if err := json.Unmarshal(msg, &evt); err != nil {
		log.Printf("status watcher: invalid order event: %v", err)
		return nil
	}

	// ownership filter: never notify about somebody else's order
	if evt.New.UserDetails.Phone != w.profile.Phone {
		return nil
	}
	if evt.Old.Status == evt.New.Status {
		return nil
	}
	// status is monotonic, a regression to PENDING is never valid
	if evt.New.Status == domain.OrderStatusPending {
		return nil
	}

	if err := w.notifier.Notify(ctx, notificationFor(evt.New)); err != nil {
		log.Printf("status watcher: notify order %s: %v", evt.New.ID, err)
	}
	if err := w.haptics.NotifySuccess(ctx); err != nil {
		log.Printf("status watcher: haptics: %v", err)
	}
	return nil
}

func notificationFor(order domain.Order) port.Notification {
	n := port.Notification{ID: uuid.NewString()}

	switch order.Status {
	case domain.OrderStatusConfirmed:
		n.Title = "Order Confirmed! 🍳"
		n.Body = fmt.Sprintf("Your order %s is being prepared.", order.ID)
	case domain.OrderStatusDelivered:
		n.Title = "Order Delivered! 🎉"
		n.Body = fmt.Sprintf("Your order %s has been delivered. Enjoy your meal!", order.ID)
	case domain.OrderStatusCancelled:
		n.Title = "Order Cancelled"
		n.Body = fmt.Sprintf("Your order %s was cancelled. Please contact support.", order.ID)
	default:
		n.Title = "Order Update"
		n.Body = fmt.Sprintf("Your order %s status changed to %s.", order.ID, order.Status)
	}
	return n
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/event"
	"github.com/quickbites/storefront/internal/port"
)

var testProfile = domain.UserProfile{Name: "Asha", Phone: "919000000001"}

func newWatcherFixture(t *testing.T) (*StatusWatcher, *mockSubscriber, *mockNotifier, *mockHaptics) {
	t.Helper()
	events := newMockSubscriber()
	notifier := newMockNotifier()
	haptics := &mockHaptics{}

	w := NewStatusWatcher(testProfile, events, notifier, haptics)
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	return w, events, notifier, haptics
}

func orderChangedEvent(t *testing.T, phone string, old, new domain.OrderStatus) []byte {
	t.Helper()
	evt := event.OrderChanged{
		Old: domain.Order{ID: "ORD-1", Status: old, UserDetails: domain.UserDetails{Phone: phone}},
		New: domain.Order{ID: "ORD-1", Status: new, UserDetails: domain.UserDetails{Phone: phone}},
	}
	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}
	return data
}

func TestStatusWatcherSubscribesToOrderUpdates(t *testing.T) {
	_, events, _, _ := newWatcherFixture(t)

	if len(events.topics) != 1 || events.topics[0] != event.OrdersUpdatedTopic {
		t.Fatalf("expected subscription to %s, got %v", event.OrdersUpdatedTopic, events.topics)
	}
}

func TestStatusWatcherNotifiesOnConfirmation(t *testing.T) {
	_, events, notifier, haptics := newWatcherFixture(t)

	msg := orderChangedEvent(t, testProfile.Phone, domain.OrderStatusPending, domain.OrderStatusConfirmed)
	if err := events.handlers[0](context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	notifications := notifier.notifications()
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].Title != "Order Confirmed! 🍳" {
		t.Errorf("unexpected title %q", notifications[0].Title)
	}
	if !strings.Contains(notifications[0].Body, "ORD-1") {
		t.Errorf("expected body to name the order, got %q", notifications[0].Body)
	}
	if haptics.pulseCount() != 1 {
		t.Errorf("expected 1 haptic pulse, got %d", haptics.pulseCount())
	}
}

func TestStatusWatcherNotificationCopy(t *testing.T) {
	tests := []struct {
		status    domain.OrderStatus
		wantTitle string
	}{
		{domain.OrderStatusDelivered, "Order Delivered! 🎉"},
		{domain.OrderStatusCancelled, "Order Cancelled"},
		{domain.OrderStatus("OUT_FOR_DELIVERY"), "Order Update"},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			_, events, notifier, _ := newWatcherFixture(t)

			msg := orderChangedEvent(t, testProfile.Phone, domain.OrderStatusConfirmed, tc.status)
			if err := events.handlers[0](context.Background(), msg); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			notifications := notifier.notifications()
			if len(notifications) != 1 {
				t.Fatalf("expected 1 notification, got %d", len(notifications))
			}
			if notifications[0].Title != tc.wantTitle {
				t.Errorf("expected title %q, got %q", tc.wantTitle, notifications[0].Title)
			}
		})
	}
}

func TestStatusWatcherIgnoresOtherUsersOrders(t *testing.T) {
	_, events, notifier, haptics := newWatcherFixture(t)

	msg := orderChangedEvent(t, "919999999999", domain.OrderStatusPending, domain.OrderStatusConfirmed)
	if err := events.handlers[0](context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(notifier.notifications()) != 0 {
		t.Error("expected no notification for another user's order")
	}
	if haptics.pulseCount() != 0 {
		t.Error("expected no haptic pulse for another user's order")
	}
}

func TestStatusWatcherIgnoresUnchangedStatus(t *testing.T) {
	_, events, notifier, _ := newWatcherFixture(t)

	msg := orderChangedEvent(t, testProfile.Phone, domain.OrderStatusConfirmed, domain.OrderStatusConfirmed)
	if err := events.handlers[0](context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(notifier.notifications()) != 0 {
		t.Error("expected no notification for an unchanged status")
	}
}

func TestStatusWatcherIgnoresPendingRegression(t *testing.T) {
	_, events, notifier, _ := newWatcherFixture(t)

	msg := orderChangedEvent(t, testProfile.Phone, domain.OrderStatusConfirmed, domain.OrderStatusPending)
	if err := events.handlers[0](context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(notifier.notifications()) != 0 {
		t.Error("expected no notification for a regression to pending")
	}
}

func TestStatusWatcherToleratesMalformedEvents(t *testing.T) {
	_, events, notifier, _ := newWatcherFixture(t)

	if err := events.handlers[0](context.Background(), []byte("not json")); err != nil {
		t.Fatalf("expected malformed event to be swallowed, got %v", err)
	}
	if len(notifier.notifications()) != 0 {
		t.Error("expected no notification for a malformed event")
	}
}

func TestStatusWatcherNotifyFailureStillPulses(t *testing.T) {
	_, events, notifier, haptics := newWatcherFixture(t)
	notifier.NotifyFunc = func(ctx context.Context, n port.Notification) error {
		return errors.New("nats down")
	}

	msg := orderChangedEvent(t, testProfile.Phone, domain.OrderStatusPending, domain.OrderStatusConfirmed)
	if err := events.handlers[0](context.Background(), msg); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if haptics.pulseCount() != 1 {
		t.Errorf("expected haptic pulse despite notify failure, got %d", haptics.pulseCount())
	}
}

func TestStatusWatcherStopUnsubscribesOnce(t *testing.T) {
	w, events, _, _ := newWatcherFixture(t)

	if err := w.Stop(); err != nil {
		t.Fatalf("first stop: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}

	if got := events.subs[0].unsubscribeCount(); got != 1 {
		t.Errorf("expected exactly 1 unsubscribe, got %d", got)
	}
}

func TestStatusWatcherStartWithoutSubscriber(t *testing.T) {
	w := NewStatusWatcher(testProfile, nil, newMockNotifier(), &mockHaptics{})
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error when no event subscriber is configured")
	}
}

func TestStatusWatcherSubscribeFailure(t *testing.T) {
	events := newMockSubscriber()
	events.SubscribeFunc = func(ctx context.Context, topic string, handler port.HandlerFunc) (port.Subscription, error) {
		return nil, errors.New("nats down")
	}

	w := NewStatusWatcher(testProfile, events, newMockNotifier(), &mockHaptics{})
	if err := w.Start(context.Background()); err == nil {
		t.Fatal("expected error when subscribe fails")
	}
}

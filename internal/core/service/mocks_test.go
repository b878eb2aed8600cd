package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/port"
)

type mockDatabaseRepo struct {
	mu            sync.Mutex
	menu          []domain.MenuItem
	savedOrders   []domain.Order
	nextID        int
	pin           string
	SaveOrderFunc func(ctx context.Context, order domain.Order) error
	AdminPINFunc  func(ctx context.Context) (string, error)
}

func newMockDatabaseRepo() *mockDatabaseRepo {
	return &mockDatabaseRepo{pin: "4242"}
}

func (m *mockDatabaseRepo) Menu(ctx context.Context) ([]domain.MenuItem, error) {
	return m.menu, nil
}

func (m *mockDatabaseRepo) MenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	for _, it := range m.menu {
		if it.ID == id {
			return &it, nil
		}
	}
	return nil, nil
}

func (m *mockDatabaseRepo) GenerateOrderID(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return fmt.Sprintf("ORD-%04d", m.nextID), nil
}

func (m *mockDatabaseRepo) SaveOrder(ctx context.Context, order domain.Order) error {
	if m.SaveOrderFunc != nil {
		return m.SaveOrderFunc(ctx, order)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.savedOrders = append(m.savedOrders, order)
	return nil
}

func (m *mockDatabaseRepo) AdminPIN(ctx context.Context) (string, error) {
	if m.AdminPINFunc != nil {
		return m.AdminPINFunc(ctx)
	}
	return m.pin, nil
}

func (m *mockDatabaseRepo) orders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, len(m.savedOrders))
	copy(out, m.savedOrders)
	return out
}

type mockCacheRepo struct {
	mu                  sync.Mutex
	currentUser         *domain.UserProfile
	lastOrder           []domain.CartItem
	deliveryFee         int
	SaveCurrentUserFunc func(ctx context.Context, profile domain.UserProfile) error
	SaveLastOrderFunc   func(ctx context.Context, items []domain.CartItem) error
	DeliveryFeeFunc     func(ctx context.Context) (int, error)
}

func newMockCacheRepo() *mockCacheRepo {
	return &mockCacheRepo{deliveryFee: 20}
}

func (m *mockCacheRepo) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentUser, nil
}

func (m *mockCacheRepo) SaveCurrentUser(ctx context.Context, profile domain.UserProfile) error {
	if m.SaveCurrentUserFunc != nil {
		return m.SaveCurrentUserFunc(ctx, profile)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = &profile
	return nil
}

func (m *mockCacheRepo) ClearCurrentUser(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentUser = nil
	return nil
}

func (m *mockCacheRepo) SaveLastOrder(ctx context.Context, items []domain.CartItem) error {
	if m.SaveLastOrderFunc != nil {
		return m.SaveLastOrderFunc(ctx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastOrder = items
	return nil
}

func (m *mockCacheRepo) LastOrder(ctx context.Context) ([]domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOrder, nil
}

func (m *mockCacheRepo) DeliveryFee(ctx context.Context) (int, error) {
	if m.DeliveryFeeFunc != nil {
		return m.DeliveryFeeFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deliveryFee, nil
}

type scheduledNotification struct {
	n      port.Notification
	fireAt time.Time
}

type mockNotifier struct {
	mu         sync.Mutex
	notified   []port.Notification
	scheduled  []scheduledNotification
	cancelled  []string
	NotifyFunc func(ctx context.Context, n port.Notification) error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{}
}

func (m *mockNotifier) Notify(ctx context.Context, n port.Notification) error {
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, n)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = append(m.notified, n)
	return nil
}

func (m *mockNotifier) Schedule(ctx context.Context, n port.Notification, fireAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scheduled = append(m.scheduled, scheduledNotification{n: n, fireAt: fireAt})
	return nil
}

func (m *mockNotifier) Cancel(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelled = append(m.cancelled, id)
	return nil
}

func (m *mockNotifier) notifications() []port.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]port.Notification, len(m.notified))
	copy(out, m.notified)
	return out
}

func (m *mockNotifier) schedules() []scheduledNotification {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]scheduledNotification, len(m.scheduled))
	copy(out, m.scheduled)
	return out
}

type mockHaptics struct {
	mu     sync.Mutex
	pulses int
	err    error
}

func (m *mockHaptics) NotifySuccess(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.pulses++
	return nil
}

func (m *mockHaptics) pulseCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pulses
}

type mockMessagingHandoff struct {
	mu     sync.Mutex
	shared []domain.Order
	err    error
}

func (m *mockMessagingHandoff) ShareOrderSummary(ctx context.Context, order domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.shared = append(m.shared, order)
	return nil
}

func (m *mockMessagingHandoff) sharedOrders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Order, len(m.shared))
	copy(out, m.shared)
	return out
}

type mockSubscription struct {
	mu           sync.Mutex
	unsubscribes int
}

func (m *mockSubscription) Unsubscribe() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unsubscribes++
	return nil
}

func (m *mockSubscription) unsubscribeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubscribes
}

type mockSubscriber struct {
	mu            sync.Mutex
	topics        []string
	handlers      []port.HandlerFunc
	subs          []*mockSubscription
	SubscribeFunc func(ctx context.Context, topic string, handler port.HandlerFunc) (port.Subscription, error)
}

func newMockSubscriber() *mockSubscriber {
	return &mockSubscriber{}
}

func (m *mockSubscriber) Subscribe(ctx context.Context, topic string, handler port.HandlerFunc) (port.Subscription, error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(ctx, topic, handler)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sub := &mockSubscription{}
	m.topics = append(m.topics, topic)
	m.handlers = append(m.handlers, handler)
	m.subs = append(m.subs, sub)
	return sub, nil
}

func (m *mockSubscriber) subscriptionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

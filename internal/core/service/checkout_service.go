package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/port"
)

var ErrEmptyCart = errors.New("cart is empty")

// reengageAfter is how long after an order the re-engagement notification
// fires.
const reengageAfter = 48 * time.Hour

// CheckoutService runs the order submission pipeline: price the cart,
// persist the order, then fan out the best-effort side effects.
type CheckoutService struct {
	db       port.DatabaseRepository
	cache    port.CacheRepository
	notifier port.Notifier
	haptics  port.Haptics
	chat     port.MessagingHandoff
	effects  *EffectRunner
	nowFunc  func() time.Time
}

func NewCheckoutService(
	db port.DatabaseRepository,
	cache port.CacheRepository,
	notifier port.Notifier,
	haptics port.Haptics,
	chat port.MessagingHandoff,
	effects *EffectRunner,
) *CheckoutService {
	return &CheckoutService{
		db:       db,
		cache:    cache,
		notifier: notifier,
		haptics:  haptics,
		chat:     chat,
		effects:  effects,
		nowFunc:  time.Now,
	}
}

// Quote prices a cart snapshot with the currently configured delivery fee.
// Both the pre-checkout display and PlaceOrder call this, so the two totals
// cannot diverge.
func (s *CheckoutService) Quote(ctx context.Context, items []domain.CartItem) (domain.Quote, error) {
	fee, err := s.cache.DeliveryFee(ctx)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("delivery fee: %w", err)
	}
	return domain.PriceCart(items, fee), nil
}

// PlaceOrder submits the cart as a new order. Persistence must succeed before
// the cart is cleared; if SaveOrder fails the cart survives so the user can
// retry. Side effects (haptic pulse, deferred re-engagement notification,
// order-summary chat handoff) run in the background and cannot fail the
// order.
func (s *CheckoutService) PlaceOrder(ctx context.Context, cart *domain.Cart, details domain.UserDetails, paymentID string) (*domain.Order, error) {
	items := cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	quote, err := s.Quote(ctx, items)
	if err != nil {
		return nil, err
	}

	id, err := s.db.GenerateOrderID(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	order := domain.Order{
		ID:          id,
		Items:       items,
		TotalAmount: quote.FinalTotal,
		UserDetails: details,
		Status:      domain.OrderStatusPending,
		PlacedAt:    s.nowFunc(),
		PaymentID:   paymentID,
	}

	if err := s.db.SaveOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.cache.SaveLastOrder(ctx, items); err != nil {
		// reorder shortcut only, the order itself is already durable
		log.Printf("checkout: save last order: %v", err)
	}

	s.effects.Submit("haptics", func(ctx context.Context) error {
		return s.haptics.NotifySuccess(ctx)
	})

	fireAt := order.PlacedAt.Add(reengageAfter)
	s.effects.Submit("reengage-notification", func(ctx context.Context) error {
		return s.notifier.Schedule(ctx, port.Notification{
			ID:    "reengage-" + order.ID,
			Title: "We miss you! 😢",
			Body:  "Craving something tasty? Your favourites are one tap away.",
		}, fireAt)
	})

	s.effects.Submit("order-summary-handoff", func(ctx context.Context) error {
		return s.chat.ShareOrderSummary(ctx, order)
	})

	cart.Clear()
	return &order, nil
}

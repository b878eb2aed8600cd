package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/quickbites/storefront/internal/core/domain"
	"github.com/quickbites/storefront/internal/port"
)

// SessionService owns the current-user lifecycle: the session cart, the
// persisted current profile, and the realtime status watcher. At most one
// watcher subscription is live at a time; logging in tears down any previous
// one before opening the next.
type SessionService struct {
	cache    port.CacheRepository
	events   port.EventSubscriber
	notifier port.Notifier
	haptics  port.Haptics

	mu      sync.Mutex
	watcher *StatusWatcher
	cart    *domain.Cart
}

func NewSessionService(cache port.CacheRepository, events port.EventSubscriber, notifier port.Notifier, haptics port.Haptics) *SessionService {
	return &SessionService{
		cache:    cache,
		events:   events,
		notifier: notifier,
		haptics:  haptics,
		cart:     domain.NewCart(),
	}
}

// Login makes profile the current user, resets the cart, and opens a fresh
// status watch for the profile's phone.
func (s *SessionService) Login(ctx context.Context, profile domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopWatcher()

	if err := s.cache.SaveCurrentUser(ctx, profile); err != nil {
		return fmt.Errorf("save current user: %w", err)
	}

	w := NewStatusWatcher(profile, s.events, s.notifier, s.haptics)
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("start status watcher: %w", err)
	}
	s.watcher = w
	s.cart = domain.NewCart()
	return nil
}

// Logout ends the session: the watcher is released and the stored current
// user cleared. Idempotent.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopWatcher()
	s.cart = domain.NewCart()

	if err := s.cache.ClearCurrentUser(ctx); err != nil {
		return fmt.Errorf("clear current user: %w", err)
	}
	return nil
}

// CurrentUser returns the logged-in profile, or (nil, nil) when logged out.
func (s *SessionService) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	return s.cache.CurrentUser(ctx)
}

// Cart returns the live session cart.
func (s *SessionService) Cart() *domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart
}

// Close releases the watcher without touching the stored session. Used on
// shutdown.
func (s *SessionService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopWatcher()
}

// stopWatcher must be called with s.mu held.
func (s *SessionService) stopWatcher() {
	if s.watcher == nil {
		return
	}
	if err := s.watcher.Stop(); err != nil {
		log.Printf("session: stop status watcher: %v", err)
	}
	s.watcher = nil
}

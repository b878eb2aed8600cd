package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quickbites/storefront/internal/core/domain"
)

const (
	currentUserKey = "session:current_user"
	lastOrderKey   = "session:last_order"
	deliveryFeeKey = "config:delivery_fee"

	// defaultDeliveryFee applies when no fee has been configured.
	defaultDeliveryFee = 20
)

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	raw, err := r.client.Get(ctx, currentUserKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode current user: %w", err)
	}
	return &profile, nil
}

func (r *RedisAdapter) SaveCurrentUser(ctx context.Context, profile domain.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode current user: %w", err)
	}
	return r.client.Set(ctx, currentUserKey, raw, 0).Err()
}

func (r *RedisAdapter) ClearCurrentUser(ctx context.Context) error {
	return r.client.Del(ctx, currentUserKey).Err()
}

func (r *RedisAdapter) SaveLastOrder(ctx context.Context, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode last order: %w", err)
	}
	return r.client.Set(ctx, lastOrderKey, raw, 0).Err()
}

func (r *RedisAdapter) LastOrder(ctx context.Context) ([]domain.CartItem, error) {
	raw, err := r.client.Get(ctx, lastOrderKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get last order: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode last order: %w", err)
	}
	return items, nil
}

func (r *RedisAdapter) DeliveryFee(ctx context.Context) (int, error) {
	fee, err := r.client.Get(ctx, deliveryFeeKey).Int()
	if errors.Is(err, redis.Nil) {
		return defaultDeliveryFee, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get delivery fee: %w", err)
	}
	return fee, nil
}

// SetDeliveryFee updates the configured fee. Used by ops tooling and tests.
func (r *RedisAdapter) SetDeliveryFee(ctx context.Context, fee int) error {
	return r.client.Set(ctx, deliveryFeeKey, fee, 0).Err()
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/shop-service/internal/domain"
)

// cartTTL bounds how long an abandoned cart survives.
const cartTTL = 30 * 24 * time.Hour

// CartRepository persists per-user carts in Redis as JSON blobs.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Put(ctx context.Context, userID string, cart *domain.Cart) error
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct {
	client *redis.Client
}

// NewCartRepository returns a Redis-backed implementation.
func NewCartRepository(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// Get returns the stored cart, or an empty cart when none exists.
func (r *cartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	raw, err := r.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{}, nil
		}
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) Put(ctx context.Context, userID string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, cartKey(userID), raw, cartTTL).Err()
}

// Clear removes the cart key. Clearing an absent cart is a no-op.
func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, cartKey(userID)).Err()
}

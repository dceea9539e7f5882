package basketstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"leisure-booking/internal/domain/basket"
	"leisure-booking/internal/infra"
	"leisure-booking/internal/pkg/config"
)

// RedisStore persists provisional baskets in Redis, keyed by booking scope
// (the customer the selection is for). Baskets expire after the configured
// TTL rather than lingering forever when a customer abandons checkout.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, cfg config.RedisConfig) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    cfg.BasketTTL,
	}
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func basketKey(scope string) string {
	return "basket:" + scope
}

// Get returns the basket for a scope; a missing key is an empty basket.
func (s *RedisStore) Get(ctx context.Context, scope string) (basket.Basket, error) {
	raw, err := s.client.Get(ctx, basketKey(scope)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return basket.New(), nil
		}
		return basket.Basket{}, infra.WrapRepoErr("failed to load basket", err)
	}

	var codes []string
	if err := json.Unmarshal(raw, &codes); err != nil {
		return basket.Basket{}, infra.WrapRepoErr("failed to decode stored basket", err)
	}
	return basket.New(codes...), nil
}

// Save writes the basket back, refreshing its TTL. An empty basket deletes
// the key instead of storing an empty list.
func (s *RedisStore) Save(ctx context.Context, scope string, b basket.Basket) error {
	if b.IsEmpty() {
		if err := s.client.Del(ctx, basketKey(scope)).Err(); err != nil {
			return infra.WrapRepoErr("failed to delete basket", err)
		}
		return nil
	}

	raw, err := json.Marshal(b.Codes())
	if err != nil {
		return infra.WrapRepoErr("failed to encode basket", err)
	}
	if err := s.client.Set(ctx, basketKey(scope), raw, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr("failed to store basket", err)
	}
	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	redisclient "github.com/tindaph/tindaph/cmd/redis"
	"github.com/tindaph/tindaph/model"
)

// ErrCacheMiss is returned when a product is not cached. A nil client (Redis
// not configured) always misses.
var ErrCacheMiss = errors.New("cache miss")

// Repository is a read-through cache for product-by-id lookups.
type Repository interface {
	GetProduct(ctx context.Context, id string) (*model.ProductEntity, error)
	SetProduct(ctx context.Context, product *model.ProductEntity) error
	DeleteProduct(ctx context.Context, id string) error
}

type redisRepo struct {
	ttl time.Duration
}

// NewRepository returns a Redis-backed product cache with the given TTL.
func NewRepository(ttl time.Duration) Repository {
	return &redisRepo{ttl: ttl}
}

func (r *redisRepo) GetProduct(ctx context.Context, id string) (*model.ProductEntity, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, ErrCacheMiss
	}

	data, err := client.Get(ctx, productKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product model.ProductEntity
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("unmarshal cached product failed: %w", err)
	}
	return &product, nil
}

func (r *redisRepo) SetProduct(ctx context.Context, product *model.ProductEntity) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}

	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}
	return client.Set(ctx, productKey(product.ID.Hex()), data, r.ttl).Err()
}

func (r *redisRepo) DeleteProduct(ctx context.Context, id string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, productKey(id)).Err()
}

func productKey(id string) string {
	return "product:" + id
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/redis/go-redis/v9"
)

// SnapshotCache keeps the last server-confirmed wallet snapshot between runs.
type SnapshotCache interface {
	Load(ctx context.Context) (model.WalletSnapshot, bool, error)
	Save(ctx context.Context, snapshot model.WalletSnapshot) error
	Close() error
}

// RedisClient is the part of *redis.Client the cache uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

func New(cfg Config) SnapshotCache {
	if !cfg.Enabled {
		return NoopSnapshotCache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return NewRedisSnapshotCache(client, cfg.Key, cfg.TTL, client.Close)
}

type RedisSnapshotCache struct {
	client RedisClient
	key    string
	ttl    time.Duration
	close  func() error
}

func NewRedisSnapshotCache(client RedisClient, key string, ttl time.Duration, closer func() error) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, key: key, ttl: ttl, close: closer}
}

func (c *RedisSnapshotCache) Load(ctx context.Context) (model.WalletSnapshot, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.WalletSnapshot{}, false, nil
		}
		return model.WalletSnapshot{}, false, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var snapshot model.WalletSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return model.WalletSnapshot{}, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	snapshot.Stale = true

	return snapshot, true, nil
}

func (c *RedisSnapshotCache) Save(ctx context.Context, snapshot model.WalletSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	return c.client.Set(ctx, c.key, data, c.ttl).Err()
}

func (c *RedisSnapshotCache) Close() error {
	if c.close == nil {
		return nil
	}
	return c.close()
}

type NoopSnapshotCache struct{}

func (NoopSnapshotCache) Load(context.Context) (model.WalletSnapshot, bool, error) {
	return model.WalletSnapshot{}, false, nil
}

func (NoopSnapshotCache) Save(context.Context, model.WalletSnapshot) error {
	return nil
}

func (NoopSnapshotCache) Close() error {
	return nil
}

package mocks

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

type RedisClient struct {
	mock.Mock
}

func (r *RedisClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := r.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := r.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

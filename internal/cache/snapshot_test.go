package cache_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Bluepen/wallet-topup/internal/cache"
	"github.com/Bluepen/wallet-topup/internal/mocks"
	"github.com/Bluepen/wallet-topup/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const key = "wallet:snapshot"

func TestRedisSnapshotCache(t *testing.T) {
	ctx := context.Background()
	snapshot := model.WalletSnapshot{
		WalletBalance: model.WalletBalance{Balance: decimal.RequireFromString("1500.50"), Currency: "INR"},
		Transactions: []model.WalletTransaction{{
			ID:     "t1",
			Type:   model.TransactionTypeCredit,
			Reason: model.ReasonWalletTopUp,
			Amount: decimal.NewFromInt(500),
			Date:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		}},
		FetchedAt: time.Date(2024, 5, 1, 10, 1, 0, 0, time.UTC),
	}

	t.Run("save then load marks stale", func(t *testing.T) {
		client := &mocks.RedisClient{}
		c := cache.NewRedisSnapshotCache(client, key, time.Hour, nil)

		var stored []byte
		client.On("Set", ctx, key, mock.Anything, time.Hour).
			Run(func(args mock.Arguments) { stored = args.Get(2).([]byte) }).
			Return(redis.NewStatusResult("OK", nil))

		require.NoError(t, c.Save(ctx, snapshot))

		client.On("Get", ctx, key).Return(redis.NewStringResult(string(stored), nil))

		loaded, ok, err := c.Load(ctx)

		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, loaded.Stale)
		assert.True(t, loaded.Balance.Equal(snapshot.Balance))
		assert.Equal(t, "INR", loaded.Currency)
		require.Len(t, loaded.Transactions, 1)
		assert.Equal(t, model.ReasonWalletTopUp, loaded.Transactions[0].Reason)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(stored, &raw))
		assert.NotContains(t, raw, "Stale")
		client.AssertExpectations(t)
	})

	t.Run("miss", func(t *testing.T) {
		client := &mocks.RedisClient{}
		c := cache.NewRedisSnapshotCache(client, key, time.Hour, nil)

		client.On("Get", ctx, key).Return(redis.NewStringResult("", redis.Nil))

		_, ok, err := c.Load(ctx)

		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis error", func(t *testing.T) {
		client := &mocks.RedisClient{}
		c := cache.NewRedisSnapshotCache(client, key, time.Hour, nil)

		client.On("Get", ctx, key).Return(redis.NewStringResult("", errors.New("connection refused")))

		_, ok, err := c.Load(ctx)

		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt entry", func(t *testing.T) {
		client := &mocks.RedisClient{}
		c := cache.NewRedisSnapshotCache(client, key, time.Hour, nil)

		client.On("Get", ctx, key).Return(redis.NewStringResult("{not json", nil))

		_, ok, err := c.Load(ctx)

		assert.Error(t, err)
		assert.False(t, ok)
	})
}

func TestNew(t *testing.T) {
	c := cache.New(cache.Config{Enabled: false})

	_, ok, err := c.Load(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Save(context.Background(), model.WalletSnapshot{}))
	assert.NoError(t, c.Close())
}

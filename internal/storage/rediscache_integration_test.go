//go:build integration

package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestCachedIdentityStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	addr, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	opts, err := redis.ParseURL(addr)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	backing := NewInMemoryIdentityStore()
	cached := NewCachedIdentityStore(backing, client, time.Minute, logger)

	record := testRecord("12345678901", "a1b2c3d4e5f6")
	require.NoError(t, cached.Create(ctx, record))

	t.Run("read through by anon id", func(t *testing.T) {
		got, err := cached.FindByAnonID(ctx, record.AnonID)
		require.NoError(t, err)
		assert.Equal(t, record.NIN, got.NIN)
		assert.Equal(t, record.PublicProfile, got.PublicProfile)
	})

	t.Run("cache survives backing store loss", func(t *testing.T) {
		// A fresh empty backing store simulates the cache answering alone.
		cold := NewCachedIdentityStore(NewInMemoryIdentityStore(), client, time.Minute, logger)
		got, err := cold.FindByNIN(ctx, record.NIN)
		require.NoError(t, err)
		assert.Equal(t, record.AnonID, got.AnonID)
	})

	t.Run("count bypasses cache", func(t *testing.T) {
		n, err := cached.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

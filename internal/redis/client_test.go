package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/redis"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	t.Run("single node", func(t *testing.T) {
		client, err := redis.Open(ctx, "", []string{mr.Addr()}, nil)
		require.NoError(t, err)
		defer func() { _ = client.Close() }()

		require.NoError(t, client.Set(ctx, "k", "v", 0).Err())
		got, err := mr.Get("k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("password is sent", func(t *testing.T) {
		secured := miniredis.RunT(t)
		secured.RequireAuth("secret")

		_, err := redis.Open(ctx, "", []string{secured.Addr()}, nil)
		require.Error(t, err)

		client, err := redis.Open(ctx, "", []string{secured.Addr()}, &redis.Options{Password: "secret"})
		require.NoError(t, err)
		_ = client.Close()
	})

	t.Run("no address", func(t *testing.T) {
		_, err := redis.Open(ctx, "", nil, nil)
		require.Error(t, err)
	})

	t.Run("unreachable", func(t *testing.T) {
		_, err := redis.Open(ctx, "", []string{"127.0.0.1:1"}, &redis.Options{MaxRetries: -1})
		require.Error(t, err)
	})
}

func TestNewFailoverClientValidation(t *testing.T) {
	_, err := redis.NewFailoverClient("", []string{"a:1"}, nil)
	require.Error(t, err)
	_, err = redis.NewFailoverClient("primary", nil, nil)
	require.Error(t, err)
}

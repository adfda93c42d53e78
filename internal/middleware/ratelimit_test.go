package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	t.Setenv("APP_ENV", "production")

	t.Run("allows up to limit then blocks", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			allowed, err := CheckRateLimit(ctx, rdb, "signup", "ip1", 3, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed, "request %d should be allowed", i+1)
		}

		allowed, err := CheckRateLimit(ctx, rdb, "signup", "ip1", 3, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("limits are per identity", func(t *testing.T) {
		allowed, err := CheckRateLimit(ctx, rdb, "signup", "ip2", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := CheckRateLimit(ctx, rdb, "login", "ip3", 2, time.Minute)
			require.NoError(t, err)
		}
		allowed, err := CheckRateLimit(ctx, rdb, "login", "ip3", 2, time.Minute)
		require.NoError(t, err)
		assert.False(t, allowed)

		mr.FastForward(2 * time.Minute)

		allowed, err = CheckRateLimit(ctx, rdb, "login", "ip3", 2, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("nil client errors in production", func(t *testing.T) {
		_, err := CheckRateLimit(ctx, nil, "signup", "ip4", 3, time.Minute)
		assert.Error(t, err)
	})
}

func TestCheckRateLimitDisabledOutsideProduction(t *testing.T) {
	ctx := context.Background()

	for _, env := range []string{"test", "development", ""} {
		t.Setenv("APP_ENV", env)
		for i := 0; i < 10; i++ {
			allowed, err := CheckRateLimit(ctx, nil, "signup", "anyone", 1, time.Minute)
			require.NoError(t, err)
			assert.True(t, allowed)
		}
	}
}

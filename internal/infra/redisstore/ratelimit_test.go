//go:build unit

package redisstore_test

import (
	"context"
	"testing"
	"time"

	"notify-dispatch/internal/domain/quota"
	"notify-dispatch/internal/infra/redisstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *redisstore.RateLimitStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redisstore.NewRateLimitStore(client)
}

func TestTakeToken(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("容量分のバーストを許可し次は拒否", func(t *testing.T) {
		store := newStore(t)
		spec := quota.BucketSpec{Capacity: 10, RefillPerSec: 1}
		key := redisstore.BucketKey(uuid.New(), quota.ScopeTenant, "")

		for i := 0; i < 10; i++ {
			ok, err := store.TakeToken(ctx, key, spec, base)
			require.NoError(t, err)
			assert.True(t, ok, "token %d should be granted", i+1)
		}

		ok, err := store.TakeToken(ctx, key, spec, base)
		require.NoError(t, err)
		assert.False(t, ok, "burst beyond capacity must be denied")
	})

	t.Run("経過時間に応じて端数まで補充される", func(t *testing.T) {
		store := newStore(t)
		spec := quota.BucketSpec{Capacity: 10, RefillPerSec: 1}
		key := redisstore.BucketKey(uuid.New(), quota.ScopeTenant, "")

		for i := 0; i < 10; i++ {
			ok, err := store.TakeToken(ctx, key, spec, base)
			require.NoError(t, err)
			require.True(t, ok)
		}

		// 3.5s later exactly 3 whole tokens are available
		later := base.Add(3500 * time.Millisecond)
		for i := 0; i < 3; i++ {
			ok, err := store.TakeToken(ctx, key, spec, later)
			require.NoError(t, err)
			assert.True(t, ok, "refilled token %d should be granted", i+1)
		}

		ok, err := store.TakeToken(ctx, key, spec, later)
		require.NoError(t, err)
		assert.False(t, ok, "only 3 tokens accrue in 3.5s at 1/s")
	})

	t.Run("補充は容量を超えない", func(t *testing.T) {
		store := newStore(t)
		spec := quota.BucketSpec{Capacity: 3, RefillPerSec: 1}
		key := redisstore.BucketKey(uuid.New(), quota.ScopeTenant, "")

		ok, err := store.TakeToken(ctx, key, spec, base)
		require.NoError(t, err)
		require.True(t, ok)

		// a long idle period must not bank more than capacity
		later := base.Add(time.Hour)
		for i := 0; i < 3; i++ {
			ok, err := store.TakeToken(ctx, key, spec, later)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err = store.TakeToken(ctx, key, spec, later)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("バケットはキーごとに独立", func(t *testing.T) {
		store := newStore(t)
		spec := quota.BucketSpec{Capacity: 1, RefillPerSec: 0.1}
		tenant := uuid.New()
		userKey := redisstore.BucketKey(tenant, quota.ScopeUser, "user-a")
		svcKey := redisstore.BucketKey(tenant, quota.ScopeService, "orders")

		ok, err := store.TakeToken(ctx, userKey, spec, base)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = store.TakeToken(ctx, userKey, spec, base)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = store.TakeToken(ctx, svcKey, spec, base)
		require.NoError(t, err)
		assert.True(t, ok, "service bucket is unaffected by the user bucket")
	})
}

func TestJobLock(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	lock := redisstore.NewJobLock(client)

	t.Run("取得中は他者が取れず解放後に取れる", func(t *testing.T) {
		release, acquired, err := lock.TryAcquire(ctx, "drain:standard", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		_, again, err := lock.TryAcquire(ctx, "drain:standard", time.Minute)
		require.NoError(t, err)
		assert.False(t, again)

		release()

		release2, acquired2, err := lock.TryAcquire(ctx, "drain:standard", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired2)
		release2()
	})

	t.Run("別名のロックは独立", func(t *testing.T) {
		release, acquired, err := lock.TryAcquire(ctx, "drain:bulk", time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)
		defer release()

		release2, acquired2, err := lock.TryAcquire(ctx, "drain:priority", time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired2)
		release2()
	})
}

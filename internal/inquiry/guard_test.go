package inquiry

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prakhar2b/sm-dryfruto/internal/domain"
)

func setupTestRedis(t *testing.T) (*RedisGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisGuard(client, time.Minute), mr
}

func sampleInquiry() domain.BulkOrderInquiry {
	return domain.BulkOrderInquiry{
		Name:        "Ravi Kumar",
		Company:     "Kumar Traders",
		Phone:       "9876543210",
		ProductType: "Dry Fruits",
		Quantity:    "50 kg",
		Message:     "Need weekly supply",
	}
}

func TestRedisGuard_AcquireRelease(t *testing.T) {
	guard, mr := setupTestRedis(t)
	ctx := context.Background()

	token, ok, err := guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)
	assert.True(t, mr.Exists(keyPrefix+"abc"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"abc"))

	_, ok, err = guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "abc", token))
	assert.False(t, mr.Exists(keyPrefix+"abc"))

	_, ok, err = guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuard_ExpiresAfterTTL(t *testing.T) {
	guard, mr := setupTestRedis(t)
	ctx := context.Background()

	_, _, err := guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	_, ok, err := guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisGuard_ExpiredHolderCannotReleaseNewHolder(t *testing.T) {
	guard, mr := setupTestRedis(t)
	ctx := context.Background()

	first, ok, err := guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	second, ok, err := guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotEqual(t, first, second)

	require.NoError(t, guard.Release(ctx, "abc", first))
	assert.True(t, mr.Exists(keyPrefix+"abc"), "stale release leaves the current holder's key")

	_, ok, err = guard.Acquire(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, guard.Release(ctx, "abc", second))
	assert.False(t, mr.Exists(keyPrefix+"abc"))
}

func TestRedisGuard_ConnectionError(t *testing.T) {
	guard, mr := setupTestRedis(t)
	mr.Close()

	_, _, err := guard.Acquire(context.Background(), "abc")
	assert.Error(t, err)
}

func TestMemoryGuard(t *testing.T) {
	guard := NewMemoryGuard(time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	guard.now = func() time.Time { return now }
	ctx := context.Background()

	first, ok, _ := guard.Acquire(ctx, "k")
	assert.True(t, ok)
	_, ok, _ = guard.Acquire(ctx, "k")
	assert.False(t, ok)

	now = now.Add(time.Minute)
	second, ok, _ := guard.Acquire(ctx, "k")
	assert.True(t, ok, "expired key is reacquirable")

	require.NoError(t, guard.Release(ctx, "k", first))
	_, ok, _ = guard.Acquire(ctx, "k")
	assert.False(t, ok, "stale token does not release the current holder")

	require.NoError(t, guard.Release(ctx, "k", second))
	_, ok, _ = guard.Acquire(ctx, "k")
	assert.True(t, ok)
}

func TestFingerprint(t *testing.T) {
	a := sampleInquiry()
	b := sampleInquiry()
	b.Name = "  Ravi Kumar "
	b.Email = ""
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	c := sampleInquiry()
	c.Quantity = "100 kg"
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))
	assert.Len(t, Fingerprint(a), 64)
}

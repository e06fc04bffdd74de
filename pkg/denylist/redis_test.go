package denylist_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/pkg/denylist"
)

func newRedis(t *testing.T) (*denylist.Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	store := denylist.NewRedis(redis.NewClient(&redis.Options{Addr: srv.Addr()}))
	t.Cleanup(func() { store.Close() }) //nolint:errcheck
	return store, srv
}

func TestRedisRevokeUntilExpiry(t *testing.T) {
	store, srv := newRedis(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
	assert.True(t, srv.Exists("coursevault:revoked:jti-1"))

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	srv.FastForward(time.Hour + time.Second)
	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked, "entries lapse with the token")
}

func TestRedisRevokeExpiredTokenIsNoop(t *testing.T) {
	store, srv := newRedis(t)

	require.NoError(t, store.Revoke(context.Background(), "jti-old", time.Now().Add(-time.Minute)))
	assert.False(t, srv.Exists("coursevault:revoked:jti-old"))
}

func TestRedisUnavailable(t *testing.T) {
	store, srv := newRedis(t)
	srv.Close()

	_, err := store.IsRevoked(context.Background(), "jti-1")
	assert.Error(t, err)
	assert.Error(t, store.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))
}

func TestConnectPingsServer(t *testing.T) {
	srv := miniredis.RunT(t)

	store, err := denylist.Connect(context.Background(), srv.Addr(), "")
	require.NoError(t, err)
	assert.NoError(t, store.Close())

	srv.Close()
	_, err = denylist.Connect(context.Background(), srv.Addr(), "")
	assert.Error(t, err)
}

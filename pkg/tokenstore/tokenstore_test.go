package tokenstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDenylist(t *testing.T) (*RedisDenylist, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestRevoke(t *testing.T) {
	denylist, mr := newDenylist(t)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = denylist.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("jwt:revoked:abc")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "kept only until the token expires, got %s", ttl)

	mr.FastForward(time.Hour + time.Second)
	revoked, err = denylist.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevoke_ExpiredToken(t *testing.T) {
	denylist, mr := newDenylist(t)

	require.NoError(t, denylist.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("jwt:revoked:old"))
}

func TestRevoke_EmptyID(t *testing.T) {
	denylist, _ := newDenylist(t)
	assert.ErrorIs(t, denylist.Revoke(context.Background(), "", time.Now().Add(time.Hour)), ErrEmptyTokenID)
}

func TestIsRevoked_RedisDown(t *testing.T) {
	denylist, mr := newDenylist(t)
	mr.Close()

	_, err := denylist.IsRevoked(context.Background(), "abc")
	assert.Error(t, err)
}

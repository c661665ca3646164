package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrEmptyTokenID = errors.New("token has no id")

// RedisDenylist keeps revoked token ids until the tokens would have expired anyway.
type RedisDenylist struct {
	client *redis.Client
	now    func() time.Time
}

func New(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		now:    time.Now,
	}
}

func key(tokenID string) string {
	return "jwt:revoked:" + tokenID
}

// Revoke denylists the token until expiresAt. An already expired token is left alone.
func (d *RedisDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return ErrEmptyTokenID
	}
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, key(tokenID), 1, ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

package otpstore

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeReset  Purpose = "reset"
)

const (
	CodeLength  = 6
	MaxAttempts = 5
)

var ErrTooManyAttempts = errors.New("too many otp attempts")

type RedisStore struct {
	client *redis.Client
}

func New(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
	}
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
}

func codeKey(purpose Purpose, phone string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, phone)
}

func attemptsKey(purpose Purpose, phone string) string {
	return fmt.Sprintf("otp:%s:%s:attempts", purpose, phone)
}

// Save stores a code for the phone, replacing any earlier one and resetting
// the attempt counter.
func (s *RedisStore) Save(ctx context.Context, purpose Purpose, phone, code string, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, codeKey(purpose, phone), code, ttl)
		pipe.Del(ctx, attemptsKey(purpose, phone))
		return nil
	})
	return err
}

// Verify reports whether code matches the stored one. A match consumes the
// code; after MaxAttempts misses the code is dropped.
func (s *RedisStore) Verify(ctx context.Context, purpose Purpose, phone, code string) (bool, error) {
	stored, err := s.client.Get(ctx, codeKey(purpose, phone)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) == 1 {
		return true, s.client.Del(ctx, codeKey(purpose, phone), attemptsKey(purpose, phone)).Err()
	}

	attempts, err := s.client.Incr(ctx, attemptsKey(purpose, phone)).Result()
	if err != nil {
		return false, err
	}
	if attempts == 1 {
		ttl, err := s.client.TTL(ctx, codeKey(purpose, phone)).Result()
		if err == nil && ttl > 0 {
			s.client.Expire(ctx, attemptsKey(purpose, phone), ttl)
		}
	}
	if attempts >= MaxAttempts {
		s.client.Del(ctx, codeKey(purpose, phone), attemptsKey(purpose, phone))
		return false, ErrTooManyAttempts
	}
	return false, nil
}

// NewCode returns a random numeric code of CodeLength digits.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}

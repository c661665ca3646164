package otpstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := NewClient(mr.Addr(), "")
	t.Cleanup(func() { client.Close() })
	return New(client), mr
}

func TestSaveAndVerify(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, PurposeSignup, "08031234567", "123456", time.Minute))
	assert.True(t, mr.Exists("otp:signup:08031234567"))

	ok, err := store.Verify(ctx, PurposeSignup, "08031234567", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Verify(ctx, PurposeSignup, "08031234567", "123456")
	require.NoError(t, err)
	assert.False(t, ok, "a code is single use")
}

func TestVerify_PurposesAreSeparate(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, PurposeSignup, "08031234567", "123456", time.Minute))

	ok, err := store.Verify(ctx, PurposeReset, "08031234567", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_Expired(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, PurposeSignup, "08031234567", "123456", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := store.Verify(ctx, PurposeSignup, "08031234567", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_TooManyAttempts(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, PurposeSignup, "08031234567", "123456", time.Minute))
	for i := 1; i < MaxAttempts; i++ {
		ok, err := store.Verify(ctx, PurposeSignup, "08031234567", "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, err := store.Verify(ctx, PurposeSignup, "08031234567", "000000")
	assert.ErrorIs(t, err, ErrTooManyAttempts)
	assert.False(t, mr.Exists("otp:signup:08031234567"))
}

func TestSave_ResetsAttempts(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, PurposeReset, "08031234567", "123456", time.Minute))
	_, err := store.Verify(ctx, PurposeReset, "08031234567", "000000")
	require.NoError(t, err)
	assert.True(t, mr.Exists("otp:reset:08031234567:attempts"))

	require.NoError(t, store.Save(ctx, PurposeReset, "08031234567", "654321", time.Minute))
	assert.False(t, mr.Exists("otp:reset:08031234567:attempts"))
}

func TestNewCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := NewCode()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{6}$`, code)
	}
}

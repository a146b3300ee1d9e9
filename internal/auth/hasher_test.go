package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHasher(t *testing.T) {
	_, err := NewHasher("")
	assert.ErrorIs(t, err, ErrSaltEmpty)

	_, err = NewHasher("short")
	assert.ErrorIs(t, err, ErrSaltTooShort)

	_, err = NewHasher("long-enough-salt")
	assert.NoError(t, err)
}

func TestHashIsDeterministicPerSalt(t *testing.T) {
	hasher, err := NewHasher("test-salt-0123456789")
	require.NoError(t, err)

	first, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	second, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	// same salt and password always give the same hash; this is what lets
	// login recompute and compare
	assert.Equal(t, first, second)

	other, err := hasher.Hash("different")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)

	otherSalt, err := NewHasher("another-salt-98765432")
	require.NoError(t, err)

	crossSalt, err := otherSalt.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, first, crossSalt)
}

func TestHashRejectsEmptyPassword(t *testing.T) {
	hasher, err := NewHasher("test-salt-0123456789")
	require.NoError(t, err)

	_, err = hasher.Hash("")
	assert.ErrorIs(t, err, ErrPasswordEmpty)
}

func TestVerify(t *testing.T) {
	hasher, err := NewHasher("test-salt-0123456789")
	require.NoError(t, err)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("s3cret", hash))
	assert.False(t, hasher.Verify("wrong", hash))
	assert.False(t, hasher.Verify("", hash))
	assert.False(t, hasher.Verify("s3cret", "not-a-hash"))
}

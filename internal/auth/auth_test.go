package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.Hash("testpass123")
	require.NoError(t, err)
	assert.NotEqual(t, "testpass123", hash)
	assert.True(t, h.Check(hash, "testpass123"))
	assert.False(t, h.Check(hash, "wrong"))
	assert.False(t, h.Check("", "testpass123"))

	again, err := h.Hash("testpass123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "hashes must be salted")
}

func TestNewHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).cost)
	assert.Equal(t, DefaultCost, NewHasher(99).cost)
}

func TestGenerateKey(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := GenerateKey()
		require.NoError(t, err)
		assert.Len(t, key, KeyLength)
		assert.True(t, ValidKeyFormat(key))
		assert.False(t, seen[key])
		seen[key] = true
	}
}

func TestValidKeyFormat(t *testing.T) {
	assert.False(t, ValidKeyFormat(""))
	assert.False(t, ValidKeyFormat("abc"))
	assert.False(t, ValidKeyFormat("ZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ"))
	assert.True(t, ValidKeyFormat("0123456789abcdef0123456789abcdef01234567"))
}

func TestTokenCache_DisabledCacheMisses(t *testing.T) {
	c := NewTokenCache(nil, 0)
	ctx := context.Background()

	require.NoError(t, c.StoreUserID(ctx, "k", 7))
	_, ok := c.GetUserID(ctx, "k")
	assert.False(t, ok)
	assert.NoError(t, c.Delete(ctx, "k"))
}

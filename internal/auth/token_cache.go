package auth

import (
	"context"
	"strconv"
	"time"

	"recipeapi/internal/cache"
)

const tokenKeyPrefix = "auth_token:"

// TokenCacheInterface caches the token key to user id mapping.
type TokenCacheInterface interface {
	GetUserID(ctx context.Context, key string) (userID uint, ok bool)
	StoreUserID(ctx context.Context, key string, userID uint) error
	Delete(ctx context.Context, key string) error
}

// TokenCache keeps token lookups in Redis. Keys never change owner, so entries are never stale;
// the TTL only bounds memory.
type TokenCache struct {
	cache *cache.Client
	ttl   time.Duration
}

// Ensure TokenCache implements TokenCacheInterface
var _ TokenCacheInterface = (*TokenCache)(nil)

// NewTokenCache creates a new token cache.
func NewTokenCache(cache *cache.Client, ttl time.Duration) *TokenCache {
	return &TokenCache{cache: cache, ttl: ttl}
}

// GetUserID returns the cached owner of key.
func (s *TokenCache) GetUserID(ctx context.Context, key string) (uint, bool) {
	data, _ := s.cache.Get(ctx, tokenKeyPrefix+key)
	if data == nil {
		return 0, false
	}
	id, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// StoreUserID caches the owner of key.
func (s *TokenCache) StoreUserID(ctx context.Context, key string, userID uint) error {
	return s.cache.Set(ctx, tokenKeyPrefix+key, []byte(strconv.FormatUint(uint64(userID), 10)), s.ttl)
}

// Delete drops key from the cache.
func (s *TokenCache) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, tokenKeyPrefix+key)
}

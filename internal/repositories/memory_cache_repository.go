package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCacheRepository keeps cache entries inside the process. It serves
// single-instance deployments that run without Redis. Values are stored as
// strings, like Redis does.
type MemoryCacheRepository struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewMemoryCacheRepository(cleanupInterval time.Duration) CacheRepositoryInterface {
	return &MemoryCacheRepository{items: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (r *MemoryCacheRepository) Get(ctx context.Context, key string) (string, error) {
	val, found := r.items.Get(key)
	if !found {
		return "", ErrCacheMiss
	}
	return val.(string), nil
}

func (r *MemoryCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	r.items.Set(key, cacheString(value), expiration)
	return nil
}

func (r *MemoryCacheRepository) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		r.items.Delete(key)
	}
	return nil
}

// Incr keeps the remaining TTL of an existing key.
func (r *MemoryCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	ttl := cache.NoExpiration
	if val, expiresAt, found := r.items.GetWithExpiration(key); found {
		parsed, err := strconv.ParseInt(val.(string), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value of %s is not an integer", key)
		}
		n = parsed
		if !expiresAt.IsZero() {
			ttl = time.Until(expiresAt)
		}
	}
	n++
	r.items.Set(key, strconv.FormatInt(n, 10), ttl)
	return n, nil
}

func (r *MemoryCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	val, found := r.items.Get(key)
	if !found {
		return false, nil
	}
	r.items.Set(key, val, expiration)
	return true, nil
}

func (r *MemoryCacheRepository) Ping(ctx context.Context) error { return nil }

func cacheString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

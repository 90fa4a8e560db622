package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownBackend is returned by New for unrecognized backend names.
var ErrUnknownBackend = errors.New("unknown cache backend")

// Cache stores downloaded cover bytes by key.
//
// A miss is reported as (nil, false, nil); errors are reserved for backend
// failures. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Backend names accepted by New.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend   string
	Dir       string
	RedisAddr string
	RedisDB   int
	Password  string
}

// New opens the cache described by cfg.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case BackendFile, "":
		c, err := NewFileCache(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, RedisConfig{
			Addr:     cfg.RedisAddr,
			DB:       cfg.RedisDB,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	case BackendNone, "null", "off":
		return NewNullCache(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// ArtworkKey returns the cache key for a cover URL.
func ArtworkKey(url string) string {
	return "artwork:" + Hash([]byte(url))
}

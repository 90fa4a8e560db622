package cache

import (
	"context"
	"time"
)

// NullCache stands in for a real backend when cache_backend is "none" or the
// configured backend cannot be opened. Every lookup misses, so each cover is
// downloaded on every run.
type NullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error {
	return nil
}

func (NullCache) Close() error {
	return nil
}

var _ Cache = NullCache{}

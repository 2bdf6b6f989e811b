package domain

import (
	"context"
	"errors"
)

// Cache keys for the derived values.
const (
	CacheKeyAnnouncements   = "announcements"
	CacheKeyFeaturedSpeaker = "featured_speaker"
)

// ErrCacheMiss is returned by CacheStore.Get when the key is not set.
var ErrCacheMiss = errors.New("cache miss")

// CacheStore is a best-effort key/value cache (infrastructure port). It holds
// only derived values; no correctness invariant depends on it.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

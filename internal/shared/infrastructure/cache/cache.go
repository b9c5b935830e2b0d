// Package cache stores short-lived computed results such as recommendation
// lists. Redis backs it when configured; otherwise an in-process map does.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// KeyPrefix namespaces every key written by tempo.
const KeyPrefix = "tempo:"

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value. A zero ttl stores without expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// DeletePrefix drops every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the page cache used by the public site. Rendered
// responses are stored as raw bytes so the same interface works for both
// the in-memory and the Redis backend.
package cache

import (
	"context"
	"time"
)

// Cacher is the interface page cache backends implement.
// All implementations must be safe for concurrent use.
type Cacher interface {
	// Get returns the cached value for key, or ErrCacheMiss if the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key. A zero ttl means the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has reports whether key exists and is not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// StatsProvider is an optional interface for backends that track statistics.
type StatsProvider interface {
	Stats() CacheStats
	ResetStats()
}

// CacheStats holds counters for one cache backend.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Items   int
	HitRate float64
	Size    int64 // approximate bytes, 0 when the backend cannot tell
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

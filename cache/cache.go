// Package cache stores remote project lookups between runs.
//
// Only project info is cached. Translation results never are: every run
// asks the API again.
package cache

import "github.com/apiglot/apiglot"

// Cache is an alias to the main package interface.
type Cache = apiglot.Cache

// Invalidator is implemented by caches that can drop a single entry.
type Invalidator interface {
	Delete(key string) error
}

// DefaultKeyPrefix namespaces every key written to a shared store.
const DefaultKeyPrefix = "apiglot:"

// Config selects and configures a cache backend.
type Config struct {
	RedisURL   string // Redis connection URL; empty selects the in-memory cache
	TTLSeconds int    // Entry lifetime (0 = no expiration)
	KeyPrefix  string // Prefix for Redis keys (default: "apiglot:")
}

// New returns a Redis cache when cfg names a Redis URL and an in-memory
// cache otherwise.
func New(cfg Config) (Cache, error) {
	if cfg.RedisURL == "" {
		return NewInMemoryCache(cfg.TTLSeconds), nil
	}
	return NewRedisCache(RedisConfig{
		URL:       cfg.RedisURL,
		TTL:       cfg.TTLSeconds,
		KeyPrefix: cfg.KeyPrefix,
	})
}

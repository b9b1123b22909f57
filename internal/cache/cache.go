// Package cache provides the named, keyed, TTL-based caches the services
// populate and evict as a side effect of each mutation. The cache is
// advisory: a miss always falls through to the repository.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/todoapp/todo-api/internal/utils"
)

// Cache names. The services receive them through the Store they are
// constructed with; nothing else references them.
const (
	Users      = "users"
	UserByID   = "userById"
	UserByName = "userByName"
	Tasks      = "tasks"
	TaskByID   = "taskById"
)

// Names returns every configured cache name.
func Names() []string {
	return []string{Users, UserByID, UserByName, Tasks, TaskByID}
}

// Config carries the per-name TTLs plus the sizing knobs of the in-process
// backend.
type Config struct {
	TTLs               map[string]time.Duration
	Capacity           int
	NumShards          int
	EvictionPercentage int
}

// DefaultConfig applies the same TTL to every named cache.
func DefaultConfig(ttl time.Duration) Config {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	ttls := make(map[string]time.Duration, len(Names()))
	for _, name := range Names() {
		ttls[name] = ttl
	}
	return Config{
		TTLs:               ttls,
		Capacity:           10000,
		NumShards:          64,
		EvictionPercentage: 10,
	}
}

// Store is a named key/value cache with per-name TTL. Values are
// JSON-encoded so the in-process and Redis backends behave identically.
// Get reports whether dest was filled from the cache; every failure mode
// (miss, decode error, backend error) reads as a miss.
type Store interface {
	Get(ctx context.Context, name, key string, dest any) bool
	Put(ctx context.Context, name, key string, value any)
	Evict(ctx context.Context, name, key string)
	EvictAll(ctx context.Context, name string)
}

// IDKey builds the cache key for an entity id.
func IDKey(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// PageKey builds the cache key for a page descriptor.
func PageKey(p utils.PageInfo) string {
	return fmt.Sprintf("page:%d:size:%d", p.PageNumber, p.PageSize)
}

package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/viccon/sturdyc"
)

// MemoryStore is the in-process Store backend. Each cache name gets its own
// sturdyc client carrying that name's TTL; EvictAll swaps a fresh client in,
// which drops every entry of the name at once.
type MemoryStore struct {
	cfg Config

	mu      sync.RWMutex
	clients map[string]*sturdyc.Client[[]byte]
}

// NewMemoryStore creates a MemoryStore with one cache per configured name.
func NewMemoryStore(cfg Config) *MemoryStore {
	clients := make(map[string]*sturdyc.Client[[]byte], len(cfg.TTLs))
	for name := range cfg.TTLs {
		clients[name] = newClient(cfg, name)
	}
	return &MemoryStore{cfg: cfg, clients: clients}
}

func newClient(cfg Config, name string) *sturdyc.Client[[]byte] {
	return sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTLs[name], cfg.EvictionPercentage)
}

func (s *MemoryStore) client(name string) *sturdyc.Client[[]byte] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clients[name]
}

func (s *MemoryStore) Get(_ context.Context, name, key string, dest any) bool {
	c := s.client(name)
	if c == nil {
		return false
	}
	raw, ok := c.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: failed to decode %s[%s]: %v", name, key, err)
		return false
	}
	return true
}

func (s *MemoryStore) Put(_ context.Context, name, key string, value any) {
	c := s.client(name)
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: failed to encode %s[%s]: %v", name, key, err)
		return
	}
	c.Set(key, raw)
}

func (s *MemoryStore) Evict(_ context.Context, name, key string) {
	if c := s.client(name); c != nil {
		c.Delete(key)
	}
}

func (s *MemoryStore) EvictAll(_ context.Context, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[name]; ok {
		s.clients[name] = newClient(s.cfg, name)
	}
}

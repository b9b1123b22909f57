package cache

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/rueidis"
)

// RedisStore is the shared Store backend. Entries live under "name:key" and
// carry the name's TTL via SET EX; EvictAll scans the name's prefix and
// deletes what it finds.
type RedisStore struct {
	client rueidis.Client
	cfg    Config
}

// NewRedisStore creates a RedisStore on top of an existing rueidis client.
func NewRedisStore(client rueidis.Client, cfg Config) *RedisStore {
	return &RedisStore{client: client, cfg: cfg}
}

func redisKey(name, key string) string {
	return name + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, name, key string, dest any) bool {
	resp := s.client.Do(ctx, s.client.B().Get().Key(redisKey(name, key)).Build())
	raw, err := resp.AsBytes()
	if err != nil {
		if !rueidis.IsRedisNil(err) {
			log.Printf("cache: redis get %s[%s]: %v", name, key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("cache: failed to decode %s[%s]: %v", name, key, err)
		return false
	}
	return true
}

func (s *RedisStore) Put(ctx context.Context, name, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("cache: failed to encode %s[%s]: %v", name, key, err)
		return
	}

	cmd := s.client.B().Set().
		Key(redisKey(name, key)).
		Value(rueidis.BinaryString(raw)).
		Ex(s.cfg.TTLs[name]).
		Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		log.Printf("cache: redis set %s[%s]: %v", name, key, err)
	}
}

func (s *RedisStore) Evict(ctx context.Context, name, key string) {
	cmd := s.client.B().Del().Key(redisKey(name, key)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		log.Printf("cache: redis del %s[%s]: %v", name, key, err)
	}
}

func (s *RedisStore) EvictAll(ctx context.Context, name string) {
	var cursor uint64
	for {
		scan := s.client.B().Scan().Cursor(cursor).Match(name + ":*").Count(100).Build()
		entry, err := s.client.Do(ctx, scan).AsScanEntry()
		if err != nil {
			log.Printf("cache: redis scan %s: %v", name, err)
			return
		}
		if len(entry.Elements) > 0 {
			del := s.client.B().Del().Key(entry.Elements...).Build()
			if err := s.client.Do(ctx, del).Error(); err != nil {
				log.Printf("cache: redis del %s: %v", name, err)
			}
		}
		cursor = entry.Cursor
		if cursor == 0 {
			return
		}
	}
}

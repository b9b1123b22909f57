package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	return NewMemoryStore(DefaultConfig(time.Minute))
}

func TestMemoryStorePutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Put(ctx, TaskByID, "1", payload{ID: 1, Name: "buy milk"})

	var got payload
	require.True(t, store.Get(ctx, TaskByID, "1", &got))
	require.Equal(t, payload{ID: 1, Name: "buy milk"}, got)

	require.False(t, store.Get(ctx, TaskByID, "2", &got))
}

func TestMemoryStoreNamesAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Put(ctx, UserByID, "1", payload{ID: 1, Name: "alice"})

	var got payload
	require.False(t, store.Get(ctx, TaskByID, "1", &got))
	require.True(t, store.Get(ctx, UserByID, "1", &got))
}

func TestMemoryStoreEvict(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Put(ctx, UserByName, "alice", payload{ID: 1, Name: "alice"})
	store.Evict(ctx, UserByName, "alice")

	var got payload
	require.False(t, store.Get(ctx, UserByName, "alice", &got))
}

func TestMemoryStoreEvictAllDropsOnlyThatName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Put(ctx, Users, "page:1:size:10", []payload{{ID: 1}})
	store.Put(ctx, Users, "page:2:size:10", []payload{{ID: 2}})
	store.Put(ctx, Tasks, "page:1:size:10", []payload{{ID: 3}})

	store.EvictAll(ctx, Users)

	var users []payload
	require.False(t, store.Get(ctx, Users, "page:1:size:10", &users))
	require.False(t, store.Get(ctx, Users, "page:2:size:10", &users))

	var tasks []payload
	require.True(t, store.Get(ctx, Tasks, "page:1:size:10", &tasks))
}

func TestMemoryStoreUnknownNameIsNoop(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	store.Put(ctx, "unknown", "k", payload{ID: 1})

	var got payload
	require.False(t, store.Get(ctx, "unknown", "k", &got))

	// must not panic
	store.Evict(ctx, "unknown", "k")
	store.EvictAll(ctx, "unknown")
}

// Package cache implements the two-tier lookup cache: an in-memory LRU in
// front of a persistent store. Both tiers are addressed by normalized word.
package cache

import (
	"context"
	"log/slog"
	"sync"

	"github.com/heartmarshall/wordjournal/internal/domain"
)

// Record is one persisted result with the key it is cached under.
type Record struct {
	Key    string
	Result domain.LookupResult
}

// Store is the persistent tier.
type Store interface {
	// Load returns every persisted result. Implementations drop results
	// derived from the system dictionary instead of returning them.
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, key string, r domain.LookupResult) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// NopStore persists nothing. It is used when persistence is disabled.
type NopStore struct{}

func (NopStore) Load(context.Context) ([]Record, error)                  { return nil, nil }
func (NopStore) Save(context.Context, string, domain.LookupResult) error { return nil }
func (NopStore) Delete(context.Context, string) error                    { return nil }
func (NopStore) Ping(context.Context) error                              { return nil }

// Cache composes the memory tier with a persistent Store. Reads hit memory
// only; the store is read once by Warm. Writes go to memory synchronously and
// to the store in the background.
type Cache struct {
	log    *slog.Logger
	memory *Memory
	store  Store

	// mu orders pending.Add against pending.Wait.
	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

// New creates a Cache. A nil store disables persistence.
func New(logger *slog.Logger, memory *Memory, store Store) *Cache {
	if store == nil {
		store = NopStore{}
	}
	return &Cache{
		log:    logger.With("component", "cache"),
		memory: memory,
		store:  store,
	}
}

// Warm loads the persistent tier into memory and returns the number of
// results loaded. Load failures are logged and swallowed: the cache then
// simply starts cold.
func (c *Cache) Warm(ctx context.Context) int {
	records, err := c.store.Load(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "load persistent cache", slog.String("error", err.Error()))
	}
	for _, rec := range records {
		if rec.Key == "" {
			continue
		}
		c.memory.Add(rec.Key, rec.Result)
	}
	return len(records)
}

// Get returns the first hit among keys, in order, and the key that matched.
func (c *Cache) Get(keys ...string) (domain.LookupResult, string, bool) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if r, ok := c.memory.Get(k); ok {
			return r, k, true
		}
	}
	return domain.LookupResult{}, "", false
}

// Put stores r in memory under every key. The first key is also written to
// the persistent store unless r came from the system dictionary or the cache
// is closed. Store writes are fire-and-forget: failures are logged, never
// returned.
func (c *Cache) Put(r domain.LookupResult, keys ...string) {
	if len(keys) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		c.memory.Add(k, r)
	}

	if r.IsSystemDictionary() || keys[0] == "" {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.pending.Add(1)
	c.mu.Unlock()

	key, value := keys[0], r.Clone()
	go func() {
		defer c.pending.Done()
		if err := c.store.Save(context.Background(), key, value); err != nil {
			c.log.Warn("persist cache entry", slog.String("key", key), slog.String("error", err.Error()))
		}
	}()
}

// Purge removes keys from both tiers.
func (c *Cache) Purge(ctx context.Context, keys ...string) bool {
	removed := false
	for _, k := range keys {
		if c.memory.Remove(k) {
			removed = true
		}
		if err := c.store.Delete(ctx, k); err != nil {
			c.log.WarnContext(ctx, "delete persisted cache entry", slog.String("key", k), slog.String("error", err.Error()))
		}
	}
	return removed
}

// Len returns the number of results in the memory tier.
func (c *Cache) Len() int { return c.memory.Len() }

// Ping reports whether the persistent store is reachable.
func (c *Cache) Ping(ctx context.Context) error { return c.store.Ping(ctx) }

// Flush blocks until background store writes have finished. Puts made while
// Flush waits start their writes after it returns.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending.Wait()
}

// Close flushes pending writes and stops persisting new ones. The memory
// tier keeps serving reads and writes.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.pending.Wait()
}

// Package history maintains the bounded, deduplicated list of dates the
// user has looked up, persisted across sessions through a key/value store.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"sync"
	"time"
)

const (
	// StorageKey is the single key the serialized list lives under.
	StorageKey = "nasaSearches"

	// DefaultLimit bounds the list when no limit is configured.
	DefaultLimit = 10

	dateLayout = "2006-01-02"
)

// Store persists a serialized value under a named key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Cache is the in-memory list of searched dates, oldest first, mirrored into
// the store on every mutation. Record calls may arrive from concurrent
// fetch completions, so all access is serialized by the mutex.
type Cache struct {
	mu    sync.Mutex
	store Store
	limit int
	dates []string
}

// New creates a cache over the given store. limit <= 0 falls back to
// DefaultLimit.
func New(store Store, limit int) (*Cache, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Cache{store: store, limit: limit}, nil
}

// Load reads the persisted list. Absent or corrupt data yields an empty
// list; persistence problems never block the application from starting.
func (c *Cache) Load(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if !ok {
		c.dates = nil
		return nil, nil
	}

	var stored []string
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		// Corrupt data is treated as absent.
		c.dates = nil
		return nil, nil
	}

	// Drop entries that are not dates and re-apply the invariants in case
	// the stored list predates a smaller limit.
	c.dates = nil
	for _, d := range stored {
		if _, err := time.Parse(dateLayout, d); err != nil {
			continue
		}
		c.promote(d)
	}
	c.evict()

	return c.snapshot(), nil
}

// Record inserts date as the most recent entry: an existing occurrence is
// promoted rather than duplicated, and the oldest entry is evicted when the
// list would exceed its capacity. The updated list is written through to the
// store before Record returns.
func (c *Cache) Record(ctx context.Context, date string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.promote(date)
	c.evict()

	raw, err := json.Marshal(c.dates)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	if err := c.store.Set(ctx, StorageKey, string(raw)); err != nil {
		return nil, fmt.Errorf("save history: %w", err)
	}

	return c.snapshot(), nil
}

// Clear empties the list and removes the storage key.
func (c *Cache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dates = nil
	if err := c.store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Dates returns a copy of the list in stored order, oldest first.
func (c *Cache) Dates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Len returns the number of stored dates.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dates)
}

// MostRecentFirst returns a restartable sequence over the list in reverse
// stored order. The sequence ranges over a snapshot, so it is safe to keep
// across later Record calls.
func (c *Cache) MostRecentFirst() iter.Seq[string] {
	dates := c.Dates()
	return MostRecentFirst(dates)
}

// MostRecentFirst ranges over dates (stored order, oldest first) from the
// most recent entry backwards.
func MostRecentFirst(dates []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for i := len(dates) - 1; i >= 0; i-- {
			if !yield(dates[i]) {
				return
			}
		}
	}
}

// promote removes an existing occurrence of date and appends it at the tail.
// Callers hold the mutex.
func (c *Cache) promote(date string) {
	for i, d := range c.dates {
		if d == date {
			c.dates = append(c.dates[:i], c.dates[i+1:]...)
			break
		}
	}
	c.dates = append(c.dates, date)
}

// evict drops entries from the head until the list fits the limit. Callers
// hold the mutex.
func (c *Cache) evict() {
	if len(c.dates) > c.limit {
		c.dates = c.dates[len(c.dates)-c.limit:]
	}
}

func (c *Cache) snapshot() []string {
	out := make([]string, len(c.dates))
	copy(out, c.dates)
	return out
}

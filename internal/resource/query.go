package resource

import (
	"context"
	"sync"

	"github.com/medrec/medrec/internal/shared/metrics"
)

// fetchCached serves a tagged read: cache hit when present, otherwise one
// shared network fetch per key regardless of how many callers race on it.
func fetchCached[T any](ctx context.Context, c *Client, tag Tag, path string) (T, error) {
	return fetchKeyed[T](ctx, c, cacheKey{tag: tag, path: path})
}

func fetchKeyed[T any](ctx context.Context, c *Client, k cacheKey) (T, error) {
	if v, ok := c.cache.lookup(k); ok {
		metrics.RecordCacheHit(string(k.tag))
		return v.(T), nil
	}
	metrics.RecordCacheMiss(string(k.tag))

	v, err, _ := c.cache.group.Do(k.String(), func() (any, error) {
		var out T
		if err := c.get(ctx, k.path, &out); err != nil {
			return nil, err
		}
		c.cache.store(k, out)
		return out, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Watch is a mounted query: it holds the latest value for a key and is
// refetched automatically when a mutation invalidates the key's tag.
// Closing the watch stops updates; an in-flight backend call is not
// aborted, its result is simply dropped.
type Watch[T any] struct {
	c   *Client
	key cacheKey

	mu     sync.RWMutex
	val    T
	loaded bool
	closed bool

	sub *subscription
}

// WatchQuery mounts a query on the given tagged path. Call Load to fetch
// the initial value and start receiving invalidation refetches.
func WatchQuery[T any](c *Client, tag Tag, path string) *Watch[T] {
	return &Watch[T]{c: c, key: cacheKey{tag: tag, path: path}}
}

// Load fetches the current value (through the cache) and registers the
// watch for invalidation refetches.
func (w *Watch[T]) Load(ctx context.Context) (T, error) {
	v, err := fetchKeyed[T](ctx, w.c, w.key)
	if err != nil {
		var zero T
		return zero, err
	}
	w.mu.Lock()
	w.val = v
	w.loaded = true
	if w.sub == nil && !w.closed {
		w.sub = w.c.cache.subscribe(w.key, w.refetch)
	}
	w.mu.Unlock()
	return v, nil
}

// Value returns the latest delivered value and whether one was delivered.
func (w *Watch[T]) Value() (T, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.val, w.loaded
}

// Close unmounts the watch. No further updates are delivered.
func (w *Watch[T]) Close() {
	w.mu.Lock()
	w.closed = true
	sub := w.sub
	w.sub = nil
	w.mu.Unlock()
	if sub != nil {
		w.c.cache.unsubscribe(sub)
	}
}

func (w *Watch[T]) refetch(ctx context.Context) error {
	var out T
	if err := w.c.get(ctx, w.key.path, &out); err != nil {
		return err
	}
	w.c.cache.store(w.key, out)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.val = out
	w.loaded = true
	return nil
}

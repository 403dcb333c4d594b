package resource

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/medrec/medrec/internal/shared/metrics"
)

// Tag labels a family of cached reads. Mutations declare which tags they
// invalidate; every subscribed read sharing an invalidated tag is
// refetched.
type Tag string

const (
	TagAuth         Tag = "Auth"
	TagDoctor       Tag = "Doctor"
	TagPatient      Tag = "Patient"
	TagDiagnosis    Tag = "Diagnosis"
	TagMedicalVisit Tag = "MedicalVisit"
	TagSickLeave    Tag = "SickLeave"
	TagReports      Tag = "Reports"
)

// cacheKey identifies one cached read: the entity tag plus the full
// request path including query arguments.
type cacheKey struct {
	tag  Tag
	path string
}

func (k cacheKey) String() string {
	return string(k.tag) + " " + k.path
}

// subscription is one mounted query watching a key. Refetch is called on
// invalidation of the key's tag; a closed subscription is removed from
// the registry and receives nothing further.
type subscription struct {
	key     cacheKey
	refetch func(ctx context.Context) error
}

// Cache is the process-wide, mutation-invalidated read cache plus the
// tag -> subscription registry. Identical concurrent reads share one
// in-flight request through the singleflight group.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]any
	subs    map[Tag]map[*subscription]struct{}
	group   singleflight.Group
}

func newCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]any),
		subs:    make(map[Tag]map[*subscription]struct{}),
	}
}

func (c *Cache) lookup(k cacheKey) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[k]
	return v, ok
}

func (c *Cache) store(k cacheKey, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = v
}

func (c *Cache) subscribe(k cacheKey, refetch func(ctx context.Context) error) *subscription {
	sub := &subscription{key: k, refetch: refetch}
	c.mu.Lock()
	defer c.mu.Unlock()
	set, ok := c.subs[k.tag]
	if !ok {
		set = make(map[*subscription]struct{})
		c.subs[k.tag] = set
	}
	set[sub] = struct{}{}
	return sub
}

func (c *Cache) unsubscribe(sub *subscription) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if set, ok := c.subs[sub.key.tag]; ok {
		delete(set, sub)
	}
}

// Invalidate drops every cached entry under the given tags and refetches
// the live subscriptions, synchronously. Refetch failures are counted and
// otherwise ignored: the subscription keeps its last value and the next
// invalidation tries again.
func (c *Cache) Invalidate(ctx context.Context, tags ...Tag) {
	if len(tags) == 0 {
		return
	}

	c.mu.Lock()
	var pending []*subscription
	for _, tag := range tags {
		metrics.RecordInvalidation(string(tag))
		for k := range c.entries {
			if k.tag == tag {
				delete(c.entries, k)
			}
		}
		for sub := range c.subs[tag] {
			pending = append(pending, sub)
		}
	}
	c.mu.Unlock()

	for _, sub := range pending {
		err := sub.refetch(ctx)
		metrics.RecordRefetch(string(sub.key.tag), err == nil)
	}
}

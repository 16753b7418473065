// Package cache keeps decoded resources alive while they are in use.
//
// Values live in two tiers. The alive tier maps a key to a weak pointer and
// forgets the key once the value has been reclaimed. The hot tier is a
// bounded LRU holding strong references to the most recently used values so
// they are not reclaimed between uses. The hot tier is always a subset of the
// alive tier.
//
// Misses are computed outside the lock. Two goroutines missing on the same key
// may both compute; the last insert wins. Values must therefore be pure
// functions of their key.
package cache

import (
	"fmt"
	"runtime"
	"sync"
	"weak"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// DefaultCapacity is the hot tier size used when none is configured.
const DefaultCapacity = 200

// Cache maps 64-bit resource identities to immutable values.
type Cache[V any] struct {
	mu       sync.Mutex
	alive    map[uint64]weak.Pointer[V]
	hot      *simplelru.LRU[uint64, *V]
	capacity int
	logger   hclog.Logger
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	capacity int
	logger   hclog.Logger
}

// WithCapacity sets the hot tier size. Values below 1 select DefaultCapacity.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLogger sets the logger used for cache events
func WithLogger(logger hclog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an empty cache.
func New[V any](opts ...Option) *Cache[V] {
	o := options{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.capacity < 1 {
		o.capacity = DefaultCapacity
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}

	hot, err := simplelru.NewLRU[uint64, *V](o.capacity, nil)
	if err != nil {
		// Only returned for a non-positive size, excluded above.
		panic(fmt.Sprintf("cache: %v", err))
	}

	return &Cache[V]{
		alive:    make(map[uint64]weak.Pointer[V]),
		hot:      hot,
		capacity: o.capacity,
		logger:   o.logger,
	}
}

// GetOrCreate returns the value for key, calling compute on a miss. A compute
// error yields nil and is not cached or retried.
func (c *Cache[V]) GetOrCreate(key uint64, compute func() (*V, error)) *V {
	if v := c.lookup(key); v != nil {
		return v
	}

	v, err := compute()
	if err != nil {
		c.logger.Debug("❌ Cache compute failed", "key", fmt.Sprintf("%016x", key), "error", err)
		return nil
	}
	if v == nil {
		return nil
	}

	c.insert(key, v)
	return v
}

func (c *Cache[V]) lookup(key uint64) *V {
	c.mu.Lock()
	defer c.mu.Unlock()

	wp, ok := c.alive[key]
	if !ok {
		return nil
	}
	v := wp.Value()
	if v == nil {
		// Reclaimed; the cleanup has not run yet.
		delete(c.alive, key)
		return nil
	}

	// Get refreshes recency; Add restores an entry the hot tier had dropped
	// while something else kept the value alive.
	if _, hot := c.hot.Get(key); !hot {
		c.hot.Add(key, v)
	}
	c.logger.Trace("🎯 Cache hit", "key", fmt.Sprintf("%016x", key))
	return v
}

func (c *Cache[V]) insert(key uint64, v *V) {
	wp := weak.Make(v)
	runtime.AddCleanup(v, c.forget, cleanupArg[V]{key: key, ptr: wp})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.alive[key] = wp
	c.hot.Add(key, v)
	c.logger.Trace("📥 Cache insert", "key", fmt.Sprintf("%016x", key), "alive", len(c.alive), "hot", c.hot.Len())
}

type cleanupArg[V any] struct {
	key uint64
	ptr weak.Pointer[V]
}

// forget drops key from the alive tier unless it now refers to a newer value.
func (c *Cache[V]) forget(arg cleanupArg[V]) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.alive[arg.key]; ok && cur == arg.ptr {
		delete(c.alive, arg.key)
	}
}

// Len returns the number of alive-tier entries whose value is still reachable.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, wp := range c.alive {
		if wp.Value() != nil {
			n++
		}
	}
	return n
}

// HotLen returns the number of strongly held entries.
func (c *Cache[V]) HotLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hot.Len()
}

// Capacity returns the hot tier size.
func (c *Cache[V]) Capacity() int {
	return c.capacity
}

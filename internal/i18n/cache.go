package i18n

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a loaded dictionary is served before reloading.
const DefaultTTL = 5 * time.Minute

type snapshot struct {
	dict     Dictionary
	loadedAt time.Time
}

// Cache owns the loaded dictionary. Readers always see a complete snapshot;
// reloads replace the snapshot pointer in one step and concurrent callers
// share a single in-flight load. A load that overlaps Invalidate is returned
// to its callers but never stored.
type Cache struct {
	source  Source
	ttl     time.Duration
	now     func() time.Time
	current atomic.Pointer[snapshot]
	loads   singleflight.Group
	count   atomic.Int64
	// generation advances on every Invalidate.
	generation atomic.Uint64
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL overrides DefaultTTL. Non-positive values keep the default.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the clock used for expiry checks.
func WithClock(clock func() time.Time) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.now = clock
		}
	}
}

// NewCache builds a lazily loading cache over source.
func NewCache(source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached dictionary, loading it when absent or expired.
func (c *Cache) Get(ctx context.Context) (Dictionary, error) {
	if snap := c.current.Load(); snap != nil && c.fresh(snap) {
		return snap.dict, nil
	}

	gen := c.generation.Load()
	result := c.loads.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		if snap := c.current.Load(); snap != nil && c.fresh(snap) {
			return snap.dict, nil
		}
		dict, err := c.source.Load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.count.Add(1)
		if c.generation.Load() == gen {
			c.current.Store(&snapshot{dict: dict, loadedAt: c.now()})
		}
		return dict, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		dict, _ := res.Val.(Dictionary)
		return dict, nil
	}
}

// Invalidate drops the cached dictionary so the next Get reloads it.
func (c *Cache) Invalidate() {
	c.generation.Add(1)
	c.current.Store(nil)
}

// Loads reports how many successful loads the cache has performed.
func (c *Cache) Loads() int64 {
	return c.count.Load()
}

// LoadedAt returns when the current snapshot was loaded.
func (c *Cache) LoadedAt() (time.Time, bool) {
	snap := c.current.Load()
	if snap == nil {
		return time.Time{}, false
	}
	return snap.loadedAt, true
}

func (c *Cache) fresh(snap *snapshot) bool {
	return c.now().Sub(snap.loadedAt) < c.ttl
}

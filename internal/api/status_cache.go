package api

import (
	"context"
	"sync"
	"time"

	"github.com/Tiliavir/punch/internal/model"
)

// StatusFetcher loads the current clock status from the server.
type StatusFetcher interface {
	Status(ctx context.Context) (model.Status, error)
}

// StatusStore persists the cached status between runs.
type StatusStore interface {
	LoadStatus() (s model.Status, expires time.Time, ok bool, err error)
	SaveStatus(s model.Status, expires time.Time) error
	ClearStatus() error
}

// CacheOption configures a StatusCache.
type CacheOption func(*StatusCache)

// WithStatusStore backs the cache with st, so a fresh status is reused by
// later processes too.
func WithStatusStore(st StatusStore) CacheOption {
	return func(c *StatusCache) { c.store = st }
}

// StatusCache keeps the last fetched status for a fixed TTL.
type StatusCache struct {
	fetch StatusFetcher
	ttl   time.Duration
	now   func() time.Time
	store StatusStore

	mu      sync.Mutex
	status  model.Status
	expires time.Time
	ok      bool
}

// NewStatusCache creates a cache over f. A nil now uses time.Now.
func NewStatusCache(f StatusFetcher, ttl time.Duration, now func() time.Time, opts ...CacheOption) *StatusCache {
	if now == nil {
		now = time.Now
	}
	c := &StatusCache{fetch: f, ttl: ttl, now: now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached status while it is fresh and fetches it otherwise.
// A failed fetch leaves the cache empty. A store that cannot be read counts
// as a miss, and a status that cannot be saved is still returned.
func (c *StatusCache) Get(ctx context.Context) (model.Status, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ok && c.store != nil {
		if s, expires, ok, err := c.store.LoadStatus(); err == nil && ok {
			c.status, c.expires, c.ok = s, expires, true
		}
	}
	if c.ok && c.now().Before(c.expires) {
		return c.status, nil
	}

	s, err := c.fetch.Status(ctx)
	if err != nil {
		c.ok = false
		return model.Status{}, err
	}
	c.status = s
	c.expires = c.now().Add(c.ttl)
	c.ok = true
	if c.store != nil {
		_ = c.store.SaveStatus(c.status, c.expires)
	}
	return s, nil
}

// Invalidate drops the cached status, e.g. after clocking in or out.
func (c *StatusCache) Invalidate() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ok = false
	if c.store != nil {
		return c.store.ClearStatus()
	}
	return nil
}

package engine

import (
	"sync"
	"time"

	"github.com/webtopd/webtop/model"
)

// snapshotTTL is how long a computed snapshot stays fresh. Probing the
// page for counts and resources is expensive relative to a tick, so
// repeated metric reads within the window share one result.
const snapshotTTL = 5 * time.Second

// Clock abstracts time.Now so cache expiry is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// snapshotCache memoizes the latest snapshot for snapshotTTL.
type snapshotCache struct {
	mu    sync.Mutex
	clock Clock
	entry *cacheEntry
}

type cacheEntry struct {
	snap       model.MetricsSnapshot
	computedAt time.Time
}

func newSnapshotCache(clock Clock) *snapshotCache {
	if clock == nil {
		clock = systemClock{}
	}
	return &snapshotCache{clock: clock}
}

// Get returns the cached snapshot when it is younger than snapshotTTL,
// otherwise computes a fresh one and caches it.
func (c *snapshotCache) Get(compute func(now time.Time) model.MetricsSnapshot) model.MetricsSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if c.entry != nil && now.Sub(c.entry.computedAt) < snapshotTTL {
		return c.entry.snap
	}

	snap := compute(now)
	c.entry = &cacheEntry{snap: snap, computedAt: now}
	return snap
}

// Clear drops the cached snapshot unconditionally.
func (c *snapshotCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

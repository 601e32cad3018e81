package engine

import (
	"testing"
	"time"

	"github.com/webtopd/webtop/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSnapshotCacheServesFreshEntry(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cache := newSnapshotCache(clock)

	computes := 0
	compute := func(now time.Time) model.MetricsSnapshot {
		computes++
		return model.MetricsSnapshot{Timestamp: now, TotalNodes: computes}
	}

	first := cache.Get(compute)
	clock.Advance(4999 * time.Millisecond)
	second := cache.Get(compute)

	if computes != 1 {
		t.Fatalf("computed %d times, want 1", computes)
	}
	if second.TotalNodes != first.TotalNodes {
		t.Fatalf("cached snapshot changed: %d vs %d", second.TotalNodes, first.TotalNodes)
	}
}

func TestSnapshotCacheExpires(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cache := newSnapshotCache(clock)

	computes := 0
	compute := func(now time.Time) model.MetricsSnapshot {
		computes++
		return model.MetricsSnapshot{Timestamp: now}
	}

	cache.Get(compute)
	clock.Advance(5001 * time.Millisecond)
	cache.Get(compute)

	if computes != 2 {
		t.Fatalf("computed %d times, want 2", computes)
	}
}

func TestSnapshotCacheExactTTLRecomputes(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cache := newSnapshotCache(clock)

	computes := 0
	compute := func(now time.Time) model.MetricsSnapshot {
		computes++
		return model.MetricsSnapshot{Timestamp: now}
	}

	cache.Get(compute)
	clock.Advance(snapshotTTL)
	cache.Get(compute)

	if computes != 2 {
		t.Fatalf("computed %d times at exact TTL, want 2", computes)
	}
}

func TestSnapshotCacheClear(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1000, 0)}
	cache := newSnapshotCache(clock)

	computes := 0
	compute := func(now time.Time) model.MetricsSnapshot {
		computes++
		return model.MetricsSnapshot{Timestamp: now}
	}

	cache.Get(compute)
	cache.Clear()
	cache.Get(compute)

	if computes != 2 {
		t.Fatalf("computed %d times after clear, want 2", computes)
	}
}

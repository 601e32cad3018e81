package engine

import (
	"log"
	"sync"
	"time"

	"github.com/webtopd/webtop/model"
	"github.com/webtopd/webtop/observer"
)

// Session is the page the engine watches. The browser package provides
// the real implementation; replay and tests provide fakes.
type Session interface {
	observer.Source
	PageProber

	// Pump drains pending performance entries from the page and
	// dispatches them to the registered observers.
	Pump() error

	// URL returns the address of the page under observation.
	URL() string
}

// Engine orchestrates observation and aggregation for one page session.
type Engine struct {
	session  Session
	store    *observer.Store
	registry *observer.Registry
	cache    *snapshotCache
	History  *History
	tickMu   sync.Mutex // serializes Tick() calls when ticks overlap
}

// NewEngine wires a store, the standard observers, and the snapshot
// cache around a session. The cache is cleared whenever the observers
// reset so a stale snapshot can never outlive its page state.
func NewEngine(session Session, historySize int) *Engine {
	store := observer.NewStore()
	reg := observer.NewRegistry(store, session)
	cache := newSnapshotCache(nil)
	reg.OnReset(cache.Clear)

	return &Engine{
		session:  session,
		store:    store,
		registry: reg,
		cache:    cache,
		History:  NewHistory(historySize),
	}
}

// Start registers the observers with the session. Safe to call again;
// a second Start is a no-op until Reset.
func (e *Engine) Start() {
	e.registry.Init()
}

// Reset disconnects the observers, clears the vitals and the snapshot
// cache. Used when the page navigates.
func (e *Engine) Reset() {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	e.registry.Reset()
}

// Registry exposes the observer registry, mainly for tests.
func (e *Engine) Registry() *observer.Registry {
	return e.registry
}

// URL returns the observed page's address.
func (e *Engine) URL() string {
	return e.session.URL()
}

// Tick performs one pump + read cycle: drain pending entries, read the
// vitals, record them in history, and return them with the current
// snapshot.
func (e *Engine) Tick() (model.Vitals, *model.MetricsSnapshot) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	if err := e.session.Pump(); err != nil {
		// The page may be mid-navigation. Keep serving the last known
		// vitals; the next tick catches up.
		log.Printf("tick: pump: %v", err)
	}

	vitals := e.store.Vitals()
	snap := e.metricsLocked()
	e.History.Push(Sample{Timestamp: snap.Timestamp, Vitals: vitals})
	return vitals, snap
}

// Metrics returns the current snapshot, served from the cache while it
// is fresh.
func (e *Engine) Metrics() *model.MetricsSnapshot {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()
	return e.metricsLocked()
}

func (e *Engine) metricsLocked() *model.MetricsSnapshot {
	snap := e.cache.Get(func(now time.Time) model.MetricsSnapshot {
		return computeSnapshot(e.session.URL(), e.store.Vitals(), e.session, now)
	})
	return &snap
}

// Vitals returns the latest observed vitals without probing the page.
func (e *Engine) Vitals() model.Vitals {
	return e.store.Vitals()
}

// InvalidateCache forces the next Metrics call to recompute.
func (e *Engine) InvalidateCache() {
	e.cache.Clear()
}

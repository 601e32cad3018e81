package engine

import (
	"testing"

	"github.com/webtopd/webtop/model"
)

// fakeSession is an in-memory Session. Queued batches are delivered on
// the next Pump, mirroring how the browser session drains the page.
type fakeSession struct {
	url      string
	nav      model.NavigationTiming
	hasNav   bool
	stats    model.PageStats
	res      []model.ResourceEntry
	delivers map[string]func([]model.PerformanceEntry)
	pending  []pendingBatch
}

type pendingBatch struct {
	entryType string
	batch     []model.PerformanceEntry
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		url:      "https://example.com",
		delivers: make(map[string]func([]model.PerformanceEntry)),
	}
}

func (s *fakeSession) Observe(entryType string, deliver func([]model.PerformanceEntry)) (func(), error) {
	s.delivers[entryType] = deliver
	return func() { delete(s.delivers, entryType) }, nil
}

func (s *fakeSession) NavigationTiming() (model.NavigationTiming, bool) {
	return s.nav, s.hasNav
}

func (s *fakeSession) PageStats() (model.PageStats, error) {
	return s.stats, nil
}

func (s *fakeSession) Resources() ([]model.ResourceEntry, error) {
	return s.res, nil
}

func (s *fakeSession) Pump() error {
	for _, p := range s.pending {
		if deliver, ok := s.delivers[p.entryType]; ok {
			deliver(p.batch)
		}
	}
	s.pending = nil
	return nil
}

func (s *fakeSession) URL() string { return s.url }

func (s *fakeSession) Queue(entryType string, batch ...model.PerformanceEntry) {
	s.pending = append(s.pending, pendingBatch{entryType: entryType, batch: batch})
}

func TestEngineTickDeliversVitals(t *testing.T) {
	session := newFakeSession()
	eng := NewEngine(session, 10)
	eng.Start()

	session.Queue(model.EntryLargestContentfulPaint, model.PerformanceEntry{RenderTime: 1800})
	session.Queue(model.EntryLayoutShift, model.PerformanceEntry{Value: 0.05})

	vitals, snap := eng.Tick()

	if vitals.LCP == nil || *vitals.LCP != 1800 {
		t.Fatalf("LCP = %v, want 1800", vitals.LCP)
	}
	if vitals.CLS != 0.05 {
		t.Fatalf("CLS = %v, want 0.05", vitals.CLS)
	}
	if snap == nil {
		t.Fatal("snapshot is nil")
	}
	if snap.URL != "https://example.com" {
		t.Errorf("snapshot URL = %q", snap.URL)
	}
	if eng.History.Len() != 1 {
		t.Errorf("history len = %d, want 1", eng.History.Len())
	}
}

func TestEngineResetClearsVitalsAndCache(t *testing.T) {
	session := newFakeSession()
	session.stats = model.PageStats{TotalNodes: 100}
	eng := NewEngine(session, 10)
	eng.Start()

	session.Queue(model.EntryLargestContentfulPaint, model.PerformanceEntry{RenderTime: 3000})
	eng.Tick()

	eng.Reset()

	if v := eng.Vitals(); v.LCP != nil {
		t.Fatalf("LCP survived reset: %v", *v.LCP)
	}

	// Cache was cleared by the reset hook: the next snapshot reflects
	// the cleared vitals, not the cached pre-reset state.
	eng.Start()
	snap := eng.Metrics()
	if snap.Vitals.LCP != nil {
		t.Fatalf("cached snapshot survived reset: %+v", snap.Vitals)
	}
}

func TestEngineStartIdempotent(t *testing.T) {
	session := newFakeSession()
	eng := NewEngine(session, 10)
	eng.Start()
	eng.Start()

	session.Queue(model.EntryLayoutShift, model.PerformanceEntry{Value: 0.1})
	vitals, _ := eng.Tick()
	if vitals.CLS != 0.1 {
		t.Fatalf("CLS = %v, want 0.1 (double Start must not double-register)", vitals.CLS)
	}
}

func TestEngineTTFBFromNavigation(t *testing.T) {
	session := newFakeSession()
	session.hasNav = true
	session.nav = model.NavigationTiming{RequestStart: 100, ResponseStart: 450}
	eng := NewEngine(session, 10)
	eng.Start()

	vitals, _ := eng.Tick()
	if vitals.TTFB == nil || *vitals.TTFB != 350 {
		t.Fatalf("TTFB = %v, want 350", vitals.TTFB)
	}
}

func TestEngineMetricsUsesCache(t *testing.T) {
	session := newFakeSession()
	session.stats = model.PageStats{TotalNodes: 50}
	eng := NewEngine(session, 10)
	eng.Start()

	first := eng.Metrics()
	session.stats = model.PageStats{TotalNodes: 999}
	second := eng.Metrics()

	if second.TotalNodes != first.TotalNodes {
		t.Fatalf("expected cached snapshot, got recompute: %d vs %d",
			second.TotalNodes, first.TotalNodes)
	}

	eng.InvalidateCache()
	third := eng.Metrics()
	if third.TotalNodes != 999 {
		t.Fatalf("expected recompute after invalidate, got %d", third.TotalNodes)
	}
}

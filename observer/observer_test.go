package observer

import (
	"errors"
	"testing"

	"github.com/webtopd/webtop/model"
)

// fakeSource is an in-memory Source. Tests push batches to registered
// observers through Emit.
type fakeSource struct {
	nav       model.NavigationTiming
	hasNav    bool
	failTypes map[string]error

	delivers map[string][]func([]model.PerformanceEntry)
	canceled []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		delivers:  make(map[string][]func([]model.PerformanceEntry)),
		failTypes: make(map[string]error),
	}
}

func (f *fakeSource) Observe(entryType string, deliver func([]model.PerformanceEntry)) (func(), error) {
	if err := f.failTypes[entryType]; err != nil {
		return nil, err
	}
	f.delivers[entryType] = append(f.delivers[entryType], deliver)
	return func() { f.canceled = append(f.canceled, entryType) }, nil
}

func (f *fakeSource) NavigationTiming() (model.NavigationTiming, bool) {
	return f.nav, f.hasNav
}

func (f *fakeSource) Emit(entryType string, batch []model.PerformanceEntry) {
	for _, deliver := range f.delivers[entryType] {
		deliver(batch)
	}
}

func TestRegistryInitRecordsTTFB(t *testing.T) {
	src := newFakeSource()
	src.hasNav = true
	src.nav = model.NavigationTiming{RequestStart: 12.5, ResponseStart: 262.5}

	reg := NewRegistry(NewStore(), src)
	reg.Init()

	if got, ok := fval(reg.Store().Vitals().TTFB); !ok || got != 250 {
		t.Fatalf("TTFB = %v, %v; want 250", got, ok)
	}
}

func TestRegistryInitIdempotent(t *testing.T) {
	src := newFakeSource()
	reg := NewRegistry(NewStore(), src)

	reg.Init()
	reg.Init()

	// A second Init must not register duplicate observers, otherwise one
	// layout shift would count twice.
	if n := len(src.delivers[model.EntryLayoutShift]); n != 1 {
		t.Fatalf("layout-shift registered %d times, want 1", n)
	}
	src.Emit(model.EntryLayoutShift, []model.PerformanceEntry{{Type: model.EntryLayoutShift, Value: 0.1}})
	if got := reg.Store().Vitals().CLS; got != 0.1 {
		t.Fatalf("CLS = %v, want 0.1", got)
	}
}

func TestRegistryRegistrationFailureIsolated(t *testing.T) {
	src := newFakeSource()
	src.failTypes[model.EntryEvent] = errors.New("entry type not supported")

	reg := NewRegistry(NewStore(), src)
	reg.Init()

	// The event observer failed to register; the others still work.
	src.Emit(model.EntryLargestContentfulPaint, []model.PerformanceEntry{{RenderTime: 1800}})
	if got, ok := fval(reg.Store().Vitals().LCP); !ok || got != 1800 {
		t.Fatalf("LCP = %v, %v; want 1800", got, ok)
	}
	if _, registered := src.delivers[model.EntryEvent]; registered {
		t.Fatal("event observer should not be registered")
	}
}

type panickingObserver struct{}

func (panickingObserver) Name() string      { return "boom" }
func (panickingObserver) EntryType() string { return "boom-entry" }
func (panickingObserver) Process([]model.PerformanceEntry, *Store) {
	panic("bad batch")
}

func TestRegistryDeliveryPanicRecovered(t *testing.T) {
	src := newFakeSource()
	reg := NewRegistry(NewStore(), src)
	reg.Add(panickingObserver{})
	reg.Init()

	// Must not propagate out of Emit.
	src.Emit("boom-entry", []model.PerformanceEntry{{}})

	// Other observers are unaffected afterwards.
	src.Emit(model.EntryLayoutShift, []model.PerformanceEntry{{Value: 0.2}})
	if got := reg.Store().Vitals().CLS; got != 0.2 {
		t.Fatalf("CLS = %v, want 0.2", got)
	}
}

func TestRegistryResetCancelsAndClears(t *testing.T) {
	src := newFakeSource()
	reg := NewRegistry(NewStore(), src)
	hookFired := false
	reg.OnReset(func() { hookFired = true })

	reg.Init()
	src.Emit(model.EntryLargestContentfulPaint, []model.PerformanceEntry{{RenderTime: 3000}})
	reg.Reset()

	if len(src.canceled) != 4 {
		t.Fatalf("canceled %d observers, want 4", len(src.canceled))
	}
	if v := reg.Store().Vitals(); v.LCP != nil {
		t.Fatalf("expected LCP cleared after reset, got %v", *v.LCP)
	}
	if !hookFired {
		t.Fatal("reset hook did not fire")
	}
	if reg.Initialized() {
		t.Fatal("registry still marked initialized after reset")
	}
}

func TestLCPObserver(t *testing.T) {
	tests := []struct {
		name  string
		batch []model.PerformanceEntry
		want  float64
	}{
		{
			"last entry wins",
			[]model.PerformanceEntry{{RenderTime: 900}, {RenderTime: 2100}},
			2100,
		},
		{
			"loadTime fallback",
			[]model.PerformanceEntry{{RenderTime: 0, LoadTime: 1500}},
			1500,
		},
		{
			"both zero",
			[]model.PerformanceEntry{{}},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			lcpObserver{}.Process(tt.batch, s)
			got, ok := fval(s.Vitals().LCP)
			if !ok || got != tt.want {
				t.Errorf("LCP = %v, %v; want %v", got, ok, tt.want)
			}
		})
	}
}

func TestLCPObserverEmptyBatch(t *testing.T) {
	s := NewStore()
	lcpObserver{}.Process(nil, s)
	if s.Vitals().LCP != nil {
		t.Fatal("empty batch should not set LCP")
	}
}

func TestCLSObserverSkipsRecentInput(t *testing.T) {
	s := NewStore()
	clsObserver{}.Process([]model.PerformanceEntry{
		{Value: 0.05},
		{Value: 0.30, HadRecentInput: true},
		{Value: 0.02},
	}, s)
	if got := s.Vitals().CLS; got < 0.0699 || got > 0.0701 {
		t.Fatalf("CLS = %v, want 0.07", got)
	}
}

func TestFIDObserverFirstEntry(t *testing.T) {
	s := NewStore()
	fidObserver{}.Process([]model.PerformanceEntry{
		{StartTime: 1000, ProcessingStart: 1075},
		{StartTime: 2000, ProcessingStart: 2400},
	}, s)
	if got, ok := fval(s.Vitals().FID); !ok || got != 75 {
		t.Fatalf("FID = %v, %v; want 75", got, ok)
	}
}

func TestINPObserverThresholdAndMax(t *testing.T) {
	s := NewStore()
	inpObserver{}.Process([]model.PerformanceEntry{
		{Duration: 30},
		{Duration: 50},
		{Duration: 45},
		{Duration: 90},
		{Duration: 40},
	}, s)
	if got, ok := fval(s.Vitals().INP); !ok || got != 90 {
		t.Fatalf("INP = %v, %v; want 90", got, ok)
	}
}

func TestINPObserverAllBelowThreshold(t *testing.T) {
	s := NewStore()
	inpObserver{}.Process([]model.PerformanceEntry{{Duration: 10}, {Duration: 40}}, s)
	if s.Vitals().INP != nil {
		t.Fatal("durations at or below threshold should not set INP")
	}
}

func TestRegistryNegativeTTFBIgnored(t *testing.T) {
	src := newFakeSource()
	src.hasNav = true
	src.nav = model.NavigationTiming{RequestStart: 500, ResponseStart: 100}

	reg := NewRegistry(NewStore(), src)
	reg.Init()

	if reg.Store().Vitals().TTFB != nil {
		t.Fatal("negative TTFB should be ignored")
	}
}

package observer

import (
	"sync"

	"github.com/webtopd/webtop/model"
)

// Store holds the latest observed vitals for one page session. Observers
// write it as entries arrive; the aggregator reads consistent copies via
// Vitals. There is exactly one store per activation, owned by the engine.
type Store struct {
	mu sync.Mutex

	lcp      float64
	lcpSeen  bool
	cls      float64
	fid      float64
	fidSeen  bool
	inp      float64
	inpSeen  bool
	ttfb     float64
	ttfbSeen bool
}

// NewStore creates an empty store: all metrics absent, CLS zero.
func NewStore() *Store {
	return &Store{}
}

// SetLCP overwrites the largest-contentful-paint time. Last writer wins,
// matching the platform's candidate-entry semantics.
func (s *Store) SetLCP(ms float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lcp = ms
	s.lcpSeen = true
}

// AddShift accumulates one layout-shift score. CLS only grows.
func (s *Store) AddShift(score float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cls += score
}

// SetFID overwrites the first-input delay. The platform normally delivers
// a single first-input entry per page load.
func (s *Store) SetFID(ms float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fid = ms
	s.fidSeen = true
}

// ObserveInteraction folds one qualifying interaction duration into the
// INP running maximum.
func (s *Store) ObserveInteraction(ms float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inpSeen || ms > s.inp {
		s.inp = ms
	}
	s.inpSeen = true
}

// SetTTFB records the server response latency. Computed once at observer
// initialization from the navigation-timing record.
func (s *Store) SetTTFB(ms float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ttfb = ms
	s.ttfbSeen = true
}

// Reset returns every metric to its initial absent/zero state.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lcp, s.lcpSeen = 0, false
	s.cls = 0
	s.fid, s.fidSeen = 0, false
	s.inp, s.inpSeen = 0, false
	s.ttfb, s.ttfbSeen = 0, false
}

// Vitals returns a copy of the current values. Absent metrics are nil.
func (s *Store) Vitals() model.Vitals {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := model.Vitals{CLS: s.cls}
	if s.lcpSeen {
		lcp := s.lcp
		v.LCP = &lcp
	}
	if s.fidSeen {
		fid := s.fid
		v.FID = &fid
	}
	if s.inpSeen {
		inp := s.inp
		v.INP = &inp
	}
	if s.ttfbSeen {
		ttfb := s.ttfb
		v.TTFB = &ttfb
	}
	return v
}

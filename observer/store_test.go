package observer

import "testing"

func fval(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func TestStoreVitalsStartEmpty(t *testing.T) {
	s := NewStore()
	v := s.Vitals()
	if v.LCP != nil || v.FID != nil || v.INP != nil || v.TTFB != nil {
		t.Fatalf("expected all pointer metrics nil, got %+v", v)
	}
	if v.CLS != 0 {
		t.Fatalf("expected CLS 0, got %v", v.CLS)
	}
}

func TestStoreLCPLastWriteWins(t *testing.T) {
	s := NewStore()
	s.SetLCP(1200)
	s.SetLCP(2400)
	if got, ok := fval(s.Vitals().LCP); !ok || got != 2400 {
		t.Fatalf("LCP = %v, %v; want 2400", got, ok)
	}
}

func TestStoreCLSAccumulates(t *testing.T) {
	s := NewStore()
	s.AddShift(0.05)
	s.AddShift(0.02)
	s.AddShift(0.03)
	if got := s.Vitals().CLS; got < 0.0999 || got > 0.1001 {
		t.Fatalf("CLS = %v, want 0.10", got)
	}
}

func TestStoreINPRunningMax(t *testing.T) {
	s := NewStore()
	for _, ms := range []float64{50, 90, 45, 60} {
		s.ObserveInteraction(ms)
	}
	if got, ok := fval(s.Vitals().INP); !ok || got != 90 {
		t.Fatalf("INP = %v, %v; want 90", got, ok)
	}
}

func TestStoreResetClearsEverything(t *testing.T) {
	s := NewStore()
	s.SetLCP(2000)
	s.AddShift(0.2)
	s.SetFID(80)
	s.ObserveInteraction(300)
	s.SetTTFB(600)

	s.Reset()

	v := s.Vitals()
	if v.LCP != nil || v.FID != nil || v.INP != nil || v.TTFB != nil {
		t.Fatalf("expected nil metrics after reset, got %+v", v)
	}
	if v.CLS != 0 {
		t.Fatalf("expected CLS 0 after reset, got %v", v.CLS)
	}
}

func TestStoreVitalsReturnsCopies(t *testing.T) {
	s := NewStore()
	s.SetLCP(1000)
	v := s.Vitals()
	*v.LCP = 9999
	if got, _ := fval(s.Vitals().LCP); got != 1000 {
		t.Fatalf("store mutated through returned pointer: %v", got)
	}
}

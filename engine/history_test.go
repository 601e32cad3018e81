package engine

import (
	"testing"
	"time"

	"github.com/webtopd/webtop/model"
)

func sampleAt(sec int64, lcp float64) Sample {
	return Sample{
		Timestamp: time.Unix(sec, 0),
		Vitals:    model.Vitals{LCP: &lcp},
	}
}

func TestHistoryRingWraps(t *testing.T) {
	h := NewHistory(3)
	for i := int64(0); i < 5; i++ {
		h.Push(sampleAt(i, float64(i)))
	}

	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	// Oldest surviving sample is #2.
	if s := h.Get(0); s == nil || *s.Vitals.LCP != 2 {
		t.Fatalf("Get(0) = %v, want LCP 2", s)
	}
	if s := h.Latest(); s == nil || *s.Vitals.LCP != 4 {
		t.Fatalf("Latest() = %v, want LCP 4", s)
	}
}

func TestHistoryGetOutOfRange(t *testing.T) {
	h := NewHistory(3)
	h.Push(sampleAt(0, 1))
	if h.Get(-1) != nil || h.Get(1) != nil {
		t.Fatal("out-of-range Get should return nil")
	}
}

func TestHistoryEmptyLatest(t *testing.T) {
	h := NewHistory(3)
	if h.Latest() != nil {
		t.Fatal("Latest on empty history should be nil")
	}
}

func TestHistorySeriesSkipsAbsent(t *testing.T) {
	h := NewHistory(5)
	h.Push(sampleAt(0, 100))
	h.Push(Sample{Timestamp: time.Unix(1, 0)}) // no LCP yet
	h.Push(sampleAt(2, 300))

	series := h.Series(func(v model.Vitals) (float64, bool) {
		if v.LCP == nil {
			return 0, false
		}
		return *v.LCP, true
	})

	if len(series) != 2 || series[0] != 100 || series[1] != 300 {
		t.Fatalf("series = %v, want [100 300]", series)
	}
}

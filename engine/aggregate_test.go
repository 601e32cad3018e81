package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/webtopd/webtop/model"
)

type fakeProber struct {
	stats     model.PageStats
	statsErr  error
	resources []model.ResourceEntry
	resErr    error
}

func (p *fakeProber) PageStats() (model.PageStats, error) {
	return p.stats, p.statsErr
}

func (p *fakeProber) Resources() ([]model.ResourceEntry, error) {
	return p.resources, p.resErr
}

func TestComputeSnapshotPartitionsResources(t *testing.T) {
	prober := &fakeProber{
		stats: model.PageStats{TotalNodes: 420},
		resources: []model.ResourceEntry{
			{InitiatorType: "img"},
			{InitiatorType: "img"},
			{InitiatorType: "script"},
			{InitiatorType: "link"},
			{InitiatorType: "css"},
			{InitiatorType: "fetch"}, // not counted
		},
	}

	now := time.Unix(2000, 0)
	snap := computeSnapshot("https://example.com", model.Vitals{}, prober, now)

	if snap.TotalNodes != 420 {
		t.Errorf("TotalNodes = %d, want 420", snap.TotalNodes)
	}
	if snap.TotalImages != 2 || snap.TotalScripts != 1 || snap.TotalStylesheets != 2 {
		t.Errorf("partition = %d/%d/%d, want 2/1/2",
			snap.TotalImages, snap.TotalScripts, snap.TotalStylesheets)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("Timestamp = %v, want %v", snap.Timestamp, now)
	}
	if snap.URL != "https://example.com" {
		t.Errorf("URL = %q", snap.URL)
	}
	if snap.Warnings == nil {
		t.Error("Warnings should be non-nil even when empty")
	}
}

func TestComputeSnapshotProberErrorFallsBack(t *testing.T) {
	v := model.Vitals{CLS: 0.5}
	prober := &fakeProber{statsErr: errors.New("page went away")}

	snap := computeSnapshot("", v, prober, time.Unix(2000, 0))

	if snap.TotalNodes != 0 || snap.TotalImages != 0 {
		t.Errorf("expected zeroed counts, got %+v", snap)
	}
	if len(snap.Warnings) != 0 {
		t.Errorf("expected no warnings, got %v", snap.Warnings)
	}
	// The fallback zeroes the vitals too.
	if snap.Vitals.CLS != 0 || snap.Vitals.LCP != nil {
		t.Errorf("expected absent vitals, got %+v", snap.Vitals)
	}
	if snap.Timestamp.IsZero() {
		t.Error("fallback should keep the timestamp")
	}
}

type panickingProber struct{}

func (panickingProber) PageStats() (model.PageStats, error) {
	panic("detached frame")
}

func (panickingProber) Resources() ([]model.ResourceEntry, error) {
	return nil, nil
}

func TestComputeSnapshotRecoverFromPanic(t *testing.T) {
	lcp := 3000.0
	snap := computeSnapshot("", model.Vitals{CLS: 0.2, LCP: &lcp}, panickingProber{}, time.Unix(2000, 0))
	if snap.TotalNodes != 0 {
		t.Errorf("expected zeroed snapshot, got %+v", snap)
	}
	if snap.Vitals.CLS != 0 || snap.Vitals.LCP != nil {
		t.Errorf("expected absent vitals, got %+v", snap.Vitals)
	}
	if snap.Warnings == nil || len(snap.Warnings) != 0 {
		t.Errorf("expected empty warnings, got %v", snap.Warnings)
	}
}

func TestComputeSnapshotWarningsFlowThrough(t *testing.T) {
	prober := &fakeProber{
		stats: model.PageStats{ImagesMissingAlt: 1},
	}
	snap := computeSnapshot("", model.Vitals{CLS: 0.2}, prober, time.Unix(2000, 0))
	if len(snap.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2 (CLS + alt)", len(snap.Warnings))
	}
}

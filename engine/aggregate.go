package engine

import (
	"log"
	"time"

	"github.com/webtopd/webtop/model"
)

// PageProber reads derived state from the live page: element counts and
// resource-timing records.
type PageProber interface {
	PageStats() (model.PageStats, error)
	Resources() ([]model.ResourceEntry, error)
}

// fallbackSnapshot is what callers get when the page cannot be probed:
// all vitals absent, all counts zero, no warnings. Timestamp and URL
// are kept so the caller can still tell what failed and when.
func fallbackSnapshot(url string, now time.Time) model.MetricsSnapshot {
	return model.MetricsSnapshot{
		Timestamp: now,
		URL:       url,
		Warnings:  []model.Warning{},
	}
}

// computeSnapshot builds a full metrics snapshot from the current
// vitals and a probe of the page. It never panics: any failure yields
// the fallback snapshot so callers always get a well-formed result.
func computeSnapshot(url string, v model.Vitals, prober PageProber, now time.Time) (snap model.MetricsSnapshot) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("snapshot: falling back: %v", rec)
			snap = fallbackSnapshot(url, now)
		}
	}()

	stats, err := prober.PageStats()
	if err != nil {
		log.Printf("snapshot: page stats unavailable: %v", err)
		return fallbackSnapshot(url, now)
	}
	resources, err := prober.Resources()
	if err != nil {
		log.Printf("snapshot: resource timing unavailable: %v", err)
		return fallbackSnapshot(url, now)
	}

	images, scripts, stylesheets := partitionResources(resources)

	return model.MetricsSnapshot{
		Timestamp:        now,
		URL:              url,
		Vitals:           v,
		TotalNodes:       stats.TotalNodes,
		TotalImages:      images,
		TotalScripts:     scripts,
		TotalStylesheets: stylesheets,
		Warnings:         ComputeWarnings(v, resources, stats),
	}
}

// partitionResources counts resource-timing records by initiator type.
// Stylesheets arrive as "link" (the tag) or "css" (an @import).
func partitionResources(resources []model.ResourceEntry) (images, scripts, stylesheets int) {
	for _, r := range resources {
		switch r.InitiatorType {
		case "img":
			images++
		case "script":
			scripts++
		case "link", "css":
			stylesheets++
		}
	}
	return images, scripts, stylesheets
}

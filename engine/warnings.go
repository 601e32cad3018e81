package engine

import (
	"fmt"
	"math"

	"github.com/webtopd/webtop/model"
)

// Warning thresholds. Vitals thresholds follow the standard Core Web
// Vitals bands; size thresholds are decimal bytes.
const (
	tLCPSlow     = 2500.0  // ms
	tCLS         = 0.1     // score
	tTTFB        = 800.0   // ms
	tFID         = 100.0   // ms
	tINP         = 200.0   // ms
	tLargeImage  = 200000  // bytes
	tHeavyScript = 500000  // bytes
)

// ComputeWarnings derives the warning list from the observed vitals,
// the page's resource-timing records, and the document stats. Warnings
// come out in fixed display-priority order.
func ComputeWarnings(v model.Vitals, resources []model.ResourceEntry, stats model.PageStats) []model.Warning {
	warns := []model.Warning{}

	lcp := 0.0
	if v.LCP != nil {
		lcp = *v.LCP
	}

	// Large images only matter when they are plausibly what made LCP slow.
	if lcp > tLCPSlow {
		var large []model.ResourceEntry
		for _, r := range resources {
			if r.InitiatorType == "img" && r.TransferSize > tLargeImage {
				large = append(large, r)
			}
		}
		if len(large) > 0 {
			var total int64
			for _, r := range large {
				total += r.TransferSize
			}
			avg := float64(total) / float64(len(large))
			warns = append(warns, model.Warning{
				Title:    fmt.Sprintf("%d large images detected (avg %dKB)", len(large), int(math.Round(avg/1024))),
				Solution: "Compress images, serve modern formats like WebP, and lazy-load below-the-fold images",
				Severity: "high",
			})
		}
	}

	if v.CLS > tCLS {
		warns = append(warns, model.Warning{
			Title:    fmt.Sprintf("High layout shift (CLS %.3f)", v.CLS),
			Solution: "Reserve space for dynamic content and set explicit dimensions on images and embeds",
			Severity: "high",
		})
	}

	if v.TTFB != nil && *v.TTFB > tTTFB {
		warns = append(warns, model.Warning{
			Title:    fmt.Sprintf("Slow server response (TTFB %.0fms)", *v.TTFB),
			Solution: "Use a CDN, enable caching, and profile slow backend handlers",
			Severity: "medium",
		})
	}

	// FID and INP share one warning; the first-input delay is the more
	// specific signal when both fire.
	fidSlow := v.FID != nil && *v.FID > tFID
	inpSlow := v.INP != nil && *v.INP > tINP
	if fidSlow || inpSlow {
		name, val := "INP", 0.0
		if inpSlow {
			val = *v.INP
		}
		if fidSlow {
			name, val = "FID", *v.FID
		}
		warns = append(warns, model.Warning{
			Title:    fmt.Sprintf("Poor interactivity (%s %.0fms)", name, val),
			Solution: "Break up long tasks, defer non-critical JavaScript, and keep input handlers light",
			Severity: "high",
		})
	}

	if lcp > tLCPSlow {
		var heavy []model.ResourceEntry
		var heavyTotal int64
		for _, r := range resources {
			if r.InitiatorType == "script" && r.TransferSize > tHeavyScript {
				heavy = append(heavy, r)
				heavyTotal += r.TransferSize
			}
		}
		if len(heavy) > 0 {
			warns = append(warns, model.Warning{
				Title:    fmt.Sprintf("%dKB of heavy JavaScript across %d files", heavyTotal/1024, len(heavy)),
				Solution: "Code-split large bundles and defer scripts that are not needed for first paint",
				Severity: "medium",
			})
		}
	}

	if stats.ImagesMissingAlt > 0 {
		warns = append(warns, model.Warning{
			Title:    fmt.Sprintf("%d images missing alt text", stats.ImagesMissingAlt),
			Solution: "Add descriptive alt attributes so screen readers and crawlers can interpret images",
			Severity: "low",
		})
	}

	return warns
}

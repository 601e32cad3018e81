package model

import "time"

// Vitals holds the latest observed Core Web Vitals for one page session.
// A nil field means the metric has not been observed yet; all durations
// are milliseconds.
type Vitals struct {
	LCP  *float64 `json:"lcp,omitempty"`
	CLS  float64  `json:"cls"`
	FID  *float64 `json:"fid,omitempty"`
	INP  *float64 `json:"inp,omitempty"`
	TTFB *float64 `json:"ttfb,omitempty"`
}

// HealthLevel represents overall page health.
type HealthLevel int

const (
	HealthUnknown   HealthLevel = 0
	HealthGood      HealthLevel = 1
	HealthNeedsWork HealthLevel = 2
	HealthPoor      HealthLevel = 3
)

func (h HealthLevel) String() string {
	switch h {
	case HealthGood:
		return "GOOD"
	case HealthNeedsWork:
		return "NEEDS IMPROVEMENT"
	case HealthPoor:
		return "POOR"
	}
	return "UNKNOWN"
}

// Warning is one actionable finding derived from the page state.
type Warning struct {
	Title    string `json:"title"`    // what was found, with the measured value
	Solution string `json:"solution"` // fixed remediation text
	Severity string `json:"severity"` // "high", "medium", "low"
}

// PageStats holds element counts taken from the live document.
type PageStats struct {
	TotalNodes       int `json:"total_nodes"`
	Images           int `json:"images"`
	Scripts          int `json:"scripts"`
	Stylesheets      int `json:"stylesheets"`
	ImagesMissingAlt int `json:"images_missing_alt"`
}

// MetricsSnapshot is the full derived page state at one point in time:
// a copy of the observed vitals, resource counts, and ordered warnings.
// Snapshots are immutable once built.
type MetricsSnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url,omitempty"`
	Vitals    Vitals    `json:"vitals"`

	// Resource counts partitioned by initiator type at computation time.
	TotalNodes       int `json:"total_nodes"`
	TotalImages      int `json:"total_images"`
	TotalScripts     int `json:"total_scripts"`
	TotalStylesheets int `json:"total_stylesheets"`

	// Warnings in display-priority order.
	Warnings []Warning `json:"warnings"`
}

package model

// Entry type names follow the platform's performance timeline.
const (
	EntryLargestContentfulPaint = "largest-contentful-paint"
	EntryLayoutShift            = "layout-shift"
	EntryFirstInput             = "first-input"
	EntryEvent                  = "event"
)

// PerformanceEntry is one record delivered from the page's performance
// timeline. Fields not meaningful for a given entry type are zero.
type PerformanceEntry struct {
	Type            string  `json:"type"`
	StartTime       float64 `json:"startTime"`
	Duration        float64 `json:"duration"`
	RenderTime      float64 `json:"renderTime"`      // largest-contentful-paint
	LoadTime        float64 `json:"loadTime"`        // largest-contentful-paint
	ProcessingStart float64 `json:"processingStart"` // first-input
	Value           float64 `json:"value"`           // layout-shift score
	HadRecentInput  bool    `json:"hadRecentInput"`  // layout-shift
}

// NavigationTiming is the page's navigation-timing record.
// All times are milliseconds relative to navigation start.
type NavigationTiming struct {
	RequestStart     float64 `json:"requestStart"`
	ResponseStart    float64 `json:"responseStart"`
	DOMContentLoaded float64 `json:"domContentLoadedEventEnd"`
	LoadEventEnd     float64 `json:"loadEventEnd"`
	TransferSize     int64   `json:"transferSize"`
}

// ResourceEntry is one resource-timing record.
type ResourceEntry struct {
	Name          string  `json:"name"`
	InitiatorType string  `json:"initiatorType"`
	TransferSize  int64   `json:"transferSize"`
	Duration      float64 `json:"duration"`
}

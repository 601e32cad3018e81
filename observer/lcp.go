package observer

import "github.com/webtopd/webtop/model"

// lcpObserver tracks largest-contentful-paint. The platform delivers a
// growing sequence of candidate entries; the last one in the most recent
// batch is the current LCP.
type lcpObserver struct{}

func (lcpObserver) Name() string      { return "lcp" }
func (lcpObserver) EntryType() string { return model.EntryLargestContentfulPaint }

func (lcpObserver) Process(batch []model.PerformanceEntry, store *Store) {
	if len(batch) == 0 {
		return
	}
	last := batch[len(batch)-1]
	ms := last.RenderTime
	if ms == 0 {
		// Cross-origin images without Timing-Allow-Origin report no
		// render time.
		ms = last.LoadTime
	}
	store.SetLCP(ms)
}

package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/webtopd/webtop/model"
)

// Options configures the headless browser.
type Options struct {
	Headless      bool
	Timeout       time.Duration // per-evaluation deadline
	UserAgent     string
	WindowWidth   int
	WindowHeight  int
	WaitAfterLoad time.Duration // settle time after navigation
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Headless:      true,
		Timeout:       10 * time.Second,
		WindowWidth:   1366,
		WindowHeight:  900,
		WaitAfterLoad: 500 * time.Millisecond,
	}
}

// Session drives one page in a headless browser and implements the
// engine's Session interface: it installs the page-side observers,
// drains their buffers on Pump, and probes the document on demand.
type Session struct {
	url  string
	opts Options

	ctx         context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc

	mu        sync.Mutex
	supported map[string]bool
	delivers  map[string][]func([]model.PerformanceEntry)
}

// NewSession launches a browser, navigates to url, and installs the
// performance instrumentation.
func NewSession(url string, opts Options) (*Session, error) {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if opts.WindowWidth == 0 || opts.WindowHeight == 0 {
		opts.WindowWidth, opts.WindowHeight = 1366, 900
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight),
		chromedp.Flag("log-level", "3"),
	}
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Headless)
	}
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	taskCtx, cancelCtx := chromedp.NewContext(allocCtx)

	s := &Session{
		url:         url,
		opts:        opts,
		ctx:         taskCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
		delivers:    make(map[string][]func([]model.PerformanceEntry)),
	}

	navCtx, cancel := context.WithTimeout(taskCtx, opts.Timeout)
	defer cancel()

	var supported map[string]bool
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if opts.WaitAfterLoad > 0 {
				select {
				case <-time.After(opts.WaitAfterLoad):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return nil
		}),
		chromedp.Evaluate(instrumentScript, &supported),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	s.supported = supported

	return s, nil
}

// URL returns the page address.
func (s *Session) URL() string {
	return s.url
}

// Observe registers a delivery callback for one entry type. Fails when
// the page-side observer for that type could not be installed.
func (s *Session) Observe(entryType string, deliver func([]model.PerformanceEntry)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ok, known := s.supported[entryType]; known && !ok {
		return nil, fmt.Errorf("entry type %s not supported by page", entryType)
	}

	s.delivers[entryType] = append(s.delivers[entryType], deliver)
	idx := len(s.delivers[entryType]) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		list := s.delivers[entryType]
		if idx < len(list) {
			list[idx] = nil
		}
	}, nil
}

// NavigationTiming reads the page's navigation-timing record.
func (s *Session) NavigationTiming() (model.NavigationTiming, bool) {
	var nav *model.NavigationTiming
	if err := s.evaluate(navigationScript, &nav); err != nil || nav == nil {
		return model.NavigationTiming{}, false
	}
	return *nav, true
}

// Pump drains the page-side buffers and dispatches each batch to its
// registered callbacks.
func (s *Session) Pump() error {
	s.mu.Lock()
	types := make([]string, 0, len(s.delivers))
	for entryType := range s.delivers {
		types = append(types, entryType)
	}
	s.mu.Unlock()

	for _, entryType := range types {
		var batch []model.PerformanceEntry
		if err := s.evaluate(fmt.Sprintf(drainScript, entryType), &batch); err != nil {
			return fmt.Errorf("drain %s: %w", entryType, err)
		}
		if len(batch) == 0 {
			continue
		}

		s.mu.Lock()
		callbacks := append(([]func([]model.PerformanceEntry))(nil), s.delivers[entryType]...)
		s.mu.Unlock()

		for _, deliver := range callbacks {
			if deliver != nil {
				deliver(batch)
			}
		}
	}
	return nil
}

// PageStats counts document elements.
func (s *Session) PageStats() (model.PageStats, error) {
	var stats model.PageStats
	if err := s.evaluate(statsScript, &stats); err != nil {
		return model.PageStats{}, fmt.Errorf("page stats: %w", err)
	}
	return stats, nil
}

// Resources reads all resource-timing records.
func (s *Session) Resources() ([]model.ResourceEntry, error) {
	var resources []model.ResourceEntry
	if err := s.evaluate(resourcesScript, &resources); err != nil {
		return nil, fmt.Errorf("resources: %w", err)
	}
	return resources, nil
}

// Close shuts down the browser.
func (s *Session) Close() {
	s.cancelCtx()
	s.cancelAlloc()
}

func (s *Session) evaluate(script string, out interface{}) error {
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.Timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Evaluate(script, out))
}

package observer

import (
	"log"

	"github.com/webtopd/webtop/model"
)

// Source is where performance entries come from. The browser session
// implements it against a live page; tests implement it in memory.
type Source interface {
	// Observe registers interest in one entry type. The source calls
	// deliver with each batch of matching entries until the returned
	// cancel function is called. Registration may fail when the page
	// does not support the entry type.
	Observe(entryType string, deliver func([]model.PerformanceEntry)) (cancel func(), err error)

	// NavigationTiming returns the page's navigation-timing record.
	// ok is false when the record is unavailable.
	NavigationTiming() (model.NavigationTiming, bool)
}

// Observer folds one entry type's batches into the store.
type Observer interface {
	Name() string
	EntryType() string
	Process(batch []model.PerformanceEntry, store *Store)
}

// Registry owns the store and the set of observers for one page session.
// Init wires every observer to the source; observers that fail to
// register are skipped so the rest keep reporting.
type Registry struct {
	store *Store
	src   Source

	observers   []Observer
	initialized bool
	cancels     []func()
	resetHooks  []func()
}

// NewRegistry builds a registry with the standard vital observers.
func NewRegistry(store *Store, src Source) *Registry {
	return &Registry{
		store: store,
		src:   src,
		observers: []Observer{
			lcpObserver{},
			clsObserver{},
			fidObserver{},
			inpObserver{},
		},
	}
}

// Add registers an extra observer. Must be called before Init.
func (r *Registry) Add(obs Observer) {
	r.observers = append(r.observers, obs)
}

// OnReset registers a hook fired after the store is cleared by Reset.
func (r *Registry) OnReset(fn func()) {
	r.resetHooks = append(r.resetHooks, fn)
}

// Init registers every observer with the source and records TTFB from
// the navigation-timing record. Calling Init again is a no-op, so a
// re-triggered activation cannot double-count layout shifts.
func (r *Registry) Init() {
	if r.initialized {
		return
	}
	r.initialized = true

	if nav, ok := r.src.NavigationTiming(); ok {
		if ttfb := nav.ResponseStart - nav.RequestStart; ttfb >= 0 {
			r.store.SetTTFB(ttfb)
		}
	}

	for _, obs := range r.observers {
		obs := obs
		cancel, err := r.src.Observe(obs.EntryType(), func(batch []model.PerformanceEntry) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("observer %s: dropped batch: %v", obs.Name(), rec)
				}
			}()
			obs.Process(batch, r.store)
		})
		if err != nil {
			log.Printf("observer %s: %s entries unavailable: %v", obs.Name(), obs.EntryType(), err)
			continue
		}
		r.cancels = append(r.cancels, cancel)
	}
}

// Reset disconnects every observer, clears the store, and fires the
// reset hooks. The registry can be initialized again afterwards.
func (r *Registry) Reset() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
	r.initialized = false
	r.store.Reset()
	for _, fn := range r.resetHooks {
		fn()
	}
}

// Store returns the registry's vitals store.
func (r *Registry) Store() *Store {
	return r.store
}

// Initialized reports whether Init has run since the last Reset.
func (r *Registry) Initialized() bool {
	return r.initialized
}

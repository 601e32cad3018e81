package observer

import "github.com/webtopd/webtop/model"

// interactionMinMs filters out trivially fast events. Matches the
// duration threshold the page-side observer registers with, and guards
// against sources that deliver everything anyway.
const interactionMinMs = 40

// inpObserver approximates interaction-to-next-paint as the running
// maximum of qualifying event durations.
type inpObserver struct{}

func (inpObserver) Name() string      { return "inp" }
func (inpObserver) EntryType() string { return model.EntryEvent }

func (inpObserver) Process(batch []model.PerformanceEntry, store *Store) {
	for _, e := range batch {
		if e.Duration <= interactionMinMs {
			continue
		}
		store.ObserveInteraction(e.Duration)
	}
}

package observer

import "github.com/webtopd/webtop/model"

// clsObserver accumulates layout-shift scores. Shifts within the input
// grace window carry hadRecentInput and do not count toward CLS.
type clsObserver struct{}

func (clsObserver) Name() string      { return "cls" }
func (clsObserver) EntryType() string { return model.EntryLayoutShift }

func (clsObserver) Process(batch []model.PerformanceEntry, store *Store) {
	for _, e := range batch {
		if e.HadRecentInput {
			continue
		}
		store.AddShift(e.Value)
	}
}

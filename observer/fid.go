package observer

import "github.com/webtopd/webtop/model"

// fidObserver records first-input delay: the gap between the first
// interaction and the moment its handler started running. The platform
// delivers a single first-input entry per page load, so the first entry
// of a batch is the one that counts.
type fidObserver struct{}

func (fidObserver) Name() string      { return "fid" }
func (fidObserver) EntryType() string { return model.EntryFirstInput }

func (fidObserver) Process(batch []model.PerformanceEntry, store *Store) {
	if len(batch) == 0 {
		return
	}
	first := batch[0]
	store.SetFID(first.ProcessingStart - first.StartTime)
}

package engine

import "github.com/webtopd/webtop/model"

// Ticker abstracts a data source that can produce vitals and snapshots.
// The live engine, the recorder, and the replay player all implement it.
type Ticker interface {
	Tick() (model.Vitals, *model.MetricsSnapshot)
	Base() *Engine
}

// Base returns itself for the default engine ticker.
func (e *Engine) Base() *Engine {
	return e
}

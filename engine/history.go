package engine

import (
	"sync"
	"time"

	"github.com/webtopd/webtop/model"
)

// Sample is one tick's worth of vitals for trend display.
type Sample struct {
	Timestamp time.Time    `json:"ts"`
	Vitals    model.Vitals `json:"vitals"`
}

// History is a ring buffer of vitals samples for sparklines and trends.
type History struct {
	buf  []Sample
	head int
	size int
	cap  int
	mu   sync.RWMutex
}

// NewHistory creates a ring buffer with the given capacity.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf: make([]Sample, capacity),
		cap: capacity,
	}
}

// Push adds a sample to the ring buffer.
func (h *History) Push(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.buf[h.head] = s
	h.head = (h.head + 1) % h.cap
	if h.size < h.cap {
		h.size++
	}
}

// Len returns the number of samples stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.size
}

// Latest returns a copy of the most recent sample.
func (h *History) Latest() *Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.size == 0 {
		return nil
	}
	idx := (h.head - 1 + h.cap) % h.cap
	s := h.buf[idx] // copy
	return &s
}

// Get returns a copy of the sample at position i (0 = oldest in buffer).
func (h *History) Get(i int) *Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if i < 0 || i >= h.size {
		return nil
	}
	idx := (h.head - h.size + i + h.cap) % h.cap
	s := h.buf[idx] // copy
	return &s
}

// Series extracts one metric's values oldest-first, skipping ticks where
// the metric was absent. extract returns the value and whether it was
// observed.
func (h *History) Series(extract func(model.Vitals) (float64, bool)) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]float64, 0, h.size)
	for i := 0; i < h.size; i++ {
		idx := (h.head - h.size + i + h.cap) % h.cap
		if v, ok := extract(h.buf[idx].Vitals); ok {
			out = append(out, v)
		}
	}
	return out
}

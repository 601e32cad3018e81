package engine

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webtopd/webtop/model"
)

// recordFrame is one tick written to disk.
type recordFrame struct {
	Timestamp time.Time              `json:"ts"`
	SessionID string                 `json:"session_id"`
	URL       string                 `json:"url,omitempty"`
	Vitals    model.Vitals           `json:"vitals"`
	Snapshot  *model.MetricsSnapshot `json:"snapshot,omitempty"`
}

// Recorder wraps an engine and records every tick to a writer as JSON
// lines. All frames of one run share a session ID.
type Recorder struct {
	Engine    *Engine
	inner     *Engine
	sessionID string
	writer    *json.Encoder
	mu        sync.Mutex
}

// NewRecorder creates a recorder that writes JSON lines to w.
func NewRecorder(eng *Engine, w io.Writer) *Recorder {
	return &Recorder{
		Engine:    eng,
		inner:     eng,
		sessionID: uuid.NewString(),
		writer:    json.NewEncoder(w),
	}
}

// SessionID returns the recording run's identifier.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// Base returns the underlying engine.
func (r *Recorder) Base() *Engine {
	return r.inner
}

// Tick calls the engine's Tick and records the result.
func (r *Recorder) Tick() (model.Vitals, *model.MetricsSnapshot) {
	vitals, snap := r.inner.Tick()
	r.mu.Lock()
	frame := recordFrame{
		SessionID: r.sessionID,
		URL:       r.inner.URL(),
		Vitals:    vitals,
		Snapshot:  snap,
	}
	if snap != nil {
		frame.Timestamp = snap.Timestamp
	} else {
		frame.Timestamp = time.Now()
	}
	if err := r.writer.Encode(frame); err != nil {
		// Recording failures must not break the live view.
		log.Printf("recorder: write frame: %v", err)
	}
	r.mu.Unlock()
	return vitals, snap
}

// Player replays recorded frames through a virtual engine.
type Player struct {
	Engine *Engine
	frames []recordFrame
	idx    int
	mu     sync.Mutex
	last   *recordFrame
}

// NewPlayer creates a player from a recorded file (JSON lines).
func NewPlayer(r io.Reader, historySize int) (*Player, error) {
	var frames []recordFrame
	sc := bufio.NewScanner(r)
	// Frames with full snapshots can exceed the default token size.
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var frame recordFrame
		if err := json.Unmarshal(line, &frame); err != nil {
			// Skip malformed lines; a truncated tail is common when a
			// recording was interrupted.
			continue
		}
		frames = append(frames, frame)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	url := ""
	if len(frames) > 0 {
		url = frames[0].URL
	}

	return &Player{
		Engine: NewEngine(replaySession{url: url}, historySize),
		frames: frames,
	}, nil
}

// Base returns the underlying engine.
func (p *Player) Base() *Engine {
	return p.Engine
}

// Tick replays the next recorded frame (or the last frame at EOF).
func (p *Player) Tick() (model.Vitals, *model.MetricsSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.frames) == 0 {
		return model.Vitals{}, nil
	}

	if p.idx >= len(p.frames) {
		f := p.last
		if f == nil {
			f = &p.frames[len(p.frames)-1]
		}
		return f.Vitals, f.Snapshot
	}

	f := &p.frames[p.idx]
	p.idx++
	p.last = f

	// Feed history for trends
	p.Engine.History.Push(Sample{Timestamp: f.Timestamp, Vitals: f.Vitals})

	return f.Vitals, f.Snapshot
}

// Len returns the number of frames available.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// Index returns the next frame index.
func (p *Player) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idx
}

// URL returns the recorded page address.
func (p *Player) URL() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return ""
	}
	return p.frames[0].URL
}

// Seek jumps to a frame index and returns that frame.
func (p *Player) Seek(i int) (model.Vitals, *model.MetricsSnapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return model.Vitals{}, nil
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p.frames) {
		i = len(p.frames) - 1
	}
	p.idx = i
	f := &p.frames[p.idx]
	p.idx++
	p.last = f
	p.Engine.History.Push(Sample{Timestamp: f.Timestamp, Vitals: f.Vitals})
	return f.Vitals, f.Snapshot
}

// replaySession satisfies Session for the player's virtual engine. It
// never produces entries; all data comes from the recorded frames.
type replaySession struct {
	url string
}

func (replaySession) Observe(string, func([]model.PerformanceEntry)) (func(), error) {
	return func() {}, nil
}

func (replaySession) NavigationTiming() (model.NavigationTiming, bool) {
	return model.NavigationTiming{}, false
}

func (replaySession) PageStats() (model.PageStats, error) {
	return model.PageStats{}, nil
}

func (replaySession) Resources() ([]model.ResourceEntry, error) {
	return nil, nil
}

func (replaySession) Pump() error { return nil }

func (s replaySession) URL() string { return s.url }

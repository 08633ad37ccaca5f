package audio

import (
	"errors"
	"fmt"
	"time"

	"kinescope/internal/timecode"
)

// ProbeFunc reports the duration of the audio file at path.
type ProbeFunc func(path string) (timecode.Seconds, error)

// ClockEngine simulates playback against the wall clock without producing
// any sound. Positions advance in real time while playing and seeks settle
// after a fixed latency, so session code exercises the same reconciliation
// paths it would against a real mixer. The headless CLI uses it to drive
// exports, where only the position math matters.
type ClockEngine struct {
	// Probe resolves track durations. Required.
	Probe ProbeFunc

	// SeekLatency is how long a seek takes to reflect in Position.
	SeekLatency time.Duration

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewClockEngine builds a ClockEngine with a 50ms simulated seek latency.
func NewClockEngine(probe ProbeFunc) *ClockEngine {
	return &ClockEngine{
		Probe:       probe,
		SeekLatency: 50 * time.Millisecond,
		now:         time.Now,
	}
}

// Load probes the file's duration and returns a silent track.
func (e *ClockEngine) Load(path string) (Track, error) {
	if e.Probe == nil {
		return nil, errors.New("clock engine: no probe configured")
	}
	duration, err := e.Probe(path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("probe %s: non-positive duration %v", path, duration)
	}
	return &clockTrack{engine: e, duration: duration}, nil
}

type clockTrack struct {
	engine   *ClockEngine
	duration timecode.Seconds
	spent    bool
}

func (t *clockTrack) Duration() timecode.Seconds {
	return t.duration
}

func (t *clockTrack) Play(start timecode.Seconds) (Handle, error) {
	if t.spent {
		return nil, errors.New("clock engine: track already played")
	}
	t.spent = true
	return &clockHandle{
		engine:   t.engine,
		duration: t.duration,
		base:     start,
		baseTime: t.engine.now(),
		state:    StatePlaying,
	}, nil
}

type clockHandle struct {
	engine   *ClockEngine
	duration timecode.Seconds

	// base is the position at baseTime; while playing the current position
	// is base plus elapsed wall time.
	base     timecode.Seconds
	baseTime time.Time
	state    PlaybackState

	// pendingSeek holds a seek target until its settle deadline passes.
	pendingSeek     timecode.Seconds
	pendingSeekAt   time.Time
	pendingSeekLive bool
}

func (h *clockHandle) State() PlaybackState {
	h.advance()
	return h.state
}

func (h *clockHandle) Position() timecode.Seconds {
	h.advance()
	if h.pendingSeekLive {
		return h.base
	}
	if h.state != StatePlaying {
		return h.base
	}
	return h.base + timecode.Seconds(h.engine.now().Sub(h.baseTime).Seconds())
}

func (h *clockHandle) Pause() error {
	if h.state == StateStopped {
		return errors.New("clock engine: handle is stopped")
	}
	h.rebase()
	h.state = StatePaused
	return nil
}

func (h *clockHandle) Resume() error {
	if h.state == StateStopped {
		return errors.New("clock engine: handle is stopped")
	}
	h.baseTime = h.engine.now()
	h.state = StatePlaying
	return nil
}

func (h *clockHandle) SeekTo(position timecode.Seconds) error {
	if h.state == StateStopped {
		return errors.New("clock engine: handle is stopped")
	}
	h.rebase()
	h.pendingSeek = position
	h.pendingSeekAt = h.engine.now().Add(h.engine.SeekLatency)
	h.pendingSeekLive = true
	return nil
}

func (h *clockHandle) Stop() error {
	h.rebase()
	h.state = StateStopped
	return nil
}

// rebase folds elapsed play time into base so state changes keep the
// position continuous.
func (h *clockHandle) rebase() {
	if h.state == StatePlaying {
		h.base += timecode.Seconds(h.engine.now().Sub(h.baseTime).Seconds())
	}
	h.baseTime = h.engine.now()
}

// advance applies settled seeks and end-of-track.
func (h *clockHandle) advance() {
	if h.pendingSeekLive && !h.engine.now().Before(h.pendingSeekAt) {
		h.base = h.pendingSeek
		h.baseTime = h.pendingSeekAt
		h.pendingSeekLive = false
	}
	if h.state == StatePlaying && !h.pendingSeekLive {
		position := h.base + timecode.Seconds(h.engine.now().Sub(h.baseTime).Seconds())
		if position >= h.duration {
			h.base = h.duration
			h.state = StateStopped
		}
	}
}

// Package audio defines the contract between the playback session and an
// audio engine.
//
// The engine runs its own playback machinery (typically on an internal
// thread) and is reached only through the synchronous Handle API. Reported
// positions are approximate: engine-side buffering means a position queried
// right after a seek may still reflect the pre-seek location, which the
// session reconciles with a tolerance rather than trusting immediately.
//
// ClockEngine provides a wall-clock simulation of the contract for headless
// use; real mixers implement Engine in the host application.
package audio

import "kinescope/internal/timecode"

// PlaybackState describes what a live handle is currently doing.
type PlaybackState int

const (
	// StatePlaying means audio is advancing.
	StatePlaying PlaybackState = iota
	// StatePaused means playback is suspended but resumable.
	StatePaused
	// StateStopped means the track finished or was stopped; the handle is
	// spent and a fresh Track must be loaded to play again.
	StateStopped
)

// String returns the lowercase state name.
func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Engine loads audio tracks for playback.
type Engine interface {
	// Load prepares the file at path for a single playback. Load failures
	// (missing or corrupt files) are fatal to the caller.
	Load(path string) (Track, error)
}

// Track is loaded audio that has not started playing. Play consumes the
// track; a finished track cannot be rewound and must be reloaded.
type Track interface {
	// Duration reports the total length of the track.
	Duration() timecode.Seconds

	// Play begins playback at the given position and returns the live
	// handle. The track is spent afterwards even if Play fails.
	Play(start timecode.Seconds) (Handle, error)
}

// Handle controls one in-flight playback.
type Handle interface {
	// State reports whether the handle is playing, paused, or finished.
	State() PlaybackState

	// Position reports the engine's current playback position. Treat it as
	// an approximate signal, not an authoritative clock.
	Position() timecode.Seconds

	// Pause suspends playback in place.
	Pause() error

	// Resume continues playback after a pause.
	Resume() error

	// SeekTo requests a jump to the given position. The engine applies it
	// asynchronously; Position catches up after some internal latency.
	SeekTo(position timecode.Seconds) error

	// Stop tears the playback down. The handle is unusable afterwards.
	Stop() error
}

package player

import (
	"time"

	"kinescope/internal/chapters"
	"kinescope/internal/timecode"
)

// Defaults applied when a Visualizer reports zero values.
const (
	DefaultFrameRate = 60
	DefaultWidth     = 3840
	DefaultHeight    = 2160
)

// Visualizer is the visual half of the session, supplied by the embedding
// application. The session calls Draw whenever the current frame changes;
// the same dispatch drives interactive playback and export, so a frame
// rendered offline is indistinguishable from the same frame rendered live.
type Visualizer interface {
	// AudioPath is the source audio file, read both for playback and for
	// the export mux step.
	AudioPath() string

	// FrameRate is the fixed frame rate of the visual timeline. Zero means
	// DefaultFrameRate. Queried once at session start.
	FrameRate() int

	// VideoResolution is the offscreen render size in pixels. Zero means
	// DefaultWidth x DefaultHeight.
	VideoResolution() (width, height int)

	// Chapters lists the track's named markers, possibly empty. The first
	// chapter must start at frame 0 and start frames must strictly
	// increase.
	Chapters() chapters.List

	// Draw renders one visual frame into the bound offscreen target. A
	// draw failure is fatal for the tick.
	Draw(target Canvas, frame timecode.Frames) error
}

// Updater is an optional Visualizer hook called every interactive tick with
// the elapsed time. Export ticks skip it; only Draw runs during export.
type Updater interface {
	Update(delta time.Duration) error
}

// EventHandler is an optional Visualizer hook receiving the host toolkit's
// raw input events. Not invoked during export.
type EventHandler interface {
	HandleEvent(event any) error
}

// Canvas is the host's offscreen render target, created once at the
// visualizer's resolution.
type Canvas interface {
	// Resolution reports the target size in pixels.
	Resolution() (width, height int)

	// ReadPixels copies the target's contents into dst as RGBA, 4 bytes
	// per pixel, sized width*height*4.
	ReadPixels(dst []byte) error
}

// PresentMode selects how the host paces frame presentation.
type PresentMode int

const (
	// PresentVSync throttles presentation to the display refresh rate.
	PresentVSync PresentMode = iota
	// PresentImmediate presents as fast as possible. Export requests this
	// so the frame-locked loop is not capped by the display.
	PresentImmediate
)

// Presenter lets the session switch the host's presentation pacing.
type Presenter interface {
	SetPresentMode(mode PresentMode) error
}

// nopPresenter stands in when the host has no pacing control, e.g. headless
// export.
type nopPresenter struct{}

func (nopPresenter) SetPresentMode(PresentMode) error { return nil }

package player

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kinescope/internal/audio"
	"kinescope/internal/chapters"
	"kinescope/internal/logging"
	"kinescope/internal/renders"
	"kinescope/internal/timecode"
)

// seekSettleTolerance is how close the engine's reported position must get
// to an in-progress seek target before the seek counts as finished. The
// engine applies seeks with internal latency; until the position catches up
// the target itself is reported so the UI does not flicker back to the
// pre-seek position.
const seekSettleTolerance = timecode.Seconds(0.1)

// noFrameDrawn marks that no draw has been dispatched yet. Frames are
// non-negative, so -1 never collides with a real frame.
const noFrameDrawn = timecode.Frames(-1)

// EncoderSettings carries the host-configurable encoder knobs into exports.
type EncoderSettings struct {
	Binary       string
	AudioBitrate string
	VideoCodec   string
}

// Options configures a Session.
type Options struct {
	// Visualizer supplies the visual timeline. Required.
	Visualizer Visualizer

	// Engine loads and plays the audio track. Required.
	Engine audio.Engine

	// Canvas is the offscreen render target, sized to the visualizer's
	// resolution. Required.
	Canvas Canvas

	// Presenter controls presentation pacing. Optional; defaults to a
	// no-op for headless hosts.
	Presenter Presenter

	// Logger receives structured session events. Optional.
	Logger *slog.Logger

	// History records export jobs. Optional.
	History *renders.Store

	// Encoder configures spawned encoder processes.
	Encoder EncoderSettings

	// StartEncoder overrides encoder process creation. Tests use it; the
	// default spawns ffmpeg via the encoder package.
	StartEncoder EncoderStarter
}

// Session is the playback and export state machine. It is single-threaded:
// the host drives it from one tick loop and no internal goroutines exist.
type Session struct {
	visualizer Visualizer
	engine     audio.Engine
	canvas     Canvas
	presenter  Presenter
	logger     *slog.Logger
	history    *renders.Store

	encoderSettings EncoderSettings
	startEncoder    EncoderStarter

	audioPath string
	frameRate int
	width     int
	height    int
	duration  timecode.Seconds
	chapters  chapters.List

	mode           mode
	lastDrawnFrame timecode.Frames
	exportSettings ExportSettings
}

// NewSession validates the visualizer's contract, loads the audio track,
// and starts in Stopped at position zero. Audio load failures are fatal.
func NewSession(opts Options) (*Session, error) {
	if opts.Visualizer == nil {
		return nil, errors.New("player: visualizer required")
	}
	if opts.Engine == nil {
		return nil, errors.New("player: audio engine required")
	}
	if opts.Canvas == nil {
		return nil, errors.New("player: canvas required")
	}

	frameRate := opts.Visualizer.FrameRate()
	if frameRate == 0 {
		frameRate = DefaultFrameRate
	}
	if frameRate < 0 {
		return nil, fmt.Errorf("player: invalid frame rate %d", frameRate)
	}
	width, height := opts.Visualizer.VideoResolution()
	if width == 0 && height == 0 {
		width, height = DefaultWidth, DefaultHeight
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("player: invalid resolution %dx%d", width, height)
	}
	if cw, ch := opts.Canvas.Resolution(); cw != width || ch != height {
		return nil, fmt.Errorf("player: canvas is %dx%d, visualizer wants %dx%d", cw, ch, width, height)
	}

	list := opts.Visualizer.Chapters()
	if err := list.Validate(); err != nil {
		return nil, fmt.Errorf("player: %w", err)
	}

	audioPath := opts.Visualizer.AudioPath()
	track, err := opts.Engine.Load(audioPath)
	if err != nil {
		return nil, fmt.Errorf("load audio %s: %w", audioPath, err)
	}

	presenter := opts.Presenter
	if presenter == nil {
		presenter = nopPresenter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	starter := opts.StartEncoder
	if starter == nil {
		starter = defaultEncoderStarter
	}

	session := &Session{
		visualizer:      opts.Visualizer,
		engine:          opts.Engine,
		canvas:          opts.Canvas,
		presenter:       presenter,
		logger:          logger.With(slog.String(logging.FieldComponent, "player")),
		history:         opts.History,
		encoderSettings: opts.Encoder,
		startEncoder:    starter,
		audioPath:       audioPath,
		frameRate:       frameRate,
		width:           width,
		height:          height,
		duration:        track.Duration(),
		chapters:        list,
		mode:            &stoppedMode{pending: track},
		lastDrawnFrame:  noFrameDrawn,
		exportSettings:  defaultExportSettings(list),
	}
	return session, nil
}

// FrameRate reports the session's fixed frame rate.
func (s *Session) FrameRate() int { return s.frameRate }

// Duration reports the track length.
func (s *Session) Duration() timecode.Seconds { return s.duration }

// Chapters reports the track's chapter markers.
func (s *Session) Chapters() chapters.List { return s.chapters }

// ModeName reports "stopped", "playing", or "rendering" for logs and UI.
func (s *Session) ModeName() string { return s.mode.name() }

// Exporting reports whether an export pass is in progress.
func (s *Session) Exporting() bool {
	_, ok := s.mode.(*renderingMode)
	return ok
}

// Playing reports whether audio is actually advancing.
func (s *Session) Playing() bool {
	m, ok := s.mode.(*playingMode)
	return ok && m.handle.State() == audio.StatePlaying
}

// Position reports the current playback position. While a seek is in
// progress its target is authoritative; while rendering the frame counter
// is.
func (s *Session) Position() timecode.Seconds {
	switch m := s.mode.(type) {
	case *stoppedMode:
		return m.startPosition
	case *playingMode:
		if m.inProgressSeek != nil {
			return *m.inProgressSeek
		}
		return m.handle.Position()
	case *renderingMode:
		return m.currentFrame.ToSeconds(s.frameRate)
	default:
		panic(fmt.Sprintf("player: unknown mode %T", s.mode))
	}
}

// CurrentFrame reports the frame the visualizer should be showing.
func (s *Session) CurrentFrame() timecode.Frames {
	if m, ok := s.mode.(*renderingMode); ok {
		return m.currentFrame
	}
	return s.Position().ToFrames(s.frameRate)
}

// PlayOrResume starts playback from the stored start position, or resumes a
// paused handle. Must not be called while rendering.
func (s *Session) PlayOrResume() error {
	switch m := s.mode.(type) {
	case *stoppedMode:
		handle, err := m.pending.Play(m.startPosition)
		if err != nil {
			return fmt.Errorf("play: %w", err)
		}
		s.mode = &playingMode{handle: handle}
		return nil
	case *playingMode:
		if err := m.handle.Resume(); err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		return nil
	default:
		panic("player: play/resume is not supported while rendering")
	}
}

// Pause suspends playback in place. A no-op while stopped. Must not be
// called while rendering.
func (s *Session) Pause() error {
	switch m := s.mode.(type) {
	case *stoppedMode:
		return nil
	case *playingMode:
		if err := m.handle.Pause(); err != nil {
			return fmt.Errorf("pause: %w", err)
		}
		return nil
	default:
		panic("player: pause is not supported while rendering")
	}
}

// TogglePlayback pauses when playing and plays otherwise.
func (s *Session) TogglePlayback() error {
	if s.Playing() {
		return s.Pause()
	}
	return s.PlayOrResume()
}

// Seek moves the playback position. While stopped it only records the new
// start position; while playing it asks the engine to seek and tracks the
// target until the reported position settles. A newer seek replaces the
// pending one. Must not be called while rendering.
func (s *Session) Seek(position timecode.Seconds) error {
	switch m := s.mode.(type) {
	case *stoppedMode:
		m.startPosition = position
		return nil
	case *playingMode:
		if err := m.handle.SeekTo(position); err != nil {
			return fmt.Errorf("seek: %w", err)
		}
		target := position
		m.inProgressSeek = &target
		return nil
	default:
		panic("player: seek is not supported while rendering")
	}
}

// Update runs the per-tick reconciliation: settle in-progress seeks,
// detect end of track, and run the visualizer's update hook. Export ticks
// skip the hook.
func (s *Session) Update(delta time.Duration) error {
	if m, ok := s.mode.(*playingMode); ok {
		if m.inProgressSeek != nil {
			drift := m.handle.Position() - *m.inProgressSeek
			if drift.Abs() <= seekSettleTolerance {
				m.inProgressSeek = nil
			}
		}
		if m.handle.State() == audio.StateStopped {
			// The finished handle is spent; reload eagerly so the next
			// play starts without touching disk on the UI path.
			track, err := s.engine.Load(s.audioPath)
			if err != nil {
				return fmt.Errorf("reload audio %s: %w", s.audioPath, err)
			}
			s.mode = &stoppedMode{pending: track}
		}
	}

	if !s.Exporting() {
		if updater, ok := s.visualizer.(Updater); ok {
			if err := updater.Update(delta); err != nil {
				return fmt.Errorf("visualizer update: %w", err)
			}
		}
	}
	return nil
}

// ForwardEvent hands a host input event to the visualizer's optional event
// hook. Events are dropped during export.
func (s *Session) ForwardEvent(event any) error {
	if s.Exporting() {
		return nil
	}
	if handler, ok := s.visualizer.(EventHandler); ok {
		if err := handler.HandleEvent(event); err != nil {
			return fmt.Errorf("visualizer event: %w", err)
		}
	}
	return nil
}

// Draw dispatches the visualizer when the current frame changed since the
// last tick, then runs the export step while rendering. Hosts call it once
// per tick after Update and present the canvas afterwards.
func (s *Session) Draw() error {
	frame := s.CurrentFrame()
	if frame != s.lastDrawnFrame {
		if err := s.visualizer.Draw(s.canvas, frame); err != nil {
			return fmt.Errorf("draw frame %d: %w", frame, err)
		}
		s.lastDrawnFrame = frame
	}

	if m, ok := s.mode.(*renderingMode); ok {
		return s.exportTick(m)
	}
	return nil
}

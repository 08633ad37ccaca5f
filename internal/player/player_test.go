package player_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"kinescope/internal/audio"
	"kinescope/internal/chapters"
	"kinescope/internal/encoder"
	"kinescope/internal/player"
	"kinescope/internal/timecode"
)

type fakeHandle struct {
	state    audio.PlaybackState
	position timecode.Seconds
	seeks    []timecode.Seconds
	stopped  bool
	seekErr  error
	pauseErr error
}

func (h *fakeHandle) State() audio.PlaybackState { return h.state }
func (h *fakeHandle) Position() timecode.Seconds { return h.position }
func (h *fakeHandle) Pause() error               { h.state = audio.StatePaused; return h.pauseErr }
func (h *fakeHandle) Resume() error              { h.state = audio.StatePlaying; return nil }
func (h *fakeHandle) Stop() error {
	h.stopped = true
	h.state = audio.StateStopped
	return nil
}
func (h *fakeHandle) SeekTo(p timecode.Seconds) error {
	if h.seekErr != nil {
		return h.seekErr
	}
	h.seeks = append(h.seeks, p)
	return nil
}

type fakeTrack struct {
	duration timecode.Seconds
	handle   *fakeHandle
	playedAt []timecode.Seconds
}

func (t *fakeTrack) Duration() timecode.Seconds { return t.duration }
func (t *fakeTrack) Play(start timecode.Seconds) (audio.Handle, error) {
	t.playedAt = append(t.playedAt, start)
	t.handle.position = start
	t.handle.state = audio.StatePlaying
	return t.handle, nil
}

type fakeEngine struct {
	duration timecode.Seconds
	loaded   []*fakeTrack
	loadErr  error
}

func (e *fakeEngine) Load(path string) (audio.Track, error) {
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	track := &fakeTrack{duration: e.duration, handle: &fakeHandle{state: audio.StateStopped}}
	e.loaded = append(e.loaded, track)
	return track, nil
}

type fakeVisualizer struct {
	audioPath string
	frameRate int
	width     int
	height    int
	chapters  chapters.List
	draws     []timecode.Frames
	drawErr   error
}

func (v *fakeVisualizer) AudioPath() string           { return v.audioPath }
func (v *fakeVisualizer) FrameRate() int              { return v.frameRate }
func (v *fakeVisualizer) VideoResolution() (int, int) { return v.width, v.height }
func (v *fakeVisualizer) Chapters() chapters.List     { return v.chapters }
func (v *fakeVisualizer) Draw(_ player.Canvas, frame timecode.Frames) error {
	if v.drawErr != nil {
		return v.drawErr
	}
	v.draws = append(v.draws, frame)
	return nil
}

type updatingVisualizer struct {
	fakeVisualizer
	updates int
}

func (v *updatingVisualizer) Update(time.Duration) error {
	v.updates++
	return nil
}

type fakeCanvas struct {
	width  int
	height int
	fill   byte
	reads  int
}

func (c *fakeCanvas) Resolution() (int, int) { return c.width, c.height }
func (c *fakeCanvas) ReadPixels(dst []byte) error {
	c.reads++
	for i := range dst {
		dst[i] = c.fill
	}
	return nil
}

type fakePresenter struct {
	modes []player.PresentMode
}

func (p *fakePresenter) SetPresentMode(mode player.PresentMode) error {
	p.modes = append(p.modes, mode)
	return nil
}

type fakeEncoderJob struct {
	writes  int
	failAt  int // 1-based write index that fails; 0 means never
	closes  int
	written [][]byte
}

func (j *fakeEncoderJob) WriteFrame(pixels []byte) error {
	j.writes++
	if j.failAt > 0 && j.writes == j.failAt {
		return errors.New("write frame: broken pipe")
	}
	frame := make([]byte, len(pixels))
	copy(frame, pixels)
	j.written = append(j.written, frame)
	return nil
}

func (j *fakeEncoderJob) Close() error {
	j.closes++
	return nil
}

type testRig struct {
	session    *player.Session
	visualizer *fakeVisualizer
	engine     *fakeEngine
	canvas     *fakeCanvas
	presenter  *fakePresenter
	job        *fakeEncoderJob
	encoded    []encoder.Settings
}

type rigOption func(*testRig)

func withChapters(list chapters.List) rigOption {
	return func(r *testRig) { r.visualizer.chapters = list }
}

func withDuration(d timecode.Seconds) rigOption {
	return func(r *testRig) { r.engine.duration = d }
}

func withEncoderFailAt(write int) rigOption {
	return func(r *testRig) { r.job.failAt = write }
}

func newRig(t *testing.T, opts ...rigOption) *testRig {
	t.Helper()
	rig := &testRig{
		visualizer: &fakeVisualizer{audioPath: "track.flac", frameRate: 60, width: 8, height: 4},
		engine:     &fakeEngine{duration: 60},
		canvas:     &fakeCanvas{width: 8, height: 4, fill: 0x7f},
		presenter:  &fakePresenter{},
		job:        &fakeEncoderJob{},
	}
	for _, opt := range opts {
		opt(rig)
	}

	session, err := player.NewSession(player.Options{
		Visualizer: rig.visualizer,
		Engine:     rig.engine,
		Canvas:     rig.canvas,
		Presenter:  rig.presenter,
		StartEncoder: func(_ context.Context, settings encoder.Settings) (player.EncoderJob, error) {
			rig.encoded = append(rig.encoded, settings)
			return rig.job, nil
		},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	rig.session = session
	return rig
}

// newRigWithVisualizer builds a rig around a caller-supplied visualizer, for
// exercising the optional hooks.
func newRigWithVisualizer(t *testing.T, visualizer player.Visualizer) *testRig {
	t.Helper()
	rig := &testRig{
		engine:    &fakeEngine{duration: 60},
		canvas:    &fakeCanvas{width: 8, height: 4, fill: 0x7f},
		presenter: &fakePresenter{},
		job:       &fakeEncoderJob{},
	}
	session, err := player.NewSession(player.Options{
		Visualizer: visualizer,
		Engine:     rig.engine,
		Canvas:     rig.canvas,
		Presenter:  rig.presenter,
		StartEncoder: func(_ context.Context, settings encoder.Settings) (player.EncoderJob, error) {
			rig.encoded = append(rig.encoded, settings)
			return rig.job, nil
		},
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	rig.session = session
	return rig
}

func startExport(t *testing.T, rig *testRig) {
	t.Helper()
	if err := rig.session.StartExport(context.Background(), "out.mp4"); err != nil {
		t.Fatalf("StartExport: %v", err)
	}
}

// handle returns the live fake handle after playback started.
func (r *testRig) handle() *fakeHandle {
	return r.engine.loaded[0].handle
}

func (r *testRig) tick() error {
	if err := r.session.Update(time.Second / 60); err != nil {
		return err
	}
	return r.session.Draw()
}

// Package encoder wraps the external ffmpeg process that turns raw rendered
// frames into a finished video file.
//
// A Job owns the spawned process, its stdin pipe, and an advisory lock on
// the output path. Frames are written uncompressed (RGBA, 4 bytes per pixel)
// to stdin while ffmpeg reads the original audio file as a second input,
// seeked to the export start time, and trims the result to the shorter
// stream. The argument list is part of the system's compatibility contract;
// do not reorder it.
package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/gofrs/flock"

	"kinescope/internal/timecode"
)

var commandContext = exec.CommandContext

// Defaults for knobs the config may leave empty.
const (
	DefaultBinary       = "ffmpeg"
	DefaultAudioBitrate = "320k"
	DefaultVideoCodec   = "libx264"
)

// Settings describes one encode.
type Settings struct {
	// Binary is the ffmpeg executable. Empty means DefaultBinary.
	Binary string

	// Width and Height are the raw frame dimensions in pixels.
	Width  int
	Height int

	// FrameRate applies to both the raw input and the encoded output.
	FrameRate int

	// AudioPath is the original audio file muxed alongside the video.
	AudioPath string

	// AudioOffset seeks the audio input to the export start time.
	AudioOffset timecode.Seconds

	// AudioBitrate is the encoded audio bitrate. Empty means 320k.
	AudioBitrate string

	// VideoCodec is the single-pass video codec. Empty means libx264.
	VideoCodec string

	// OutputPath is the destination video file.
	OutputPath string
}

func (s *Settings) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("encoder: invalid resolution %dx%d", s.Width, s.Height)
	}
	if s.FrameRate <= 0 {
		return fmt.Errorf("encoder: invalid frame rate %d", s.FrameRate)
	}
	if s.AudioPath == "" {
		return errors.New("encoder: audio path required")
	}
	if s.OutputPath == "" {
		return errors.New("encoder: output path required")
	}
	return nil
}

// args builds the ffmpeg invocation. The shape is fixed: raw RGBA video on
// stdin, the audio file as a seeked second input, shortest-stream trimming.
func (s *Settings) args() []string {
	bitrate := s.AudioBitrate
	if bitrate == "" {
		bitrate = DefaultAudioBitrate
	}
	codec := s.VideoCodec
	if codec == "" {
		codec = DefaultVideoCodec
	}
	rate := strconv.Itoa(s.FrameRate)
	return []string{
		"-y",
		"-f", "rawvideo",
		"-vcodec", "rawvideo",
		"-s", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"-pix_fmt", "rgba",
		"-r", rate,
		"-i", "-",
		"-ss", strconv.FormatFloat(float64(s.AudioOffset), 'f', -1, 64) + "s",
		"-i", s.AudioPath,
		"-b:a", bitrate,
		"-c:v", codec,
		"-r", rate,
		"-shortest",
		s.OutputPath,
	}
}

// Job is a running encoder process accepting raw frames.
type Job struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	lock      *flock.Flock
	frameSize int
	closed    bool
}

// Start locks the output path and spawns the encoder. Spawn failures leave
// no process behind and release the lock.
func Start(ctx context.Context, settings Settings) (*Job, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}

	lock := flock.New(settings.OutputPath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output %s: %w", settings.OutputPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("another export is already writing to %s", settings.OutputPath)
	}

	binary := settings.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	cmd := commandContext(ctx, binary, settings.args()...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}

	return &Job{
		cmd:       cmd,
		stdin:     stdin,
		lock:      lock,
		frameSize: settings.Width * settings.Height * 4,
	}, nil
}

// FrameSize returns the expected byte length of one raw frame.
func (j *Job) FrameSize() int {
	return j.frameSize
}

// WriteFrame streams one raw frame to the encoder. A write error almost
// always means the process exited; the caller should abandon the export and
// Close the job.
func (j *Job) WriteFrame(pixels []byte) error {
	if j.closed {
		return errors.New("encoder: job is closed")
	}
	if len(pixels) != j.frameSize {
		return fmt.Errorf("encoder: frame is %d bytes, want %d", len(pixels), j.frameSize)
	}
	if _, err := j.stdin.Write(pixels); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// Close shuts the input stream, reaps the process, and releases the output
// lock. It is safe to call after a failed write; the process exit status is
// not treated as an error in that case because the pipe error already
// reported the failure. Close is idempotent.
func (j *Job) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true
	closeErr := j.stdin.Close()
	waitErr := j.cmd.Wait()
	unlockErr := j.lock.Unlock()
	if closeErr != nil {
		return fmt.Errorf("close encoder stdin: %w", closeErr)
	}
	if waitErr != nil {
		return fmt.Errorf("encoder exited: %w", waitErr)
	}
	if unlockErr != nil {
		return fmt.Errorf("unlock output: %w", unlockErr)
	}
	return nil
}

package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kinescope/internal/chapters"
	"kinescope/internal/encoder"
	"kinescope/internal/logging"
	"kinescope/internal/renders"
	"kinescope/internal/timecode"
)

// ExportSettings selects the chapter span to export. Both indices must be
// valid when chapters exist; without chapters the whole track is exported
// and the indices are ignored.
type ExportSettings struct {
	StartChapterIndex int
	EndChapterIndex   int
}

// defaultExportSettings spans every chapter, matching the whole track.
func defaultExportSettings(list chapters.List) ExportSettings {
	if len(list) == 0 {
		return ExportSettings{}
	}
	return ExportSettings{StartChapterIndex: 0, EndChapterIndex: len(list) - 1}
}

// EncoderJob is the sink for rendered frames during export. *encoder.Job
// implements it; tests substitute their own.
type EncoderJob interface {
	WriteFrame(pixels []byte) error
	Close() error
}

// EncoderStarter spawns an encoder process for an export pass.
type EncoderStarter func(ctx context.Context, settings encoder.Settings) (EncoderJob, error)

func defaultEncoderStarter(ctx context.Context, settings encoder.Settings) (EncoderJob, error) {
	return encoder.Start(ctx, settings)
}

// ExportSettings returns the currently selected export span.
func (s *Session) ExportSettings() ExportSettings {
	return s.exportSettings
}

// SetExportSettings validates and stores the chapter span for the next
// export.
func (s *Session) SetExportSettings(settings ExportSettings) error {
	if len(s.chapters) == 0 {
		s.exportSettings = ExportSettings{}
		return nil
	}
	if settings.StartChapterIndex < 0 || settings.StartChapterIndex >= len(s.chapters) {
		return fmt.Errorf("player: start chapter %d out of range", settings.StartChapterIndex)
	}
	if settings.EndChapterIndex < settings.StartChapterIndex || settings.EndChapterIndex >= len(s.chapters) {
		return fmt.Errorf("player: end chapter %d out of range", settings.EndChapterIndex)
	}
	s.exportSettings = settings
	return nil
}

// resolveExportRange computes the inclusive frame span for the selected
// chapters, or the whole track when there are none. The final chapter and
// the no-chapter case both end at the last frame derived from the audio
// duration.
func (s *Session) resolveExportRange() (timecode.Frames, timecode.Frames) {
	trackEnd := s.duration.ToFrames(s.frameRate)
	if len(s.chapters) == 0 {
		return 0, trackEnd
	}
	start := s.chapters[s.exportSettings.StartChapterIndex].StartFrame
	end, ok := s.chapters.EndFrame(s.exportSettings.EndChapterIndex)
	if !ok {
		end = trackEnd
	}
	return start, end
}

// StartExport stops any live playback, spawns the encoder, and switches the
// session into the frame-locked rendering mode. Spawn failures leave the
// previous mode untouched. outputPath is the destination video file chosen
// by the user.
func (s *Session) StartExport(ctx context.Context, outputPath string) error {
	if s.Exporting() {
		return errors.New("player: export already in progress")
	}

	startFrame, endFrame := s.resolveExportRange()
	job, err := s.startEncoder(ctx, encoder.Settings{
		Binary:       s.encoderSettings.Binary,
		Width:        s.width,
		Height:       s.height,
		FrameRate:    s.frameRate,
		AudioPath:    s.audioPath,
		AudioOffset:  startFrame.ToSeconds(s.frameRate),
		AudioBitrate: s.encoderSettings.AudioBitrate,
		VideoCodec:   s.encoderSettings.VideoCodec,
		OutputPath:   outputPath,
	})
	if err != nil {
		return fmt.Errorf("start encoder: %w", err)
	}

	if m, ok := s.mode.(*playingMode); ok {
		if stopErr := m.handle.Stop(); stopErr != nil {
			s.logger.Warn("stop playback for export", slog.Any("error", stopErr))
		}
	}

	historyID := s.recordExportStart(ctx, outputPath, startFrame, endFrame)

	s.mode = &renderingMode{
		startFrame:   startFrame,
		endFrame:     endFrame,
		currentFrame: startFrame,
		readback:     make([]byte, s.width*s.height*4),
		job:          job,
		historyID:    historyID,
	}
	if err := s.presenter.SetPresentMode(PresentImmediate); err != nil {
		return fmt.Errorf("set immediate presentation: %w", err)
	}

	s.logger.Info("export started",
		slog.String(logging.FieldOutput, outputPath),
		slog.Int64("start_frame", int64(startFrame)),
		slog.Int64("end_frame", int64(endFrame)))
	return nil
}

// CancelExport aborts an in-progress export. The encoder keeps whatever it
// already received, so the output holds the frames written so far. A no-op
// when nothing is exporting.
func (s *Session) CancelExport() error {
	m, ok := s.mode.(*renderingMode)
	if !ok {
		return nil
	}
	s.logger.Info("export canceled", slog.Int64(logging.FieldFrame, int64(m.currentFrame)))
	return s.finishExport(m, renders.StatusCanceled, nil)
}

// ExportProgress reports frames written and the total frame count. ok is
// false outside of export.
func (s *Session) ExportProgress() (written, total int64, ok bool) {
	m, isRendering := s.mode.(*renderingMode)
	if !isRendering {
		return 0, 0, false
	}
	return int64(m.currentFrame - m.startFrame), int64(m.endFrame-m.startFrame) + 1, true
}

// exportTick runs the per-tick export step after the frame was drawn: read
// the canvas back, stream it to the encoder, and advance the frame counter.
// A write failure means the encoder died; the export is abandoned and the
// session drops back to Stopped, still playable.
func (s *Session) exportTick(m *renderingMode) error {
	if err := s.canvas.ReadPixels(m.readback); err != nil {
		return fmt.Errorf("read canvas: %w", err)
	}
	if err := m.job.WriteFrame(m.readback); err != nil {
		s.logger.Warn("encoder write failed, aborting export",
			slog.Int64(logging.FieldFrame, int64(m.currentFrame)),
			slog.Any("error", err))
		return s.finishExport(m, renders.StatusFailed, err)
	}
	m.currentFrame++
	if m.currentFrame > m.endFrame {
		s.logger.Info("export completed",
			slog.Int64("frames", int64(m.endFrame-m.startFrame)+1))
		return s.finishExport(m, renders.StatusCompleted, nil)
	}
	return nil
}

// finishExport is the single exit path out of rendering mode: it reaps the
// encoder, records the outcome, reloads a fresh track, and restores normal
// presentation. It runs identically for completion, cancellation, and write
// failure.
func (s *Session) finishExport(m *renderingMode, status renders.Status, cause error) error {
	closeErr := m.job.Close()
	if closeErr != nil && cause == nil && status != renders.StatusCanceled {
		s.logger.Warn("close encoder", slog.Any("error", closeErr))
	}
	s.recordExportFinish(m.historyID, status, cause)

	track, err := s.engine.Load(s.audioPath)
	if err != nil {
		// Still leave rendering mode; the encoder is already gone.
		s.mode = &stoppedMode{}
		return fmt.Errorf("reload audio %s: %w", s.audioPath, err)
	}
	s.mode = &stoppedMode{pending: track}
	if err := s.presenter.SetPresentMode(PresentVSync); err != nil {
		return fmt.Errorf("restore presentation: %w", err)
	}
	return nil
}

func (s *Session) recordExportStart(ctx context.Context, outputPath string, startFrame, endFrame timecode.Frames) string {
	if s.history == nil {
		return ""
	}
	job, err := s.history.Begin(ctx, outputPath, int64(startFrame), int64(endFrame))
	if err != nil {
		s.logger.Warn("record export start", slog.Any("error", err))
		return ""
	}
	s.logger.Debug("export recorded", slog.String(logging.FieldJobID, job.ID))
	return job.ID
}

func (s *Session) recordExportFinish(historyID string, status renders.Status, cause error) {
	if s.history == nil || historyID == "" {
		return
	}
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	if err := s.history.Finish(context.Background(), historyID, status, message); err != nil {
		s.logger.Warn("record export finish", slog.Any("error", err))
	}
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kinescope/internal/audio"
	"kinescope/internal/logging"
	"kinescope/internal/media/ffprobe"
	"kinescope/internal/media/wavinfo"
	"kinescope/internal/player"
	"kinescope/internal/timecode"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var outputPath string
	var frameRate int
	var width int
	var height int

	cmd := &cobra.Command{
		Use:   "render <audio-file>",
		Short: "Render an audio file to video with the built-in visualizer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if frameRate <= 0 {
				return fmt.Errorf("--fps must be positive, got %d", frameRate)
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("--width and --height must be positive, got %dx%d", width, height)
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}
			audioPath := args[0]

			if strings.TrimSpace(outputPath) == "" {
				base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
				outputPath = filepath.Join(cfg.Paths.OutputDir, base+".mp4")
			}

			visualizer := &barsVisualizer{
				audioPath: audioPath,
				frameRate: frameRate,
				width:     width,
				height:    height,
				peaks:     loadFramePeaks(logger, audioPath, frameRate),
			}

			engine := audio.NewClockEngine(func(path string) (timecode.Seconds, error) {
				result, err := ffprobe.Inspect(cmd.Context(), cfg.Encoder.FFprobeBinary, path)
				if err != nil {
					return 0, err
				}
				return timecode.Seconds(result.DurationSeconds()), nil
			})
			engine.SeekLatency = time.Duration(cfg.Playback.SeekLatencyMS) * time.Millisecond

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			session, err := player.NewSession(player.Options{
				Visualizer: visualizer,
				Engine:     engine,
				Canvas:     newMemoryCanvas(width, height),
				Logger:     logger,
				History:    store,
				Encoder: player.EncoderSettings{
					Binary:       cfg.Encoder.FFmpegBinary,
					AudioBitrate: cfg.Encoder.AudioBitrate,
					VideoCodec:   cfg.Encoder.VideoCodec,
				},
			})
			if err != nil {
				return err
			}

			if err := session.StartExport(cmd.Context(), outputPath); err != nil {
				return err
			}

			delta := time.Second / time.Duration(frameRate)
			lastReport := time.Now()
			for session.Exporting() {
				if err := cmd.Context().Err(); err != nil {
					if cancelErr := session.CancelExport(); cancelErr != nil {
						logger.Warn("cancel export", slog.Any("error", cancelErr))
					}
					return err
				}
				if err := session.Update(delta); err != nil {
					return err
				}
				if err := session.Draw(); err != nil {
					return err
				}
				if time.Since(lastReport) >= time.Second {
					if written, total, ok := session.ExportProgress(); ok {
						logger.Info("render progress",
							slog.Int64("written", written),
							slog.Int64("total", total))
					}
					lastReport = time.Now()
				}
			}

			logger.Info("render finished", slog.String(logging.FieldOutput, outputPath))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Destination video file (default: output dir)")
	cmd.Flags().IntVar(&frameRate, "fps", player.DefaultFrameRate, "Video frame rate")
	cmd.Flags().IntVar(&width, "width", 1920, "Video width in pixels")
	cmd.Flags().IntVar(&height, "height", 1080, "Video height in pixels")
	return cmd
}

// loadFramePeaks buckets WAV amplitude so the visualizer gets one peak per
// video frame. Non-WAV inputs and read failures just disable audio
// reactivity.
func loadFramePeaks(logger *slog.Logger, path string, frameRate int) []float64 {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return nil
	}
	info, err := wavinfo.Probe(path)
	if err != nil {
		logger.Warn("probe wav for peaks", slog.Any("error", err))
		return nil
	}
	samplesPerFrame := info.SampleRate / frameRate
	if samplesPerFrame < 1 {
		samplesPerFrame = 1
	}
	peaks, err := wavinfo.Peaks(path, samplesPerFrame)
	if err != nil {
		logger.Warn("compute wav peaks", slog.Any("error", err))
		return nil
	}
	return peaks
}

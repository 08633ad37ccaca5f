package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"kinescope/internal/media/ffprobe"
	"kinescope/internal/media/wavinfo"
	"kinescope/internal/player"
	"kinescope/internal/timecode"
)

// sparkLevels maps normalized peaks onto block characters for terminal
// waveform display.
var sparkLevels = []rune(" ▁▂▃▄▅▆▇█")

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var peakBuckets int

	cmd := &cobra.Command{
		Use:   "probe <audio-file>",
		Short: "Inspect an audio file's streams and duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := args[0]

			result, err := ffprobe.Inspect(cmd.Context(), cfg.Encoder.FFprobeBinary, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			duration := timecode.Seconds(result.DurationSeconds())
			fmt.Fprintf(out, "File:     %s\n", result.Format.Filename)
			fmt.Fprintf(out, "Format:   %s\n", result.Format.FormatName)
			fmt.Fprintf(out, "Duration: %s\n", player.FormatPosition(duration))

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				rows = append(rows, []string{
					fmt.Sprintf("%d", stream.Index),
					stream.CodecType,
					stream.CodecName,
					stream.SampleRate,
					fmt.Sprintf("%d", stream.Channels),
					stream.BitRate,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Type", "Codec", "Sample Rate", "Channels", "Bit Rate"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))

			if peakBuckets > 0 {
				if err := printPeaks(cmd, path, peakBuckets); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&peakBuckets, "peaks", 0, "Render a waveform sparkline with this many buckets (WAV only)")
	return cmd
}

func printPeaks(cmd *cobra.Command, path string, buckets int) error {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return fmt.Errorf("--peaks requires a WAV file, got %s", filepath.Ext(path))
	}
	info, err := wavinfo.Probe(path)
	if err != nil {
		return err
	}
	samplesPerBucket := int(info.Frames) / buckets
	if samplesPerBucket < 1 {
		samplesPerBucket = 1
	}
	peaks, err := wavinfo.Peaks(path, samplesPerBucket)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Waveform: %s\n", sparkline(peaks))
	return nil
}

func sparkline(peaks []float64) string {
	var b strings.Builder
	for _, peak := range peaks {
		if peak < 0 {
			peak = 0
		}
		if peak > 1 {
			peak = 1
		}
		b.WriteRune(sparkLevels[int(peak*float64(len(sparkLevels)-1)+0.5)])
	}
	return b.String()
}

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateEncoder(); err != nil {
		return err
	}
	if err := c.validatePlayback(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateEncoder() error {
	if strings.TrimSpace(c.Encoder.FFmpegBinary) == "" {
		return errors.New("encoder.ffmpeg_binary must be set")
	}
	if strings.TrimSpace(c.Encoder.FFprobeBinary) == "" {
		return errors.New("encoder.ffprobe_binary must be set")
	}
	if !strings.HasSuffix(c.Encoder.AudioBitrate, "k") {
		return fmt.Errorf("encoder.audio_bitrate %q must end in k (e.g. 320k)", c.Encoder.AudioBitrate)
	}
	if strings.TrimSpace(c.Encoder.VideoCodec) == "" {
		return errors.New("encoder.video_codec must be set")
	}
	return nil
}

func (c *Config) validatePlayback() error {
	if c.Playback.SeekLatencyMS <= 0 {
		return errors.New("playback.seek_latency_ms must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

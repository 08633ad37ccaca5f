package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kinescope/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantOutput := filepath.Join(tempHome, "videos", "kinescope")
	if cfg.Paths.OutputDir != wantOutput {
		t.Fatalf("unexpected output dir: got %q want %q", cfg.Paths.OutputDir, wantOutput)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "kinescope")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Encoder.FFmpegBinary != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.Encoder.FFmpegBinary)
	}
	if cfg.Encoder.AudioBitrate != "320k" {
		t.Fatalf("unexpected audio bitrate: %q", cfg.Encoder.AudioBitrate)
	}
	if cfg.Encoder.VideoCodec != "libx264" {
		t.Fatalf("unexpected video codec: %q", cfg.Encoder.VideoCodec)
	}
	if cfg.Playback.SeekLatencyMS != 50 {
		t.Fatalf("unexpected seek latency: %d", cfg.Playback.SeekLatencyMS)
	}
	if cfg.Logging.Format != "auto" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadReadsTOMLOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
output_dir = "~/renders"

[encoder]
video_codec = "libx265"
audio_bitrate = "256k"

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Encoder.VideoCodec != "libx265" {
		t.Fatalf("video codec = %q, want libx265", cfg.Encoder.VideoCodec)
	}
	if cfg.Encoder.AudioBitrate != "256k" {
		t.Fatalf("audio bitrate = %q, want 256k", cfg.Encoder.AudioBitrate)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if !strings.HasPrefix(cfg.Paths.OutputDir, "/") {
		t.Fatalf("output dir not expanded: %q", cfg.Paths.OutputDir)
	}
}

func TestLoadHonoursEnvironmentBinaryOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("KINESCOPE_FFMPEG", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("KINESCOPE_FFPROBE", "/opt/ffmpeg/bin/ffprobe")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Encoder.FFmpegBinary != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg binary = %q", cfg.Encoder.FFmpegBinary)
	}
	if cfg.Encoder.FFprobeBinary != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("ffprobe binary = %q", cfg.Encoder.FFprobeBinary)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := []struct {
		name    string
		content string
	}{
		{"bad bitrate", "[encoder]\naudio_bitrate = \"lots\"\n"},
		{"bad level", "[logging]\nlevel = \"chatty\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestLoadNormalizesUnknownLogFormat(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Format != "auto" {
		t.Fatalf("format = %q, want auto", cfg.Logging.Format)
	}
}

func TestEnsureDirectories(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.OutputDir, cfg.Paths.StateDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("directory %q missing: %v", dir, err)
		}
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	// Paths get expanded on load, so only the non-path sections are stable.
	if cfg.Encoder != config.Default().Encoder {
		t.Fatalf("sample encoder = %+v, want defaults", cfg.Encoder)
	}
	if cfg.Logging != config.Default().Logging {
		t.Fatalf("sample logging = %+v, want defaults", cfg.Logging)
	}
}

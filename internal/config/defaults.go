package config

const (
	defaultOutputDir     = "~/videos/kinescope"
	defaultStateDir      = "~/.local/share/kinescope"
	defaultLogDir        = "~/.local/share/kinescope/logs"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultAudioBitrate  = "320k"
	defaultVideoCodec    = "libx264"
	defaultSeekLatencyMS = 50
	defaultLogFormat     = "auto"
	defaultLogLevel      = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Encoder: Encoder{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			AudioBitrate:  defaultAudioBitrate,
			VideoCodec:    defaultVideoCodec,
		},
		Playback: Playback{
			SeekLatencyMS: defaultSeekLatencyMS,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

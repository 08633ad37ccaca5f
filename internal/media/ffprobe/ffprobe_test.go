package ffprobe_test

import (
	"testing"

	"kinescope/internal/media/ffprobe"
)

const sampleOutput = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "flac",
      "codec_type": "audio",
      "duration": "245.500000",
      "sample_rate": "48000",
      "channels": 2,
      "bit_rate": "901234"
    },
    {
      "index": 1,
      "codec_name": "mjpeg",
      "codec_type": "video",
      "duration": "245.500000"
    }
  ],
  "format": {
    "filename": "track.flac",
    "duration": "245.523000",
    "bit_rate": "912345",
    "format_name": "flac"
  }
}`

func TestParse(t *testing.T) {
	result, err := ffprobe.Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := len(result.Streams); got != 2 {
		t.Fatalf("streams = %d, want 2", got)
	}
	if result.Format.FormatName != "flac" {
		t.Fatalf("format name = %q, want flac", result.Format.FormatName)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := ffprobe.Parse([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed output")
	}
}

func TestDurationSecondsPrefersFormat(t *testing.T) {
	result, err := ffprobe.Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := result.DurationSeconds(); got != 245.523 {
		t.Fatalf("duration = %v, want 245.523", got)
	}
}

func TestDurationSecondsFallsBackToAudioStream(t *testing.T) {
	result := ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", Duration: "300.0"},
			{CodecType: "audio", Duration: "120.5"},
			{CodecType: "audio", Duration: "240.25"},
		},
	}
	if got := result.DurationSeconds(); got != 240.25 {
		t.Fatalf("duration = %v, want 240.25", got)
	}
}

func TestAudioStreamHelpers(t *testing.T) {
	result, err := ffprobe.Parse([]byte(sampleOutput))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	audio := result.AudioStreams()
	if len(audio) != 1 {
		t.Fatalf("audio streams = %d, want 1", len(audio))
	}
	if audio[0].Channels != 2 {
		t.Fatalf("channels = %d, want 2", audio[0].Channels)
	}
	if got := result.SampleRate(); got != 48000 {
		t.Fatalf("sample rate = %d, want 48000", got)
	}
}

func TestSampleRateZeroWithoutAudio(t *testing.T) {
	var result ffprobe.Result
	if got := result.SampleRate(); got != 0 {
		t.Fatalf("sample rate = %d, want 0", got)
	}
}

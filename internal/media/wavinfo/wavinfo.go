package wavinfo

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const pcmFormat = 1

// Info summarizes a WAV file's audio parameters.
type Info struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int64
}

// DurationSeconds returns the play time implied by the frame count.
func (i Info) DurationSeconds() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.Frames) / float64(i.SampleRate)
}

// Probe decodes the file header and counts audio frames.
func Probe(path string) (Info, error) {
	info := Info{}
	err := scan(path, func(format *audio.Format, bitDepth int, frame []int) {
		info.SampleRate = int(format.SampleRate)
		info.Channels = int(format.NumChannels)
		info.BitDepth = bitDepth
		info.Frames++
	})
	if err != nil {
		return Info{}, err
	}
	return info, nil
}

// Peaks splits the file into buckets of samplesPerBucket frames and returns
// the maximum absolute amplitude of each, normalized to [0, 1]. The final
// bucket may cover fewer frames.
func Peaks(path string, samplesPerBucket int) ([]float64, error) {
	if samplesPerBucket < 1 {
		return nil, errors.New("wavinfo peaks: samples per bucket must be at least 1")
	}

	var peaks []float64
	var bucketMax int32
	inBucket := 0
	flush := func() {
		peaks = append(peaks, float64(bucketMax)/32767.0)
		bucketMax = 0
		inBucket = 0
	}

	err := scan(path, func(format *audio.Format, bitDepth int, frame []int) {
		for _, sample := range frame {
			value := int32(sample)
			if value < 0 {
				value = -value
			}
			if value > bucketMax {
				bucketMax = value
			}
		}
		inBucket++
		if inBucket >= samplesPerBucket {
			flush()
		}
	})
	if err != nil {
		return nil, err
	}
	if inBucket > 0 {
		flush()
	}
	return peaks, nil
}

// scan streams 16-bit PCM frames to the callback. The frame slice is reused
// between calls.
func scan(path string, frame func(format *audio.Format, bitDepth int, samples []int)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("wavinfo: open %s: %w", path, err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return fmt.Errorf("wavinfo: %s is not a valid WAV file", path)
	}
	if decoder.WavAudioFormat != pcmFormat || decoder.BitDepth != 16 {
		return fmt.Errorf("wavinfo: %s: only 16-bit PCM is supported (got %d-bit, format %d)", path, decoder.BitDepth, decoder.WavAudioFormat)
	}
	format := decoder.Format()
	if format == nil || format.NumChannels == 0 {
		return fmt.Errorf("wavinfo: %s: missing format metadata", path)
	}
	channels := int(format.NumChannels)

	chunkSize := 8192
	if chunkSize%channels != 0 {
		chunkSize = (chunkSize/channels + 1) * channels
	}
	buffer := &audio.IntBuffer{Format: format, Data: make([]int, chunkSize)}

	for {
		read, err := decoder.PCMBuffer(buffer)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("wavinfo: read %s: %w", path, err)
		}
		if read == 0 {
			return nil
		}
		samples := buffer.Data[:read]
		for i := 0; i+channels <= len(samples); i += channels {
			frame(format, int(decoder.BitDepth), samples[i:i+channels])
		}
	}
}

// Package timecode converts between frame indices and playback seconds at a
// fixed frame rate.
//
// Frames index the discrete visual timeline; Seconds measure the continuous
// audio clock. Conversions are the only bridge between the two, so every call
// site that mixes audio positions with frame numbers goes through this
// package with the session's frame rate.
package timecode

import "math"

// Frames is an index into the visual timeline at a fixed frame rate.
type Frames int64

// Seconds is a continuous playback-time position.
type Seconds float64

// frameSnapEpsilon absorbs float rounding introduced by ToSeconds so the
// Seconds -> Frames round trip lands on the original frame instead of the
// next one. It is relative to the scaled value: the rounding error of
// f/rate*rate grows with the magnitude of f, so an absolute tolerance would
// stop catching it past a few million frames.
const frameSnapEpsilon = 1e-12

// ToSeconds returns the playback time of the frame at the given rate.
func (f Frames) ToSeconds(frameRate int) Seconds {
	return Seconds(float64(f) / float64(frameRate))
}

// ToFrames returns the smallest frame index whose playback time is at or
// past s: the ceiling of s * frameRate. Scrub positions between two frame
// times therefore resolve to the later frame.
func (s Seconds) ToFrames(frameRate int) Frames {
	scaled := float64(s) * float64(frameRate)
	tolerance := frameSnapEpsilon * math.Max(1, math.Abs(scaled))
	if nearest := math.Round(scaled); math.Abs(scaled-nearest) <= tolerance {
		return Frames(nearest)
	}
	return Frames(math.Ceil(scaled))
}

// Abs returns the magnitude of s.
func (s Seconds) Abs() Seconds {
	return Seconds(math.Abs(float64(s)))
}

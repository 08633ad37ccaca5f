package player

import (
	"kinescope/internal/audio"
	"kinescope/internal/timecode"
)

// mode is the session's tagged playback state. Exactly one variant is live
// at a time and it exclusively owns the resources it holds; transitions
// assign a fresh variant to Session.mode rather than mutating fields across
// variants.
type mode interface {
	name() string
}

// stoppedMode holds a loaded-but-unplayed track and the position playback
// will start from. Playing consumes the pending track.
type stoppedMode struct {
	pending       audio.Track
	startPosition timecode.Seconds
}

func (*stoppedMode) name() string { return "stopped" }

// playingMode holds the live audio handle. inProgressSeek carries a seek
// target until the engine's reported position catches up with it.
type playingMode struct {
	handle         audio.Handle
	inProgressSeek *timecode.Seconds
}

func (*playingMode) name() string { return "playing" }

// renderingMode owns the export pass: the frame range, the authoritative
// frame counter, the single reusable pixel readback buffer, and the encoder
// job. The buffer is allocated once and never grows mid-export.
type renderingMode struct {
	startFrame   timecode.Frames
	endFrame     timecode.Frames
	currentFrame timecode.Frames
	readback     []byte
	job          EncoderJob
	historyID    string
}

func (*renderingMode) name() string { return "rendering" }

package player

import (
	"fmt"
	"math"

	"kinescope/internal/timecode"
)

// Key identifies the keyboard shortcuts the session understands. Hosts map
// their toolkit's scancodes onto these.
type Key int

const (
	// KeySpace toggles play/pause.
	KeySpace Key = iota
	// KeyComma goes to the previous chapter.
	KeyComma
	// KeyPeriod goes to the next chapter.
	KeyPeriod
)

// HandleKey applies a keyboard shortcut. The host must not forward shortcut
// keys during export; transport controls are unsupported while rendering.
func (s *Session) HandleKey(key Key) error {
	switch key {
	case KeySpace:
		return s.TogglePlayback()
	case KeyComma:
		return s.GoToPreviousChapter()
	case KeyPeriod:
		return s.GoToNextChapter()
	default:
		return nil
	}
}

// PlayPauseLabel returns the label for the transport toggle button.
func (s *Session) PlayPauseLabel() string {
	if s.Playing() {
		return "Pause"
	}
	return "Play"
}

// SeekBounds returns the slider range for the seek bar: the current chapter
// span, or the whole track when there are no chapters.
func (s *Session) SeekBounds() (min, max timecode.Seconds) {
	if len(s.chapters) == 0 {
		return 0, s.duration
	}
	index := s.currentChapterIndex()
	min = s.chapters[index].StartFrame.ToSeconds(s.frameRate)
	if end, ok := s.chapters.EndFrame(index); ok {
		return min, end.ToSeconds(s.frameRate)
	}
	return min, s.duration
}

// ChapterNames lists chapter names for the UI selector.
func (s *Session) ChapterNames() []string {
	names := make([]string, len(s.chapters))
	for i, chapter := range s.chapters {
		names[i] = chapter.Name
	}
	return names
}

// FormatPosition renders a position as h:mm:ss.ss for the seek bar.
func FormatPosition(position timecode.Seconds) string {
	total := float64(position)
	if total < 0 || math.IsNaN(total) {
		total = 0
	}
	seconds := math.Mod(total, 60)
	minutes := math.Mod(math.Floor(total/60), 60)
	hours := math.Floor(total / 3600)
	return fmt.Sprintf("%d:%02d:%05.2f", int(hours), int(minutes), seconds)
}

// Package chapters models the named markers that divide a track into
// playable and exportable sub-ranges.
//
// A List is ordered by start frame. Most tracks carry a handful of chapters
// at most, so lookups scan linearly from the end rather than maintaining an
// index.
package chapters

import (
	"fmt"

	"kinescope/internal/timecode"
)

// Chapter marks a named position on the visual timeline.
type Chapter struct {
	Name       string
	StartFrame timecode.Frames
}

// List is an ordered sequence of chapters with strictly increasing start
// frames. The first chapter starts at frame 0 so every frame on the timeline
// belongs to some chapter.
type List []Chapter

// Validate reports the first ordering violation in the list. An empty list
// is valid.
func (l List) Validate() error {
	for i, chapter := range l {
		if i == 0 {
			if chapter.StartFrame != 0 {
				return fmt.Errorf("chapter %q: first chapter must start at frame 0, got %d", chapter.Name, chapter.StartFrame)
			}
			continue
		}
		if chapter.StartFrame <= l[i-1].StartFrame {
			return fmt.Errorf("chapter %q: start frame %d does not follow %q at %d",
				chapter.Name, chapter.StartFrame, l[i-1].Name, l[i-1].StartFrame)
		}
	}
	return nil
}

// IndexAtFrame returns the index of the last chapter whose start frame is at
// or before the given frame. The second return is false when the list is
// empty or the frame precedes the first chapter.
func (l List) IndexAtFrame(frame timecode.Frames) (int, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].StartFrame <= frame {
			return i, true
		}
	}
	return 0, false
}

// AtFrame returns the chapter containing the given frame.
func (l List) AtFrame(frame timecode.Frames) (Chapter, bool) {
	index, ok := l.IndexAtFrame(frame)
	if !ok {
		return Chapter{}, false
	}
	return l[index], true
}

// EndFrame returns the last frame of the chapter at the given index. The
// second return is false for the final chapter, whose end is the track's
// last frame and is only known to the caller.
func (l List) EndFrame(index int) (timecode.Frames, bool) {
	if index+1 >= len(l) {
		return 0, false
	}
	return l[index+1].StartFrame - 1, true
}

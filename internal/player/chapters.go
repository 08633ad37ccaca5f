package player

import (
	"fmt"

	"kinescope/internal/timecode"
)

// chapterRestartThreshold mirrors media-player back-button ergonomics: more
// than this far into a chapter, "previous" restarts the current chapter
// instead of jumping back.
const chapterRestartThreshold = timecode.Seconds(2.0)

// GoToChapter seeks to the start of the chapter at the given index. A no-op
// when the track has no chapters.
func (s *Session) GoToChapter(index int) error {
	if len(s.chapters) == 0 {
		return nil
	}
	if index < 0 || index >= len(s.chapters) {
		return fmt.Errorf("player: chapter %d out of range", index)
	}
	return s.Seek(s.chapters[index].StartFrame.ToSeconds(s.frameRate))
}

// CurrentChapterIndex reports the chapter containing the current frame, or
// -1 when the track has no chapters.
func (s *Session) CurrentChapterIndex() int {
	if len(s.chapters) == 0 {
		return -1
	}
	return s.currentChapterIndex()
}

// currentChapterIndex requires non-empty chapters. The session enforces the
// starts-at-zero invariant at construction, so every frame has a chapter.
func (s *Session) currentChapterIndex() int {
	index, ok := s.chapters.IndexAtFrame(s.CurrentFrame())
	if !ok {
		panic("player: no current chapter")
	}
	return index
}

// GoToNextChapter seeks to the next chapter's start. A no-op without
// chapters or when already in the last chapter.
func (s *Session) GoToNextChapter() error {
	if len(s.chapters) == 0 {
		return nil
	}
	current := s.currentChapterIndex()
	if current >= len(s.chapters)-1 {
		return nil
	}
	return s.GoToChapter(current + 1)
}

// GoToPreviousChapter restarts the current chapter when playback is more
// than chapterRestartThreshold past its start (or when already in the first
// chapter); otherwise it jumps to the previous chapter. A no-op without
// chapters.
func (s *Session) GoToPreviousChapter() error {
	if len(s.chapters) == 0 {
		return nil
	}
	current := s.currentChapterIndex()
	chapterStart := s.chapters[current].StartFrame.ToSeconds(s.frameRate)
	elapsed := s.Position() - chapterStart
	if current == 0 || elapsed > chapterRestartThreshold {
		return s.Seek(chapterStart)
	}
	return s.GoToChapter(current - 1)
}

package player_test

import (
	"testing"

	"kinescope/internal/chapters"
)

// navChapters puts chapter starts at 0s, 2.5s, and 5s on a 60fps timeline.
func navChapters() chapters.List {
	return chapters.List{
		{Name: "A", StartFrame: 0},
		{Name: "B", StartFrame: 150},
		{Name: "C", StartFrame: 300},
	}
}

func navRig(t *testing.T) *testRig {
	t.Helper()
	rig := newRig(t, withChapters(navChapters()), withDuration(10))
	if err := rig.session.PlayOrResume(); err != nil {
		t.Fatalf("play: %v", err)
	}
	return rig
}

func TestGoToChapterSeeksToChapterStart(t *testing.T) {
	rig := navRig(t)
	if err := rig.session.GoToChapter(1); err != nil {
		t.Fatalf("GoToChapter: %v", err)
	}
	if got := rig.session.Position(); got != 2.5 {
		t.Fatalf("position = %v, want 2.5", got)
	}
	if rig.session.CurrentChapterIndex() != 1 {
		t.Fatalf("current chapter = %d, want 1", rig.session.CurrentChapterIndex())
	}
}

func TestGoToChapterOutOfRange(t *testing.T) {
	rig := navRig(t)
	if err := rig.session.GoToChapter(7); err == nil {
		t.Fatal("expected error for out-of-range chapter")
	}
}

func TestGoToNextChapter(t *testing.T) {
	rig := navRig(t)
	rig.handle().position = 1.0 // inside chapter A
	if err := rig.session.GoToNextChapter(); err != nil {
		t.Fatalf("GoToNextChapter: %v", err)
	}
	if got := rig.session.Position(); got != 2.5 {
		t.Fatalf("position = %v, want chapter B start 2.5", got)
	}
}

func TestGoToNextChapterAtLastChapterIsNoOp(t *testing.T) {
	rig := navRig(t)
	rig.handle().position = 5.5 // inside chapter C, the last one
	if err := rig.session.GoToNextChapter(); err != nil {
		t.Fatalf("GoToNextChapter: %v", err)
	}
	if len(rig.handle().seeks) != 0 {
		t.Fatalf("seeks = %v, want none", rig.handle().seeks)
	}
	if got := rig.session.Position(); got != 5.5 {
		t.Fatalf("position = %v, want unchanged 5.5", got)
	}
}

func TestGoToPreviousChapterNearStartJumpsBack(t *testing.T) {
	rig := navRig(t)
	rig.handle().position = 3.0 // 0.5s into chapter B
	if err := rig.session.GoToPreviousChapter(); err != nil {
		t.Fatalf("GoToPreviousChapter: %v", err)
	}
	if got := rig.session.Position(); got != 0 {
		t.Fatalf("position = %v, want chapter A start 0", got)
	}
}

func TestGoToPreviousChapterDeepIntoChapterRestartsIt(t *testing.T) {
	rig := navRig(t)
	rig.handle().position = 4.8 // 2.3s into chapter B
	if err := rig.session.GoToPreviousChapter(); err != nil {
		t.Fatalf("GoToPreviousChapter: %v", err)
	}
	if got := rig.session.Position(); got != 2.5 {
		t.Fatalf("position = %v, want chapter B restart 2.5", got)
	}
}

func TestGoToPreviousChapterAtFirstChapterRestartsIt(t *testing.T) {
	rig := navRig(t)
	rig.handle().position = 1.0 // inside chapter A
	if err := rig.session.GoToPreviousChapter(); err != nil {
		t.Fatalf("GoToPreviousChapter: %v", err)
	}
	if got := rig.session.Position(); got != 0 {
		t.Fatalf("position = %v, want chapter A start 0", got)
	}
}

func TestChapterNavigationWithoutChaptersIsNoOp(t *testing.T) {
	rig := newRig(t, withDuration(10))
	if err := rig.session.GoToNextChapter(); err != nil {
		t.Fatalf("GoToNextChapter: %v", err)
	}
	if err := rig.session.GoToPreviousChapter(); err != nil {
		t.Fatalf("GoToPreviousChapter: %v", err)
	}
	if err := rig.session.GoToChapter(3); err != nil {
		t.Fatalf("GoToChapter: %v", err)
	}
	if rig.session.CurrentChapterIndex() != -1 {
		t.Fatalf("CurrentChapterIndex = %d, want -1", rig.session.CurrentChapterIndex())
	}
}

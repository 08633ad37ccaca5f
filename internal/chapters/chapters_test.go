package chapters_test

import (
	"testing"

	"kinescope/internal/chapters"
	"kinescope/internal/timecode"
)

func threeChapters() chapters.List {
	return chapters.List{
		{Name: "A", StartFrame: 0},
		{Name: "B", StartFrame: 150},
		{Name: "C", StartFrame: 300},
	}
}

func TestIndexAtFrame(t *testing.T) {
	list := threeChapters()

	cases := []struct {
		frame timecode.Frames
		want  int
	}{
		{0, 0},
		{149, 0},
		{150, 1},
		{200, 1},
		{300, 2},
		{100000, 2},
	}
	for _, tc := range cases {
		got, ok := list.IndexAtFrame(tc.frame)
		if !ok {
			t.Fatalf("IndexAtFrame(%d): no chapter", tc.frame)
		}
		if got != tc.want {
			t.Fatalf("IndexAtFrame(%d) = %d, want %d", tc.frame, got, tc.want)
		}
	}
}

func TestIndexAtFrameEmpty(t *testing.T) {
	var list chapters.List
	if _, ok := list.IndexAtFrame(0); ok {
		t.Fatal("expected no chapter for empty list")
	}
}

func TestIndexAtFrameBeforeFirstChapter(t *testing.T) {
	list := chapters.List{{Name: "late", StartFrame: 100}}
	if _, ok := list.IndexAtFrame(50); ok {
		t.Fatal("expected no chapter before the first start frame")
	}
}

func TestEndFrame(t *testing.T) {
	list := threeChapters()

	end, ok := list.EndFrame(1)
	if !ok {
		t.Fatal("expected an end frame for a non-final chapter")
	}
	if end != 299 {
		t.Fatalf("EndFrame(1) = %d, want 299", end)
	}

	if _, ok := list.EndFrame(2); ok {
		t.Fatal("final chapter should have no end frame")
	}
}

func TestAtFrame(t *testing.T) {
	list := threeChapters()
	chapter, ok := list.AtFrame(200)
	if !ok {
		t.Fatal("expected a chapter at frame 200")
	}
	if chapter.Name != "B" {
		t.Fatalf("AtFrame(200) = %q, want B", chapter.Name)
	}
}

func TestValidate(t *testing.T) {
	if err := threeChapters().Validate(); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}
	if err := (chapters.List{}).Validate(); err != nil {
		t.Fatalf("empty list rejected: %v", err)
	}
	if err := (chapters.List{{Name: "A", StartFrame: 10}}).Validate(); err == nil {
		t.Fatal("expected error for first chapter not at frame 0")
	}
	bad := chapters.List{
		{Name: "A", StartFrame: 0},
		{Name: "B", StartFrame: 100},
		{Name: "C", StartFrame: 100},
	}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for non-increasing start frames")
	}
}

package main

import (
	"testing"

	"kinescope/internal/timecode"
)

func TestMemoryCanvasReadback(t *testing.T) {
	canvas := newMemoryCanvas(4, 2)
	canvas.set(0, 0, 1, 2, 3)
	canvas.set(3, 1, 9, 8, 7)

	dst := make([]byte, 4*2*4)
	if err := canvas.ReadPixels(dst); err != nil {
		t.Fatalf("ReadPixels: %v", err)
	}
	if dst[0] != 1 || dst[1] != 2 || dst[2] != 3 || dst[3] != 0xff {
		t.Fatalf("pixel (0,0) = %v", dst[:4])
	}
	last := dst[len(dst)-4:]
	if last[0] != 9 || last[1] != 8 || last[2] != 7 {
		t.Fatalf("pixel (3,1) = %v", last)
	}
}

func TestMemoryCanvasRejectsWrongBufferSize(t *testing.T) {
	canvas := newMemoryCanvas(4, 2)
	if err := canvas.ReadPixels(make([]byte, 3)); err == nil {
		t.Fatal("expected error for undersized buffer")
	}
}

func TestBarsVisualizerFillsBarFromPeaks(t *testing.T) {
	visualizer := &barsVisualizer{
		audioPath: "track.wav",
		frameRate: 60,
		width:     8,
		height:    8,
		peaks:     []float64{0, 1.0},
	}
	canvas := newMemoryCanvas(8, 8)

	if err := visualizer.Draw(canvas, timecode.Frames(1)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// A full-scale peak lights every row, including the top one.
	top := canvas.pixels[:4]
	if top[1] != 255 {
		t.Fatalf("top row pixel = %v, want full green channel", top)
	}

	if err := visualizer.Draw(canvas, timecode.Frames(0)); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	// A zero peak leaves the top row as background.
	top = canvas.pixels[:4]
	if top[0] != 0x10 || top[1] != 0x10 || top[2] != 0x18 {
		t.Fatalf("top row pixel = %v, want background", top)
	}
}

func TestSparkline(t *testing.T) {
	got := sparkline([]float64{0, 0.5, 1})
	want := " ▄█"
	if got != want {
		t.Fatalf("sparkline = %q, want %q", got, want)
	}
}

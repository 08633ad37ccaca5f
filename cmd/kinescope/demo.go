package main

import (
	"fmt"
	"math"

	"kinescope/internal/chapters"
	"kinescope/internal/player"
	"kinescope/internal/timecode"
)

// memoryCanvas is a plain RGBA pixel buffer satisfying player.Canvas. The
// headless renderer draws into it and the export loop reads it back.
type memoryCanvas struct {
	width  int
	height int
	pixels []byte
}

func newMemoryCanvas(width, height int) *memoryCanvas {
	return &memoryCanvas{
		width:  width,
		height: height,
		pixels: make([]byte, width*height*4),
	}
}

func (c *memoryCanvas) Resolution() (int, int) { return c.width, c.height }

func (c *memoryCanvas) ReadPixels(dst []byte) error {
	if len(dst) != len(c.pixels) {
		return fmt.Errorf("canvas readback: buffer is %d bytes, want %d", len(dst), len(c.pixels))
	}
	copy(dst, c.pixels)
	return nil
}

func (c *memoryCanvas) set(x, y int, r, g, b byte) {
	i := (y*c.width + x) * 4
	c.pixels[i] = r
	c.pixels[i+1] = g
	c.pixels[i+2] = b
	c.pixels[i+3] = 0xff
}

// barsVisualizer is the built-in renderer for headless exports: a column of
// bars whose height follows the audio's per-frame peak amplitude. Without
// peak data it falls back to a slow sine sweep so any input still produces
// motion.
type barsVisualizer struct {
	audioPath string
	frameRate int
	width     int
	height    int
	peaks     []float64
	marks     chapters.List
}

func (v *barsVisualizer) AudioPath() string           { return v.audioPath }
func (v *barsVisualizer) FrameRate() int              { return v.frameRate }
func (v *barsVisualizer) VideoResolution() (int, int) { return v.width, v.height }
func (v *barsVisualizer) Chapters() chapters.List     { return v.marks }

func (v *barsVisualizer) Draw(target player.Canvas, frame timecode.Frames) error {
	canvas, ok := target.(*memoryCanvas)
	if !ok {
		return fmt.Errorf("bars visualizer needs a memory canvas, got %T", target)
	}

	level := v.level(frame)
	barTop := v.height - int(level*float64(v.height))
	hue := byte(frame % 256)

	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			if y >= barTop {
				canvas.set(x, y, hue, byte(255*level), 0x40)
			} else {
				canvas.set(x, y, 0x10, 0x10, 0x18)
			}
		}
	}
	return nil
}

func (v *barsVisualizer) level(frame timecode.Frames) float64 {
	if int(frame) >= 0 && int(frame) < len(v.peaks) {
		return v.peaks[frame]
	}
	seconds := float64(frame.ToSeconds(v.frameRate))
	return 0.5 + 0.5*math.Sin(seconds*2*math.Pi*0.25)
}

// Package player owns the playback and export state machine that keeps a
// continuous audio clock and a discrete frame-indexed visual timeline in
// lock step.
//
// A Session is driven by the host's tick loop: input commands, then
// Update, then Draw, once per host frame. Each tick the session computes a
// current frame from whichever clock is authoritative for its mode, and
// dispatches the visualizer's draw only when that frame changed. Interactive
// playback derives the frame from the audio engine's reported position
// (reconciled against in-flight seeks with a fixed tolerance); export mode
// owns the frame counter outright and advances it exactly once per tick,
// independent of wall-clock time.
//
// The mode value is a tagged union: stopped, playing (which covers paused),
// or rendering, each exclusively owning the resources that are only valid in
// that state.
// Transitions replace the whole value, never mutate a field across variants,
// so code can never act on an audio handle or encoder process that a
// previous transition already tore down.
package player

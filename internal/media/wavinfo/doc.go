// Package wavinfo reads WAV files directly for the facts ffprobe cannot
// cheaply provide: exact frame counts and amplitude peaks for waveform
// display. It only understands 16-bit PCM, which covers the files the
// renderer consumes.
package wavinfo

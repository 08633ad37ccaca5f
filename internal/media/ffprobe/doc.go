// Package ffprobe shells out to ffprobe and parses its JSON output.
//
// The player only needs container duration and basic audio stream facts, so
// Result keeps a narrow view of the probe. Inspect runs the binary; Parse
// decodes captured output and exists mainly so tests need no ffprobe on
// PATH.
package ffprobe

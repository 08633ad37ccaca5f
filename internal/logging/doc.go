// Package logging builds the slog loggers used across kinescope.
//
// It offers a compact console handler for interactive terminals and a JSON
// handler for machine consumption, selected explicitly or by detecting a
// TTY. Field constants keep structured keys consistent between the player,
// the encoder, and the CLI.
package logging

// Package config loads, normalizes, and validates kinescope configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// KINESCOPE_FFMPEG. The Config type centralizes every knob the player and CLI
// need, so output and state directories and encoder settings are discovered in
// one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config

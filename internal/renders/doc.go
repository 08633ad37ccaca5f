// Package renders persists the history of export jobs in SQLite.
//
// Each export pass gets one row: the output path, the frame span, and a
// status that moves from running to completed, failed, or canceled. The
// store is bookkeeping, not coordination; the player works fine without it
// and records are advisory. The database lives in the configured state
// directory and the schema is created on open.
package renders

package testsupport

import (
	"testing"

	"kinescope/internal/config"
	"kinescope/internal/renders"
)

// MustOpenStore opens a renders.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *renders.Store {
	t.Helper()

	store, err := renders.Open(cfg.Paths.StateDir)
	if err != nil {
		t.Fatalf("renders.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

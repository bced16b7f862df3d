package testsupport

import (
	"testing"

	"ytharvest/internal/config"
	"ytharvest/internal/warehouse"
)

// MustOpenStore opens the warehouse store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *warehouse.Store {
	t.Helper()

	store, err := warehouse.Open(cfg)
	if err != nil {
		t.Fatalf("open warehouse store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close warehouse store: %v", err)
		}
	})
	return store
}

package testsupport

import (
	"testing"

	"sigview/internal/catalog"
	"sigview/internal/config"
)

// MustOpenCatalog opens the catalog for cfg and closes it when the test ends.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

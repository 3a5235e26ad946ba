package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/portalsearch/internal/testutil"
)

// createTestStore opens a fresh store in a temp dir with predictable IDs.
func createTestStore(t *testing.T) (*Store, *testutil.SequentialIDGenerator) {
	t.Helper()
	ids := testutil.NewSequentialIDGenerator("saved")
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(ids))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, ids
}

func savedSearch(name, query string) SavedSearch {
	return SavedSearch{
		Name:        name,
		Query:       query,
		Profile:     "portal",
		Fingerprint: "fp-" + name,
	}
}

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tsconv/internal/history"
	"github.com/zjrosen/tsconv/internal/infrastructure/sqlite"
)

// NewTestDB opens a fresh database in a temp directory, closed on cleanup.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestStore returns a history store over a fresh database.
func NewTestStore(t *testing.T, opts ...history.Option) *history.Store {
	t.Helper()
	store := history.NewStore(NewTestDB(t).KV(), opts...)
	t.Cleanup(store.Close)
	return store
}

// NewMemoryStore returns a history store over in-process storage.
func NewMemoryStore(t *testing.T, opts ...history.Option) (*history.Store, *history.MemoryStorage) {
	t.Helper()
	storage := history.NewMemoryStorage()
	store := history.NewStore(storage, opts...)
	t.Cleanup(store.Close)
	return store, storage
}

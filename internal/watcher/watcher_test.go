package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/tsconv/internal/pubsub"
	"github.com/zjrosen/tsconv/internal/watcher"
)

func startWatcher(t *testing.T, dbPath string) <-chan pubsub.Event[watcher.Event] {
	t.Helper()
	w, err := watcher.New(watcher.Config{DBPath: dbPath, DebounceDur: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := w.Subscribe(ctx)
	require.NoError(t, w.Start())
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("test"), 0o644))

	events := startWatcher(t, dbPath)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte(fmt.Sprintf("test%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case ev := <-events:
		require.Equal(t, pubsub.UpdatedEvent, ev.Type)
		require.Equal(t, dbPath, ev.Payload.Path)
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-events:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")
	otherPath := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o644))
	require.NoError(t, os.WriteFile(otherPath, []byte("initial"), 0o644))

	events := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(otherPath, []byte("other content"), 0o644))

	select {
	case <-events:
		t.Fatal("should not notify for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_WatchesWALFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("db"), 0o644))

	events := startWatcher(t, dbPath)

	require.NoError(t, os.WriteFile(dbPath+"-wal", []byte("wal data"), 0o644))

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("expected notification for WAL file")
	}
}

func TestWatcher_StopClosesSubscriptions(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	w, err := watcher.New(watcher.DefaultConfig(dbPath))
	require.NoError(t, err)
	require.NoError(t, w.Start())

	events := w.Subscribe(context.Background())
	require.NoError(t, w.Stop())

	select {
	case _, ok := <-events:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription not closed on stop")
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "missing", "history.db")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/history.db")
	require.Equal(t, "/tmp/history.db", cfg.DBPath)
	require.Equal(t, 100*time.Millisecond, cfg.DebounceDur)
}

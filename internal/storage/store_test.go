package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	require.NoError(t, s.Set("b", "2"))
	require.NoError(t, s.Set("a", "1"))
	v, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Delete("a"))
	_, ok = s.Get("a")
	assert.False(t, ok)
}

func TestFileStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)

	first, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("nl_operator_mode", "true"))
	require.NoError(t, first.Set("nl_total_visits", "4"))

	second, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok := second.Get("nl_total_visits")
	assert.True(t, ok)
	assert.Equal(t, "4", v)
	assert.Equal(t, []string{"nl_operator_mode", "nl_total_visits"}, second.Keys())

	require.NoError(t, second.Delete("nl_operator_mode"))
	third, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok = third.Get("nl_operator_mode")
	assert.False(t, ok)
}

func TestFileStore_MalformedReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, s.Keys())

	// A write repairs the document.
	require.NoError(t, s.Set("k", "v"))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(raw))
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenFileStore(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Set("k", "v"))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DefaultFileName, entries[0].Name())
}

func TestFileStore_WatchPicksUpExternalWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s, err := OpenFileStore(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Watch(ctx))
	}()

	assert.Eventually(t, func() bool {
		// Rewrite on every poll: the watcher may not be registered yet.
		if err := os.WriteFile(path, []byte(`{"nl_total_visits":"9"}`), 0o644); err != nil {
			return false
		}
		v, _ := s.Get("nl_total_visits")
		return v == "9"
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	wg.Wait()
}

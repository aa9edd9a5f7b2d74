package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	rel, err := store.Save("departments-j1.csv", []byte("ID,Name\n1,Admissions\n"))
	require.NoError(t, err)
	assert.Equal(t, "departments-j1.csv", rel)

	file, err := store.Open(rel)
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Admissions")
}

func TestLocalStorageCleanupOlderThan(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("stale.csv", []byte("old"))
	require.NoError(t, err)
	stalePath := filepath.Join(dir, "stale.csv")
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stalePath, past, past))

	_, err = store.Save("fresh.csv", []byte("new"))
	require.NoError(t, err)

	deleted, err := store.CleanupOlderThan(24 * time.Hour)

	require.NoError(t, err)
	assert.Equal(t, []string{"stale.csv"}, deleted)
	fresh, err := store.Open("fresh.csv")
	require.NoError(t, err)
	fresh.Close()
	_, err = store.Open("stale.csv")
	assert.Error(t, err)
}

package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSDocumentStorePath(t *testing.T) {
	docs := NewFSDocumentStore("/journal")
	assert.Equal(t, filepath.Join("/journal", "2026-02-14.md"), docs.Path("2026-02-14"))
}

func TestFSDocumentStoreReadAbsent(t *testing.T) {
	docs := NewFSDocumentStore(t.TempDir())

	snap, err := docs.Read("2026-02-14")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFSDocumentStoreWriteRead(t *testing.T) {
	docs := NewFSDocumentStore(t.TempDir())
	mtime := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	text := "# 2026-02-14\n## Notes\n- hello\n"

	require.NoError(t, docs.Write("2026-02-14", text, mtime))

	snap, err := docs.Read("2026-02-14")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, text, snap.Text)
	assert.True(t, TimestampsEqual(mtime, snap.ModTime, DefaultTimestampTolerance))
}

func TestFSDocumentStoreWriteReplaces(t *testing.T) {
	docs := NewFSDocumentStore(t.TempDir())
	mtime := time.Now()

	require.NoError(t, docs.Write("2026-02-14", "first\n", mtime))
	require.NoError(t, docs.Write("2026-02-14", "second\n", mtime))

	snap, err := docs.Read("2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, "second\n", snap.Text)
}

func TestFSDocumentStoreSetModTime(t *testing.T) {
	docs := NewFSDocumentStore(t.TempDir())
	require.NoError(t, docs.Write("2026-02-14", "text\n", time.Now()))

	mtime := time.Date(2026, 2, 14, 12, 34, 56, 0, time.UTC)
	require.NoError(t, docs.SetModTime("2026-02-14", mtime))

	info, err := os.Stat(docs.Path("2026-02-14"))
	require.NoError(t, err)
	assert.True(t, TimestampsEqual(mtime, info.ModTime(), DefaultTimestampTolerance))
}

func TestFSDocumentStoreSetModTimeAbsent(t *testing.T) {
	docs := NewFSDocumentStore(t.TempDir())
	assert.Error(t, docs.SetModTime("2026-02-14", time.Now()))
}

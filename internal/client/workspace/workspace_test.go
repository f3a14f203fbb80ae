package workspace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_Layout(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root, "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, root, ws.Root)
	assert.Equal(t, filepath.Join(root, "journal"), ws.JournalDir)
	assert.Equal(t, filepath.Join(root, ".data", "state.db"), ws.StateDBPath)
	assert.Equal(t, filepath.Join(root, ".data", "sections.yaml"), ws.SectionsFile)
	assert.Equal(t, filepath.Join(root, "journal", "2026-08-29.md"), ws.EntryPath("2026-08-29"))
}

func TestWorkspace_SetupCreatesDirs(t *testing.T) {
	root := t.TempDir()
	ws, err := NewWorkspace(root, "alice@example.com")
	require.NoError(t, err)
	defer ws.Unlock()

	require.NoError(t, ws.Setup())
	assert.DirExists(t, ws.JournalDir)
	assert.DirExists(t, ws.MetadataDir)
	assert.DirExists(t, ws.LogsDir)
}

func TestWorkspace_LockExcludesSecondInstance(t *testing.T) {
	root := t.TempDir()

	first, err := NewWorkspace(root, "alice@example.com")
	require.NoError(t, err)
	require.NoError(t, first.Lock())
	defer first.Unlock()

	second, err := NewWorkspace(root, "alice@example.com")
	require.NoError(t, err)
	err = second.Lock()
	assert.ErrorIs(t, err, ErrWorkspaceLocked)
}

func TestWorkspace_UnlockWithoutLockIsNoop(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "alice@example.com")
	require.NoError(t, err)
	assert.NoError(t, ws.Unlock())
}

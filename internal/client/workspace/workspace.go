package workspace

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/daybook-hq/daybook/internal/utils"
	"github.com/gofrs/flock"
)

const (
	journalDir   = "journal"
	logsDir      = "logs"
	metadataDir  = ".data"
	lockFile     = "daybook.lock"
	stateDBFile  = "state.db"
	sectionsFile = "sections.yaml"
)

var (
	ErrWorkspaceLocked = errors.New("workspace locked by another process")
)

// Workspace is the local directory layout for a daybook data dir:
// journal entries, logs, and the .data metadata dir holding the sync state
// database and the flock that keeps runs single-instance.
type Workspace struct {
	Owner        string
	Root         string
	JournalDir   string
	MetadataDir  string
	LogsDir      string
	StateDBPath  string
	SectionsFile string

	flock *flock.Flock
}

func NewWorkspace(rootDir string, owner string) (*Workspace, error) {
	root, err := utils.ResolvePath(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
	}

	metaDir := filepath.Join(root, metadataDir)

	return &Workspace{
		Owner:        owner,
		Root:         root,
		JournalDir:   filepath.Join(root, journalDir),
		LogsDir:      filepath.Join(root, logsDir),
		MetadataDir:  metaDir,
		StateDBPath:  filepath.Join(metaDir, stateDBFile),
		SectionsFile: filepath.Join(metaDir, sectionsFile),
		flock:        flock.New(filepath.Join(metaDir, lockFile)),
	}, nil
}

// Lock takes the workspace flock so a second daybook process cannot run a
// concurrent sync against the same data dir.
func (w *Workspace) Lock() error {
	if err := utils.EnsureDir(w.MetadataDir); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.MetadataDir, err)
	}

	locked, err := w.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to lock workspace: %w", err)
	}
	if !locked {
		return ErrWorkspaceLocked
	}

	return nil
}

func (w *Workspace) Unlock() error {
	// if this process hasn't locked the workspace, don't delete the lock file
	if !w.flock.Locked() {
		return nil
	}

	if err := w.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock workspace: %w", err)
	}

	return os.Remove(w.flock.Path())
}

// Setup locks the workspace and creates the directory layout.
func (w *Workspace) Setup() error {
	if err := w.Lock(); err != nil {
		return err
	}

	slog.Info("workspace", "root", w.Root)

	dirs := []string{w.JournalDir, w.MetadataDir, w.LogsDir}
	for _, dir := range dirs {
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// EntryPath returns the absolute path of a journal entry by date key.
func (w *Workspace) EntryPath(key string) string {
	return filepath.Join(w.JournalDir, key+".md")
}

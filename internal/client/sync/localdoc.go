package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/daybook-hq/daybook/internal/utils"
)

// LocalSnapshot is a local document's text plus filesystem mtime.
type LocalSnapshot struct {
	Text    string
	ModTime time.Time
}

// DocumentStore reads and writes the local copy of a document by key.
// Read returns (nil, nil) when no local copy exists yet.
type DocumentStore interface {
	Read(key string) (*LocalSnapshot, error)
	Write(key string, text string, mtime time.Time) error
	SetModTime(key string, mtime time.Time) error
	Path(key string) string
}

// FSDocumentStore keeps one markdown file per key under a root directory.
type FSDocumentStore struct {
	root string
}

func NewFSDocumentStore(root string) *FSDocumentStore {
	return &FSDocumentStore{root: root}
}

func (f *FSDocumentStore) Path(key string) string {
	return filepath.Join(f.root, key+".md")
}

func (f *FSDocumentStore) Read(key string) (*LocalSnapshot, error) {
	path := f.Path(key)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &LocalSnapshot{Text: string(data), ModTime: info.ModTime()}, nil
}

// Write replaces the document atomically and aligns its mtime so later
// comparisons against server timestamps are meaningful.
func (f *FSDocumentStore) Write(key string, text string, mtime time.Time) error {
	path := f.Path(key)
	if err := utils.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.SetModTime(key, mtime)
}

func (f *FSDocumentStore) SetModTime(key string, mtime time.Time) error {
	path := f.Path(key)
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		return fmt.Errorf("set mtime %s: %w", path, err)
	}
	return nil
}

var _ DocumentStore = (*FSDocumentStore)(nil)

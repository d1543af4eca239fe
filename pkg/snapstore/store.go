// Package snapstore provides the default filesystem-backed snapshot
// store. A snapshot is a single file replaced atomically: writes go to
// a partial artifact first and only a successful Commit renames it
// over the final path, so readers never observe a torn snapshot.
package snapstore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/logger"
)

const (
	snapSuffix    = ".snap"
	partialSuffix = ".partial"
)

// FileStore keeps one snapshot file per machine under a directory.
// It is safe for concurrent use, though the machine serializes writes
// itself.
type FileStore struct {
	mu     sync.Mutex
	logger *slog.Logger
	dir    string
	path   string
	closed bool
}

var _ api.SnapshotStore = (*FileStore)(nil)

func NewFileStore(dir, name string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &FileStore{
		logger: log,
		dir:    dir,
		path:   filepath.Join(dir, name+snapSuffix),
	}, nil
}

// Open returns a reader over the last committed snapshot, or
// api.ErrNoSnapshot when none has ever been committed.
func (fs *FileStore) Open() (io.ReadCloser, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return nil, api.ErrStopped
	}

	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, api.ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to open snapshot %s: %w", fs.path, err)
	}
	return f, nil
}

// StartWrite begins a new snapshot write into a partial artifact.
// The previous committed snapshot stays intact until Commit.
func (fs *FileStore) StartWrite() (api.SnapshotWriter, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if fs.closed {
		return nil, api.ErrStopped
	}

	partial := fs.path + partialSuffix
	f, err := os.OpenFile(partial, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create partial snapshot %s: %w", partial, err)
	}
	return &fileWriter{store: fs, file: f, partial: partial}, nil
}

// RemovePartials deletes leftover partial artifacts from writes that
// never committed, e.g. after a crash mid-snapshot.
func (fs *FileStore) RemovePartials() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	matches, err := filepath.Glob(fs.path + partialSuffix + "*")
	if err != nil {
		return fmt.Errorf("failed to list partial snapshots: %w", err)
	}
	for _, p := range matches {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove partial snapshot %s: %w", p, err)
		}
		fs.logger.Debug("removed partial snapshot", slog.String("path", p))
	}
	return nil
}

func (fs *FileStore) Path() string {
	return fs.path
}

func (fs *FileStore) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.closed = true
	return nil
}

// fileWriter writes a partial artifact and promotes it on Commit with
// fsync followed by an atomic rename.
type fileWriter struct {
	store   *FileStore
	file    *os.File
	partial string
	done    bool
}

func (w *fileWriter) Write(p []byte) (int, error) {
	return w.file.Write(p)
}

func (w *fileWriter) Commit() error {
	if w.done {
		return fmt.Errorf("snapshot write already finished")
	}
	w.done = true

	if err := w.file.Sync(); err != nil {
		w.file.Close()
		os.Remove(w.partial)
		return fmt.Errorf("failed to fsync partial snapshot: %w", err)
	}
	if err := w.file.Close(); err != nil {
		os.Remove(w.partial)
		return fmt.Errorf("failed to close partial snapshot: %w", err)
	}
	if err := os.Rename(w.partial, w.store.path); err != nil {
		os.Remove(w.partial)
		return fmt.Errorf("failed to promote snapshot: %w", err)
	}

	// The rename itself must survive a crash too.
	if err := syncDir(w.store.dir); err != nil {
		w.store.logger.Warn("failed to fsync snapshot directory", logger.ErrAttr(err))
	}
	return nil
}

func (w *fileWriter) Abort() error {
	if w.done {
		return nil
	}
	w.done = true
	w.file.Close()
	if err := os.Remove(w.partial); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove aborted snapshot: %w", err)
	}
	return nil
}

func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	return d.Sync()
}

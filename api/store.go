package api

import "io"

// SnapshotWriter is a single in-flight snapshot write. Exactly one of
// Commit or Abort must be called.
type SnapshotWriter interface {
	io.Writer

	// Commit makes the written snapshot durable and visible to
	// readers atomically. A reader never observes a partial write.
	Commit() error

	// Abort discards the write and its on-disk artifacts.
	Abort() error
}

// SnapshotStore owns the snapshot artifact of one machine. Readers and
// writers never overlap in time: the machine's snapshot lock and the
// store's temp-then-commit discipline jointly prevent it.
type SnapshotStore interface {
	// Open returns a reader over the latest committed snapshot, or
	// ErrNoSnapshot when none exists yet.
	Open() (io.ReadCloser, error)

	// StartWrite begins a new snapshot write.
	StartWrite() (SnapshotWriter, error)

	// RemovePartials deletes incomplete write artifacts left over by
	// a prior crash. Called after a successful read.
	RemovePartials() error

	// Path identifies the snapshot artifact for diagnostics.
	Path() string

	// Close releases any underlying resources.
	Close() error
}

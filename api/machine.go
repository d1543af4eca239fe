package api

import (
	"context"
	"time"
)

// Machine is the public interface of a snapshot-backed state machine
// bound to one engine instance and one snapshot store.
type Machine interface {
	// Start runs hydration exactly once: it loads the latest usable
	// snapshot, restores the derived state, establishes the apply
	// cursor and launches the apply loop. It must be called after the
	// engine has started.
	Start() error

	// Stop shuts the machine down. It waits for any in-flight
	// background snapshot write to drain before releasing the store.
	Stop() error

	// Sync reports whether the locally applied state reflects
	// everything committed under the current leadership term. It
	// returns false when this replica is not the leader, when the term
	// changes mid-wait, or when timeout expires first. Concurrent
	// callers are coalesced into a single in-flight attempt.
	Sync(timeout time.Duration) bool

	// MakeSnapshot takes a snapshot of the current derived state and
	// persists it. At most one snapshot write is ever in flight.
	MakeSnapshot(ctx context.Context) error

	// MakeSnapshotInBackground schedules MakeSnapshot on a background
	// goroutine tracked by the machine's lifetime, so Stop waits for
	// it instead of abandoning it mid-write.
	MakeSnapshotInBackground()

	// EnsureSnapshotExists returns once a snapshot covering at least
	// targetOffset is durable, taking one if needed. Calling it with a
	// target at or below the last snapshot offset is a no-op.
	EnsureSnapshotExists(ctx context.Context, targetOffset int64) error

	// InSyncOffset returns the highest offset applied into the derived
	// state so far, or NoOffset before anything was applied.
	InSyncOffset() int64

	// LastSnapshotOffset returns the highest offset known to be
	// durably covered by a snapshot, or NoOffset.
	LastSnapshotOffset() int64

	// MaxCollectibleOffset reports the highest offset the log layer
	// may evict. Entries at or below it are reflected in a durable
	// snapshot and no longer needed for replay.
	MaxCollectibleOffset() int64
}

package api

// StateMachine represents the application state derived from the log.
// It defines how committed entries mutate the state, how the state is
// snapshotted and restored, and how a log truncated from below is
// recovered from.
//
// All methods are invoked from the machine's apply context and never
// concurrently with each other, so implementations can read their own
// state without locking against these calls.
type StateMachine interface {
	// Apply folds one committed entry into the derived state. Apply
	// must be deterministic; an error here means the replica can no
	// longer be trusted and is treated as fatal.
	Apply(e *Entry) error

	// TakeSnapshot serializes the current derived state. The returned
	// snapshot's header must report the offset the payload reflects.
	TakeSnapshot() (*Snapshot, error)

	// ApplySnapshot restores the derived state from a snapshot
	// payload. It is invoked at most once, during startup hydration.
	ApplySnapshot(h SnapshotHeader, data []byte) error

	// HandleEviction is invoked when the log has been truncated past
	// the apply cursor and replay can no longer reconstruct the state.
	// The implementation must reset its derived state; replay resumes
	// at newStartOffset.
	HandleEviction(newStartOffset int64) error
}

// CollectibleLimiter is an optional extension of StateMachine. A state
// machine that still needs old log entries (e.g. to serve them to lagging
// consumers) can hold back log eviction by reporting a limit; entries
// above it must not be collected. When not implemented, eviction is
// limited only by the last snapshot offset.
type CollectibleLimiter interface {
	MaxCollectibleOffset() int64
}

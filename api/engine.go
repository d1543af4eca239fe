package api

import "context"

// NoOffset marks an offset-typed field as unset. Valid log offsets are
// non-negative and monotonically increasing.
const NoOffset int64 = -1

// Entry is a single committed log entry handed to the state machine.
type Entry struct {
	Offset int64
	Term   int64
	Cmd    []byte
}

// ApplyMessage is what the engine delivers on its apply channel. Either
// EntryValid or EvictionValid is set, never both. An eviction message
// tells the consumer that the log has been truncated from below and
// entries before LogStartOffset are gone for good.
type ApplyMessage struct {
	EntryValid bool
	Entry      *Entry

	EvictionValid  bool
	LogStartOffset int64
}

// Engine is the boundary to the log-replication engine the state
// machine is bound to. The machine reads the engine's cursors and
// waits on them; it never drives replication itself.
type Engine interface {
	// Term returns the current leadership term known to this replica.
	Term() int64

	// IsLeader reports whether this replica believes it is the leader.
	IsLeader() bool

	// CommittedOffset returns the highest offset known to be durable
	// across a quorum of replicas.
	CommittedOffset() int64

	// DirtyOffset returns the highest offset appended locally,
	// possibly not yet committed.
	DirtyOffset() int64

	// StartOffset returns the floor of the log's retained range, or
	// NoOffset for an empty log.
	StartOffset() int64

	// WaitCommitted blocks until the committed offset reaches at least
	// offset, the term advances past term, or ctx expires.
	WaitCommitted(ctx context.Context, offset, term int64) error

	// RefreshCommitIndex asks the engine to re-derive its committed
	// offset. Needed when local knowledge may be stale, e.g. on a
	// single-node cluster right after becoming leader.
	RefreshCommitIndex(ctx context.Context) error

	// ApplyChannel returns the channel the engine delivers committed
	// entries and eviction notices on, in log order. The channel is
	// closed when the engine stops.
	ApplyChannel() <-chan *ApplyMessage

	// Propose submits a new command for replication.
	//
	// Returns the offset assigned to the command, the current term,
	// and whether this replica accepted it (false when not leader).
	Propose(cmd []byte) (offset int64, term int64, accepted bool)
}

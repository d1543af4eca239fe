/*
Package api defines the core public interfaces of the stm-core library.
It provides the contracts between the snapshot-backed state machine and
the components it is wired to.

# Mandatory User Implementations

To use this library, you must provide implementations for the following
interfaces:

  - StateMachine: your application's derived state. The library
    guarantees that committed log entries are applied to it exactly
    once and in order, and asks it to produce and restore snapshots.

  - Engine: the log-replication (consensus) engine the machine sits on.
    The library never implements consensus itself; it only consumes the
    engine's offsets, term, leadership flag and wait primitives. A
    single-node, in-process implementation is provided in the
    `github.com/shrtyk/stm-core/pkg/localengine` package.

  - SnapshotStore: durable storage for the snapshot artifact. A
    filesystem-based implementation with atomic temp-then-rename writes
    is provided in the `github.com/shrtyk/stm-core/pkg/snapstore`
    package.
*/
package api

import "errors"

var (
	// ErrNoSnapshot is returned by SnapshotStore.Open when no snapshot
	// artifact exists yet.
	ErrNoSnapshot = errors.New("stm: no snapshot available")

	// ErrNotLeader is returned by control surfaces when an operation
	// requires the local engine to be the leader.
	ErrNotLeader = errors.New("stm: not a leader")

	// ErrStopped is returned when an operation is attempted on a
	// machine that has been shut down.
	ErrStopped = errors.New("stm: machine stopped")
)

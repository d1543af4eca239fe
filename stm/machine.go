package stm

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/shrtyk/stm-core/api"
)

// Machine is a snapshot-backed state machine layered on top of a log
// replication engine. It derives application state by replaying
// committed entries, bounds replay cost with durable snapshots, and
// answers leader-consistency queries through Sync.
type Machine struct {
	wg sync.WaitGroup
	// mu protects the apply cursors, the sync protocol state and the
	// waiter lists.
	mu sync.Mutex
	// snapMu serializes all snapshot-producing operations so at most
	// one snapshot write is ever in flight.
	snapMu sync.Mutex

	name   string
	engine api.Engine
	store  api.SnapshotStore
	sm     api.StateMachine
	cfg    *api.MachineConfig
	logger *slog.Logger

	// hydrated is closed exactly once at the end of startup hydration.
	// Every snapshot operation awaits it so no snapshot read or write
	// races with the initial load.
	hydrated chan struct{}

	// nextOffset is the next log offset to apply; insyncOffset is the
	// highest offset already applied into the derived state.
	nextOffset   int64
	insyncOffset int64

	// insyncTerm is the leadership term under which Sync last
	// validated freshness.
	insyncTerm int64

	lastSnapshotOffset int64

	catchingUp  bool
	syncWaiters []chan bool

	offsetWaiters []offsetWaiter

	monitoring MonitoringServer
	metrics    *machineMetrics

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
}

var _ api.Machine = (*Machine)(nil)

type offsetWaiter struct {
	offset int64
	done   chan struct{}
}

// Start performs startup hydration and launches the apply loop.
//
// Hydration loads the most recent snapshot; a read or decode failure
// here is fatal, since the process cannot safely continue with state
// it cannot trust. A missing or legacy-format snapshot leaves the
// derived state empty and replay rebuilds it from the log's start
// offset. A snapshot that predates the log's retained range is skipped
// with a warning; the eviction path of the apply loop resolves it.
func (m *Machine) Start() error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return fmt.Errorf("machine %q already started", m.name)
	}
	m.started = true
	m.mu.Unlock()

	snap, err := m.loadSnapshot()
	if err != nil {
		m.fatalInvariant("hydration", fmt.Errorf("can't load snapshot from %q: %w", m.store.Path(), err))
	}

	if snap != nil {
		next := snap.Header.Offset + 1
		if next >= m.engine.StartOffset() {
			if aerr := m.sm.ApplySnapshot(snap.Header, snap.Data); aerr != nil {
				m.fatalInvariant("hydration", fmt.Errorf("can't restore state from snapshot %q: %w", m.store.Path(), aerr))
			}
			m.logger.Info("hydrated from snapshot",
				slog.Int64("covered_offset", snap.Header.Offset))
		} else {
			// An out-of-date replica re-joining after peers already
			// evicted the log past this snapshot. The apply loop
			// detects the stale cursor and resolves it through the
			// eviction path.
			m.logger.Warn("skipping snapshot since it's out of sync with the log",
				slog.String("path", m.store.Path()),
				slog.Int64("covered_offset", snap.Header.Offset),
				slog.Int64("log_start_offset", m.engine.StartOffset()))
		}
		// lastSnapshotOffset stays unset here; only the snapshot
		// scheduler advances it, over state this process has applied.
		m.setNext(next)
	} else if off := m.engine.StartOffset(); off >= 0 {
		m.setNext(off)
	}
	close(m.hydrated)

	if m.monitoring != nil {
		if err := m.monitoring.Start(); err != nil {
			return fmt.Errorf("failed to start monitoring HTTP server: %w", err)
		}
	}

	m.wg.Add(1)
	go m.applier()
	if m.cfg.Snapshots.Interval > 0 {
		m.wg.Add(1)
		go m.snapshotter()
	}

	return nil
}

// Stop cancels the machine context, waits for the apply loop and any
// in-flight background snapshot to drain, then releases the store. An
// aborted snapshot write could leave inconsistent on-disk state, so
// draining is not optional.
func (m *Machine) Stop() error {
	var err error
	if m.monitoring != nil {
		sctx, scancel := context.WithTimeout(context.Background(), m.cfg.Timings.ShutdownTimeout)
		defer scancel()
		err = m.monitoring.Stop(sctx)
	}

	m.cancel()
	m.wg.Wait()
	if cerr := m.store.Close(); cerr != nil {
		if err != nil {
			return fmt.Errorf("%v; failed to close snapshot store: %w", err, cerr)
		}
		return fmt.Errorf("failed to close snapshot store: %w", cerr)
	}
	return err
}

// setNext establishes the apply cursor.
func (m *Machine) setNext(next int64) {
	m.mu.Lock()
	m.nextOffset = next
	m.insyncOffset = next - 1
	m.mu.Unlock()
}

// applier consumes committed entries and eviction notices from the
// engine and folds them into the derived state. It is the only writer
// of the derived state after hydration, so state reads for
// snapshotting never interleave with a half-applied entry.
func (m *Machine) applier() {
	defer func() {
		m.logger.Info("applier exiting")
		m.wg.Done()
	}()
	m.logger.Info("applier starting")

	ch := m.engine.ApplyChannel()
	for {
		select {
		case <-m.ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.EvictionValid {
				m.handleEviction(msg.LogStartOffset)
				continue
			}
			if msg.EntryValid {
				m.applyEntry(msg.Entry)
			}
		}
	}
}

func (m *Machine) applyEntry(e *api.Entry) {
	m.mu.Lock()
	next := m.nextOffset
	m.mu.Unlock()

	// Entries below the cursor are already reflected, either via the
	// hydrated snapshot or a previous pass. Applying them again would
	// double-apply.
	if next != api.NoOffset && e.Offset < next {
		m.logger.Debug("skipping already applied entry", slog.Int64("offset", e.Offset))
		return
	}

	if err := m.sm.Apply(e); err != nil {
		m.fatalInvariant("apply", fmt.Errorf("state machine failed to apply offset %d: %w", e.Offset, err))
	}

	m.mu.Lock()
	m.insyncOffset = e.Offset
	m.nextOffset = e.Offset + 1
	m.notifyOffsetWaitersLocked()
	m.mu.Unlock()

	m.metrics.entriesApplied.Inc()
}

// handleEviction resolves the case where the log has been truncated
// past the apply cursor: replay can no longer reconstruct the derived
// state, so the application resets it and the cursor fast-forwards to
// the new retained floor.
func (m *Machine) handleEviction(newStart int64) {
	m.mu.Lock()
	next := m.nextOffset
	m.mu.Unlock()

	if next >= newStart {
		return
	}

	m.logger.Warn("log evicted past apply cursor, resetting derived state",
		slog.Int64("next_offset", next),
		slog.Int64("log_start_offset", newStart))

	if err := m.sm.HandleEviction(newStart); err != nil {
		m.fatalInvariant("eviction", fmt.Errorf("state machine failed to handle eviction to offset %d: %w", newStart, err))
	}
	m.setNext(newStart)

	m.mu.Lock()
	m.notifyOffsetWaitersLocked()
	m.mu.Unlock()
}

// waitApplied blocks until the in-sync offset reaches at least offset
// or ctx expires.
func (m *Machine) waitApplied(ctx context.Context, offset int64) error {
	m.mu.Lock()
	if m.insyncOffset >= offset {
		m.mu.Unlock()
		return nil
	}
	w := offsetWaiter{offset: offset, done: make(chan struct{})}
	m.offsetWaiters = append(m.offsetWaiters, w)
	m.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// notifyOffsetWaitersLocked resolves every waiter whose offset the
// apply cursor has reached.
//
// Assumes the lock is held when called.
func (m *Machine) notifyOffsetWaitersLocked() {
	remaining := m.offsetWaiters[:0]
	for _, w := range m.offsetWaiters {
		if w.offset <= m.insyncOffset {
			close(w.done)
			continue
		}
		remaining = append(remaining, w)
	}
	m.offsetWaiters = remaining
}

// awaitHydrated blocks until startup hydration has resolved, so no
// snapshot operation can race with the initial load.
func (m *Machine) awaitHydrated(ctx context.Context) error {
	select {
	case <-m.hydrated:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InSyncOffset returns the highest offset applied into the derived
// state so far.
func (m *Machine) InSyncOffset() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insyncOffset
}

// InSyncTerm returns the leadership term under which Sync last
// validated freshness.
func (m *Machine) InSyncTerm() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insyncTerm
}

// LastSnapshotOffset returns the highest offset durably covered by a
// snapshot.
func (m *Machine) LastSnapshotOffset() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSnapshotOffset
}

// MaxCollectibleOffset reports the highest offset the state machine
// permits the log layer to evict, unbounded unless the application
// implements the CollectibleLimiter extension. The log layer combines
// it with LastSnapshotOffset when making retention decisions.
func (m *Machine) MaxCollectibleOffset() int64 {
	if cl, ok := m.sm.(api.CollectibleLimiter); ok {
		return cl.MaxCollectibleOffset()
	}
	return math.MaxInt64
}

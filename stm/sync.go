package stm

import (
	"context"
	"log/slog"
	"time"

	"github.com/shrtyk/stm-core/pkg/logger"
)

// Sync reports whether the locally applied state reflects everything
// committed under the current leadership term.
//
// A successful sync is memoized per term: while the term does not
// change, later calls return immediately without re-issuing the
// commit-index or apply waits. Concurrent callers while an attempt is
// in flight are coalesced: they register as waiters and resolve with
// that attempt's outcome, or with their own timeout, whichever comes
// first. At most one attempt runs at a time.
func (m *Machine) Sync(timeout time.Duration) bool {
	term := m.engine.Term()
	if !m.engine.IsLeader() {
		return false
	}

	m.mu.Lock()
	if m.insyncTerm == term {
		m.mu.Unlock()
		return true
	}
	if m.catchingUp {
		w := make(chan bool, 1)
		m.syncWaiters = append(m.syncWaiters, w)
		m.mu.Unlock()

		deadline := time.NewTimer(timeout)
		defer deadline.Stop()
		select {
		case synced := <-w:
			return synced
		case <-deadline.C:
			return false
		case <-m.ctx.Done():
			return false
		}
	}
	m.catchingUp = true
	m.mu.Unlock()

	dirty := m.engine.DirtyOffset()

	ctx, cancel := context.WithTimeout(m.ctx, timeout)
	defer cancel()

	var synced bool
	// The local committed-offset view may be stale (notably on a
	// single-node cluster right after election); ask the engine to
	// re-derive it before waiting on it.
	if err := m.engine.RefreshCommitIndex(ctx); err != nil {
		m.logger.Error("sync error: failed to refresh commit index", logger.ErrAttr(err))
	} else {
		synced = m.doSync(ctx, dirty, term)
	}

	if synced {
		m.metrics.syncSuccesses.Inc()
	} else {
		m.metrics.syncFailures.Inc()
	}

	m.mu.Lock()
	m.catchingUp = false
	for _, w := range m.syncWaiters {
		w <- synced
	}
	m.syncWaiters = m.syncWaiters[:0]
	m.mu.Unlock()

	return synced
}

// doSync waits for offset to commit under term, then for the local
// apply cursor to catch up, and records the term as in-sync on
// success. All failures here are transient: the caller may retry.
func (m *Machine) doSync(ctx context.Context, offset, term int64) bool {
	committed := m.engine.CommittedOffset()

	if offset > committed {
		if err := m.engine.WaitCommitted(ctx, offset, term); err != nil {
			m.logger.Error("sync error: wait for committed offset failed",
				logger.ErrAttr(err),
				slog.Int64("offset", offset),
				slog.Int64("committed", committed))
			return false
		}
	} else {
		offset = committed
	}

	if m.engine.Term() != term {
		// Leadership moved on mid-wait; freshness under the captured
		// term can no longer be guaranteed.
		return false
	}

	if err := m.waitApplied(ctx, offset); err != nil {
		m.logger.Error("sync error: wait for applied offset failed",
			logger.ErrAttr(err),
			slog.Int64("offset", offset),
			slog.Int64("committed", committed))
		return false
	}

	m.mu.Lock()
	m.insyncTerm = term
	m.mu.Unlock()
	return true
}

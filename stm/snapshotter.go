package stm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shrtyk/stm-core/internal/retry"
	"github.com/shrtyk/stm-core/pkg/logger"
)

// MakeSnapshot takes a snapshot of the current derived state and
// persists it. All snapshot-producing operations run under snapMu, so
// writes never overlap and lastSnapshotOffset only moves forward.
func (m *Machine) MakeSnapshot(ctx context.Context) error {
	m.snapMu.Lock()
	defer m.snapMu.Unlock()

	if err := m.awaitHydrated(ctx); err != nil {
		return err
	}
	return m.doMakeSnapshot()
}

// doMakeSnapshot must be called with snapMu held, after hydration.
func (m *Machine) doMakeSnapshot() error {
	snap, err := m.sm.TakeSnapshot()
	if err != nil {
		m.metrics.snapshotFailures.Inc()
		return fmt.Errorf("take snapshot: %w", err)
	}

	if err := m.persistSnapshot(snap); err != nil {
		m.metrics.snapshotFailures.Inc()
		return err
	}

	m.mu.Lock()
	m.lastSnapshotOffset = max(m.lastSnapshotOffset, snap.Header.Offset)
	m.mu.Unlock()

	m.metrics.snapshotsTaken.Inc()
	m.logger.Info("snapshot persisted", slog.Int64("covered_offset", snap.Header.Offset))
	return nil
}

// EnsureSnapshotExists returns once a durable snapshot covers at least
// targetOffset. A target already covered is a no-op, so repeated calls
// with the same or a smaller target issue at most one write.
func (m *Machine) EnsureSnapshotExists(ctx context.Context, targetOffset int64) error {
	m.snapMu.Lock()
	defer m.snapMu.Unlock()

	if err := m.awaitHydrated(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	last := m.lastSnapshotOffset
	m.mu.Unlock()
	if targetOffset <= last {
		return nil
	}

	if err := m.waitApplied(ctx, targetOffset); err != nil {
		return fmt.Errorf("wait for offset %d: %w", targetOffset, err)
	}

	if insync := m.InSyncOffset(); targetOffset > insync {
		m.fatalInvariant("ensure snapshot",
			fmt.Errorf("after waiting for target offset %d the in-sync offset %d should have matched it or bypassed", targetOffset, insync))
	}

	return m.doMakeSnapshot()
}

// MakeSnapshotInBackground schedules a snapshot on a goroutine tracked
// by the machine's WaitGroup, so Stop waits for the write to finish
// rather than abandon it mid-flight. Transient persistence failures
// are retried with backoff.
func (m *Machine) MakeSnapshotInBackground() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		err := retry.Do(m.ctx, func(ctx context.Context) error {
			return m.MakeSnapshot(ctx)
		})
		if err != nil {
			m.logger.Warn("background snapshot failed", logger.ErrAttr(err))
		}
	}()
}

// snapshotter is a background goroutine that periodically takes a
// snapshot to keep replay cost bounded without explicit requests.
func (m *Machine) snapshotter() {
	defer func() {
		m.logger.Info("snapshotter exiting")
		m.wg.Done()
	}()

	ticker := time.NewTicker(m.cfg.Snapshots.Interval)
	defer ticker.Stop()

	m.logger.Info("snapshotter starting", slog.Duration("interval", m.cfg.Snapshots.Interval))
	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			if err := m.MakeSnapshot(m.ctx); err != nil {
				m.logger.Warn("periodic snapshot failed", logger.ErrAttr(err))
			}
		}
	}
}

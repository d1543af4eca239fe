package stm

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/logger"
)

// loadSnapshot reads and decodes the latest snapshot. It returns
// (nil, nil) both when no snapshot exists yet and when the artifact is
// in the recognized legacy format, since neither can seed the derived
// state; any other failure is an error the caller treats as fatal.
func (m *Machine) loadSnapshot() (*api.Snapshot, error) {
	r, err := m.store.Open()
	if errors.Is(err, api.ErrNoSnapshot) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := decodeSnapshot(b)
	if errors.Is(err, errLegacyFormat) {
		// The old format cannot carry the current payload; the state
		// will be reconstructed by replaying the log.
		m.logger.Warn("skipping snapshot due to old format", slog.String("path", m.store.Path()))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	if err := m.store.RemovePartials(); err != nil {
		m.logger.Warn("failed to remove partial snapshot artifacts", logger.ErrAttr(err))
	}

	return snap, nil
}

// persistSnapshot writes one snapshot through the store's
// temp-then-commit discipline.
func (m *Machine) persistSnapshot(snap *api.Snapshot) error {
	w, err := m.store.StartWrite()
	if err != nil {
		return fmt.Errorf("start snapshot write: %w", err)
	}

	if _, err := w.Write(encodeSnapshot(snap)); err != nil {
		if aerr := w.Abort(); aerr != nil {
			m.logger.Warn("failed to abort snapshot write", logger.ErrAttr(aerr))
		}
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := w.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

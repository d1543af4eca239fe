package stm

import (
	"fmt"
	"log/slog"

	"github.com/shrtyk/stm-core/pkg/logger"
)

// fatalInvariant logs the violated invariant with full context and
// immediately panics. It is reserved for states the design treats as
// impossible under correct operation: continuing past one would
// silently corrupt the derived state, so the process terminates and
// the supervisor restarts it into a fresh hydration.
func (m *Machine) fatalInvariant(op string, err error) {
	errMsg := fmt.Sprintf(
		"CRITICAL: invariant violation in %q during '%s'. The machine's state can no longer be trusted! Shutting down to prevent corruption. Error: %v",
		m.name,
		op,
		err,
	)
	m.logger.Error(
		errMsg,
		slog.String("op", op),
		slog.String("snapshot_path", m.store.Path()),
		logger.ErrAttr(err),
	)
	panic(errMsg)
}

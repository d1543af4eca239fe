package stm

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// machineMetrics holds the per-machine counters exposed on the
// monitoring server's /metrics endpoint.
type machineMetrics struct {
	entriesApplied   *metrics.Counter
	snapshotsTaken   *metrics.Counter
	snapshotFailures *metrics.Counter
	syncSuccesses    *metrics.Counter
	syncFailures     *metrics.Counter
}

func newMachineMetrics(name string) *machineMetrics {
	c := func(metric string) *metrics.Counter {
		return metrics.GetOrCreateCounter(fmt.Sprintf(`%s{machine=%q}`, metric, name))
	}
	return &machineMetrics{
		entriesApplied:   c("stm_entries_applied_total"),
		snapshotsTaken:   c("stm_snapshots_taken_total"),
		snapshotFailures: c("stm_snapshot_failures_total"),
		syncSuccesses:    c("stm_sync_successes_total"),
		syncFailures:     c("stm_sync_failures_total"),
	}
}

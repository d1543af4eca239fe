package api

import (
	"time"

	"github.com/shrtyk/stm-core/pkg/logger"
)

type MachineConfig struct {
	Log                LoggerCfg
	Timings            Timings
	Snapshots          SnapshotsCfg
	HTTPMonitoringAddr string
}

type LoggerCfg struct {
	Env logger.Enviroment
}

type Timings struct {
	// SyncTimeout bounds a Sync attempt when the caller does not
	// provide its own timeout (e.g. control-plane requests).
	SyncTimeout time.Duration

	ShutdownTimeout time.Duration
}

type SnapshotsCfg struct {
	// Dir is where the default filesystem store keeps the snapshot
	// artifact.
	Dir string

	// Interval between automatic background snapshots. Zero disables
	// the periodic snapshotter; explicit requests still work.
	Interval time.Duration
}

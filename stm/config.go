package stm

import (
	"time"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/logger"
)

const (
	defaultHTTPMonitoringAddr = ""
	defaultSnapshotsDir       = "data"
)

func DefaultConfig() *api.MachineConfig {
	return &api.MachineConfig{
		Log: api.LoggerCfg{
			Env: logger.Dev,
		},
		Timings: api.Timings{
			SyncTimeout:     5 * time.Second,
			ShutdownTimeout: 3 * time.Second,
		},
		Snapshots: api.SnapshotsCfg{
			Dir:      defaultSnapshotsDir,
			Interval: 0,
		},
		HTTPMonitoringAddr: defaultHTTPMonitoringAddr,
	}
}

func TestsConfig() *api.MachineConfig {
	return &api.MachineConfig{
		Log: api.LoggerCfg{
			Env: logger.Dev,
		},
		Timings: api.Timings{
			SyncTimeout:     500 * time.Millisecond,
			ShutdownTimeout: 1 * time.Second,
		},
		Snapshots: api.SnapshotsCfg{
			Dir:      defaultSnapshotsDir,
			Interval: 0,
		},
	}
}

package stm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/logger"
	"github.com/shrtyk/stm-core/pkg/snapstore"
)

type machineBuilder struct {
	// required
	name   string
	engine api.Engine
	sm     api.StateMachine

	// optional with defaults
	cfg    *api.MachineConfig
	store  api.SnapshotStore
	logger *slog.Logger
}

func NewMachineBuilder(name string, engine api.Engine, sm api.StateMachine) api.MachineBuilder {
	return &machineBuilder{
		name:   name,
		engine: engine,
		sm:     sm,
		cfg:    DefaultConfig(),
	}
}

func (mb *machineBuilder) Build() (api.Machine, error) {
	if mb.name == "" {
		return nil, fmt.Errorf("builder: machine name is required")
	}
	if mb.engine == nil {
		return nil, fmt.Errorf("builder: engine is required")
	}
	if mb.sm == nil {
		return nil, fmt.Errorf("builder: state machine is required")
	}

	ctx, cancel := context.WithCancel(context.Background())

	log := mb.logger
	if log == nil {
		log = logger.NewLogger(mb.cfg.Log.Env, false).With(slog.String("machine", mb.name))
	}

	store := mb.store
	if store == nil {
		var err error
		store, err = snapstore.NewFileStore(mb.cfg.Snapshots.Dir, mb.name, log)
		if err != nil {
			cancel()
			return nil, fmt.Errorf("builder: failed to create default snapshot store: %w", err)
		}
	}

	m := &Machine{
		ctx:                ctx,
		cancel:             cancel,
		name:               mb.name,
		engine:             mb.engine,
		store:              store,
		sm:                 mb.sm,
		cfg:                mb.cfg,
		logger:             log,
		hydrated:           make(chan struct{}),
		nextOffset:         api.NoOffset,
		insyncOffset:       api.NoOffset,
		insyncTerm:         api.NoOffset,
		lastSnapshotOffset: api.NoOffset,
		metrics:            newMachineMetrics(mb.name),
	}
	if mb.cfg.HTTPMonitoringAddr != "" {
		m.monitoring = NewMonitoringServer(m, mb.cfg.HTTPMonitoringAddr)
	}

	return m, nil
}

func (mb *machineBuilder) WithConfig(cfg *api.MachineConfig) api.MachineBuilder {
	mb.cfg = cfg
	return mb
}

func (mb *machineBuilder) WithStore(s api.SnapshotStore) api.MachineBuilder {
	mb.store = s
	return mb
}

func (mb *machineBuilder) WithLogger(l *slog.Logger) api.MachineBuilder {
	mb.logger = l
	return mb
}

package api

import "log/slog"

// MachineBuilder is an interface for constructing a Machine.
type MachineBuilder interface {
	// Build constructs and returns a new Machine instance based on the
	// configurations provided to the builder. It returns an error if
	// any required components are missing or if there's an issue
	// during the initialization of default components.
	Build() (Machine, error)

	// WithConfig sets the machine configuration.
	// If not provided, a DefaultConfig will be used.
	WithConfig(*MachineConfig) MachineBuilder

	// WithStore sets a custom SnapshotStore implementation.
	// If not provided, a filesystem store under Snapshots.Dir will be
	// used.
	WithStore(SnapshotStore) MachineBuilder

	// WithLogger sets a custom slog.Logger for the machine.
	// If not provided, a default logger based on the config's Log.Env
	// will be used.
	WithLogger(*slog.Logger) MachineBuilder
}

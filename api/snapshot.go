package api

// Snapshot format versions understood by this build. The legacy
// version is recognized but carries an incompatible payload shape, so
// a legacy artifact reads as "no usable snapshot" and the state is
// rebuilt by replaying the log.
const (
	SnapshotFormatLegacy  int8 = 0
	SnapshotFormatCurrent int8 = 1
)

// SnapshotHeader describes a snapshot payload.
type SnapshotHeader struct {
	// Offset is the covered offset: all log entries up to and
	// including it are reflected in the payload.
	Offset int64

	// Version is the application payload version, opaque to the
	// machine and interpreted only by the StateMachine hooks.
	Version int8

	// SnapshotSize is the payload length in bytes.
	SnapshotSize int32
}

// Snapshot is a durable, compact encoding of derived state as of a
// given covered offset. Immutable once constructed.
type Snapshot struct {
	Header SnapshotHeader
	Data   []byte
}

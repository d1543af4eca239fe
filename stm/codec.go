package stm

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/shrtyk/stm-core/api"
)

// On-disk snapshot layout:
//
//	[format_version:1][covered_offset:8][payload_version:1][payload_size:4][payload...]
//
// The format version is read first and dispatched on. A version newer
// than this build understands means the running binary is older than
// the data it wrote, which is a deployment invariant violation, not a
// recoverable error.
const snapshotHeaderSize = 1 + 8 + 1 + 4

var (
	// errLegacyFormat marks a recognized old format whose payload
	// cannot be interpreted by this build. Callers fall back to full
	// log replay.
	errLegacyFormat = errors.New("snapshot in legacy format")

	errShortSnapshot = errors.New("snapshot truncated")
)

func encodeSnapshot(s *api.Snapshot) []byte {
	buf := make([]byte, snapshotHeaderSize, snapshotHeaderSize+len(s.Data))
	buf[0] = byte(api.SnapshotFormatCurrent)
	binary.BigEndian.PutUint64(buf[1:9], uint64(s.Header.Offset))
	buf[9] = byte(s.Header.Version)
	binary.BigEndian.PutUint32(buf[10:14], uint32(s.Header.SnapshotSize))
	return append(buf, s.Data...)
}

func decodeSnapshot(b []byte) (*api.Snapshot, error) {
	if len(b) < 1 {
		return nil, errShortSnapshot
	}

	format := int8(b[0])
	switch {
	case format == api.SnapshotFormatLegacy:
		return nil, errLegacyFormat
	case format > api.SnapshotFormatCurrent:
		return nil, fmt.Errorf("unsupported snapshot format version %d: written by a newer build", format)
	case format != api.SnapshotFormatCurrent:
		return nil, fmt.Errorf("unsupported snapshot format version %d", format)
	}

	if len(b) < snapshotHeaderSize {
		return nil, errShortSnapshot
	}

	h := api.SnapshotHeader{
		Offset:       int64(binary.BigEndian.Uint64(b[1:9])),
		Version:      int8(b[9]),
		SnapshotSize: int32(binary.BigEndian.Uint32(b[10:14])),
	}
	if h.SnapshotSize < 0 {
		return nil, fmt.Errorf("corrupt snapshot header: negative payload size %d", h.SnapshotSize)
	}
	if int64(len(b)-snapshotHeaderSize) != int64(h.SnapshotSize) {
		return nil, fmt.Errorf("snapshot payload size mismatch: header says %d, got %d bytes",
			h.SnapshotSize, len(b)-snapshotHeaderSize)
	}

	return &api.Snapshot{Header: h, Data: b[snapshotHeaderSize:]}, nil
}

// Package kvstm implements a minimal key-value StateMachine. It is the
// reference application used throughout the tests and the CLI example.
package kvstm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shrtyk/stm-core/api"
)

// PayloadVersion is the kv snapshot payload version. Bump it when the
// payload shape changes.
const PayloadVersion int8 = 0

// Operation names accepted in commands.
const (
	OpSet    = "set"
	OpDelete = "delete"
)

// Command is the wire form of a single log entry's payload.
type Command struct {
	Op    string `json:"op"`
	Key   string `json:"key"`
	Value string `json:"value,omitempty"`
}

// EncodeCommand serializes a command for Engine.Propose.
func EncodeCommand(cmd Command) ([]byte, error) {
	return json.Marshal(cmd)
}

type snapshotPayload struct {
	Data          map[string]string `json:"data"`
	AppliedOffset int64             `json:"applied_offset"`
}

// KV is a replicated string-to-string map.
//
// The machine serializes Apply, TakeSnapshot, ApplySnapshot and
// HandleEviction against each other; the mutex only guards reads from
// other goroutines (Get, Len).
type KV struct {
	mu            sync.RWMutex
	data          map[string]string
	appliedOffset int64
}

var _ api.StateMachine = (*KV)(nil)

func New() *KV {
	return &KV{
		data:          make(map[string]string),
		appliedOffset: api.NoOffset,
	}
}

func (kv *KV) Apply(e *api.Entry) error {
	var cmd Command
	if err := json.Unmarshal(e.Cmd, &cmd); err != nil {
		return fmt.Errorf("malformed command at offset %d: %w", e.Offset, err)
	}

	kv.mu.Lock()
	defer kv.mu.Unlock()

	switch cmd.Op {
	case OpSet:
		kv.data[cmd.Key] = cmd.Value
	case OpDelete:
		delete(kv.data, cmd.Key)
	default:
		return fmt.Errorf("unknown operation %q at offset %d", cmd.Op, e.Offset)
	}
	kv.appliedOffset = e.Offset
	return nil
}

func (kv *KV) TakeSnapshot() (*api.Snapshot, error) {
	kv.mu.RLock()
	payload := snapshotPayload{
		Data:          make(map[string]string, len(kv.data)),
		AppliedOffset: kv.appliedOffset,
	}
	for k, v := range kv.data {
		payload.Data[k] = v
	}
	kv.mu.RUnlock()

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize kv state: %w", err)
	}
	return &api.Snapshot{
		Header: api.SnapshotHeader{
			Offset:       payload.AppliedOffset,
			Version:      PayloadVersion,
			SnapshotSize: int32(len(data)),
		},
		Data: data,
	}, nil
}

func (kv *KV) ApplySnapshot(h api.SnapshotHeader, data []byte) error {
	if h.Version > PayloadVersion {
		return fmt.Errorf("unsupported kv payload version %d", h.Version)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("malformed kv snapshot payload: %w", err)
	}
	if payload.Data == nil {
		payload.Data = make(map[string]string)
	}

	kv.mu.Lock()
	kv.data = payload.Data
	kv.appliedOffset = h.Offset
	kv.mu.Unlock()
	return nil
}

// HandleEviction resets the map. State carried by the evicted entries
// is unrecoverable; replay resumes from the new log start.
func (kv *KV) HandleEviction(newStartOffset int64) error {
	kv.mu.Lock()
	kv.data = make(map[string]string)
	kv.appliedOffset = api.NoOffset
	kv.mu.Unlock()
	return nil
}

// Get returns the value stored under key.
func (kv *KV) Get(key string) (string, bool) {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	v, ok := kv.data[key]
	return v, ok
}

// Len returns the number of stored keys.
func (kv *KV) Len() int {
	kv.mu.RLock()
	defer kv.mu.RUnlock()
	return len(kv.data)
}

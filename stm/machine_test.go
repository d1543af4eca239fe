package stm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEngine is a hand-driven engine: tests push apply messages and
// move the cursors explicitly.
type mockEngine struct {
	mu        sync.Mutex
	term      int64
	leader    bool
	committed int64
	dirty     int64
	start     int64

	refreshErr   error
	refreshCalls int

	commitChanged chan struct{}
	applyCh       chan *api.ApplyMessage
}

var _ api.Engine = (*mockEngine)(nil)

func newMockEngine() *mockEngine {
	return &mockEngine{
		term:          1,
		leader:        true,
		committed:     api.NoOffset,
		dirty:         api.NoOffset,
		start:         api.NoOffset,
		commitChanged: make(chan struct{}),
		applyCh:       make(chan *api.ApplyMessage, 64),
	}
}

func (e *mockEngine) Term() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term
}

func (e *mockEngine) IsLeader() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leader
}

func (e *mockEngine) CommittedOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed
}

func (e *mockEngine) DirtyOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *mockEngine) StartOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start
}

func (e *mockEngine) ApplyChannel() <-chan *api.ApplyMessage {
	return e.applyCh
}

func (e *mockEngine) Propose(cmd []byte) (int64, int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.leader {
		return api.NoOffset, e.term, false
	}
	e.dirty++
	return e.dirty, e.term, true
}

func (e *mockEngine) RefreshCommitIndex(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refreshCalls++
	return e.refreshErr
}

func (e *mockEngine) WaitCommitted(ctx context.Context, offset, term int64) error {
	for {
		e.mu.Lock()
		if e.committed >= offset || e.term != term {
			e.mu.Unlock()
			return nil
		}
		ch := e.commitChanged
		e.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// deliver pushes committed entries onto the apply channel and advances
// the engine cursors past them.
func (e *mockEngine) deliver(entries ...*api.Entry) {
	e.mu.Lock()
	for _, entry := range entries {
		if e.start == api.NoOffset {
			e.start = entry.Offset
		}
		if entry.Offset > e.dirty {
			e.dirty = entry.Offset
		}
		if entry.Offset > e.committed {
			e.committed = entry.Offset
		}
	}
	close(e.commitChanged)
	e.commitChanged = make(chan struct{})
	e.mu.Unlock()

	for _, entry := range entries {
		e.applyCh <- &api.ApplyMessage{EntryValid: true, Entry: entry}
	}
}

func (e *mockEngine) evict(newStart int64) {
	e.mu.Lock()
	e.start = newStart
	e.mu.Unlock()
	e.applyCh <- &api.ApplyMessage{EvictionValid: true, LogStartOffset: newStart}
}

func (e *mockEngine) setTerm(term int64) {
	e.mu.Lock()
	e.term = term
	close(e.commitChanged)
	e.commitChanged = make(chan struct{})
	e.mu.Unlock()
}

func (e *mockEngine) setLeader(leader bool) {
	e.mu.Lock()
	e.leader = leader
	e.mu.Unlock()
}

// memStore is an in-memory SnapshotStore with failure injection.
type memStore struct {
	mu          sync.Mutex
	data        []byte
	has         bool
	openErr     error
	startWrites int
	removed     int
}

var _ api.SnapshotStore = (*memStore)(nil)

func (s *memStore) Open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	if !s.has {
		return nil, api.ErrNoSnapshot
	}
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

func (s *memStore) StartWrite() (api.SnapshotWriter, error) {
	s.mu.Lock()
	s.startWrites++
	s.mu.Unlock()
	return &memWriter{store: s}, nil
}

func (s *memStore) RemovePartials() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed++
	return nil
}

func (s *memStore) Path() string { return "mem" }
func (s *memStore) Close() error { return nil }

func (s *memStore) writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startWrites
}

type memWriter struct {
	store *memStore
	buf   bytes.Buffer
}

func (w *memWriter) Write(p []byte) (int, error) { return w.buf.Write(p) }

func (w *memWriter) Commit() error {
	w.store.mu.Lock()
	w.store.data = append([]byte(nil), w.buf.Bytes()...)
	w.store.has = true
	w.store.mu.Unlock()
	return nil
}

func (w *memWriter) Abort() error { return nil }

// testSM records everything the machine asks of it.
type testSM struct {
	mu            sync.Mutex
	applied       []*api.Entry
	appliedOffset int64
	applyErr      error

	restoredHeader *api.SnapshotHeader
	restoredData   []byte
	evictedTo      []int64
}

var _ api.StateMachine = (*testSM)(nil)

func newTestSM() *testSM {
	return &testSM{appliedOffset: api.NoOffset}
}

func (s *testSM) Apply(e *api.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.applyErr != nil {
		return s.applyErr
	}
	s.applied = append(s.applied, e)
	s.appliedOffset = e.Offset
	return nil
}

func (s *testSM) TakeSnapshot() (*api.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := fmt.Appendf(nil, "applied=%d", len(s.applied))
	return &api.Snapshot{
		Header: api.SnapshotHeader{
			Offset:       s.appliedOffset,
			Version:      0,
			SnapshotSize: int32(len(data)),
		},
		Data: data,
	}, nil
}

func (s *testSM) ApplySnapshot(h api.SnapshotHeader, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restoredHeader = &h
	s.restoredData = append([]byte(nil), data...)
	s.appliedOffset = h.Offset
	return nil
}

func (s *testSM) HandleEviction(newStartOffset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictedTo = append(s.evictedTo, newStartOffset)
	return nil
}

func (s *testSM) appliedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.applied)
}

func newTestMachine(t *testing.T, eng api.Engine, sm api.StateMachine, store api.SnapshotStore) *Machine {
	t.Helper()
	_, log := logger.NewTestLogger()
	m, err := NewMachineBuilder("test", eng, sm).
		WithConfig(TestsConfig()).
		WithLogger(log).
		WithStore(store).
		Build()
	require.NoError(t, err)
	return m.(*Machine)
}

func entry(offset int64, cmd string) *api.Entry {
	return &api.Entry{Offset: offset, Term: 1, Cmd: []byte(cmd)}
}

func encodedSnapshot(covered int64, data string) []byte {
	return encodeSnapshot(&api.Snapshot{
		Header: api.SnapshotHeader{
			Offset:       covered,
			Version:      0,
			SnapshotSize: int32(len(data)),
		},
		Data: []byte(data),
	})
}

func TestMachine_StartWithoutSnapshot(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	m := newTestMachine(t, eng, sm, &memStore{})

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	assert.Equal(t, api.NoOffset, m.InSyncOffset())
	assert.Equal(t, api.NoOffset, m.LastSnapshotOffset())

	eng.deliver(entry(0, "a"), entry(1, "b"))

	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, sm.appliedCount())
}

func TestMachine_StartHydratesFromSnapshot(t *testing.T) {
	eng := newMockEngine()
	eng.start = 0
	sm := newTestSM()
	store := &memStore{data: encodedSnapshot(50, "state"), has: true}
	m := newTestMachine(t, eng, sm, store)

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	require.NotNil(t, sm.restoredHeader)
	assert.Equal(t, int64(50), sm.restoredHeader.Offset)
	assert.Equal(t, []byte("state"), sm.restoredData)
	assert.Equal(t, int64(50), m.InSyncOffset())
	// Only the snapshot scheduler advances the durable-checkpoint
	// cursor; restoring from disk does not.
	assert.Equal(t, api.NoOffset, m.LastSnapshotOffset())

	// Entries at or below the covered offset are already reflected.
	eng.deliver(entry(50, "old"), entry(51, "new"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 51
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, sm.appliedCount())
	assert.Equal(t, int64(51), sm.applied[0].Offset)
}

func TestMachine_StartSkipsStaleSnapshot(t *testing.T) {
	eng := newMockEngine()
	eng.start = 100
	sm := newTestSM()
	store := &memStore{data: encodedSnapshot(50, "stale"), has: true}
	m := newTestMachine(t, eng, sm, store)

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	// The snapshot predates the retained log range: state must not be
	// restored from it.
	assert.Nil(t, sm.restoredHeader)
	assert.Equal(t, int64(50), m.InSyncOffset())

	// The eviction notice resolves the stale cursor.
	eng.evict(100)
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 99
	}, 2*time.Second, 5*time.Millisecond)
	require.Len(t, sm.evictedTo, 1)
	assert.Equal(t, int64(100), sm.evictedTo[0])

	eng.deliver(entry(100, "x"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 100
	}, 2*time.Second, 5*time.Millisecond)
}

func TestMachine_StartWithTruncatedLogOnly(t *testing.T) {
	eng := newMockEngine()
	eng.start = 100
	sm := newTestSM()
	m := newTestMachine(t, eng, sm, &memStore{})

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	// No snapshot: replay begins at the log's retained floor.
	assert.Equal(t, int64(99), m.InSyncOffset())
}

func TestMachine_StartSkipsLegacySnapshot(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	legacy := append([]byte{byte(api.SnapshotFormatLegacy)}, []byte("old payload")...)
	store := &memStore{data: legacy, has: true}
	m := newTestMachine(t, eng, sm, store)

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	assert.Nil(t, sm.restoredHeader)
	assert.Equal(t, api.NoOffset, m.InSyncOffset())
}

func TestMachine_StartPanicsOnUnreadableStore(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	store := &memStore{openErr: errors.New("disk gone")}
	m := newTestMachine(t, eng, sm, store)

	require.Panics(t, func() { _ = m.Start() })
}

func TestMachine_StartTwiceFails(t *testing.T) {
	eng := newMockEngine()
	m := newTestMachine(t, eng, newTestSM(), &memStore{})

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	require.Error(t, m.Start())
}

func TestMachine_ApplyErrorIsFatal(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	sm.applyErr = errors.New("divergent state")
	m := newTestMachine(t, eng, sm, &memStore{})

	require.NoError(t, m.Start())

	// The applier goroutine panics; recover in its place via the test
	// by applying directly.
	require.Panics(t, func() {
		m.applyEntry(entry(0, "boom"))
	})

	m.cancel()
	m.wg.Wait()
}

func TestMachine_EvictionFastForwardsCursor(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	m := newTestMachine(t, eng, sm, &memStore{})

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	eng.deliver(entry(0, "a"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 0
	}, 2*time.Second, 5*time.Millisecond)

	eng.evict(10)
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 9
	}, 2*time.Second, 5*time.Millisecond)
	require.Len(t, sm.evictedTo, 1)

	// An eviction below the cursor is a no-op.
	eng.evict(5)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(9), m.InSyncOffset())
	assert.Len(t, sm.evictedTo, 1)
}

func TestMachine_MaxCollectibleOffset(t *testing.T) {
	t.Run("unbounded by default", func(t *testing.T) {
		m := newTestMachine(t, newMockEngine(), newTestSM(), &memStore{})
		assert.Greater(t, m.MaxCollectibleOffset(), int64(1<<60))
	})

	t.Run("delegates to limiter", func(t *testing.T) {
		m := newTestMachine(t, newMockEngine(), &limitedSM{testSM: newTestSM(), limit: 42}, &memStore{})
		assert.Equal(t, int64(42), m.MaxCollectibleOffset())
	})
}

type limitedSM struct {
	*testSM
	limit int64
}

func (s *limitedSM) MaxCollectibleOffset() int64 { return s.limit }

package stm

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedMachine(t *testing.T, eng *mockEngine) (*Machine, *testSM) {
	t.Helper()
	sm := newTestSM()
	m := newTestMachine(t, eng, sm, &memStore{})
	require.NoError(t, m.Start())
	t.Cleanup(func() { require.NoError(t, m.Stop()) })
	return m, sm
}

func (e *mockEngine) refreshCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.refreshCalls
}

func TestSync_NotLeader(t *testing.T) {
	eng := newMockEngine()
	eng.setLeader(false)
	m, _ := startedMachine(t, eng)

	assert.False(t, m.Sync(time.Second))
	assert.Equal(t, 0, eng.refreshCount())
}

func TestSync_EmptyLogSucceeds(t *testing.T) {
	eng := newMockEngine()
	m, _ := startedMachine(t, eng)

	// Nothing appended: the state trivially reflects everything
	// committed under the term.
	assert.True(t, m.Sync(time.Second))
	assert.Equal(t, int64(1), m.InSyncTerm())
}

func TestSync_MemoizedPerTerm(t *testing.T) {
	eng := newMockEngine()
	m, _ := startedMachine(t, eng)

	require.True(t, m.Sync(time.Second))
	calls := eng.refreshCount()

	// Same term: no second attempt is issued.
	require.True(t, m.Sync(time.Second))
	assert.Equal(t, calls, eng.refreshCount())

	// A new term invalidates the memoized result.
	eng.setTerm(2)
	require.True(t, m.Sync(time.Second))
	assert.Equal(t, calls+1, eng.refreshCount())
	assert.Equal(t, int64(2), m.InSyncTerm())
}

func TestSync_WaitsForDirtyOffset(t *testing.T) {
	eng := newMockEngine()
	eng.dirty = 2
	m, _ := startedMachine(t, eng)

	done := make(chan bool, 1)
	go func() { done <- m.Sync(5 * time.Second) }()

	// Sync must block until offset 2 commits and applies.
	select {
	case <-done:
		t.Fatal("sync returned before the dirty offset committed")
	case <-time.After(50 * time.Millisecond):
	}

	eng.deliver(entry(0, "a"), entry(1, "b"), entry(2, "c"))
	assert.True(t, <-done)
	assert.Equal(t, int64(2), m.InSyncOffset())
}

func TestSync_TimesOut(t *testing.T) {
	eng := newMockEngine()
	eng.dirty = 5
	m, _ := startedMachine(t, eng)

	start := time.Now()
	assert.False(t, m.Sync(100*time.Millisecond))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSync_TermChangeMidWaitFails(t *testing.T) {
	eng := newMockEngine()
	eng.dirty = 5
	m, _ := startedMachine(t, eng)

	done := make(chan bool, 1)
	go func() { done <- m.Sync(5 * time.Second) }()

	time.Sleep(50 * time.Millisecond)
	eng.setTerm(2)

	// WaitCommitted returns on the term change; freshness under the
	// old term is no longer provable.
	assert.False(t, <-done)
	assert.NotEqual(t, int64(1), m.InSyncTerm())
}

func TestSync_RefreshFailureIsTransient(t *testing.T) {
	eng := newMockEngine()
	eng.refreshErr = errors.New("quorum unreachable")
	m, _ := startedMachine(t, eng)

	assert.False(t, m.Sync(time.Second))

	// The failed attempt must not leave the machine wedged: clearing
	// the failure lets the next attempt proceed.
	eng.mu.Lock()
	eng.refreshErr = nil
	eng.mu.Unlock()
	assert.True(t, m.Sync(time.Second))
}

func TestSync_CoalescesConcurrentCallers(t *testing.T) {
	eng := newMockEngine()
	eng.dirty = 1
	m, _ := startedMachine(t, eng)

	const callers = 8
	results := make(chan bool, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- m.Sync(5 * time.Second)
		}()
	}

	time.Sleep(50 * time.Millisecond)
	eng.deliver(entry(0, "a"), entry(1, "b"))
	wg.Wait()
	close(results)

	for r := range results {
		assert.True(t, r)
	}
	// All callers resolved through a single in-flight attempt.
	assert.Equal(t, 1, eng.refreshCount())
}

func TestSync_WaiterTimesOutIndependently(t *testing.T) {
	eng := newMockEngine()
	eng.dirty = 5
	m, _ := startedMachine(t, eng)

	slow := make(chan bool, 1)
	go func() { slow <- m.Sync(5 * time.Second) }()
	time.Sleep(50 * time.Millisecond)

	// A second caller with a short deadline gives up on its own even
	// though the first attempt is still in flight.
	start := time.Now()
	assert.False(t, m.Sync(100*time.Millisecond))
	assert.Less(t, time.Since(start), 2*time.Second)

	eng.deliver(entry(0, "a"), entry(1, "b"), entry(2, "c"),
		entry(3, "d"), entry(4, "e"), entry(5, "f"))
	assert.True(t, <-slow)
}

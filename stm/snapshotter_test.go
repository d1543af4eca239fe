package stm

import (
	"context"
	"testing"
	"time"

	"github.com/shrtyk/stm-core/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeSnapshot_PersistsCurrentState(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	store := &memStore{}
	m := newTestMachine(t, eng, sm, store)
	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	eng.deliver(entry(0, "a"), entry(1, "b"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 1
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, m.MakeSnapshot(context.Background()))
	assert.Equal(t, int64(1), m.LastSnapshotOffset())

	snap, err := decodeSnapshot(store.data)
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Header.Offset)
	assert.Equal(t, []byte("applied=2"), snap.Data)
}

func TestEnsureSnapshotExists(t *testing.T) {
	t.Run("covered target is a no-op", func(t *testing.T) {
		eng := newMockEngine()
		sm := newTestSM()
		store := &memStore{}
		m := newTestMachine(t, eng, sm, store)
		require.NoError(t, m.Start())
		defer func() { require.NoError(t, m.Stop()) }()

		eng.deliver(entry(0, "a"), entry(1, "b"), entry(2, "c"))
		require.Eventually(t, func() bool {
			return m.InSyncOffset() == 2
		}, 2*time.Second, 5*time.Millisecond)

		require.NoError(t, m.MakeSnapshot(context.Background()))
		writes := store.writes()

		require.NoError(t, m.EnsureSnapshotExists(context.Background(), 1))
		require.NoError(t, m.EnsureSnapshotExists(context.Background(), 2))
		assert.Equal(t, writes, store.writes())
	})

	t.Run("waits for the target to apply", func(t *testing.T) {
		eng := newMockEngine()
		sm := newTestSM()
		store := &memStore{}
		m := newTestMachine(t, eng, sm, store)
		require.NoError(t, m.Start())
		defer func() { require.NoError(t, m.Stop()) }()

		done := make(chan error, 1)
		go func() { done <- m.EnsureSnapshotExists(context.Background(), 2) }()

		select {
		case err := <-done:
			t.Fatalf("ensure returned before target applied: %v", err)
		case <-time.After(50 * time.Millisecond):
		}

		eng.deliver(entry(0, "a"), entry(1, "b"), entry(2, "c"))
		require.NoError(t, <-done)
		assert.GreaterOrEqual(t, m.LastSnapshotOffset(), int64(2))
	})

	t.Run("honors context expiry", func(t *testing.T) {
		eng := newMockEngine()
		m := newTestMachine(t, eng, newTestSM(), &memStore{})
		require.NoError(t, m.Start())
		defer func() { require.NoError(t, m.Stop()) }()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		require.Error(t, m.EnsureSnapshotExists(ctx, 10))
	})
}

func TestMakeSnapshotInBackground_DrainsOnStop(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	store := &memStore{}
	m := newTestMachine(t, eng, sm, store)
	require.NoError(t, m.Start())

	eng.deliver(entry(0, "a"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 0
	}, 2*time.Second, 5*time.Millisecond)

	m.MakeSnapshotInBackground()
	require.NoError(t, m.Stop())

	// Stop must have waited for the background write.
	assert.Equal(t, int64(0), m.LastSnapshotOffset())
	assert.Equal(t, 1, store.writes())
}

func TestPeriodicSnapshotter(t *testing.T) {
	eng := newMockEngine()
	sm := newTestSM()
	store := &memStore{}

	cfg := TestsConfig()
	cfg.Snapshots.Interval = 30 * time.Millisecond
	_, log := logger.NewTestLogger()
	machine, err := NewMachineBuilder("test", eng, sm).
		WithConfig(cfg).
		WithLogger(log).
		WithStore(store).
		Build()
	require.NoError(t, err)
	m := machine.(*Machine)

	require.NoError(t, m.Start())
	defer func() { require.NoError(t, m.Stop()) }()

	eng.deliver(entry(0, "a"))
	require.Eventually(t, func() bool {
		return m.LastSnapshotOffset() == 0
	}, 2*time.Second, 5*time.Millisecond)
}

// Package integration exercises the full stack: the in-process engine,
// the key-value state machine, the filesystem snapshot store and the
// machine lifecycle around them.
package integration

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anishathalye/porcupine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shrtyk/stm-core/api"
	"github.com/shrtyk/stm-core/pkg/kvstm"
	"github.com/shrtyk/stm-core/pkg/localengine"
	"github.com/shrtyk/stm-core/pkg/logger"
	"github.com/shrtyk/stm-core/pkg/snapstore"
	"github.com/shrtyk/stm-core/stm"
)

type cluster struct {
	t      *testing.T
	dir    string
	engine *localengine.Engine
	kv     *kvstm.KV
	m      api.Machine
}

func newCluster(t *testing.T) *cluster {
	t.Helper()
	c := &cluster{t: t, dir: t.TempDir()}

	_, log := logger.NewTestLogger()
	c.engine = localengine.NewEngine(log)
	t.Cleanup(c.engine.Stop)

	c.startMachine()
	return c
}

// startMachine builds and starts a machine bound to the cluster's
// engine and snapshot directory, with a fresh state machine instance.
func (c *cluster) startMachine() {
	c.t.Helper()
	_, log := logger.NewTestLogger()

	store, err := snapstore.NewFileStore(c.dir, "kv", log)
	require.NoError(c.t, err)

	c.kv = kvstm.New()
	m, err := stm.NewMachineBuilder("kv", c.engine, c.kv).
		WithConfig(stm.TestsConfig()).
		WithLogger(log).
		WithStore(store).
		Build()
	require.NoError(c.t, err)
	require.NoError(c.t, m.Start())
	c.m = m
}

func (c *cluster) stopMachine() {
	c.t.Helper()
	require.NoError(c.t, c.m.Stop())
}

// set proposes a write and blocks until it is applied locally.
func (c *cluster) set(key, value string) int64 {
	c.t.Helper()
	cmd, err := kvstm.EncodeCommand(kvstm.Command{Op: kvstm.OpSet, Key: key, Value: value})
	require.NoError(c.t, err)

	offset, _, accepted := c.engine.Propose(cmd)
	require.True(c.t, accepted)
	require.Eventually(c.t, func() bool {
		return c.m.InSyncOffset() >= offset
	}, 5*time.Second, time.Millisecond)
	return offset
}

func TestEndToEnd(t *testing.T) {
	c := newCluster(t)
	defer c.stopMachine()

	for i := 0; i < 10; i++ {
		c.set(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
	}

	require.True(t, c.m.Sync(time.Second))
	assert.Equal(t, 10, c.kv.Len())
	v, ok := c.kv.Get("k7")
	require.True(t, ok)
	assert.Equal(t, "v7", v)
}

func TestRestartHydratesFromSnapshot(t *testing.T) {
	c := newCluster(t)

	last := int64(api.NoOffset)
	for i := 0; i < 5; i++ {
		last = c.set(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i))
	}
	require.NoError(t, c.m.EnsureSnapshotExists(context.Background(), last))
	assert.Equal(t, last, c.m.LastSnapshotOffset())

	c.stopMachine()

	// A fresh machine over the same store restores the state without
	// replaying anything.
	c.startMachine()
	defer c.stopMachine()

	assert.Equal(t, last, c.m.InSyncOffset())
	assert.Equal(t, 5, c.kv.Len())
	v, ok := c.kv.Get("k3")
	require.True(t, ok)
	assert.Equal(t, "v3", v)
}

func TestSnapshotBoundsCollectibleRange(t *testing.T) {
	c := newCluster(t)
	defer c.stopMachine()

	last := c.set("a", "1")
	require.NoError(t, c.m.MakeSnapshot(context.Background()))

	// Everything the snapshot covers is safe to evict.
	assert.Equal(t, last, c.m.LastSnapshotOffset())
	c.engine.Truncate(last + 1)

	// The machine keeps working across the eviction notice.
	c.set("b", "2")
	v, ok := c.kv.Get("b")
	require.True(t, ok)
	assert.Equal(t, "2", v)
}

type regInput struct {
	op    string // "read" or "write"
	value string
}

func TestLinearizability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping linearizability check in short mode")
	}

	c := newCluster(t)
	defer c.stopMachine()

	const (
		writers         = 4
		readers         = 3
		writesPerClient = 15
		readsPerClient  = 30
	)

	var mu sync.Mutex
	var ops []porcupine.Operation
	record := func(client int, in regInput, out string, call, ret int64) {
		mu.Lock()
		ops = append(ops, porcupine.Operation{
			ClientId: client,
			Input:    in,
			Output:   out,
			Call:     call,
			Return:   ret,
		})
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		w := w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writesPerClient; i++ {
				value := fmt.Sprintf("w%d-%d", w, i)
				call := time.Now().UnixNano()
				c.set("r", value)
				record(w, regInput{op: "write", value: value}, "", call, time.Now().UnixNano())
			}
		}()
	}
	for r := 0; r < readers; r++ {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < readsPerClient; i++ {
				call := time.Now().UnixNano()
				v, _ := c.kv.Get("r")
				record(writers+r, regInput{op: "read"}, v, call, time.Now().UnixNano())
				time.Sleep(time.Millisecond)
			}
		}()
	}
	wg.Wait()

	model := porcupine.Model{
		Init: func() interface{} { return "" },
		Step: func(state, input, output interface{}) (bool, interface{}) {
			st := state.(string)
			in := input.(regInput)
			if in.op == "write" {
				return true, in.value
			}
			return output.(string) == st, st
		},
	}

	assert.True(t, porcupine.CheckOperations(model, ops),
		"register history is not linearizable")
}

// Package localengine provides a single-node, in-process
// implementation of the api.Engine contract. It keeps the log in
// memory and is meant for tests, examples and single-node deployments
// where full consensus is unnecessary.
package localengine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/shrtyk/stm-core/api"
)

// Engine is an in-memory log with the cursors and wait primitives the
// state machine consumes. It is safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger

	// entries holds the retained log suffix; base is the offset of
	// entries[0]. Truncate drops the prefix but offsets stay absolute.
	entries []*api.Entry
	base    int64

	start     int64
	dirty     int64
	committed int64
	term      int64
	leader    bool

	// holdCommits freezes the committed offset so tests can keep
	// entries appended-but-uncommitted.
	holdCommits bool

	// commitChanged is closed and replaced whenever the committed
	// offset or the term advances; waiters re-check after each close.
	commitChanged chan struct{}

	// dispatched is the highest offset already delivered on applyCh.
	dispatched      int64
	pendingEviction bool

	applyCh chan *api.ApplyMessage
	signal  chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

var _ api.Engine = (*Engine)(nil)

func NewEngine(log *slog.Logger) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		logger:        log,
		base:          api.NoOffset,
		start:         api.NoOffset,
		dirty:         api.NoOffset,
		committed:     api.NoOffset,
		dispatched:    api.NoOffset,
		leader:        true,
		commitChanged: make(chan struct{}),
		applyCh:       make(chan *api.ApplyMessage, 64),
		signal:        make(chan struct{}, 1),
		ctx:           ctx,
		cancel:        cancel,
	}
	e.wg.Add(1)
	go e.dispatcher()
	return e
}

// Stop shuts down the dispatcher and closes the apply channel.
func (e *Engine) Stop() {
	e.cancel()
	e.wg.Wait()
	close(e.applyCh)
}

func (e *Engine) Term() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term
}

func (e *Engine) IsLeader() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.leader
}

func (e *Engine) CommittedOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.committed
}

func (e *Engine) DirtyOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

func (e *Engine) StartOffset() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start
}

func (e *Engine) ApplyChannel() <-chan *api.ApplyMessage {
	return e.applyCh
}

// Propose appends a command to the local log. Unless commits are held,
// a single-node quorum commits it immediately.
func (e *Engine) Propose(cmd []byte) (int64, int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.leader {
		return api.NoOffset, e.term, false
	}

	offset := e.dirty + 1
	entry := &api.Entry{Offset: offset, Term: e.term, Cmd: cmd}
	if len(e.entries) == 0 {
		e.base = offset
	}
	if e.start == api.NoOffset {
		e.start = offset
	}
	e.entries = append(e.entries, entry)
	e.dirty = offset

	if !e.holdCommits {
		e.commitLocked(e.dirty)
	}
	return offset, e.term, true
}

// RefreshCommitIndex commits everything appended locally, mirroring a
// leader re-deriving its commit index from a quorum of one.
func (e *Engine) RefreshCommitIndex(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.leader {
		return api.ErrNotLeader
	}
	if !e.holdCommits {
		e.commitLocked(e.dirty)
	}
	return nil
}

// WaitCommitted blocks until the committed offset reaches offset, the
// term moves past term, or ctx expires.
func (e *Engine) WaitCommitted(ctx context.Context, offset, term int64) error {
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

// Truncate evicts every entry below newStart and delivers an eviction
// notice on the apply channel.
func (e *Engine) Truncate(newStart int64) {
	e.mu.Lock()
	if newStart <= e.start {
		e.mu.Unlock()
		return
	}

	drop := int(newStart - e.base)
	if drop > len(e.entries) {
		drop = len(e.entries)
	}
	if drop > 0 {
		e.entries = e.entries[drop:]
	}
	e.base = newStart
	e.start = newStart
	if e.dirty < newStart-1 {
		e.dirty = newStart - 1
	}
	if e.committed < newStart-1 {
		e.committed = newStart - 1
	}
	if e.dispatched < newStart-1 {
		e.dispatched = newStart - 1
	}
	e.pendingEviction = true
	e.mu.Unlock()

	e.logger.Info("log truncated", slog.Int64("new_start_offset", newStart))
	e.wake()
}

// SetLeader flips the leadership flag. Losing leadership does not
// advance the term on its own.
func (e *Engine) SetLeader(leader bool) {
	e.mu.Lock()
	e.leader = leader
	e.mu.Unlock()
}

// AdvanceTerm bumps the term and wakes committed-offset waiters, which
// treat a term change as a reason to re-validate.
func (e *Engine) AdvanceTerm() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term++
	e.broadcastLocked()
	return e.term
}

// HoldCommits controls whether appended entries commit immediately.
// Releasing the hold commits everything appended so far.
func (e *Engine) HoldCommits(hold bool) {
	e.mu.Lock()
	e.holdCommits = hold
	if !hold {
		e.commitLocked(e.dirty)
	}
	e.mu.Unlock()
}

func (e *Engine) commitLocked(offset int64) {
	if offset <= e.committed {
		return
	}
	e.committed = offset
	e.broadcastLocked()
	select {
	case e.signal <- struct{}{}:
	default:
	}
}

func (e *Engine) broadcastLocked() {
	close(e.commitChanged)
	e.commitChanged = make(chan struct{})
}

func (e *Engine) wake() {
	select {
	case e.signal <- struct{}{}:
	default:
	}
}

// dispatcher delivers eviction notices and committed entries on the
// apply channel in log order.
func (e *Engine) dispatcher() {
	defer e.wg.Done()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-e.signal:
		}

		for _, msg := range e.drain() {
			select {
			case e.applyCh <- msg:
			case <-e.ctx.Done():
				return
			}
		}
	}
}

// drain collects everything ready for delivery under the lock.
func (e *Engine) drain() []*api.ApplyMessage {
	e.mu.Lock()
	defer e.mu.Unlock()

	var msgs []*api.ApplyMessage
	if e.pendingEviction {
		e.pendingEviction = false
		msgs = append(msgs, &api.ApplyMessage{
			EvictionValid:  true,
			LogStartOffset: e.start,
		})
	}
	for e.dispatched < e.committed {
		next := e.dispatched + 1
		idx := int(next - e.base)
		if idx < 0 || idx >= len(e.entries) {
			break
		}
		msgs = append(msgs, &api.ApplyMessage{
			EntryValid: true,
			Entry:      e.entries[idx],
		})
		e.dispatched = next
	}
	return msgs
}

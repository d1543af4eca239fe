// Package cbreaker implements a small circuit breaker for unary RPCs.
// A run of failures opens the circuit; while open, calls fail fast
// without touching the wire. After the reset timeout a probe call is
// let through, and a run of probe successes closes the circuit again.
package cbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrOpenState = errors.New("circuit breaker is in open state")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

type CircuitBreaker struct {
	mu    sync.RWMutex
	state state

	consecutiveFailures  int
	consecutiveSuccesses int

	failureThreshold int
	successThreshold int

	resetTimeout time.Duration
	nextProbeAt  time.Time
}

func NewCircuitBreaker(failureThreshold, successThreshold int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            stateClosed,
		failureThreshold: failureThreshold,
		successThreshold: successThreshold,
		resetTimeout:     resetTimeout,
	}
}

type rpcCall[Response any] func(context.Context) (Response, error)

// Do runs the given call protected by the circuit breaker.
func Do[Response any](ctx context.Context, cb *CircuitBreaker, req rpcCall[Response]) (resp Response, err error) {
	cb.mu.Lock()
	if cb.state == stateOpen {
		if time.Now().Before(cb.nextProbeAt) {
			cb.mu.Unlock()
			return resp, ErrOpenState
		}
		cb.state = stateHalfOpen
		cb.consecutiveSuccesses = 0
	}
	cb.mu.Unlock()

	resp, err = req(ctx)

	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.consecutiveSuccesses = 0
		if cb.state == stateHalfOpen {
			// A failed probe reopens immediately.
			cb.open()
		} else {
			cb.consecutiveFailures++
			if cb.consecutiveFailures >= cb.failureThreshold {
				cb.open()
			}
		}
		return
	}

	if cb.state == stateHalfOpen {
		cb.consecutiveSuccesses++
		if cb.consecutiveSuccesses >= cb.successThreshold {
			cb.reset()
		}
	} else {
		cb.consecutiveFailures = 0
	}

	return
}

// IsClosed reports whether calls are currently allowed through.
func (cb *CircuitBreaker) IsClosed() bool {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state == stateClosed || cb.state == stateHalfOpen
}

func (cb *CircuitBreaker) open() {
	cb.state = stateOpen
	cb.nextProbeAt = time.Now().Add(cb.resetTimeout)
	cb.consecutiveFailures = 0
	cb.consecutiveSuccesses = 0
}

func (cb *CircuitBreaker) reset() {
	cb.state = stateClosed
	cb.consecutiveFailures = 0
	cb.consecutiveSuccesses = 0
}

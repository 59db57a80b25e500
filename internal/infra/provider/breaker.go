package provider

import (
	"sync/atomic"
	"time"
)

type BreakerState string

const (
	BreakerClosed   BreakerState = "closed"
	BreakerOpen     BreakerState = "open"
	BreakerHalfOpen BreakerState = "half_open"
)

const (
	stateClosed int32 = iota
	stateOpen
	stateHalfOpen
)

// Breaker guards one provider. The in-memory implementation is the default;
// the interface leaves room for shared state across instances.
type Breaker interface {
	Allow(now time.Time) bool
	RecordSuccess()
	RecordFailure(now time.Time)
	State() BreakerState
}

// memoryBreaker is lock-free. The open to half-open move is a CAS, so out
// of any number of concurrent callers after the cooldown exactly one wins
// the trial request; the rest stay rejected until the trial resolves.
type memoryBreaker struct {
	state        atomic.Int32
	failures     atomic.Int32
	openedAtNano atomic.Int64

	threshold int32
	cooldown  time.Duration
}

func NewMemoryBreaker(threshold int, cooldown time.Duration) Breaker {
	return &memoryBreaker{
		threshold: int32(threshold),
		cooldown:  cooldown,
	}
}

func (b *memoryBreaker) Allow(now time.Time) bool {
	switch b.state.Load() {
	case stateClosed:
		return true
	case stateOpen:
		if now.UnixNano()-b.openedAtNano.Load() < int64(b.cooldown) {
			return false
		}
		return b.state.CompareAndSwap(stateOpen, stateHalfOpen)
	default:
		// A trial is already in flight.
		return false
	}
}

func (b *memoryBreaker) RecordSuccess() {
	b.failures.Store(0)
	b.state.Store(stateClosed)
}

func (b *memoryBreaker) RecordFailure(now time.Time) {
	if b.state.CompareAndSwap(stateHalfOpen, stateOpen) {
		b.openedAtNano.Store(now.UnixNano())
		return
	}
	if b.state.Load() != stateClosed {
		return
	}
	if b.failures.Add(1) >= b.threshold {
		if b.state.CompareAndSwap(stateClosed, stateOpen) {
			b.openedAtNano.Store(now.UnixNano())
		}
	}
}

func (b *memoryBreaker) State() BreakerState {
	switch b.state.Load() {
	case stateOpen:
		return BreakerOpen
	case stateHalfOpen:
		return BreakerHalfOpen
	default:
		return BreakerClosed
	}
}

package splitz

import (
	"sync"
	"sync/atomic"
)

// store is the per-branch parking area for items classified to a branch that
// was not the one driving the upstream. Two strategies exist: a single slot
// (at most one pending item) and a fixed-capacity ring (bounded
// backpressure). The engine only ever puts after checking full, so put never
// fails.
type store[T any] interface {
	full() bool
	put(item T)
	take() (T, bool)
	drain()
}

// slot is the single-item store: capacity exactly one pending item.
type slot[T any] struct {
	item     T
	occupied bool
}

func (s *slot[T]) full() bool { return s.occupied }

func (s *slot[T]) put(item T) {
	s.item = item
	s.occupied = true
}

func (s *slot[T]) take() (T, bool) {
	var zero T
	if !s.occupied {
		return zero, false
	}
	item := s.item
	s.item = zero
	s.occupied = false
	return item, true
}

func (s *slot[T]) drain() {
	_, _ = s.take()
}

// ring satisfies store through its FIFO operations.
func (r *ring[T]) full() bool { return r.remaining() == 0 }

func (r *ring[T]) put(item T) {
	_ = r.pushBack(item)
}

func (r *ring[T]) take() (T, bool) { return r.popFront() }

func newStore[T any](capacity int) store[T] {
	if capacity <= 0 {
		return &slot[T]{}
	}
	return newRing[T](capacity)
}

// splitCounters tracks routing totals. The engine increments them under its
// lock but Stats reads them from other goroutines, hence atomics.
type splitCounters struct {
	total     atomic.Int64
	left      atomic.Int64
	right     atomic.Int64
	discarded atomic.Int64
}

// engine is the shared state machine behind one split operation. Both branch
// handles reference the same engine; exactly one of them mutates it at a
// time, guarded by a non-blocking try-lock so that no poll ever blocks a
// thread. The classifier is fixed at construction and the upstream is owned
// exclusively by the engine until exhaustion.
//
// The left/right distinction is positional: the predicate variants route
// matching items left, and the mapping variants route Either.Left left.
type engine[T, L, R any] struct {
	mu       sync.Mutex
	upstream Stream[T]
	classify func(T) Either[L, R]

	left  store[L]
	right store[R]

	wakerLeft  Waker
	wakerRight Waker

	// done latches the first completion report from the upstream; the
	// upstream is never driven again after it.
	done bool

	closedLeft  bool
	closedRight bool

	counters *splitCounters
}

func newEngine[T, L, R any](upstream Stream[T], classify func(T) Either[L, R], capacity int, counters *splitCounters) *engine[T, L, R] {
	return &engine[T, L, R]{
		upstream: upstream,
		classify: classify,
		left:     newStore[L](capacity),
		right:    newStore[R](capacity),
		counters: counters,
	}
}

// pollLeft advances the left branch by one protocol step. pollRight is its
// mirror image; keep the two in sync.
func (e *engine[T, L, R]) pollLeft(w Waker) Poll[L] {
	if !e.mu.TryLock() {
		// The sibling holds the engine right now. It wakes this branch
		// before releasing whenever it changed anything this branch waits
		// on, so just reschedule ourselves instead of blocking.
		wake(w)
		return Pending[L]()
	}
	defer e.mu.Unlock()

	e.wakerLeft = w

	if item, ok := e.left.take(); ok {
		return Ready(item)
	}
	if e.closedLeft || e.done {
		return End[L]()
	}
	if e.right.full() {
		// No room to defer a right-bound item, so this branch must not pull
		// from the upstream. The sibling may be asleep waiting for exactly
		// this state.
		wake(e.wakerRight)
		return Pending[L]()
	}

	p := e.upstream.PollNext(w)
	switch {
	case p.IsEnd():
		e.done = true
		e.upstream = nil
		wake(e.wakerRight)
		return End[L]()
	case p.IsPending():
		return Pending[L]()
	}

	e.counters.total.Add(1)
	verdict := e.classify(p.Item())
	if item, ok := verdict.Left(); ok {
		e.counters.left.Add(1)
		return Ready(item)
	}
	item, _ := verdict.Right()
	e.counters.right.Add(1)
	if e.closedRight {
		// Nobody will ever drain the right branch again.
		e.counters.discarded.Add(1)
		wake(w)
		return Pending[L]()
	}
	e.right.put(item)
	wake(e.wakerRight)
	return Pending[L]()
}

func (e *engine[T, L, R]) pollRight(w Waker) Poll[R] {
	if !e.mu.TryLock() {
		wake(w)
		return Pending[R]()
	}
	defer e.mu.Unlock()

	e.wakerRight = w

	if item, ok := e.right.take(); ok {
		return Ready(item)
	}
	if e.closedRight || e.done {
		return End[R]()
	}
	if e.left.full() {
		wake(e.wakerLeft)
		return Pending[R]()
	}

	p := e.upstream.PollNext(w)
	switch {
	case p.IsEnd():
		e.done = true
		e.upstream = nil
		wake(e.wakerLeft)
		return End[R]()
	case p.IsPending():
		return Pending[R]()
	}

	e.counters.total.Add(1)
	verdict := e.classify(p.Item())
	if item, ok := verdict.Right(); ok {
		e.counters.right.Add(1)
		return Ready(item)
	}
	item, _ := verdict.Left()
	e.counters.left.Add(1)
	if e.closedLeft {
		e.counters.discarded.Add(1)
		wake(w)
		return Pending[R]()
	}
	e.left.put(item)
	wake(e.wakerLeft)
	return Pending[R]()
}

// closeLeft stops the left branch: parked items are released, and items
// classified left from now on are discarded instead of parked so the right
// branch can always drain the upstream.
func (e *engine[T, L, R]) closeLeft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closedLeft {
		return
	}
	e.closedLeft = true
	e.left.drain()
	e.wakerLeft = nil
	// The sibling may be parked on this branch's saturation.
	wake(e.wakerRight)
	if e.closedRight {
		e.shutdownLocked()
	}
}

func (e *engine[T, L, R]) closeRight() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closedRight {
		return
	}
	e.closedRight = true
	e.right.drain()
	e.wakerRight = nil
	wake(e.wakerLeft)
	if e.closedLeft {
		e.shutdownLocked()
	}
}

// shutdownLocked tears the engine down once both branches are closed.
// Callers must hold the engine lock.
func (e *engine[T, L, R]) shutdownLocked() {
	e.done = true
	e.upstream = nil
	e.left.drain()
	e.right.drain()
}

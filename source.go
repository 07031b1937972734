package splitz

import (
	"sync"
	"time"
)

// FromSlice returns a finite stream yielding the given items in order.
// After the last item every poll reports the end of the sequence.
func FromSlice[T any](items ...T) Stream[T] {
	return &sliceStream[T]{items: items}
}

type sliceStream[T any] struct {
	items []T
	pos   int
}

func (s *sliceStream[T]) PollNext(_ Waker) Poll[T] {
	if s.pos >= len(s.items) {
		return End[T]()
	}
	item := s.items[s.pos]
	s.pos++
	return Ready(item)
}

// FromFunc returns a stream that pulls items from next until it reports
// false, after which every poll reports the end of the sequence (next is not
// called again). The resulting stream is synchronous: it never returns
// Pending.
func FromFunc[T any](next func() (T, bool)) Stream[T] {
	return &funcStream[T]{next: next}
}

type funcStream[T any] struct {
	next func() (T, bool)
	done bool
}

func (s *funcStream[T]) PollNext(_ Waker) Poll[T] {
	if s.done {
		return End[T]()
	}
	item, ok := s.next()
	if !ok {
		s.done = true
		s.next = nil
		return End[T]()
	}
	return Ready(item)
}

// FromChannel adapts a channel to a pull-based stream, bridging channel
// pipelines into this package. The stream ends when the channel is closed.
//
// When a poll finds the channel empty, a single helper goroutine is parked
// on a receive to fire the waker as soon as an item (or the close) arrives.
// That goroutine lives until the channel produces or closes, so a channel
// that is abandoned without being closed pins it forever.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return &chanStream[T]{ch: ch}
}

type chanStream[T any] struct {
	mu      sync.Mutex
	ch      <-chan T
	pending slot[T]
	waker   Waker
	waiting bool
	closed  bool
}

func (c *chanStream[T]) PollNext(w Waker) Poll[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.waker = w
	if item, ok := c.pending.take(); ok {
		return Ready(item)
	}
	if c.waiting {
		// The helper owns the next receive. Grabbing one here could hand
		// out a later item, or the close, ahead of the one the helper is
		// holding between its receive and its store.
		return Pending[T]()
	}
	if c.closed {
		return End[T]()
	}

	select {
	case item, ok := <-c.ch:
		if !ok {
			c.closed = true
			return End[T]()
		}
		return Ready(item)
	default:
	}

	c.waiting = true
	go c.await()
	return Pending[T]()
}

// await blocks on the channel on behalf of the most recent poller.
func (c *chanStream[T]) await() {
	item, ok := <-c.ch

	c.mu.Lock()
	c.waiting = false
	if ok {
		c.pending.put(item)
	} else {
		c.closed = true
	}
	w := c.waker
	c.mu.Unlock()

	wake(w)
}

// Paced returns a finite stream that yields the given items one interval
// apart on the provided clock, starting with the first item immediately.
// With a fake clock the emission schedule is fully deterministic, which
// makes Paced useful for exercising consumers that outrun their producer.
func Paced[T any](clock Clock, interval time.Duration, items ...T) Stream[T] {
	return &pacedStream[T]{
		clock:    clock,
		interval: interval,
		items:    items,
	}
}

type pacedStream[T any] struct {
	mu       sync.Mutex
	clock    Clock
	interval time.Duration
	items    []T
	pos      int
	last     time.Time
	started  bool
	waker    Waker
	armed    time.Time
}

func (s *pacedStream[T]) PollNext(w Waker) Poll[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.waker = w
	if s.pos >= len(s.items) {
		return End[T]()
	}
	now := s.clock.Now()
	if s.started {
		if wait := s.interval - now.Sub(s.last); wait > 0 {
			// One timer per emission deadline, waking whichever handle is
			// registered when it fires; spurious re-polls must not pile up
			// timers.
			if due := s.last.Add(s.interval); !s.armed.Equal(due) {
				s.armed = due
				s.clock.AfterFunc(wait, s.fire)
			}
			return Pending[T]()
		}
	}
	item := s.items[s.pos]
	s.pos++
	s.last = now
	s.started = true
	return Ready(item)
}

// fire wakes the most recently registered poller when a deadline elapses.
func (s *pacedStream[T]) fire() {
	s.mu.Lock()
	w := s.waker
	s.armed = time.Time{}
	s.mu.Unlock()
	wake(w)
}

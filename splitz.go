// Package splitz provides pull-based stream splitting primitives: one source
// stream and a classifier produce exactly two derived streams that together
// partition every source item, without duplication or loss.
//
// Unlike channel fan-out, the two branches are polled, not pushed. Each
// branch is a lazy Stream that only drives the shared upstream when its
// consumer asks for the next item, so the two consumers can run on unrelated
// goroutines at independent rates. Coordination between them is a small
// non-blocking protocol: whichever branch polls first takes a short exclusive
// turn on the shared engine, and a branch that cannot make progress parks
// with a Waker instead of blocking a thread.
//
// Basic usage:
//
//	src := splitz.FromSlice(0, 1, 2, 3, 4, 5)
//	out := splitz.NewSplit[int](func(n int) bool { return n%2 == 0 }).Split(src)
//
//	go func() {
//		for {
//			n, err := out.True.Next(ctx)
//			if err != nil {
//				return
//			}
//			fmt.Println("even", n)
//		}
//	}()
//
//	for {
//		n, err := out.False.Next(ctx)
//		if err != nil {
//			return
//		}
//		fmt.Println("odd", n)
//	}
//
// The package provides two classifier shapes:
//   - NewSplit: a predicate routes each item whole to the True or False branch
//   - NewSplitMap: a mapping consumes each item and the two branches carry
//     the two payload types of the resulting Either
//
// Both come in a single-slot flavor (default: at most one item parked per
// branch) and a bounded flavor (WithCapacity: a fixed circular buffer per
// branch providing bounded backpressure).
package splitz

import "context"

// Stream is a lazy, pull-based sequence of items.
//
// PollNext never blocks. It returns a ready item, reports the end of the
// sequence, or returns a pending result after arranging for w to be woken
// once another poll may make progress. A nil Waker is permitted and means
// the caller will not wait for a wakeup.
//
// Streams are not restartable: after the end of the sequence has been
// reported, every subsequent poll reports it again.
type Stream[T any] interface {
	PollNext(w Waker) Poll[T]
}

// Waker is a handle used to reschedule a suspended poller. Wake must be safe
// to call from any goroutine and must tolerate being called after the poller
// has gone away.
type Waker interface {
	Wake()
}

// WakeFunc adapts a plain function to the Waker interface.
type WakeFunc func()

// Wake calls the underlying function.
func (f WakeFunc) Wake() { f() }

// wake invokes w if a waker has been registered.
func wake(w Waker) {
	if w != nil {
		w.Wake()
	}
}

type pollState uint8

const (
	pollPending pollState = iota
	pollReady
	pollEnd
)

// Poll is the outcome of a single PollNext call: a ready item, "nothing yet,
// you will be woken", or the end of the sequence.
type Poll[T any] struct {
	item  T
	state pollState
}

// Ready returns a Poll carrying the next item.
func Ready[T any](item T) Poll[T] {
	return Poll[T]{item: item, state: pollReady}
}

// Pending returns a Poll indicating no item is available yet.
func Pending[T any]() Poll[T] {
	return Poll[T]{state: pollPending}
}

// End returns a Poll indicating the sequence is exhausted.
func End[T any]() Poll[T] {
	return Poll[T]{state: pollEnd}
}

// IsReady returns true if this Poll carries an item.
func (p Poll[T]) IsReady() bool { return p.state == pollReady }

// IsPending returns true if no item was available yet.
func (p Poll[T]) IsPending() bool { return p.state == pollPending }

// IsEnd returns true if the sequence is exhausted.
func (p Poll[T]) IsEnd() bool { return p.state == pollEnd }

// Item returns the ready item.
// Panics if called on a Poll that is not ready - always check IsReady() first.
func (p Poll[T]) Item() T {
	if p.state != pollReady {
		panic("called Item() on a Poll that is not ready")
	}
	return p.item
}

// chanWaker is the package's parking primitive: a one-slot channel whose
// Wake is a non-blocking send, so a wakeup arriving between a poll and the
// subsequent wait is never lost.
type chanWaker chan struct{}

func newChanWaker() chanWaker { return make(chan struct{}, 1) }

func (w chanWaker) Wake() {
	select {
	case w <- struct{}{}:
	default:
	}
}

// Next drives s until it yields an item, parking the calling goroutine
// between polls. It returns ErrEndOfStream once the sequence is exhausted
// and ctx.Err() if the context is canceled first.
//
// Real suspension happens here, in the caller's goroutine; the stream itself
// never blocks.
func Next[T any](ctx context.Context, s Stream[T]) (T, error) {
	var zero T
	w := newChanWaker()
	for {
		p := s.PollNext(w)
		switch {
		case p.IsReady():
			return p.Item(), nil
		case p.IsEnd():
			return zero, ErrEndOfStream
		}
		select {
		case <-w:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Collect drains s to the end of the sequence and returns every item in
// order. On context cancellation it returns the items collected so far along
// with ctx.Err().
func Collect[T any](ctx context.Context, s Stream[T]) ([]T, error) {
	var items []T
	for {
		item, err := Next(ctx, s)
		if err == ErrEndOfStream {
			return items, nil
		}
		if err != nil {
			return items, err
		}
		items = append(items, item)
	}
}

// Drain consumes s to the end of the sequence, discarding items, and returns
// how many were consumed.
func Drain[T any](ctx context.Context, s Stream[T]) (int, error) {
	n := 0
	for {
		_, err := Next(ctx, s)
		if err == ErrEndOfStream {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		n++
	}
}

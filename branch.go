package splitz

import "context"

// Branch is one of the two derived streams produced by a split. It is a thin
// handle on the shared engine: it holds no items of its own, only the right
// to poll for the next item routed to its side.
//
// A Branch implements Stream, so it composes with further splits and with
// the package's Next/Collect/Drain drivers.
//
// At most one goroutine may poll a Branch at a time. Two goroutines racing
// to poll the same Branch is a contract violation: the engine keeps only the
// most recently registered waker, so one of the racers can miss its wakeup.
// This misuse is not detected. The two branches of a split, in contrast, are
// made to be polled from different goroutines.
type Branch[T any] struct {
	poll    func(Waker) Poll[T]
	release func()
}

// PollNext attempts to produce the next item routed to this branch.
//
// If the sibling branch currently holds the engine, PollNext re-registers w
// with the ambient scheduler and returns Pending rather than waiting; the
// sibling always wakes this branch before releasing if it changed anything
// this branch could be waiting on.
func (b *Branch[T]) PollNext(w Waker) Poll[T] {
	return b.poll(w)
}

// Next returns the next item for this branch, parking the calling goroutine
// until one is routed here. It returns ErrEndOfStream once the source is
// exhausted and this branch's parked items are drained, and ctx.Err() if the
// context is canceled first.
//
// Next only makes progress the protocol allows: if every pending source item
// belongs to the sibling branch, Next stays parked until the sibling
// consumer drains them. Drive both branches.
func (b *Branch[T]) Next(ctx context.Context) (T, error) {
	return Next[T](ctx, b)
}

// TryNext returns the next item for this branch without waiting. It returns
// ErrWouldBlock when no item is ready right now and ErrEndOfStream once the
// source is exhausted.
func (b *Branch[T]) TryNext() (T, error) {
	var zero T
	p := b.poll(nil)
	switch {
	case p.IsReady():
		return p.Item(), nil
	case p.IsEnd():
		return zero, ErrEndOfStream
	}
	return zero, ErrWouldBlock
}

// Close stops this branch. Items already parked for it are released, items
// classified to it from now on are discarded (see Stats), and the sibling
// branch keeps running through to source exhaustion. Close is idempotent.
//
// Close is optional: a Branch that is merely abandoned stops being driven
// and wake calls aimed at it become no-ops, exactly as if its consumer were
// slow. But an abandoned branch still accumulates items classified to it,
// so once its storage saturates the sibling stalls. Close is how a consumer
// says those items are unwanted.
func (b *Branch[T]) Close() {
	b.release()
}

func newBranch[T any](poll func(Waker) Poll[T], release func()) *Branch[T] {
	return &Branch[T]{poll: poll, release: release}
}

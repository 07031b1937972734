package splitz

import (
	"context"
	"slices"
	"testing"
	"time"

	"code.hybscloud.com/iox"
	"golang.org/x/sync/errgroup"
)

// TestSplitBufferedUnpolledSibling: with capacity 1, a branch whose items
// never occur needs no draining; the other branch delivers everything.
func TestSplitBufferedUnpolledSibling(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out := NewSplit[int](isEven).WithCapacity(1).Split(FromSlice(1, 3, 5, 7, 9))

	odds, err := Collect(ctx, out.False)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(odds, []int{1, 3, 5, 7, 9}) {
		t.Errorf("expected all five odd items, got %v", odds)
	}
}

// TestSplitBufferedBackpressure verifies the bounded ring never overflows:
// once the sibling's buffer is full, the pulling branch is told to wait and
// the upstream is left untouched until a slot frees up.
func TestSplitBufferedBackpressure(t *testing.T) {
	splitter := NewSplit[int](isEven).WithCapacity(2)
	out := splitter.Split(FromSlice(2, 4, 6, 8, 1))

	// Every pull by the false branch parks one even item in the true ring.
	for i := 0; i < 2; i++ {
		if _, err := out.False.TryNext(); !IsWouldBlock(err) {
			t.Fatalf("expected would-block while deferring, got %v", err)
		}
	}
	if got := splitter.Stats().TotalItems; got != 2 {
		t.Fatalf("expected 2 classified items, got %d", got)
	}

	// The true ring is full; further false polls must not drive the upstream.
	for i := 0; i < 3; i++ {
		if _, err := out.False.TryNext(); !IsWouldBlock(err) {
			t.Fatalf("expected would-block while saturated, got %v", err)
		}
	}
	if got := splitter.Stats().TotalItems; got != 2 {
		t.Errorf("upstream driven past a full sibling buffer: %d", got)
	}

	// Draining one slot frees exactly one deferral.
	if v, err := out.True.TryNext(); err != nil || v != 2 {
		t.Fatalf("expected buffered 2, got %v, %v", v, err)
	}
	if _, err := out.False.TryNext(); !IsWouldBlock(err) {
		t.Fatalf("expected would-block, got %v", err)
	}
	if got := splitter.Stats().TotalItems; got != 3 {
		t.Errorf("expected 3 classified items after freeing a slot, got %d", got)
	}

	// Drain the rest concurrently.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var evens, odds []int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		evens, err = Collect(gctx, out.True)
		return err
	})
	g.Go(func() error {
		var err error
		odds, err = Collect(gctx, out.False)
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(evens, []int{4, 6, 8}) {
		t.Errorf("expected remaining evens [4 6 8], got %v", evens)
	}
	if !slices.Equal(odds, []int{1}) {
		t.Errorf("expected odds [1], got %v", odds)
	}
}

// TestSplitBufferedSpinningConsumers drives both branches with non-blocking
// consumers that back off on would-block, the way lock-free queue consumers
// are driven.
func TestSplitBufferedSpinningConsumers(t *testing.T) {
	const n = 5000

	items := make([]int, n)
	for i := range items {
		items[i] = i
	}

	splitter := NewSplit[int](isEven).WithCapacity(4)
	out := splitter.Split(FromSlice(items...))

	consume := func(b *Branch[int], dst *[]int) func() error {
		return func() error {
			backoff := iox.Backoff{}
			for {
				v, err := b.TryNext()
				if err == nil {
					*dst = append(*dst, v)
					backoff.Reset()
					continue
				}
				if IsWouldBlock(err) {
					backoff.Wait()
					continue
				}
				if err == ErrEndOfStream {
					return nil
				}
				return err
			}
		}
	}

	var evens, odds []int
	var g errgroup.Group
	g.Go(consume(out.True, &evens))
	g.Go(consume(out.False, &odds))
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(evens)+len(odds) != n {
		t.Fatalf("lost or duplicated items: %d + %d != %d", len(evens), len(odds), n)
	}
	if !slices.IsSorted(evens) || !slices.IsSorted(odds) {
		t.Error("branch order diverged from source order")
	}
	if got := splitter.Stats().TotalItems; got != n {
		t.Errorf("expected %d classified items, got %d", n, got)
	}
}

func TestSplitCapacityValidation(t *testing.T) {
	// Negative capacities fall back to the single-slot strategy.
	out := NewSplit[int](isEven).WithCapacity(-3).Split(FromSlice(2))
	v, err := out.True.TryNext()
	if err != nil || v != 2 {
		t.Fatalf("expected 2, got %v, %v", v, err)
	}
}

package splitz

// SplitOutput provides access to the two branches of a predicate split.
// The True branch yields items for which the predicate returns true,
// the False branch those for which it returns false.
type SplitOutput[T any] struct {
	// True yields items where the predicate returns true.
	True *Branch[T]

	// False yields items where the predicate returns false.
	False *Branch[T]
}

// Split divides a pull-based stream into exactly two branches based on a
// predicate function. Items for which the predicate returns true go to the
// True branch, items for which it returns false go to the False branch.
// Every source item appears on exactly one branch, in source order.
//
// Split is ideal for:
//   - Valid/invalid separation
//   - Pass/fail classification
//   - Binary routing where both outcomes need consuming
//
// Key features:
//   - Exactly two branches (no more, no less)
//   - Lazy: the source is only driven when a branch is polled
//   - No poll ever blocks a thread
//   - Per-branch order matches source order
//   - Statistics for both branches
//
// Example:
//
//	// Split orders into high/low value
//	splitter := splitz.NewSplit[Order](func(o Order) bool {
//	    return o.Total > 1000
//	})
//
//	out := splitter.Split(orders)
//
//	// Consume both branches concurrently
//	go processHighValue(ctx, out.True)
//	processNormal(ctx, out.False)
//
// By default at most one item is parked per branch while the sibling
// catches up; WithCapacity switches to a fixed circular buffer per branch
// for bounded slack between the two consumers.
type Split[T any] struct {
	predicate func(T) bool
	name      string
	capacity  int

	counters splitCounters
}

// NewSplit creates a splitter that routes items to two branches based on a
// predicate. The predicate is called once per source item, by whichever
// branch happens to be driving the source at that moment, and must be a pure
// function of the item.
//
// Default configuration:
//   - Capacity: 0 (single parked item per branch)
//   - Name: "split"
//
// Returns: A new Split with fluent configuration methods.
func NewSplit[T any](predicate func(T) bool) *Split[T] {
	return &Split[T]{
		predicate: predicate,
		name:      "split",
	}
}

// WithCapacity gives each branch a fixed circular buffer of n parked items
// instead of the default single slot. A larger capacity lets the two
// consumers drift further apart before the faster one is told to wait;
// memory for both buffers is allocated up front and never grows.
func (s *Split[T]) WithCapacity(n int) *Split[T] {
	if n < 0 {
		n = 0
	}
	s.capacity = n
	return s
}

// WithName sets a custom name for this splitter instance.
func (s *Split[T]) WithName(name string) *Split[T] {
	s.name = name
	return s
}

// Split attaches the splitter to a source and returns the two branches.
// The returned engine owns the source exclusively; the source must not be
// polled by anyone else afterwards.
func (s *Split[T]) Split(src Stream[T]) SplitOutput[T] {
	classify := func(item T) Either[T, T] {
		if s.predicate(item) {
			return Left[T, T](item)
		}
		return Right[T, T](item)
	}
	e := newEngine(src, classify, s.capacity, &s.counters)
	return SplitOutput[T]{
		True:  newBranch(e.pollLeft, e.closeLeft),
		False: newBranch(e.pollRight, e.closeRight),
	}
}

// Stats returns statistics about the split distribution. Safe to call while
// consumers are running.
func (s *Split[T]) Stats() SplitStats {
	total := s.counters.total.Load()
	trueCount := s.counters.left.Load()
	falseCount := s.counters.right.Load()

	var trueRatio, falseRatio float64
	if total > 0 {
		trueRatio = float64(trueCount) / float64(total)
		falseRatio = float64(falseCount) / float64(total)
	}

	return SplitStats{
		TotalItems: total,
		TrueCount:  trueCount,
		FalseCount: falseCount,
		Discarded:  s.counters.discarded.Load(),
		TrueRatio:  trueRatio,
		FalseRatio: falseRatio,
	}
}

// Name returns the splitter name.
func (s *Split[T]) Name() string {
	return s.name
}

// SplitStats contains statistics about split distribution.
type SplitStats struct {
	TotalItems int64   // Total items classified
	TrueCount  int64   // Items routed to the True branch
	FalseCount int64   // Items routed to the False branch
	Discarded  int64   // Items dropped because their branch was closed
	TrueRatio  float64 // Share routed True (0.0-1.0)
	FalseRatio float64 // Share routed False (0.0-1.0)
}

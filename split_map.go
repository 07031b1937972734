package splitz

// SplitMapOutput provides access to the two branches of a mapping split.
// The branches carry the two payload types of the classifier's Either.
type SplitMapOutput[L, R any] struct {
	// Left yields the payloads of Either.Left verdicts.
	Left *Branch[L]

	// Right yields the payloads of Either.Right verdicts.
	Right *Branch[R]
}

// SplitMap divides a pull-based stream into two branches of different item
// types. The classifier consumes each source item and returns an Either;
// the Left branch yields the left payloads and the Right branch the right
// payloads, each in source order.
//
// SplitMap is the destructuring sibling of Split: instead of routing the
// original item whole, it extracts a value while routing. Typical uses:
//   - Separating the variants of a message union
//   - Peeling a success/error wrapper into two typed streams
//   - Routing while discarding envelope data
//
// Example:
//
//	// Route a mixed message stream by kind
//	splitter := splitz.NewSplitMap(func(m Message) splitz.Either[Request, Response] {
//	    if m.Kind == KindRequest {
//	        return splitz.Left[Request, Response](m.Request)
//	    }
//	    return splitz.Right[Request, Response](m.Response)
//	})
//
//	out := splitter.Split(messages)
//	go serveRequests(ctx, out.Left)
//	trackResponses(ctx, out.Right)
//
// The coordination protocol is identical to Split's; only the types parked
// per branch differ.
type SplitMap[T, L, R any] struct {
	classify func(T) Either[L, R]
	name     string
	capacity int

	counters splitCounters
}

// NewSplitMap creates a splitter from a value-consuming classifier. The
// classifier is called once per source item and must be a pure function of
// the item.
//
// Default configuration:
//   - Capacity: 0 (single parked item per branch)
//   - Name: "split-map"
func NewSplitMap[T, L, R any](classify func(T) Either[L, R]) *SplitMap[T, L, R] {
	return &SplitMap[T, L, R]{
		classify: classify,
		name:     "split-map",
	}
}

// WithCapacity gives each branch a fixed circular buffer of n parked items
// instead of the default single slot.
func (s *SplitMap[T, L, R]) WithCapacity(n int) *SplitMap[T, L, R] {
	if n < 0 {
		n = 0
	}
	s.capacity = n
	return s
}

// WithName sets a custom name for this splitter instance.
func (s *SplitMap[T, L, R]) WithName(name string) *SplitMap[T, L, R] {
	s.name = name
	return s
}

// Split attaches the splitter to a source and returns the two branches.
// The engine owns the source exclusively from here on.
func (s *SplitMap[T, L, R]) Split(src Stream[T]) SplitMapOutput[L, R] {
	e := newEngine(src, s.classify, s.capacity, &s.counters)
	return SplitMapOutput[L, R]{
		Left:  newBranch(e.pollLeft, e.closeLeft),
		Right: newBranch(e.pollRight, e.closeRight),
	}
}

// Stats returns statistics about the split distribution. Safe to call while
// consumers are running.
func (s *SplitMap[T, L, R]) Stats() SplitMapStats {
	total := s.counters.total.Load()
	left := s.counters.left.Load()
	right := s.counters.right.Load()

	var leftRatio, rightRatio float64
	if total > 0 {
		leftRatio = float64(left) / float64(total)
		rightRatio = float64(right) / float64(total)
	}

	return SplitMapStats{
		TotalItems: total,
		LeftCount:  left,
		RightCount: right,
		Discarded:  s.counters.discarded.Load(),
		LeftRatio:  leftRatio,
		RightRatio: rightRatio,
	}
}

// Name returns the splitter name.
func (s *SplitMap[T, L, R]) Name() string {
	return s.name
}

// SplitMapStats contains statistics about split distribution.
type SplitMapStats struct {
	TotalItems int64   // Total items classified
	LeftCount  int64   // Items routed to the Left branch
	RightCount int64   // Items routed to the Right branch
	Discarded  int64   // Items dropped because their branch was closed
	LeftRatio  float64 // Share routed Left (0.0-1.0)
	RightRatio float64 // Share routed Right (0.0-1.0)
}

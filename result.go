package splitz

// Result represents either a successful value or an error in a stream. To
// the split engine a Result is an item like any other; it exists so that
// sources whose item type encodes fallibility can be routed by outcome, see
// SplitResults.
type Result[T any] struct {
	value T
	err   *StreamError[T]
}

// NewSuccess creates a Result containing a successful value.
func NewSuccess[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// NewError creates a Result containing an error.
func NewError[T any](item T, err error, origin string) Result[T] {
	return Result[T]{err: NewStreamError(item, err, origin)}
}

// IsError returns true if this Result contains an error.
func (r Result[T]) IsError() bool {
	return r.err != nil
}

// IsSuccess returns true if this Result contains a successful value.
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Value returns the successful value.
// Panics if called on a Result containing an error - always check IsSuccess() first.
func (r Result[T]) Value() T {
	if r.err != nil {
		panic("called Value() on Result containing an error")
	}
	return r.value
}

// Error returns the StreamError, or nil for a successful Result.
func (r Result[T]) Error() *StreamError[T] {
	return r.err
}

// ValueOr returns the successful value if present, otherwise the fallback.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// SplitResults separates a stream of Results into a branch of successful
// values and a branch of errors. It is a mapping split with a fixed
// classifier:
//
//	out := splitz.SplitResults(results)
//	go retryFailed(ctx, out.Right)
//	process(ctx, out.Left)
func SplitResults[T any](src Stream[Result[T]]) SplitMapOutput[T, *StreamError[T]] {
	return NewSplitMap(func(r Result[T]) Either[T, *StreamError[T]] {
		if r.IsError() {
			return Right[T, *StreamError[T]](r.Error())
		}
		return Left[T, *StreamError[T]](r.Value())
	}).WithName("split-results").Split(src)
}

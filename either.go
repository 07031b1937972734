package splitz

// Either is a two-way tagged union. A mapping classifier returns one for
// each source item to route its payload to the Left or Right branch, which
// may carry different types.
type Either[L, R any] struct {
	l L
	r R
	// right distinguishes the zero value of L from a stored L.
	right bool
}

// Left wraps v as the left alternative.
func Left[L, R any](v L) Either[L, R] {
	return Either[L, R]{l: v}
}

// Right wraps v as the right alternative.
func Right[L, R any](v R) Either[L, R] {
	return Either[L, R]{r: v, right: true}
}

// IsLeft returns true if this Either holds the left alternative.
func (e Either[L, R]) IsLeft() bool { return !e.right }

// IsRight returns true if this Either holds the right alternative.
func (e Either[L, R]) IsRight() bool { return e.right }

// Left returns the left payload and whether it is present.
func (e Either[L, R]) Left() (L, bool) {
	return e.l, !e.right
}

// Right returns the right payload and whether it is present.
func (e Either[L, R]) Right() (R, bool) {
	return e.r, e.right
}

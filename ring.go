package splitz

// ring is a fixed-capacity circular FIFO over a pre-allocated backing slice.
// Capacity is set at construction and never changes; push and pop are O(1)
// via modular index arithmetic over a head cursor and a live count.
//
// Only the occupied subrange holds live values. A cell is zeroed the moment
// its item is taken out so that anything the item referenced becomes
// collectible immediately, not when the cell is eventually overwritten.
//
// ring is not safe for concurrent use; the split engine mutates it only
// while holding the engine's exclusive access.
type ring[T any] struct {
	cells []T
	head  int
	count int
}

func newRing[T any](capacity int) *ring[T] {
	if capacity < 1 {
		panic("splitz: ring capacity must be at least 1")
	}
	return &ring[T]{cells: make([]T, capacity)}
}

func (r *ring[T]) len() int { return r.count }

// remaining returns the number of free cells.
func (r *ring[T]) remaining() int { return len(r.cells) - r.count }

// pushBack appends item to the tail. It returns false, leaving the ring
// untouched, when there is no room; capacity exhaustion is the only failure.
func (r *ring[T]) pushBack(item T) bool {
	if r.count == len(r.cells) {
		return false
	}
	r.cells[(r.head+r.count)%len(r.cells)] = item
	r.count++
	return true
}

// popFront removes and returns the oldest item, or reports an empty ring.
func (r *ring[T]) popFront() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	item := r.cells[r.head]
	r.cells[r.head] = zero
	r.head = (r.head + 1) % len(r.cells)
	r.count--
	return item, true
}

// drain empties the ring through the same release path as popFront.
func (r *ring[T]) drain() {
	for {
		if _, ok := r.popFront(); !ok {
			return
		}
	}
}

package splitz

import (
	"fmt"
	"time"
)

// StreamError represents a failed item traveling through a stream. It
// carries both the item that failed and the error itself, so a consumer on
// the error branch of SplitResults still has the offending input in hand.
type StreamError[T any] struct {
	// Item is the original item that caused the error.
	Item T

	// Err is the underlying error.
	Err error

	// Origin identifies the stage that produced the error.
	Origin string

	// Timestamp records when the error occurred.
	Timestamp time.Time
}

// NewStreamError creates a new StreamError with the current timestamp.
func NewStreamError[T any](item T, err error, origin string) *StreamError[T] {
	return &StreamError[T]{
		Item:      item,
		Err:       err,
		Origin:    origin,
		Timestamp: time.Now(),
	}
}

// String returns a human-readable representation of the error.
func (se *StreamError[T]) String() string {
	return fmt.Sprintf("StreamError[%s]: %v (item: %v, time: %s)",
		se.Origin, se.Err, se.Item, se.Timestamp.Format(time.RFC3339))
}

// Unwrap returns the underlying error, enabling error wrapping chains.
func (se *StreamError[T]) Unwrap() error {
	return se.Err
}

// Error implements the error interface.
func (se *StreamError[T]) Error() string {
	return se.String()
}

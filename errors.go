package splitz

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrEndOfStream is returned by Next and TryNext once the underlying
// sequence is exhausted. It is a terminal signal, not a failure: every
// subsequent call returns it again.
var ErrEndOfStream = errors.New("splitz: end of stream")

// ErrWouldBlock is returned by TryNext when no item is ready right now.
//
// It is a control flow signal, not a failure. The caller should poll again
// later (or switch to the blocking Next) rather than propagating the error.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsEndOfStream reports whether err indicates the end of the sequence.
func IsEndOfStream(err error) bool {
	return errors.Is(err, ErrEndOfStream)
}

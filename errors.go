package persist

import (
	"errors"

	"golang.org/x/xerrors"
)

// ErrIndexOutOfRange is returned by List.Get and List.Set when the index
// given does not lie in [0, Len()).
var ErrIndexOutOfRange = errors.New("persist: index out of range")

// ErrIteratorExhausted is returned by a pull-style iterator's Next method
// once it has yielded the final element.
var ErrIteratorExhausted = errors.New("persist: iterator exhausted")

func indexOutOfRangeError(i, size int) error {
	return xerrors.Errorf("index %d, len %d: %w", i, size, ErrIndexOutOfRange)
}

func iteratorExhaustedError() error {
	return xerrors.Errorf("advance past end: %w", ErrIteratorExhausted)
}

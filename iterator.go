package persist

import "iter"

// Iterator is a pull-style cursor over a sequence, built from a Seq via
// iter.Pull. Most callers should prefer ranging directly over List.All,
// Map.All, or the other iter.Seq-returning methods; Iterator exists for
// callers that need to interleave iteration with other work rather than
// hand a range loop a closure.
//
// An Iterator must be closed once the caller is done with it, unless it
// was drained to exhaustion (Next returned ErrIteratorExhausted), which
// closes it automatically.
type Iterator[V any] struct {
	next func() (V, bool)
	stop func()
	done bool
}

// NewIterator returns a pull-style Iterator over seq.
func NewIterator[V any](seq iter.Seq[V]) *Iterator[V] {
	next, stop := iter.Pull(seq)
	return &Iterator[V]{next: next, stop: stop}
}

// Next returns the next element, or ErrIteratorExhausted once the
// sequence is spent.
func (it *Iterator[V]) Next() (V, error) {
	if it.done {
		var zero V
		return zero, iteratorExhaustedError()
	}
	v, ok := it.next()
	if !ok {
		it.done = true
		it.stop()
		var zero V
		return zero, iteratorExhaustedError()
	}
	return v, nil
}

// Close releases resources associated with it. Safe to call more than
// once, and unnecessary after Next has returned ErrIteratorExhausted.
func (it *Iterator[V]) Close() {
	if !it.done {
		it.done = true
		it.stop()
	}
}

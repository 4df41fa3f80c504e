package persist

import (
	"iter"
	"reflect"

	"github.com/benjamin-bader/persist/internal/vector"
)

// List is a persistent, immutable indexed sequence. The zero List is empty
// and ready to use.
//
// A List is backed by a 32-way branching radix trie holding all but its
// last up-to-32 elements, which live in a small tail buffer; this gives
// indexed reads and writes O(log32 n) cost and Add amortized O(1).
type List[V any] struct {
	v vector.Vector[V]
}

// NewList returns a List holding vals, in order.
func NewList[V any](vals ...V) List[V] {
	return List[V]{v: vector.FromSlice(vals)}
}

// FromSlice returns a List holding the elements of vals, in order. As with
// NewList, vals is never retained: the returned List shares no backing
// array with the slice.
func FromSlice[V any](vals []V) List[V] {
	return List[V]{v: vector.FromSlice(vals)}
}

// FromSeq returns a List holding the elements produced by seq, in order.
// seq is consumed eagerly; the resulting List does not re-invoke it.
func FromSeq[V any](seq iter.Seq[V]) List[V] {
	var v vector.Vector[V]
	for e := range seq {
		v = v.Append(e)
	}
	return List[V]{v: v}
}

// Len reports the number of elements in l.
func (l List[V]) Len() int { return l.v.Len() }

// IsEmpty reports whether l holds no elements.
func (l List[V]) IsEmpty() bool { return l.v.Len() == 0 }

// Get returns the element at index i.
func (l List[V]) Get(i int) (V, error) {
	val, ok := l.v.Get(i)
	if !ok {
		return val, indexOutOfRangeError(i, l.v.Len())
	}
	return val, nil
}

// Set returns a List with the element at index i replaced by val.
func (l List[V]) Set(i int, val V) (List[V], error) {
	newV, ok := l.v.Overwrite(i, val)
	if !ok {
		return l, indexOutOfRangeError(i, l.v.Len())
	}
	return List[V]{v: newV}, nil
}

// Add returns a List with val appended after the last element.
func (l List[V]) Add(val V) List[V] {
	return List[V]{v: l.v.Append(val)}
}

// Contains reports whether val is present in l, comparing elements with
// reflect.DeepEqual since V carries no equality contract of its own.
func (l List[V]) Contains(val V) bool {
	for e := range l.All() {
		if reflect.DeepEqual(e, val) {
			return true
		}
	}
	return false
}

// ContainsAll reports whether every element of vals is present in l.
func (l List[V]) ContainsAll(vals ...V) bool {
	for _, val := range vals {
		if !l.Contains(val) {
			return false
		}
	}
	return true
}

// All returns an iterator over l's elements in index order.
func (l List[V]) All() iter.Seq[V] {
	return vector.All(l.v)
}

// Iterator returns a pull-style cursor over l's elements, in index order.
func (l List[V]) Iterator() *Iterator[V] {
	return NewIterator(l.All())
}

// String returns a short description of l's size and shape.
func (l List[V]) String() string {
	return l.v.String()
}

// LongString returns a recursive, indented rendering of l's entire backing
// trie, for debugging.
func (l List[V]) LongString() string {
	return l.v.LongString("")
}

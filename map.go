package persist

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	"github.com/benjamin-bader/persist/internal/hamt"
	"github.com/benjamin-bader/persist/internal/smallmap"
)

// Map is a persistent, immutable map from keys to values. The zero Map is
// empty and ready to use, hashing and comparing keys with ==. For key
// types that need a different equality relation, or that carry unexported
// fields ComparableHasher can't reach with hash/maphash.WriteComparable,
// use NewMapWithHasher instead.
//
// Grown one Put at a time, Map is a packed linear-probe table
// (internal/smallmap) up to 9 entries; the 10th distinct key promotes it to
// a hash array-mapped trie (internal/hamt). NewMap and NewMapWithHasher
// given more than 8 pairs build the trie directly. Both representations are immutable, so this promotion
// is invisible to callers beyond its effect on asymptotic complexity.
type Map[K comparable, V any] struct {
	hasher Hasher[K]
	small  smallmap.Table[K, V]
	big    hamt.Map[K, V]
	isBig  bool
}

// NewMap returns a Map holding pairs, later pairs overwriting earlier ones
// for the same key, hashing and comparing keys with ==.
func NewMap[K comparable, V any](pairs ...KV[K, V]) Map[K, V] {
	return NewMapWithHasher(ComparableHasher[K]{}, pairs...)
}

// NewMapWithHasher returns a Map holding pairs, using hasher to hash and
// compare keys instead of ==. Up to 8 pairs are held in the small-map
// representation; more than 8 go straight into the trie.
func NewMapWithHasher[K comparable, V any](hasher Hasher[K], pairs ...KV[K, V]) Map[K, V] {
	m := Map[K, V]{hasher: hasher}
	if len(pairs) > 8 {
		keys := make([]K, len(pairs))
		vals := make([]V, len(pairs))
		for i, p := range pairs {
			keys[i] = p.Key
			vals[i] = p.Val
		}
		return Map[K, V]{hasher: hasher, big: hamt.FromEntries(m.resolveHasher(), keys, vals), isBig: true}
	}
	for _, p := range pairs {
		m = m.Put(p.Key, p.Val)
	}
	return m
}

func (m Map[K, V]) resolveHasher() Hasher[K] {
	if m.hasher != nil {
		return m.hasher
	}
	return ComparableHasher[K]{}
}

// Len reports the number of key/value pairs in m.
func (m Map[K, V]) Len() int {
	if m.isBig {
		return m.big.Len()
	}
	return m.small.Len()
}

// IsEmpty reports whether m holds no pairs.
func (m Map[K, V]) IsEmpty() bool { return m.Len() == 0 }

// Get returns the value bound to key and whether it was found.
func (m Map[K, V]) Get(key K) (V, bool) {
	hasher := m.resolveHasher()
	if m.isBig {
		return m.big.Get(hasher, key)
	}
	return m.small.Get(hasher.Equal, key)
}

// ContainsKey reports whether key is bound in m.
func (m Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// ContainsValue reports whether val is bound to any key in m. Values are
// compared with reflect.DeepEqual, since V carries no equality contract of
// its own.
func (m Map[K, V]) ContainsValue(val V) bool {
	for _, v := range m.entrySeq() {
		if reflect.DeepEqual(v, val) {
			return true
		}
	}
	return false
}

// Put returns a Map with key bound to val.
func (m Map[K, V]) Put(key K, val V) Map[K, V] {
	hasher := m.resolveHasher()
	if m.isBig {
		return Map[K, V]{hasher: m.hasher, big: m.big.Put(hasher, key, val), isBig: true}
	}

	equal := hasher.Equal
	if m.small.Full() && !m.small.ContainsKey(equal, key) {
		pairs := m.small.Pairs()
		keys := make([]K, len(pairs)+1)
		vals := make([]V, len(pairs)+1)
		for i, p := range pairs {
			keys[i] = p.Key
			vals[i] = p.Val
		}
		keys[len(pairs)] = key
		vals[len(pairs)] = val
		return Map[K, V]{hasher: m.hasher, big: hamt.FromEntries(hasher, keys, vals), isBig: true}
	}

	newSmall, _ := m.small.Put(equal, key, val)
	return Map[K, V]{hasher: m.hasher, small: newSmall}
}

// Remove returns a Map with key unbound, the value it held, and whether it
// was present.
func (m Map[K, V]) Remove(key K) (Map[K, V], V, bool) {
	hasher := m.resolveHasher()
	if m.isBig {
		newBig, val, removed := m.big.Remove(hasher, key)
		if !removed {
			return m, val, false
		}
		return Map[K, V]{hasher: m.hasher, big: newBig, isBig: true}, val, true
	}

	equal := hasher.Equal
	val, found := m.small.Get(equal, key)
	if !found {
		return m, val, false
	}
	newSmall, _ := m.small.Remove(equal, key)
	return Map[K, V]{hasher: m.hasher, small: newSmall}, val, true
}

func (m Map[K, V]) entrySeq() iter.Seq2[K, V] {
	if m.isBig {
		return m.big.All()
	}
	return func(yield func(K, V) bool) {
		for _, p := range m.small.Pairs() {
			if !yield(p.Key, p.Val) {
				return
			}
		}
	}
}

// All returns an iterator over m's (key, value) pairs, in unspecified but
// deterministic order for any fixed map value.
func (m Map[K, V]) All() iter.Seq2[K, V] { return m.entrySeq() }

// Keys returns an iterator over m's keys.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.entrySeq() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over m's values.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.entrySeq() {
			if !yield(v) {
				return
			}
		}
	}
}

// Entries returns an iterator over m's (key, value) pairs as Entry values.
func (m Map[K, V]) Entries() iter.Seq[Entry[K, V]] {
	return func(yield func(Entry[K, V]) bool) {
		for k, v := range m.entrySeq() {
			if !yield(Entry[K, V]{Key: k, Val: v}) {
				return
			}
		}
	}
}

// EntryIterator returns a pull-style cursor over m's (key, value) pairs.
func (m Map[K, V]) EntryIterator() *Iterator[Entry[K, V]] {
	return NewIterator(m.Entries())
}

// String returns a short description of m's size and backing shape.
func (m Map[K, V]) String() string {
	if m.isBig {
		return m.big.String()
	}
	return fmt.Sprintf("Map{small, nentries:%d}", m.small.Len())
}

// LongString returns a recursive, indented rendering of m's entire backing
// trie, for debugging. On a small Map it just lists the pairs, since there
// is no trie to walk yet.
func (m Map[K, V]) LongString() string {
	if m.isBig {
		return m.big.LongString("")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Map{small,\n")
	for _, p := range m.small.Pairs() {
		fmt.Fprintf(&b, "\t(%v, %v)\n", p.Key, p.Val)
	}
	b.WriteString("}")
	return b.String()
}

// Package smallmap is the linear-probe fallback used by persist.Map for up
// to 9 entries, promoting to a HAMT on the 10th distinct key. It has no
// hashing of its own: every operation is a linear scan under key equality,
// which is cheaper than trie machinery at this size and avoids computing a
// hash at all until the map actually needs one.
package smallmap

// maxEntries is the largest size a Table may hold before a Put must
// instead build a HAMT (see persist.Map.Put).
const maxEntries = 9

// Pair is one key/value binding.
type Pair[K, V any] struct {
	Key K
	Val V
}

// Table is a packed, copy-on-write slice of up to maxEntries pairs. The
// zero Table is empty and ready to use.
type Table[K, V any] struct {
	pairs []Pair[K, V]
}

// Len reports the number of pairs in t.
func (t Table[K, V]) Len() int { return len(t.pairs) }

// Full reports whether t already holds maxEntries pairs, i.e. whether the
// next absent-key Put must promote to a HAMT instead.
func (t Table[K, V]) Full() bool { return len(t.pairs) >= maxEntries }

func (t Table[K, V]) indexOf(equal func(a, b K) bool, key K) int {
	for i, p := range t.pairs {
		if equal(p.Key, key) {
			return i
		}
	}
	return -1
}

// Get returns the value bound to key and whether it was found.
func (t Table[K, V]) Get(equal func(a, b K) bool, key K) (V, bool) {
	if i := t.indexOf(equal, key); i >= 0 {
		return t.pairs[i].Val, true
	}
	var zero V
	return zero, false
}

// ContainsKey reports whether key is bound in t.
func (t Table[K, V]) ContainsKey(equal func(a, b K) bool, key K) bool {
	return t.indexOf(equal, key) >= 0
}

// ContainsValue reports whether val is bound to any key in t.
func (t Table[K, V]) ContainsValue(equalVal func(a, b V) bool, val V) bool {
	for _, p := range t.pairs {
		if equalVal(p.Val, val) {
			return true
		}
	}
	return false
}

// Put returns a Table with key bound to val, and whether the key was newly
// inserted. The caller is responsible for checking Full() before calling
// Put with an absent key; Put itself does not enforce maxEntries so that
// the facade's promotion path (an absent key added to a full table) can
// decide what to do instead.
func (t Table[K, V]) Put(equal func(a, b K) bool, key K, val V) (Table[K, V], bool) {
	if i := t.indexOf(equal, key); i >= 0 {
		// Always clones and replaces, even if val equals the stored value: V
		// has no equality contract to check that against, so there's no
		// "value unchanged" short-circuit here.
		nt := Table[K, V]{pairs: make([]Pair[K, V], len(t.pairs))}
		copy(nt.pairs, t.pairs)
		nt.pairs[i].Val = val
		return nt, false
	}
	nt := Table[K, V]{pairs: make([]Pair[K, V], len(t.pairs)+1)}
	copy(nt.pairs, t.pairs)
	nt.pairs[len(t.pairs)] = Pair[K, V]{Key: key, Val: val}
	return nt, true
}

// Remove returns a Table with key unbound, preserving the relative order
// of the remaining pairs, and whether key was present.
func (t Table[K, V]) Remove(equal func(a, b K) bool, key K) (Table[K, V], bool) {
	i := t.indexOf(equal, key)
	if i < 0 {
		return t, false
	}
	nt := Table[K, V]{pairs: make([]Pair[K, V], 0, len(t.pairs)-1)}
	nt.pairs = append(nt.pairs, t.pairs[:i]...)
	nt.pairs = append(nt.pairs, t.pairs[i+1:]...)
	return nt, true
}

// Pairs returns the table's pairs in stored order. The returned slice must
// not be mutated by the caller.
func (t Table[K, V]) Pairs() []Pair[K, V] {
	return t.pairs
}

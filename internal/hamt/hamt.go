package hamt

import (
	"iter"

	"github.com/benjamin-bader/persist/internal/keyhash"
)

// Map is a persistent hash array-mapped trie. The zero Map is empty and
// ready to use.
type Map[K, V any] struct {
	root  *Node[K, V]
	count int
}

// Len reports the number of key/value pairs reachable from m.
func (m Map[K, V]) Len() int { return m.count }

// IsEmpty reports whether m holds no pairs.
func (m Map[K, V]) IsEmpty() bool { return m.root == nil }

// Get returns the value bound to key and whether it was found.
func (m Map[K, V]) Get(hasher keyhash.Hasher[K], key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	hash := keyhash.StoredHash32(hasher, key)
	return Get(m.root, hasher, hash, key, 0)
}

// Put returns a Map with key bound to val.
func (m Map[K, V]) Put(hasher keyhash.Hasher[K], key K, val V) Map[K, V] {
	hash := keyhash.StoredHash32(hasher, key)
	if m.root == nil {
		return Map[K, V]{root: NewLeaf(hash, key, val, 0), count: 1}
	}
	newRoot, grew := Put(m.root, hasher, hash, key, val, 0)
	count := m.count
	if grew {
		count++
	}
	return Map[K, V]{root: newRoot, count: count}
}

// Remove returns a Map with key unbound, the value it held, and whether it
// was present.
func (m Map[K, V]) Remove(hasher keyhash.Hasher[K], key K) (Map[K, V], V, bool) {
	if m.root == nil {
		var zero V
		return m, zero, false
	}
	hash := keyhash.StoredHash32(hasher, key)
	newRoot, val, removed := Remove(m.root, hasher, hash, key, 0)
	if !removed {
		return m, val, false
	}
	return Map[K, V]{root: newRoot, count: m.count - 1}, val, true
}

// All returns a depth-first iterator over m's (key, value) pairs.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return All(m.root)
}

// FromEntries builds a Map from a slice of (key, value) pairs, later pairs
// overwriting earlier ones for the same key. Used by the root package's
// small-map-to-HAMT promotion and by the >8-pair variadic constructor.
func FromEntries[K, V any](hasher keyhash.Hasher[K], keys []K, vals []V) Map[K, V] {
	var m Map[K, V]
	for i := range keys {
		m = m.Put(hasher, keys[i], vals[i])
	}
	return m
}

// Package keyhash is the module's shared key-hashing/equality contract. It
// lives below internal/hamt and the root persist package so both can use
// the same Hasher without an import cycle.
package keyhash

import (
	"hash/maphash"
	"reflect"
)

// Hasher defines a hash function and an equivalence relation over values of
// type K. Two keys that Equal reports equal MUST produce the same Hash.
type Hasher[K any] interface {
	Hash(*maphash.Hash, K)
	Equal(x, y K) bool
}

// ComparableHasher is the default Hasher for any comparable key type. Its
// Equal method is consistent with the built-in == operator.
type ComparableHasher[K comparable] struct{}

// Hash writes k's canonical byte representation to h.
func (ComparableHasher[K]) Hash(h *maphash.Hash, k K) {
	maphash.WriteComparable(h, k)
}

// Equal reports whether x and y are the same key.
func (ComparableHasher[K]) Equal(x, y K) bool {
	return x == y
}

var seed = maphash.MakeSeed()

// IsNilKey reports whether k is a nil pointer, interface, channel, map,
// slice, or unsafe pointer value. comparable's zero value has no universal
// "null" the way a Java Object reference does, but the nilable
// instantiations of K do, and the equality/hashing contract requires a nil
// key to be treated as raw hash 0. Value-kinded K (int, string, structs,
// ...) never reach the nil branch, since they have no nil to be.
func IsNilKey[K any](k K) bool {
	v := reflect.ValueOf(k)
	if !v.IsValid() {
		// A nil interface value carries no dynamic type at all.
		return true
	}
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

// fold32 xor-folds a 64-bit maphash sum into 32 bits, the same fold the
// teacher's 32-bit HAMT variant applies to its FNV output before using it
// as the trie's index source.
func fold32(h64 uint64) uint32 {
	return uint32(h64>>32) ^ uint32(h64)
}

// RawHash32 computes the raw (pre-bias) 32-bit hash of a key under the
// given Hasher, honoring the nil-key convention above.
func RawHash32[K any](hasher Hasher[K], key K) uint32 {
	if IsNilKey(key) {
		return 0
	}
	var mh maphash.Hash
	mh.SetSeed(seed)
	hasher.Hash(&mh, key)
	return fold32(mh.Sum64())
}

// StoredHash32 applies the source's exact "31 + rawHash" bias: it
// distinguishes a nil key (raw hash 0) from an unset slot and keeps the
// stored hash away from zero.
func StoredHash32[K any](hasher Hasher[K], key K) uint32 {
	return 31 + RawHash32(hasher, key)
}

package hamt_test

import (
	"hash/maphash"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjamin-bader/persist/internal/hamt"
	"github.com/benjamin-bader/persist/internal/keyhash"
)

type intHasher struct{}

func (intHasher) Hash(h *maphash.Hash, v int) { maphash.WriteComparable(h, v) }
func (intHasher) Equal(a, b int) bool         { return a == b }

func TestPutOne(t *testing.T) {
	var m hamt.Map[int, string]
	m = m.Put(intHasher{}, 1, "one")

	v, ok := m.Get(intHasher{}, 1)
	require.True(t, ok)
	assert.Equal(t, "one", v)
	assert.Equal(t, 1, m.Len())
}

func TestPutReplacesExistingKey(t *testing.T) {
	var m hamt.Map[int, string]
	m = m.Put(intHasher{}, 1, "one")
	m = m.Put(intHasher{}, 1, "uno")

	v, _ := m.Get(intHasher{}, 1)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 1, m.Len())
}

func TestRemove(t *testing.T) {
	var m hamt.Map[int, string]
	m = m.Put(intHasher{}, 1, "one")
	m = m.Put(intHasher{}, 2, "two")

	m2, val, removed := m.Remove(intHasher{}, 1)
	require.True(t, removed)
	assert.Equal(t, "one", val)
	assert.Equal(t, 1, m2.Len())

	_, ok := m2.Get(intHasher{}, 1)
	assert.False(t, ok)

	// original map is untouched
	_, ok = m.Get(intHasher{}, 1)
	assert.True(t, ok)
}

func TestRemoveAbsentKey(t *testing.T) {
	var m hamt.Map[int, string]
	m = m.Put(intHasher{}, 1, "one")

	same, _, removed := m.Remove(intHasher{}, 99)
	assert.False(t, removed)
	assert.Equal(t, m, same)
}

// TestBuildHamtStress mirrors S2: insert every odd integer in [1, 16383]
// mapped to key+1, in shuffled order, then remove them all in a different
// shuffled order.
func TestBuildHamtStress(t *testing.T) {
	const limit = 16384
	var keys []int
	for k := 1; k < limit; k += 2 {
		keys = append(keys, k)
	}
	require.Equal(t, 8192, len(keys))

	rng := rand.New(rand.NewSource(42))
	putOrder := append([]int(nil), keys...)
	rng.Shuffle(len(putOrder), func(i, j int) { putOrder[i], putOrder[j] = putOrder[j], putOrder[i] })

	var m hamt.Map[int, int]
	for _, k := range putOrder {
		m = m.Put(intHasher{}, k, k+1)
	}

	assert.Equal(t, len(keys), m.Len())
	for _, k := range keys {
		v, ok := m.Get(intHasher{}, k)
		require.True(t, ok, "missing key %d", k)
		assert.Equal(t, k+1, v)
	}

	removeOrder := append([]int(nil), keys...)
	rng.Shuffle(len(removeOrder), func(i, j int) { removeOrder[i], removeOrder[j] = removeOrder[j], removeOrder[i] })

	for _, k := range removeOrder {
		var removed bool
		m, _, removed = m.Remove(intHasher{}, k)
		require.True(t, removed, "failed to remove %d", k)
	}

	assert.Equal(t, 0, m.Len())
	assert.True(t, m.IsEmpty())
}

// constantHasher forces every key into the same slot at every trie level,
// exercising the collision node path (S3).
type constantHasher struct{}

func (constantHasher) Hash(h *maphash.Hash, v string) { h.WriteString("constant") }
func (constantHasher) Equal(a, b string) bool         { return a == b }

func TestHashCollision(t *testing.T) {
	var m hamt.Map[string, int]
	m = m.Put(constantHasher{}, "K1", 1)
	m = m.Put(constantHasher{}, "K2", 2)
	m = m.Put(constantHasher{}, "K3", 3)

	assert.Equal(t, 3, m.Len())
	for k, want := range map[string]int{"K1": 1, "K2": 2, "K3": 3} {
		v, ok := m.Get(constantHasher{}, k)
		require.True(t, ok)
		assert.Equal(t, want, v)
	}

	m, _, removed := m.Remove(constantHasher{}, "K2")
	require.True(t, removed)
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(constantHasher{}, "K1")
	assert.True(t, ok)
	_, ok = m.Get(constantHasher{}, "K3")
	assert.True(t, ok)

	m, _, removed = m.Remove(constantHasher{}, "K1")
	require.True(t, removed)
	m, _, removed = m.Remove(constantHasher{}, "K3")
	require.True(t, removed)
	assert.True(t, m.IsEmpty())
}

// TestPutSplitsBitmapSlotUsingEachKeysOwnHash targets a specific bug: two
// distinct keys that land in the same bitmap slot (same 5-bit chunk at the
// current level) must be split into a subtree built from each key's own
// stored hash. Using the wrong key's hash for one side makes
// buildTwoLeafSubtree see two equal hashes, fabricate a collision node
// under the wrong hash, and silently drop the first key: a later Get for it
// computes its real hash, descends by its real chunks, lands on a
// collision node whose hash doesn't match, and reports absent.
func TestPutSplitsBitmapSlotUsingEachKeysOwnHash(t *testing.T) {
	const chunkMask = 0x1f // low 5 bits: the chunk consumed at the root level

	var k1, k2 int
	h1 := keyhash.RawHash32(intHasher{}, 0)
	found := false
	for k := 1; k < 100000; k++ {
		h2 := keyhash.RawHash32(intHasher{}, k)
		if h2&chunkMask == h1&chunkMask && h2 != h1 {
			k1, k2 = 0, k
			found = true
			break
		}
	}
	require.True(t, found, "could not find two keys sharing a low chunk with different hashes")

	var m hamt.Map[int, string]
	m = m.Put(intHasher{}, k1, "first")
	m = m.Put(intHasher{}, k2, "second")

	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(intHasher{}, k1)
	require.True(t, ok, "first key lost after split")
	assert.Equal(t, "first", v)

	v, ok = m.Get(intHasher{}, k2)
	require.True(t, ok, "second key lost after split")
	assert.Equal(t, "second", v)
}

func TestIterationVisitsEveryPairOnce(t *testing.T) {
	var m hamt.Map[int, int]
	want := map[int]int{}
	for i := 0; i < 500; i++ {
		m = m.Put(intHasher{}, i, i*i)
		want[i] = i * i
	}

	got := map[int]int{}
	for k, v := range m.All() {
		got[k] = v
	}
	assert.Equal(t, want, got)
}

func TestFromEntries(t *testing.T) {
	keys := []int{1, 2, 3}
	vals := []string{"a", "b", "c"}
	m := hamt.FromEntries[int, string](intHasher{}, keys, vals)

	assert.Equal(t, 3, m.Len())
	v, ok := m.Get(intHasher{}, 2)
	require.True(t, ok)
	assert.Equal(t, "b", v)
}

var _ keyhash.Hasher[int] = intHasher{}

func TestMapStringAndLongString(t *testing.T) {
	var m hamt.Map[int, string]
	assert.Equal(t, "Map{empty}", m.String())

	for i := 0; i < 20; i++ {
		m = m.Put(intHasher{}, i, "v")
	}
	assert.Contains(t, m.String(), "count:20")
	assert.Contains(t, m.LongString(""), "count:20")
}

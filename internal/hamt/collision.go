package hamt

import "github.com/benjamin-bader/persist/internal/keyhash"

func putCollision[K, V any](n *Node[K, V], hasher keyhash.Hasher[K], hash uint32, key K, val V, shift uint) (*Node[K, V], bool) {
	if hash != n.hash {
		// A different hash reached this collision node's slot: wrap it in a
		// singleton bitmap link and insert normally against the wrapper.
		wrapper := &Node[K, V]{
			kind:   kindBitmap,
			bitmap: uint32(1) << chunk(n.hash, shift),
			cells:  []cell[K, V]{{hasEntry: false, child: n}},
		}
		return Put(wrapper, hasher, hash, key, val, shift)
	}

	for i, e := range n.entries {
		if hasher.Equal(e.key, key) {
			// Always clones and replaces, even if val equals e.val: V has no
			// equality contract to check that against, so there's no
			// "value unchanged" short-circuit here.
			nn := &Node[K, V]{kind: kindCollision, hash: n.hash, entries: make([]entry[K, V], len(n.entries))}
			copy(nn.entries, n.entries)
			nn.entries[i] = entry[K, V]{key: key, val: val}
			return nn, false
		}
	}

	nn := &Node[K, V]{kind: kindCollision, hash: n.hash, entries: make([]entry[K, V], len(n.entries)+1)}
	copy(nn.entries, n.entries)
	nn.entries[len(n.entries)] = entry[K, V]{key: key, val: val}
	return nn, true
}

func removeCollision[K, V any](n *Node[K, V], hasher keyhash.Hasher[K], hash uint32, key K) (*Node[K, V], V, bool) {
	var zero V
	if hash != n.hash {
		return n, zero, false
	}

	for i, e := range n.entries {
		if !hasher.Equal(e.key, key) {
			continue
		}
		if len(n.entries) == 1 {
			return nil, e.val, true
		}
		nn := &Node[K, V]{kind: kindCollision, hash: n.hash, entries: make([]entry[K, V], 0, len(n.entries)-1)}
		nn.entries = append(nn.entries, n.entries[:i]...)
		nn.entries = append(nn.entries, n.entries[i+1:]...)
		return nn, e.val, true
	}
	return n, zero, false
}

package hamt

import "github.com/benjamin-bader/persist/internal/keyhash"

func (n *Node[K, V]) cloneBitmap() *Node[K, V] {
	nn := &Node[K, V]{kind: kindBitmap, bitmap: n.bitmap, cells: make([]cell[K, V], len(n.cells))}
	copy(nn.cells, n.cells)
	return nn
}

func putBitmap[K, V any](n *Node[K, V], hasher keyhash.Hasher[K], hash uint32, key K, val V, shift uint) (*Node[K, V], bool) {
	idx := chunk(hash, shift)
	bit := uint32(1) << idx
	pIdx := packedIndex(n.bitmap, idx)

	if n.bitmap&bit == 0 {
		if popcount(n.bitmap) < promoteThreshold {
			nn := &Node[K, V]{kind: kindBitmap, bitmap: n.bitmap | bit, cells: make([]cell[K, V], len(n.cells)+1)}
			copy(nn.cells, n.cells[:pIdx])
			nn.cells[pIdx] = cell[K, V]{hasEntry: true, key: key, val: val}
			copy(nn.cells[pIdx+1:], n.cells[pIdx:])
			return nn, true
		}
		return promoteToDense(n, hasher, hash, key, val, shift)
	}

	c := n.cells[pIdx]
	if !c.hasEntry {
		newChild, grew := Put(c.child, hasher, hash, key, val, shift+nbits)
		if newChild == c.child {
			return n, grew
		}
		nn := n.cloneBitmap()
		nn.cells[pIdx].child = newChild
		return nn, grew
	}

	if hasher.Equal(c.key, key) {
		nn := n.cloneBitmap()
		nn.cells[pIdx] = cell[K, V]{hasEntry: true, key: key, val: val}
		return nn, false
	}

	// Two different keys land in the same slot: build a subtree that
	// distinguishes them and replace the cell with a link to it.
	oldHash := keyhash.StoredHash32(hasher, c.key)
	child := buildTwoLeafSubtree(shift+nbits, oldHash, c.key, c.val, hash, key, val)
	nn := n.cloneBitmap()
	nn.cells[pIdx] = cell[K, V]{hasEntry: false, child: child}
	return nn, true
}

// promoteToDense converts a bitmap node with promoteThreshold populated
// slots into a full 32-slot dense node, then performs the insert that
// triggered the promotion against the new shape.
func promoteToDense[K, V any](n *Node[K, V], hasher keyhash.Hasher[K], hash uint32, key K, val V, shift uint) (*Node[K, V], bool) {
	dense := &Node[K, V]{kind: kindDense}
	for i := uint32(0); i < tableCapacity; i++ {
		bit := uint32(1) << i
		if n.bitmap&bit == 0 {
			continue
		}
		c := n.cells[packedIndex(n.bitmap, i)]
		if c.hasEntry {
			dense.children[i] = NewLeaf(keyhash.StoredHash32(hasher, c.key), c.key, c.val, shift+nbits)
		} else {
			dense.children[i] = c.child
		}
		dense.childCount++
	}
	return putDense(dense, hasher, hash, key, val, shift)
}

func removeBitmap[K, V any](n *Node[K, V], hasher keyhash.Hasher[K], hash uint32, key K, shift uint) (*Node[K, V], V, bool) {
	var zero V
	idx := chunk(hash, shift)
	bit := uint32(1) << idx

	if n.bitmap&bit == 0 {
		return n, zero, false
	}

	pIdx := packedIndex(n.bitmap, idx)
	c := n.cells[pIdx]

	if !c.hasEntry {
		newChild, val, removed := Remove(c.child, hasher, hash, key, shift+nbits)
		if !removed {
			return n, zero, false
		}
		if newChild == nil {
			return n.withoutSlot(bit, pIdx), val, true
		}
		nn := n.cloneBitmap()
		nn.cells[pIdx].child = newChild
		return nn, val, true
	}

	if !hasher.Equal(c.key, key) {
		return n, zero, false
	}
	return n.withoutSlot(bit, pIdx), c.val, true
}

// withoutSlot returns the node with the populated slot at pIdx removed, or
// nil if that was the node's only populated slot, so no empty node is ever
// left in the tree.
func (n *Node[K, V]) withoutSlot(bit uint32, pIdx int) *Node[K, V] {
	if n.bitmap == bit {
		return nil
	}
	nn := &Node[K, V]{kind: kindBitmap, bitmap: n.bitmap &^ bit, cells: make([]cell[K, V], len(n.cells)-1)}
	copy(nn.cells, n.cells[:pIdx])
	copy(nn.cells[pIdx:], n.cells[pIdx+1:])
	return nn
}

package vector

// Vector is a persistent, 32-way branching radix trie with a tail buffer
// for O(1) amortized append. The zero Vector is empty and ready to use.
//
// shift is a positive multiple of bitChunk in every Vector returned by
// Append, even while root is still nil; only the zero Vector has shift 0.
// The convention (matching Clojure's PersistentVector, from which this
// design descends) is that root sits one level above the leaves it points
// to, so a tree holding a single leaf's worth of elements still has
// shift == bitChunk rather than 0.
type Vector[V any] struct {
	size  int
	shift uint
	root  *node[V]
	tail  []V
}

// Len reports the number of elements in v.
func (v Vector[V]) Len() int { return v.size }

func tailOffset(size int) int {
	if size < nodeCap {
		return 0
	}
	return ((size - 1) >> bitChunk) << bitChunk
}

// Get returns the element at index i and whether i was in range.
func (v Vector[V]) Get(i int) (V, bool) {
	if i < 0 || i >= v.size {
		var zero V
		return zero, false
	}
	if off := tailOffset(v.size); i >= off {
		return v.tail[i-off], true
	}
	n := v.root
	for level := v.shift; level > 0; level -= bitChunk {
		n = n.children[(i>>level)&chunkMask]
	}
	return n.values[i&chunkMask], true
}

// Append returns a Vector with val appended after the last element.
func (v Vector[V]) Append(val V) Vector[V] {
	off := tailOffset(v.size)
	tailLen := v.size - off
	if tailLen < nodeCap {
		shift := v.shift
		if shift == 0 {
			shift = bitChunk
		}
		newTail := make([]V, tailLen+1)
		copy(newTail, v.tail)
		newTail[tailLen] = val
		return Vector[V]{size: v.size + 1, shift: shift, root: v.root, tail: newTail}
	}

	leaf := &node[V]{}
	copy(leaf.values[:], v.tail)

	var newRoot *node[V]
	newShift := v.shift
	if v.root == nil {
		newRoot = &node[V]{}
		newRoot.children[0] = leaf
		newShift = bitChunk
	} else if (v.size >> bitChunk) > (1 << v.shift) {
		newRoot = &node[V]{}
		newRoot.children[0] = v.root
		newRoot.children[1] = newPath(v.shift, leaf)
		newShift = v.shift + bitChunk
	} else {
		newRoot = pushLeaf(v.shift, v.root, leaf, v.size)
	}

	return Vector[V]{size: v.size + 1, shift: newShift, root: newRoot, tail: []V{val}}
}

// pushLeaf hangs leaf under n at the position implied by size (the vector's
// pre-append element count), path-copying every node on the way down.
func pushLeaf[V any](level uint, n *node[V], leaf *node[V], size int) *node[V] {
	idx := ((size - 1) >> level) & chunkMask
	nn := n.clone()
	if level == bitChunk {
		nn.children[idx] = leaf
		return nn
	}
	child := n.children[idx]
	if child == nil {
		nn.children[idx] = newPath(level-bitChunk, leaf)
	} else {
		nn.children[idx] = pushLeaf(level-bitChunk, child, leaf, size)
	}
	return nn
}

// Overwrite returns a Vector with the element at index i replaced by val.
func (v Vector[V]) Overwrite(i int, val V) (Vector[V], bool) {
	if i < 0 || i >= v.size {
		return v, false
	}
	off := tailOffset(v.size)
	if i >= off {
		newTail := make([]V, len(v.tail))
		copy(newTail, v.tail)
		newTail[i-off] = val
		return Vector[V]{size: v.size, shift: v.shift, root: v.root, tail: newTail}, true
	}
	newRoot := doAssoc(v.shift, v.root, i, val)
	return Vector[V]{size: v.size, shift: v.shift, root: newRoot, tail: v.tail}, true
}

func doAssoc[V any](level uint, n *node[V], i int, val V) *node[V] {
	nn := n.clone()
	if level == 0 {
		nn.values[i&chunkMask] = val
		return nn
	}
	idx := (i >> level) & chunkMask
	nn.children[idx] = doAssoc(level-bitChunk, n.children[idx], i, val)
	return nn
}

// FromSlice builds a Vector holding the elements of s, in order.
func FromSlice[V any](s []V) Vector[V] {
	var v Vector[V]
	for _, e := range s {
		v = v.Append(e)
	}
	return v
}

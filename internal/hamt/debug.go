package hamt

import (
	"fmt"
	"strings"
)

// String returns a short, one-line description of n's shape and size.
func (n *Node[K, V]) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case kindBitmap:
		return fmt.Sprintf("bitmapNode{bitmap:%#010x, nentries:%d}", n.bitmap, len(n.cells))
	case kindDense:
		return fmt.Sprintf("denseNode{childCount:%d}", n.childCount)
	default:
		return fmt.Sprintf("collisionNode{hash:%#010x, nentries:%d}", n.hash, len(n.entries))
	}
}

// LongString returns a recursive, indented rendering of the subtree rooted
// at n, one line per node.
func (n *Node[K, V]) LongString(indent string) string {
	if n == nil {
		return indent + "<nil>"
	}

	var b strings.Builder
	switch n.kind {
	case kindBitmap:
		fmt.Fprintf(&b, "%sbitmapNode{bitmap:%#010x,\n", indent, n.bitmap)
		for i, c := range n.cells {
			if c.hasEntry {
				fmt.Fprintf(&b, "%s\tcells[%d]: (%v, %v)\n", indent, i, c.key, c.val)
			} else {
				fmt.Fprintf(&b, "%s\tcells[%d]:\n%s\n", indent, i, c.child.LongString(indent+"\t\t"))
			}
		}
		fmt.Fprintf(&b, "%s}", indent)
	case kindDense:
		fmt.Fprintf(&b, "%sdenseNode{childCount:%d,\n", indent, n.childCount)
		for i, child := range n.children {
			if child == nil {
				continue
			}
			fmt.Fprintf(&b, "%s\tchildren[%d]:\n%s\n", indent, i, child.LongString(indent+"\t\t"))
		}
		fmt.Fprintf(&b, "%s}", indent)
	default:
		fmt.Fprintf(&b, "%scollisionNode{hash:%#010x,\n", indent, n.hash)
		for i, e := range n.entries {
			fmt.Fprintf(&b, "%s\tentries[%d]: (%v, %v)\n", indent, i, e.key, e.val)
		}
		fmt.Fprintf(&b, "%s}", indent)
	}
	return b.String()
}

// String returns a short description of m's size and shape.
func (m Map[K, V]) String() string {
	if m.root == nil {
		return "Map{empty}"
	}
	return fmt.Sprintf("Map{count:%d, root:%s}", m.count, m.root)
}

// LongString returns a recursive, indented rendering of m's entire tree.
func (m Map[K, V]) LongString(indent string) string {
	if m.root == nil {
		return indent + "Map{empty}"
	}
	return indent + fmt.Sprintf("Map{count:%d,\n%s\n%s}", m.count, m.root.LongString(indent+"\t"), indent)
}

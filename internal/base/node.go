// Package base holds the B-tree node model: fixed-capacity key and child
// arrays sized by the minimum degree t, and the free list the engines
// allocate from.
package base

import "fmt"

// Node is a single B-tree node. A node with minimum degree t holds up to
// 2t keys and, when internal, up to 2t+1 children. Keys[0:Count] are sorted
// ascending; Children[i] roots the subtree strictly between Keys[i-1] and
// Keys[i]. "Full" is Count == 2t exactly: a node is allowed to sit at 2t
// between operations and is split on the next descent through it.
type Node struct {
	Count    int
	Leaf     bool
	Keys     []uint32 // len 2t, Keys[0:Count] meaningful
	Children []*Node  // len 2t+1, Children[0:Count+1] meaningful when internal
}

// NewLeaf returns an empty leaf node with capacity for minimum degree t.
// It is the direct constructor; pooled allocation through FreeList.Get
// falls back to it on a pool miss.
func NewLeaf(t int) *Node {
	return &Node{
		Leaf:     true,
		Keys:     make([]uint32, 2*t),
		Children: make([]*Node, 2*t+1),
	}
}

// NewSibling returns an empty node with the same capacity and leaf flag as
// n, for use as n's split sibling. Like NewLeaf it allocates outside the
// free list.
func NewSibling(n *Node) *Node {
	return &Node{
		Leaf:     n.Leaf,
		Keys:     make([]uint32, len(n.Keys)),
		Children: make([]*Node, len(n.Children)),
	}
}

// Full reports whether the node is at the 2t-key split threshold.
func (n *Node) Full(t int) bool {
	return n.Count == 2*t
}

// KeyAt returns the key in slot i. Panics if i is outside [0, Count);
// slot misuse is a programmer error, not a runtime condition.
func (n *Node) KeyAt(i int) uint32 {
	if i < 0 || i >= n.Count {
		panic(fmt.Sprintf("base: key slot %d out of range [0,%d)", i, n.Count))
	}
	return n.Keys[i]
}

// ChildAt returns the child in slot i. Panics if n is a leaf or i is
// outside [0, Count].
func (n *Node) ChildAt(i int) *Node {
	if n.Leaf {
		panic("base: child slot access on leaf node")
	}
	if i < 0 || i > n.Count {
		panic(fmt.Sprintf("base: child slot %d out of range [0,%d]", i, n.Count))
	}
	return n.Children[i]
}

// FindPosition returns the index of the child that should hold key during
// an insertion descent: the first slot whose key strictly exceeds key, or
// Count when none does. Equal keys route right, which is what stores a
// duplicate after its twin.
func (n *Node) FindPosition(key uint32) int {
	for i := 0; i < n.Count; i++ {
		if key < n.Keys[i] {
			return i
		}
	}
	return n.Count
}

// InsertKeyAt shifts Keys[i:Count] right one slot and stores key at i.
// Leaf insertion; children are untouched.
func (n *Node) InsertKeyAt(i int, key uint32) {
	if i < 0 || i > n.Count || n.Count >= len(n.Keys) {
		panic(fmt.Sprintf("base: insert at %d with count %d cap %d", i, n.Count, len(n.Keys)))
	}
	copy(n.Keys[i+1:n.Count+1], n.Keys[i:n.Count])
	n.Keys[i] = key
	n.Count++
}

// InsertSeparatorAt stores a promoted separator key at slot i and opens the
// child slot i+1 for the split sibling. The caller links the sibling in.
func (n *Node) InsertSeparatorAt(i int, key uint32) {
	if i < 0 || i > n.Count || n.Count >= len(n.Keys) {
		panic(fmt.Sprintf("base: separator at %d with count %d cap %d", i, n.Count, len(n.Keys)))
	}
	copy(n.Keys[i+1:n.Count+1], n.Keys[i:n.Count])
	n.Keys[i] = key
	copy(n.Children[i+2:n.Count+2], n.Children[i+1:n.Count+1])
	n.Count++
}

// RemoveKeyAt shifts Keys[i+1:Count] left over slot i. Leaf removal.
func (n *Node) RemoveKeyAt(i int) {
	if i < 0 || i >= n.Count {
		panic(fmt.Sprintf("base: remove at %d with count %d", i, n.Count))
	}
	copy(n.Keys[i:n.Count-1], n.Keys[i+1:n.Count])
	n.Count--
}

// Reset clears the node for reuse. Child pointers are nilled so a pooled
// node cannot keep a discarded subtree alive.
func (n *Node) Reset() {
	n.Count = 0
	n.Leaf = false
	for i := range n.Children {
		n.Children[i] = nil
	}
}

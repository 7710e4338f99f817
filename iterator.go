package memdex

import (
	"iter"

	"memdex/internal/base"
)

// All returns a lazy in-order sequence of (key, depth) pairs, with the root
// at depth 0. The sequence is restartable and does not mutate the tree; it
// is the hook the pretty-printer and the structural tests hang off.
//
// Ranging over a tree while mutating it is undefined, like any other
// interleaved access.
func (tr *Tree) All() iter.Seq2[uint32, int] {
	return func(yield func(uint32, int) bool) {
		if tr.closed {
			return
		}
		walk(tr.root, 0, yield)
	}
}

// Keys returns the stored keys in ascending order. Convenience over All.
func (tr *Tree) Keys() []uint32 {
	keys := make([]uint32, 0, tr.keys)
	for k := range tr.All() {
		keys = append(keys, k)
	}
	return keys
}

func walk(n *base.Node, depth int, yield func(uint32, int) bool) bool {
	if n.Leaf {
		for i := 0; i < n.Count; i++ {
			if !yield(n.Keys[i], depth) {
				return false
			}
		}
		return true
	}
	for i := 0; i < n.Count; i++ {
		if !walk(n.Children[i], depth+1, yield) {
			return false
		}
		if !yield(n.Keys[i], depth) {
			return false
		}
	}
	return walk(n.Children[n.Count], depth+1, yield)
}

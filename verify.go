package memdex

import (
	"fmt"

	"memdex/internal/base"
)

// Check audits the whole structure and returns the first violation found:
// in-node key ordering, subtree key ranges, equal leaf depth, and per-node
// occupancy (root 0..2t keys, everything else t-1..2t).
//
// Ordering is checked strictly, so a tree holding duplicate insertions
// fails Check; that is the observable face of the duplicate-key limitation
// documented on Insert.
func (tr *Tree) Check() error {
	if tr.closed {
		return ErrTreeClosed
	}
	leafDepth := -1
	return tr.check(tr.root, 0, nil, nil, &leafDepth)
}

func (tr *Tree) check(n *base.Node, depth int, lo, hi *uint32, leafDepth *int) error {
	root := n == tr.root

	if n.Count > 2*tr.t {
		return fmt.Errorf("node at depth %d holds %d keys, above capacity %d", depth, n.Count, 2*tr.t)
	}
	if !root && n.Count < tr.t-1 {
		return fmt.Errorf("node at depth %d holds %d keys, below minimum %d", depth, n.Count, tr.t-1)
	}

	for i := 0; i < n.Count; i++ {
		k := n.KeyAt(i)
		if i > 0 && n.Keys[i-1] >= k {
			return fmt.Errorf("keys %d and %d out of order at depth %d (%d >= %d)",
				i-1, i, depth, n.Keys[i-1], k)
		}
		if lo != nil && k <= *lo {
			return fmt.Errorf("key %d at depth %d escapes left bound %d", k, depth, *lo)
		}
		if hi != nil && k >= *hi {
			return fmt.Errorf("key %d at depth %d escapes right bound %d", k, depth, *hi)
		}
	}

	if n.Leaf {
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if *leafDepth != depth {
			return fmt.Errorf("leaf at depth %d, expected all leaves at %d", depth, *leafDepth)
		}
		return nil
	}

	for i := 0; i <= n.Count; i++ {
		child := n.ChildAt(i)
		if child == nil {
			return fmt.Errorf("nil child %d at depth %d", i, depth)
		}
		clo, chi := lo, hi
		if i > 0 {
			clo = &n.Keys[i-1]
		}
		if i < n.Count {
			chi = &n.Keys[i]
		}
		if err := tr.check(child, depth+1, clo, chi, leafDepth); err != nil {
			return err
		}
	}
	return nil
}

package algo

import "memdex/internal/base"

// Insert adds key to the tree rooted at root and returns the root, which
// changes only when the old root was full and the tree grew a level.
//
// The descent is preemptive: a full child is split before it is entered,
// so no node at the 2t-key capacity is ever descended into and a single
// downward pass suffices. Duplicate keys are not detected; inserting a key
// that is already present stores it a second time.
func Insert(root *base.Node, key uint32, t int, fl *base.FreeList) *base.Node {
	n := root
	if root.Full(t) {
		// The tree grows here and only here: a fresh root adopts the old
		// one as its sole child and splits it before the descent starts.
		newRoot := fl.Get()
		newRoot.Leaf = false
		newRoot.Children[0] = root
		n = splitChild(newRoot, 0, key, t, fl)
		root = newRoot
	}
	descend(n, key, t, fl)
	return root
}

// descend walks toward the leaf that takes key, splitting any full child
// on the way down.
func descend(n *base.Node, key uint32, t int, fl *base.FreeList) {
	if n.Leaf {
		n.InsertKeyAt(n.FindPosition(key), key)
		return
	}
	i := n.FindPosition(key)
	child := n.Children[i]
	if child.Full(t) {
		child = splitChild(n, i, key, t, fl)
	}
	descend(child, key, t, fl)
}

// splitChild splits the full child at slot i of parent and returns whichever
// half should receive key. The child's median (slot t) moves up into parent;
// the child keeps its left t keys and a new sibling takes the right t-1 keys
// plus, for internal nodes, the right t children.
//
// The sibling is fully built before parent or child are touched, so an
// aborted allocation cannot leave a half-split tree behind.
func splitChild(parent *base.Node, i int, key uint32, t int, fl *base.FreeList) *base.Node {
	full := parent.Children[i]
	median := full.Keys[t]

	sibling := fl.Get()
	sibling.Leaf = full.Leaf
	copy(sibling.Keys, full.Keys[t+1:2*t])
	if !full.Leaf {
		copy(sibling.Children, full.Children[t+1:2*t+1])
	}
	sibling.Count = t - 1

	full.Count = t
	if !full.Leaf {
		for j := t + 1; j <= 2*t; j++ {
			full.Children[j] = nil
		}
	}

	parent.InsertSeparatorAt(i, median)
	parent.Children[i+1] = sibling

	// Re-aim the descent: the promoted median is now the separator, so keys
	// below it belong to the left half and everything else to the sibling.
	if key < median {
		return full
	}
	return sibling
}

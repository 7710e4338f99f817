package algo

import "memdex/internal/base"

// Delete removes key from the tree rooted at root, reporting whether it was
// present. The returned root differs from the argument only when a merge
// drained the old root and the tree shrank a level.
//
// Mirroring the insertion engine, repair is preemptive: every node the
// recursion descends into holds at least t keys before it is entered (the
// root is exempt), so a removal at the leaf level can never leave an
// under-full node behind on the path.
func Delete(root *base.Node, key uint32, t int, fl *base.FreeList) (*base.Node, bool) {
	newRoot := root
	removed := remove(root, key, t, fl, &newRoot)
	return newRoot, removed
}

func remove(n *base.Node, key uint32, t int, fl *base.FreeList, root **base.Node) bool {
	i := 0
	for i < n.Count && key > n.Keys[i] {
		i++
	}

	if n.Leaf {
		if i < n.Count && n.Keys[i] == key {
			n.RemoveKeyAt(i)
			return true
		}
		return false
	}

	if i < n.Count && n.Keys[i] == key {
		left := n.Children[i]
		right := n.Children[i+1]
		switch {
		case left.Count >= t:
			// Swap in the in-order predecessor, then chase it down the
			// left subtree.
			pred := predecessor(left)
			n.Keys[i] = pred
			return remove(left, pred, t, fl, root)
		case right.Count >= t:
			succ := successor(right)
			n.Keys[i] = succ
			return remove(right, succ, t, fl, root)
		default:
			// Both neighbors sit at t-1: fold separator and right child
			// into the left child, then delete from the merged node.
			merged, _ := consolidate(n, i, fl, root)
			return remove(merged, key, t, fl, root)
		}
	}

	child := ensureEnoughKeys(n, i, t, fl, root)
	return remove(child, key, t, fl, root)
}

// ensureEnoughKeys guarantees the child of parent at slot i holds at least
// t keys before it is descended into, trying in order: borrow from the left
// sibling, borrow from the right sibling, merge with a sibling. It returns
// the node to descend into, which is the merged node when a merge happened.
func ensureEnoughKeys(parent *base.Node, i, t int, fl *base.FreeList, root **base.Node) *base.Node {
	child := parent.Children[i]
	if child.Count < t {
		stealLeft(parent, i, t)
	}
	if child.Count < t {
		stealRight(parent, i, t)
	}
	if child.Count < t {
		merged, _ := consolidate(parent, i, fl, root)
		return merged
	}
	return child
}

// stealLeft rotates one key and one child through the parent separator from
// the left sibling, when that sibling exists and has a key to spare.
func stealLeft(parent *base.Node, i, t int) {
	if i == 0 {
		return
	}
	child := parent.Children[i]
	sibling := parent.Children[i-1]
	if sibling.Count < t {
		return
	}

	// Open slot 0 of child for the separator and the sibling's last child.
	copy(child.Keys[1:child.Count+1], child.Keys[:child.Count])
	if !child.Leaf {
		copy(child.Children[1:child.Count+2], child.Children[:child.Count+1])
	}
	child.Count++
	child.Keys[0] = parent.Keys[i-1]
	if !child.Leaf {
		child.Children[0] = sibling.Children[sibling.Count]
		sibling.Children[sibling.Count] = nil
	}

	parent.Keys[i-1] = sibling.Keys[sibling.Count-1]
	sibling.Count--
}

// stealRight is the mirror of stealLeft, rotating through parent.Keys[i]
// from the right sibling.
func stealRight(parent *base.Node, i, t int) {
	if i == parent.Count {
		return
	}
	child := parent.Children[i]
	sibling := parent.Children[i+1]
	if sibling.Count < t {
		return
	}

	child.Keys[child.Count] = parent.Keys[i]
	if !child.Leaf {
		child.Children[child.Count+1] = sibling.Children[0]
	}
	child.Count++

	parent.Keys[i] = sibling.Keys[0]

	copy(sibling.Keys[:sibling.Count-1], sibling.Keys[1:sibling.Count])
	if !sibling.Leaf {
		copy(sibling.Children[:sibling.Count], sibling.Children[1:sibling.Count+1])
		sibling.Children[sibling.Count] = nil
	}
	sibling.Count--
}

// consolidate merges the child at slot i of parent with a sibling: the
// right sibling when one exists (i != parent.Count), otherwise the left.
// The separator and the right node's contents are appended onto the left
// node, the right node is released, and the parent closes the gap. Returns
// the merged node and its slot in parent.
//
// When the merge drains the parent of its last key, the merged node becomes
// the new root and the old root is released; this is the only way the tree
// loses height.
func consolidate(parent *base.Node, i int, fl *base.FreeList, root **base.Node) (*base.Node, int) {
	if i == parent.Count {
		i--
	}
	left := parent.Children[i]
	right := parent.Children[i+1]

	left.Keys[left.Count] = parent.Keys[i]
	copy(left.Keys[left.Count+1:], right.Keys[:right.Count])
	if !left.Leaf {
		copy(left.Children[left.Count+1:], right.Children[:right.Count+1])
	}
	left.Count += right.Count + 1
	fl.Put(right)

	copy(parent.Keys[i:parent.Count-1], parent.Keys[i+1:parent.Count])
	copy(parent.Children[i+1:parent.Count], parent.Children[i+2:parent.Count+1])
	parent.Children[parent.Count] = nil
	parent.Count--

	if parent.Count == 0 {
		// Only the root can drain to zero keys; every other node on the
		// path held at least t keys before losing one.
		*root = left
		fl.Put(parent)
	}
	return left, i
}

// predecessor returns the rightmost key of the subtree rooted at n.
func predecessor(n *base.Node) uint32 {
	for !n.Leaf {
		n = n.Children[n.Count]
	}
	return n.Keys[n.Count-1]
}

// successor returns the leftmost key of the subtree rooted at n.
func successor(n *base.Node) uint32 {
	for !n.Leaf {
		n = n.Children[0]
	}
	return n.Keys[0]
}

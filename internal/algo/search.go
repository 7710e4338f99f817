// Package algo contains the structural algorithms of the B-tree: membership
// search, the preemptive split-on-full insertion descent, and the deletion
// descent with borrow/merge rebalancing. Functions here operate on raw
// nodes; key validation and lifecycle belong to the caller.
package algo

import "memdex/internal/base"

// Search reports whether key is present in the tree rooted at root.
// Iterative descent: at each node, scan for the first slot holding a key
// >= the probe; equal means found, otherwise follow the child at that slot.
func Search(root *base.Node, key uint32) bool {
	n := root
	for {
		i := 0
		for i < n.Count && key >= n.Keys[i] {
			if key == n.Keys[i] {
				return true
			}
			i++
		}
		if n.Leaf {
			return false
		}
		n = n.Children[i]
	}
}

package base

// FreeList recycles nodes between splits, merges, and tree teardown. Every
// node discarded by the engines goes through Put, which wipes it, so a
// release is explicit and happens exactly once per node. The list is
// bounded; overflow is left to the garbage collector.
//
// FreeList is not safe for concurrent use, matching the tree it serves.
type FreeList struct {
	t     int
	nodes []*Node

	allocs   uint64 // nodes built fresh
	reuses   uint64 // nodes handed back out of the list
	returned uint64 // nodes released through Put
}

// DefaultFreeListSize bounds how many spare nodes are kept for reuse.
const DefaultFreeListSize = 32

// NewFreeList returns a free list producing nodes for minimum degree t,
// keeping at most size spares.
func NewFreeList(t, size int) *FreeList {
	if size < 0 {
		size = 0
	}
	return &FreeList{
		t:     t,
		nodes: make([]*Node, 0, size),
	}
}

// Get returns a cleared node, reusing a released one when available and
// allocating through NewLeaf otherwise. The caller sets the leaf flag.
func (f *FreeList) Get() *Node {
	if len(f.nodes) > 0 {
		n := f.nodes[len(f.nodes)-1]
		f.nodes[len(f.nodes)-1] = nil
		f.nodes = f.nodes[:len(f.nodes)-1]
		f.reuses++
		return n
	}
	f.allocs++
	return NewLeaf(f.t)
}

// Put wipes n and keeps it for reuse. Returns false when the list is full
// and the node was left for the garbage collector instead.
func (f *FreeList) Put(n *Node) bool {
	n.Reset()
	f.returned++
	if len(f.nodes) < cap(f.nodes) {
		f.nodes = append(f.nodes, n)
		return true
	}
	return false
}

// Len reports how many spare nodes are currently held.
func (f *FreeList) Len() int {
	return len(f.nodes)
}

// Allocs reports how many nodes were built fresh rather than reused.
func (f *FreeList) Allocs() uint64 { return f.allocs }

// Reuses reports how many Get calls were served from the list.
func (f *FreeList) Reuses() uint64 { return f.reuses }

// Returned reports how many nodes were released through Put.
func (f *FreeList) Returned() uint64 { return f.returned }

// Package memdex is an in-memory B-tree index over bounded integer keys.
//
// The tree follows the CLRS scheme with one deliberate variant: a node is
// "full" at 2t keys (not 2t-1) and splits around the key at slot t, so the
// left half keeps t keys and the new sibling takes t-1. Insertion splits
// full nodes on the way down and deletion repairs under-full nodes on the
// way down, so both are single-pass.
//
// Known limitation: duplicate insertions are not detected. Inserting a key
// that is already present stores it twice, and each Delete removes one copy
// at a time.
//
// A Tree has no internal locking. Callers using one from multiple
// goroutines must serialize all access, readers included.
package memdex

import (
	"memdex/internal/algo"
	"memdex/internal/base"
	"memdex/internal/cache"
)

// KeyLimit is the exclusive upper bound of the key space: valid keys are
// in [0, KeyLimit), i.e. [0, 2^31-1).
const KeyLimit uint32 = 1<<31 - 1

// Tree is an in-memory B-tree. The zero value is not usable; construct
// with New.
type Tree struct {
	root *base.Node
	t    int
	fl   *base.FreeList
	lc   *cache.Lookup
	log  Logger

	keys   int
	closed bool
}

// New returns an empty tree configured by opts.
func New(opts ...Option) (*Tree, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.minDegree < 2 {
		return nil, ErrInvalidMinDegree
	}
	if o.logger == nil {
		o.logger = DiscardLogger{}
	}

	var lc *cache.Lookup
	if o.lookupCacheSize != 0 {
		if o.lookupCacheSize < 0 {
			return nil, ErrInvalidCacheSize
		}
		var err error
		lc, err = cache.NewLookup(o.lookupCacheSize)
		if err != nil {
			return nil, err
		}
	}

	fl := base.NewFreeList(o.minDegree, o.freeListSize)
	root := fl.Get()
	root.Leaf = true

	return &Tree{
		root: root,
		t:    o.minDegree,
		fl:   fl,
		lc:   lc,
		log:  o.logger,
	}, nil
}

// MinDegree returns the branching parameter t the tree was built with.
func (tr *Tree) MinDegree() int {
	return tr.t
}

// Len returns the number of stored keys, counting duplicates.
func (tr *Tree) Len() int {
	return tr.keys
}

// Insert stores key. Keys must be in [0, KeyLimit). A key inserted twice
// is stored twice.
func (tr *Tree) Insert(key uint32) error {
	if tr.closed {
		return ErrTreeClosed
	}
	if key >= KeyLimit {
		return ErrKeyOutOfRange
	}

	root := algo.Insert(tr.root, key, tr.t, tr.fl)
	if root != tr.root {
		tr.root = root
		tr.log.Info("root split", "height", tr.Height(), "keys", tr.keys+1)
	}
	tr.keys++

	if tr.lc != nil {
		tr.lc.Note(key, true)
	}
	return nil
}

// Delete removes one copy of key, reporting whether it was present.
// Deleting an absent key is not an error.
func (tr *Tree) Delete(key uint32) (bool, error) {
	if tr.closed {
		return false, ErrTreeClosed
	}
	if key >= KeyLimit {
		return false, ErrKeyOutOfRange
	}

	root, removed := algo.Delete(tr.root, key, tr.t, tr.fl)
	if root != tr.root {
		tr.root = root
		tr.log.Info("root collapse", "height", tr.Height(), "keys", tr.keys-1)
	}
	if removed {
		tr.keys--
		if tr.lc != nil {
			// A removed copy says nothing about remaining copies, so evict
			// rather than cache "absent".
			tr.lc.Forget(key)
		}
	}
	return removed, nil
}

// Contains reports whether key is present.
func (tr *Tree) Contains(key uint32) (bool, error) {
	if tr.closed {
		return false, ErrTreeClosed
	}
	if key >= KeyLimit {
		return false, ErrKeyOutOfRange
	}

	if tr.lc != nil {
		if present, ok := tr.lc.Get(key); ok {
			return present, nil
		}
	}
	found := algo.Search(tr.root, key)
	if tr.lc != nil {
		tr.lc.Note(key, found)
	}
	return found, nil
}

// Height returns the number of levels, 1 for a lone leaf root.
func (tr *Tree) Height() int {
	if tr.closed {
		return 0
	}
	h := 1
	for n := tr.root; !n.Leaf; n = n.Children[0] {
		h++
	}
	return h
}

// Close releases every node in post-order, exactly once each, and marks
// the tree unusable. Further operations return ErrTreeClosed.
func (tr *Tree) Close() error {
	if tr.closed {
		return ErrTreeClosed
	}
	tr.release(tr.root)
	tr.root = nil
	tr.closed = true
	tr.keys = 0
	if tr.lc != nil {
		tr.lc.Purge()
	}
	tr.log.Info("tree closed")
	return nil
}

func (tr *Tree) release(n *base.Node) {
	if !n.Leaf {
		for i := 0; i <= n.Count; i++ {
			tr.release(n.Children[i])
		}
	}
	tr.fl.Put(n)
}

// Stats is a point-in-time snapshot of tree bookkeeping.
type Stats struct {
	Keys   int
	Height int
	Nodes  int

	NodesAllocated uint64
	NodesReused    uint64
	NodesFreed     uint64
	FreeListLen    int

	CacheHits   uint64
	CacheMisses uint64
}

// Stats returns current counters. Nodes is counted by a full walk.
func (tr *Tree) Stats() Stats {
	s := Stats{
		Keys:           tr.keys,
		NodesAllocated: tr.fl.Allocs(),
		NodesReused:    tr.fl.Reuses(),
		NodesFreed:     tr.fl.Returned(),
		FreeListLen:    tr.fl.Len(),
	}
	if !tr.closed {
		s.Height = tr.Height()
		s.Nodes = countNodes(tr.root)
	}
	if tr.lc != nil {
		s.CacheHits = tr.lc.Hits()
		s.CacheMisses = tr.lc.Misses()
	}
	return s
}

func countNodes(n *base.Node) int {
	total := 1
	if !n.Leaf {
		for i := 0; i <= n.Count; i++ {
			total += countNodes(n.Children[i])
		}
	}
	return total
}

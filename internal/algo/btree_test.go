package algo

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdex/internal/base"
)

// leaf builds a leaf node holding keys, in order.
func leaf(t int, keys ...uint32) *base.Node {
	n := base.NewLeaf(t)
	for i, k := range keys {
		n.Keys[i] = k
	}
	n.Count = len(keys)
	return n
}

// branch builds an internal node from separator keys and children.
func branch(t int, keys []uint32, children ...*base.Node) *base.Node {
	n := base.NewLeaf(t)
	n.Leaf = false
	copy(n.Keys, keys)
	n.Count = len(keys)
	copy(n.Children, children)
	return n
}

// inorder collects the tree's keys left to right.
func inorder(n *base.Node) []uint32 {
	var keys []uint32
	var visit func(*base.Node)
	visit = func(n *base.Node) {
		if n.Leaf {
			keys = append(keys, n.Keys[:n.Count]...)
			return
		}
		for i := 0; i < n.Count; i++ {
			visit(n.Children[i])
			keys = append(keys, n.Keys[i])
		}
		visit(n.Children[n.Count])
	}
	visit(n)
	return keys
}

func TestSearch(t *testing.T) {
	const minDeg = 3
	tree := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 2, 5, 7),
		leaf(minDeg, 12, 20),
	)

	tests := []struct {
		name string
		key  uint32
		want bool
	}{
		{name: "leftmost", key: 2, want: true},
		{name: "separator", key: 10, want: true},
		{name: "right_leaf", key: 20, want: true},
		{name: "between_keys", key: 6, want: false},
		{name: "below_all", key: 0, want: false},
		{name: "above_all", key: 99, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Search(tree, tt.key))
		})
	}
}

func TestSearchEmpty(t *testing.T) {
	root := base.NewLeaf(3)
	assert.False(t, Search(root, 1))
}

func TestInsertAscendingSplitsRootOnce(t *testing.T) {
	const minDeg = 3
	fl := base.NewFreeList(minDeg, 8)
	root := fl.Get()
	root.Leaf = true

	// 2t keys fill the root without splitting it.
	for k := uint32(0); k < 6; k++ {
		root = Insert(root, k, minDeg, fl)
		assert.True(t, root.Leaf)
	}
	require.True(t, root.Full(minDeg))

	// The seventh key forces the preemptive root split.
	root = Insert(root, 6, minDeg, fl)
	require.False(t, root.Leaf)
	assert.Equal(t, 1, root.Count)
	assert.Equal(t, uint32(3), root.Keys[0], "median of the old root moves up")
	assert.Equal(t, []uint32{0, 1, 2}, root.Children[0].Keys[:root.Children[0].Count])
	assert.Equal(t, []uint32{4, 5, 6}, root.Children[1].Keys[:root.Children[1].Count])
}

func TestInsertThenDeleteSeparator(t *testing.T) {
	// The worked scenario: 1..7 in order, then the root key goes away via
	// predecessor replacement.
	const minDeg = 3
	fl := base.NewFreeList(minDeg, 8)
	root := fl.Get()
	root.Leaf = true

	for k := uint32(1); k <= 7; k++ {
		root = Insert(root, k, minDeg, fl)
	}
	require.False(t, root.Leaf)
	require.Equal(t, []uint32{4}, root.Keys[:root.Count])
	require.Equal(t, []uint32{1, 2, 3}, root.Children[0].Keys[:3])
	require.Equal(t, []uint32{5, 6, 7}, root.Children[1].Keys[:3])

	root, removed := Delete(root, 4, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{3}, root.Keys[:root.Count])
	assert.Equal(t, []uint32{1, 2}, root.Children[0].Keys[:root.Children[0].Count])
	assert.Equal(t, []uint32{5, 6, 7}, root.Children[1].Keys[:root.Children[1].Count])
}

func TestSplitRoutesKeyBetweenMedianAndSibling(t *testing.T) {
	const minDeg = 3
	fl := base.NewFreeList(minDeg, 8)
	root := fl.Get()
	root.Leaf = true

	for _, k := range []uint32{1, 2, 3, 4, 10, 20} {
		root = Insert(root, k, minDeg, fl)
	}
	require.True(t, root.Full(minDeg))

	// 7 falls between the promoted median 4 and the sibling's first key 10;
	// it must land in the right half, above the new separator.
	root = Insert(root, 7, minDeg, fl)
	require.False(t, root.Leaf)
	assert.Equal(t, []uint32{4}, root.Keys[:root.Count])
	assert.Equal(t, []uint32{1, 2, 3}, root.Children[0].Keys[:root.Children[0].Count])
	assert.Equal(t, []uint32{7, 10, 20}, root.Children[1].Keys[:root.Children[1].Count])
	assert.True(t, Search(root, 7))

	root, removed := Delete(root, 7, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{1, 2, 3, 4, 10, 20}, inorder(root))
}

func TestInsertDuplicatesStoredTwice(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := fl.Get()
	root.Leaf = true

	root = Insert(root, 5, minDeg, fl)
	root = Insert(root, 5, minDeg, fl)
	assert.Equal(t, []uint32{5, 5}, inorder(root))

	root, removed := Delete(root, 5, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{5}, inorder(root), "one copy at a time")
	assert.True(t, Search(root, 5))

	root, removed = Delete(root, 5, minDeg, fl)
	require.True(t, removed)
	assert.Empty(t, inorder(root))
}

func TestDeleteAbsent(t *testing.T) {
	const minDeg = 3
	fl := base.NewFreeList(minDeg, 8)
	root := fl.Get()
	root.Leaf = true

	root, removed := Delete(root, 9, minDeg, fl)
	assert.False(t, removed)
	assert.True(t, root.Leaf)

	root = Insert(root, 1, minDeg, fl)
	root, removed = Delete(root, 2, minDeg, fl)
	assert.False(t, removed)
	assert.Equal(t, []uint32{1}, inorder(root))
}

func TestDeleteBorrowsFromLeftSibling(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 3, 5),
		leaf(minDeg, 15),
	)

	root, removed := Delete(root, 15, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{5}, root.Keys[:root.Count], "sibling's last key rotated up")
	assert.Equal(t, []uint32{3}, root.Children[0].Keys[:root.Children[0].Count])
	assert.Equal(t, []uint32{10}, root.Children[1].Keys[:root.Children[1].Count], "separator rotated down")
}

func TestDeleteBorrowsFromRightSibling(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 5),
		leaf(minDeg, 15, 20),
	)

	root, removed := Delete(root, 5, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{15}, root.Keys[:root.Count])
	assert.Equal(t, []uint32{10}, root.Children[0].Keys[:root.Children[0].Count])
	assert.Equal(t, []uint32{20}, root.Children[1].Keys[:root.Children[1].Count])
}

func TestDeleteMergeCollapsesRoot(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	oldRoot := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 5),
		leaf(minDeg, 15),
	)

	// Neither sibling can spare a key, so the descent merges the whole
	// tree into one leaf and the root collapses.
	root, removed := Delete(oldRoot, 15, minDeg, fl)
	require.True(t, removed)
	assert.NotSame(t, oldRoot, root)
	assert.True(t, root.Leaf)
	assert.Equal(t, []uint32{5, 10}, inorder(root))
	assert.Equal(t, uint64(2), fl.Returned(), "right leaf and old root released")
}

func TestDeleteInternalKeyViaPredecessor(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 3, 5),
		leaf(minDeg, 15),
	)

	root, removed := Delete(root, 10, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{5}, root.Keys[:root.Count])
	assert.Equal(t, []uint32{3, 5, 15}, inorder(root))
}

func TestDeleteInternalKeyViaSuccessor(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 5),
		leaf(minDeg, 15, 20),
	)

	root, removed := Delete(root, 10, minDeg, fl)
	require.True(t, removed)
	assert.Equal(t, []uint32{15}, root.Keys[:root.Count])
	assert.Equal(t, []uint32{5, 15, 20}, inorder(root))
}

func TestDeleteInternalKeyViaMerge(t *testing.T) {
	const minDeg = 2
	fl := base.NewFreeList(minDeg, 8)
	root := branch(minDeg,
		[]uint32{10},
		leaf(minDeg, 5),
		leaf(minDeg, 15),
	)

	root, removed := Delete(root, 10, minDeg, fl)
	require.True(t, removed)
	assert.True(t, root.Leaf, "merge drained the root")
	assert.Equal(t, []uint32{5, 15}, inorder(root))
}

func TestGrowAndShrinkCycle(t *testing.T) {
	const minDeg = 3
	fl := base.NewFreeList(minDeg, 16)
	root := fl.Get()
	root.Leaf = true

	for k := uint32(0); k < 7; k++ {
		root = Insert(root, k, minDeg, fl)
	}
	require.False(t, root.Leaf)

	for k := uint32(0); k < 7; k++ {
		var removed bool
		root, removed = Delete(root, k, minDeg, fl)
		require.True(t, removed, "key %d", k)
	}
	assert.True(t, root.Leaf, "tree collapsed back to a single leaf")
	assert.Equal(t, 0, root.Count)
}

func TestRandomInsertDeleteStaysSorted(t *testing.T) {
	const minDeg = 3
	rng := rand.New(rand.NewSource(1))
	fl := base.NewFreeList(minDeg, 64)
	root := fl.Get()
	root.Leaf = true

	present := map[uint32]bool{}
	for i := 0; i < 2000; i++ {
		k := uint32(rng.Intn(500))
		if present[k] {
			var removed bool
			root, removed = Delete(root, k, minDeg, fl)
			require.True(t, removed)
			delete(present, k)
		} else {
			root = Insert(root, k, minDeg, fl)
			present[k] = true
		}
	}

	keys := inorder(root)
	assert.True(t, sort.SliceIsSorted(keys, func(i, j int) bool { return keys[i] < keys[j] }))
	assert.Len(t, keys, len(present))
	for _, k := range keys {
		assert.True(t, present[k])
	}
}

package rht

import "github.com/katalvlaran/rhforest/moments"

// MaxHeight is the practical arena cap: a height-20 tree (2^20 − 1 internal
// nodes, 2^20 leaves) is the largest the flat representation may allocate.
const MaxHeight = 20

// Tree is the flat-arena form of one random histogram tree of fixed height.
//
// Nodes are addressed by heap index: root 0, children of i at 2i+1 and 2i+2.
// Internal indices live in [0, 2^H−1); leaf indices in [2^H−1, 2^(H+1)−1)
// are remapped to [0, 2^H) by subtracting 2^H−1.
//
// splits[i] records the left-partition size of the build that split node i;
// 0 marks a stub (no split performed: a singleton bucket, zero kurtosis sum
// or a degenerate threshold draw). Only the zero/nonzero distinction is consulted after
// build. attrs[i] and values[i] are meaningful only where splits[i] != 0,
// and mom cells are meaningful only at nodes the most recent (re)build
// visited — everything below a stub is unreachable by construction.
type Tree struct {
	height   int
	dim      int
	internal int // 2^height − 1
	nLeaves  int // 2^height

	splits  []int
	attrs   []int
	values  []float64
	mom     []moments.Accumulator // node-major: mom[node*dim+attr]
	plane   Plane
	buckets [][]int

	weights []float64 // scratch kurtosis weights, rewritten before every read
}

// NewTree allocates an empty arena for vectors of dimension dim.
// The plane must hold 2^height − 1 pairs; both are the caller's contract
// (package forest validates configuration).
func NewTree(dim, height int, plane Plane) *Tree {
	internal := 1<<height - 1

	return &Tree{
		height:   height,
		dim:      dim,
		internal: internal,
		nLeaves:  1 << height,
		splits:   make([]int, internal),
		attrs:    make([]int, internal),
		values:   make([]float64, internal),
		mom:      make([]moments.Accumulator, internal*dim),
		plane:    plane,
		buckets:  make([][]int, 1<<height),
		weights:  make([]float64, dim),
	}
}

// Height reports the arena height H.
func (t *Tree) Height() int { return t.height }

// NumLeaves reports the leaf-layer width 2^H.
func (t *Tree) NumLeaves() int { return t.nLeaves }

// LeafCount reports how many point-ids reside in leaf.
func (t *Tree) LeafCount(leaf int) int { return len(t.buckets[leaf]) }

// Bucket returns the point-ids residing in leaf. The slice aliases arena
// state: callers must treat it as read-only and not retain it across
// Insert or Build calls.
func (t *Tree) Bucket(leaf int) []int { return t.buckets[leaf] }

// Population reports the total number of point-ids represented in the tree.
func (t *Tree) Population() int {
	var n int
	for _, b := range t.buckets {
		n += len(b)
	}

	return n
}

// Leaf routes x through the recorded splits without mutating anything and
// returns the leaf index the point would land in. Descent stops at stubs,
// whose points all sit in the leftmost leaf beneath them.
func (t *Tree) Leaf(x []float64) int {
	node, depth := 0, 0
	for node < t.internal && t.splits[node] != 0 {
		if x[t.attrs[node]] <= t.values[node] {
			node = 2*node + 1
		} else {
			node = 2*node + 2
		}
		depth++
	}
	if node >= t.internal {
		return node - t.internal
	}

	return t.leftmostLeaf(node, depth)
}

// leftmostLeaf is the leaf-layer index reached by descending left at every
// level from node at the given depth: 2^(H−depth)·(node+1) − 1 − (2^H − 1).
func (t *Tree) leftmostLeaf(node, depth int) int {
	return (1<<(t.height-depth))*(node+1) - 1 - t.internal
}

// subtreeLeaves reports the contiguous leaf-layer span [start, start+size)
// covered by the subtree rooted at node at the given depth.
func (t *Tree) subtreeLeaves(node, depth int) (start, size int) {
	return t.leftmostLeaf(node, depth), 1 << (t.height - depth)
}

// reset clears splits and buckets for a fresh build. Moment cells are left
// as-is: the builder bulk-reinitializes every node it splits, and nothing
// reads moments below a stub.
func (t *Tree) reset() {
	for i := range t.splits {
		t.splits[i] = 0
	}
	for l := range t.buckets {
		t.buckets[l] = t.buckets[l][:0]
	}
}

package rht

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// window8 is a fixed 2-D window with spread on both attributes.
var window8 = [][]float64{
	{0.10, 4.00},
	{0.35, 1.25},
	{0.90, 3.10},
	{0.55, 0.40},
	{0.20, 2.75},
	{0.75, 4.60},
	{0.05, 1.90},
	{0.60, 3.55},
}

// newStore loads vecs into a fresh Points ring and returns the store plus
// the id list 0..len(vecs)−1.
func newStore(t *testing.T, vecs [][]float64, capacity int) (*Points, []int) {
	t.Helper()
	ps := NewPoints(len(vecs[0]), capacity)
	ids := make([]int, len(vecs))
	for i, v := range vecs {
		ids[i] = ps.Append(v)
	}

	return ps, ids
}

// checkInvariants asserts the structural invariants of a tree against the
// exact id set it is supposed to represent: bucket contents equal want as a
// set, every resident id satisfies the split predicates on its root-to-leaf
// path, stubs hold their entire subtree in the leftmost leaf, and the root's
// moment count matches the represented population.
func checkInvariants(t *testing.T, tr *Tree, ps *Points, want []int) {
	t.Helper()

	// Set equality between bucket contents and want.
	wantSet := make(map[int]bool, len(want))
	for _, id := range want {
		wantSet[id] = true
	}
	var population int
	for leaf := 0; leaf < tr.NumLeaves(); leaf++ {
		for _, id := range tr.Bucket(leaf) {
			assert.True(t, wantSet[id], "leaf %d holds unexpected id %d", leaf, id)
		}
		population += tr.LeafCount(leaf)
	}
	require.Equal(t, len(want), population, "population must equal the represented id set")
	require.Equal(t, len(want), tr.Population(), "Population accessor must agree")

	// Path predicates per leaf, descending by leaf-span halves.
	for leaf := 0; leaf < tr.NumLeaves(); leaf++ {
		if tr.LeafCount(leaf) == 0 {
			continue
		}
		node, depth := 0, 0
		for node < tr.internal && tr.splits[node] != 0 {
			lstart, lsize := tr.subtreeLeaves(2*node+1, depth+1)
			goLeft := leaf < lstart+lsize
			for _, id := range tr.Bucket(leaf) {
				v := ps.Value(id, tr.attrs[node])
				if goLeft {
					assert.LessOrEqual(t, v, tr.values[node],
						"id %d in leaf %d violates left predicate at node %d", id, leaf, node)
				} else {
					assert.Greater(t, v, tr.values[node],
						"id %d in leaf %d violates right predicate at node %d", id, leaf, node)
				}
			}
			if goLeft {
				node = 2*node + 1
			} else {
				node = 2*node + 2
			}
			depth++
		}
		if node < tr.internal {
			// Stub: only its leftmost leaf may be populated.
			assert.Equal(t, tr.leftmostLeaf(node, depth), leaf,
				"leaf %d is populated under stub %d but is not its leftmost leaf", leaf, node)
		}
	}

	// Root moment count equals the population whenever the root split.
	if tr.splits[0] != 0 {
		assert.Equal(t, len(want), tr.mom[0].N(),
			"root moments must have absorbed every represented point")
	}
}

// TestPickAttribute_BinEdges pins down the inclusive/exclusive edge rules.
func TestPickAttribute_BinEdges(t *testing.T) {
	w := []float64{0.5, 0.25, 0.25} // cumulative: 0.5, 0.75, 1.0
	assert.Equal(t, 0, pickAttribute(w, 0.0), "bin 0 is inclusive on both edges")
	assert.Equal(t, 0, pickAttribute(w, 0.5), "right edge belongs to the lower bin")
	assert.Equal(t, 1, pickAttribute(w, 0.50001), "just past the edge moves up")
	assert.Equal(t, 1, pickAttribute(w, 0.75), "right edge belongs to the lower bin")
	assert.Equal(t, 2, pickAttribute(w, 1.0), "total lands in the last bin")
}

// TestPickAttribute_SkipsZeroWeight verifies zero-weight bins are never hit.
func TestPickAttribute_SkipsZeroWeight(t *testing.T) {
	w := []float64{0, 1, 0, 1} // cumulative: 0, 1, 1, 2
	assert.Equal(t, 1, pickAttribute(w, 0.5), "leading zero bin is empty")
	assert.Equal(t, 1, pickAttribute(w, 1.0), "edge stays in the lower weighted bin")
	assert.Equal(t, 3, pickAttribute(w, 1.5), "interior zero bin is skipped")
	assert.Equal(t, 3, pickAttribute(w, 2.0), "total lands in the last weighted bin")
	assert.Equal(t, 3, pickAttribute(w, 2.5), "rounding past the total falls back to the last weighted bin")
}

// TestPartition_Boundary verifies the in-place two-pointer partition.
func TestPartition_Boundary(t *testing.T) {
	ps, ids := newStore(t, window8, 16)
	p := partition(ps, ids, 0, 0.5)

	require.Greater(t, p, 0, "left side must be non-empty")
	require.Less(t, p, len(ids), "right side must be non-empty")
	for _, id := range ids[:p] {
		assert.LessOrEqual(t, ps.Value(id, 0), 0.5, "left partition predicate")
	}
	for _, id := range ids[p:] {
		assert.Greater(t, ps.Value(id, 0), 0.5, "right partition predicate")
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, ids, "partition must preserve the id set")
}

// TestTree_BuildInvariants builds a window, checks the structural
// invariants, and verifies build determinism under an identical plane.
func TestTree_BuildInvariants(t *testing.T) {
	ps, ids := newStore(t, window8, 16)
	plane := NewPlanes(7, 1, 3)[0]

	tr := NewTree(2, 3, plane)
	tr.Build(ps, append([]int(nil), ids...))
	checkInvariants(t, tr, ps, ids)

	// Same plane, same data, fresh arena: identical structure bit for bit.
	tr2 := NewTree(2, 3, plane)
	tr2.Build(ps, append([]int(nil), ids...))
	assert.Equal(t, tr.splits, tr2.splits, "splits must be reproducible")
	assert.Equal(t, tr.attrs, tr2.attrs, "attributes must be reproducible")
	assert.Equal(t, tr.values, tr2.values, "thresholds must be reproducible")
	assert.Equal(t, tr.buckets, tr2.buckets, "leaf assignment must be reproducible")
}

// TestTree_BuildOrderInsensitiveShape verifies that permuting the window
// order keeps the tree shape: same split attributes, thresholds equal to
// rounding, and identical leaf membership as sets.
func TestTree_BuildOrderInsensitiveShape(t *testing.T) {
	ps, ids := newStore(t, window8, 16)
	plane := NewPlanes(7, 1, 3)[0]

	fwd := NewTree(2, 3, plane)
	fwd.Build(ps, append([]int(nil), ids...))

	rev := NewTree(2, 3, plane)
	reversed := make([]int, len(ids))
	for i, id := range ids {
		reversed[len(ids)-1-i] = id
	}
	rev.Build(ps, reversed)

	assert.Equal(t, fwd.attrs, rev.attrs, "split attributes must not depend on input order")
	for i := range fwd.values {
		assert.InDelta(t, fwd.values[i], rev.values[i], 1e-9,
			"threshold at node %d must agree to rounding", i)
	}
	for leaf := 0; leaf < fwd.NumLeaves(); leaf++ {
		assert.ElementsMatch(t, fwd.Bucket(leaf), rev.Bucket(leaf),
			"leaf %d membership must not depend on input order", leaf)
	}
}

// TestTree_BuildConstantWindow exercises the stub sentinel: a window with
// every coordinate constant cannot split anywhere, so everything lands in
// the leftmost leaf and the root stays a stub.
func TestTree_BuildConstantWindow(t *testing.T) {
	vecs := [][]float64{{3, 3}, {3, 3}, {3, 3}, {3, 3}}
	ps, ids := newStore(t, vecs, 8)

	tr := NewTree(2, 3, NewPlanes(11, 1, 3)[0])
	tr.Build(ps, append([]int(nil), ids...))

	assert.Equal(t, 0, tr.splits[0], "constant window leaves the root a stub")
	assert.Equal(t, len(ids), tr.LeafCount(0), "all points park in the leftmost leaf")
	checkInvariants(t, tr, ps, ids)
}

// TestTree_BuildSingleton covers the singleton termination rule.
func TestTree_BuildSingleton(t *testing.T) {
	ps, ids := newStore(t, [][]float64{{1.5, -2}}, 4)

	tr := NewTree(2, 3, NewPlanes(3, 1, 3)[0])
	tr.Build(ps, append([]int(nil), ids...))

	assert.Equal(t, 0, tr.splits[0], "a singleton never splits")
	assert.Equal(t, []int{0}, tr.Bucket(0), "singleton parks in leaf 0")
	checkInvariants(t, tr, ps, ids)
}

// TestTree_ConstantAttributeNeverPicked: an attribute with zero variance has
// zero kurtosis weight, so no split in the tree may select it.
func TestTree_ConstantAttributeNeverPicked(t *testing.T) {
	vecs := [][]float64{{0.1, 7}, {0.9, 7}, {0.4, 7}, {0.7, 7}, {0.2, 7}, {0.6, 7}}
	ps, ids := newStore(t, vecs, 8)

	tr := NewTree(2, 3, NewPlanes(5, 1, 3)[0])
	tr.Build(ps, append([]int(nil), ids...))

	require.NotEqual(t, 0, tr.splits[0], "attribute 0 has spread, so the root must split")
	for i := 0; i < tr.internal; i++ {
		if tr.splits[i] != 0 {
			assert.Equal(t, 0, tr.attrs[i], "node %d must not split on the constant attribute", i)
		}
	}
	checkInvariants(t, tr, ps, ids)
}

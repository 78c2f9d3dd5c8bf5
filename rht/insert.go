package rht

// Insert routes the point with the given id from the root into a leaf and
// returns that leaf's index.
//
// At every split node on the way down the point is folded into the node's
// running moments, and the node's attribute choice is re-evaluated with the
// node's frozen random pair against the updated kurtosis weights. Three
// outcomes per node:
//
//  1. the re-drawn attribute matches the recorded split — route left or
//     right on the recorded threshold and continue;
//  2. it diverges — the update reordered the cumulative kurtosis bins, so
//     the recorded split is no longer the one this node would choose: every
//     point beneath the node is collapsed together with the new one and the
//     subtree is rebuilt in place;
//  3. descent reaches a stub or the leaf layer — deposit (stubs rebuild
//     their subtree immediately, since the new point may make them
//     splittable).
//
// Complexity: O(H·d) without a rebuild; O(m·H·d) when a subtree holding m
// points collapses.
func (t *Tree) Insert(ps *Points, id int) int {
	x := ps.At(id)
	node, depth := 0, 0
	for node < t.internal && t.splits[node] != 0 {
		ks := t.updateMoments(node, x)
		if a := pickAttribute(t.weights, t.plane[node].Attr*ks); a != t.attrs[node] {
			return t.collapseRebuild(ps, node, depth, id, x)
		}
		if x[t.attrs[node]] <= t.values[node] {
			node = 2*node + 1
		} else {
			node = 2*node + 2
		}
		depth++
	}

	if node >= t.internal {
		leaf := node - t.internal
		t.buckets[leaf] = append(t.buckets[leaf], id)

		return leaf
	}

	// Stub: park the new id with the stub's resident bucket, then rebuild the
	// subtree over the combined set so a now-splittable node can split.
	leaf := t.leftmostLeaf(node, depth)
	t.buckets[leaf] = append(t.buckets[leaf], id)
	ids := make([]int, len(t.buckets[leaf]))
	copy(ids, t.buckets[leaf])
	t.buckets[leaf] = t.buckets[leaf][:0]

	return t.build(ps, ids, node, depth, x)
}

// collapseRebuild gathers every point-id from the leaf span beneath
// (node, depth), appends the diverging id last, clears the involved buckets,
// and rebuilds the subtree. Returns the leaf the new point landed in.
func (t *Tree) collapseRebuild(ps *Points, node, depth, id int, x []float64) int {
	start, size := t.subtreeLeaves(node, depth)

	var total int
	for l := start; l < start+size; l++ {
		total += len(t.buckets[l])
	}

	ids := make([]int, 0, total+1)
	for l := start; l < start+size; l++ {
		ids = append(ids, t.buckets[l]...)
		t.buckets[l] = t.buckets[l][:0]
	}
	ids = append(ids, id)

	return t.build(ps, ids, node, depth, x)
}

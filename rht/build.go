package rht

// Build discards the tree's current splits and leaves and partitions ids
// into the arena from the root. ids is reordered in place by the recursive
// partitions; each tree must therefore receive its own slice. Moments at
// every split node are bulk-initialized from the ids that flow through it,
// which reproduces point-by-point insertion exactly.
//
// Complexity: O(len(ids)·H·d).
func (t *Tree) Build(ps *Points, ids []int) {
	t.reset()
	if len(ids) == 0 {
		return
	}
	t.build(ps, ids, 0, 0, nil)
}

// build recursively partitions ids into the subtree rooted at (node, depth).
//
// When insertion is non-nil, the recursion is serving a collapse-and-rebuild
// triggered by that point: the side containing it is descended last, so the
// returned leaf index is the one the insertion point landed in. With a nil
// insertion the return value carries no meaning: −1 when the node splits,
// the filled leaf when it terminates.
func (t *Tree) build(ps *Points, ids []int, node, depth int, insertion []float64) int {
	// 1) Terminal: height exhausted or a singleton bucket. An internal node
	// that ends here is a stub, whatever an earlier build recorded for it.
	if depth == t.height || len(ids) <= 1 {
		if node < t.internal {
			t.splits[node] = 0
		}

		return t.fillLeaf(ids, node, depth)
	}

	// 2) Bulk moments for this node, then the kurtosis-weight total.
	ks := t.refreshMoments(node, ps, ids)
	if ks == 0 {
		// Locally constant data: mark the stub and park everything beneath it.
		t.splits[node] = 0

		return t.fillLeaf(ids, node, depth)
	}

	// 3) Draw (attribute, threshold) from the node's frozen pair.
	pr := t.plane[node]
	a := pickAttribute(t.weights, pr.Attr*ks)
	lo, hi := attrRange(ps, ids, a)
	v := lo + pr.Value*(hi-lo)
	if v <= lo || v >= hi {
		// Degenerate draw (zero range, or rounding onto an endpoint): a split
		// here could not keep both sides non-empty, so the node stays a stub.
		t.splits[node] = 0

		return t.fillLeaf(ids, node, depth)
	}

	// 4) Record the split and partition ids in place around it.
	p := partition(ps, ids, a, v)
	t.splits[node] = p
	t.attrs[node] = a
	t.values[node] = v
	left, right := ids[:p], ids[p:]

	// 5) Recurse; the insertion side goes last so its leaf bubbles up.
	if insertion == nil {
		t.build(ps, left, 2*node+1, depth+1, nil)
		t.build(ps, right, 2*node+2, depth+1, nil)

		return -1
	}
	if insertion[a] <= v {
		t.build(ps, right, 2*node+2, depth+1, nil)

		return t.build(ps, left, 2*node+1, depth+1, insertion)
	}
	t.build(ps, left, 2*node+1, depth+1, nil)

	return t.build(ps, right, 2*node+2, depth+1, insertion)
}

// fillLeaf deposits ids into the leaf addressed by (node, depth): the node's
// own slot when it already sits on the leaf layer, otherwise the leftmost
// leaf beneath it. Returns the leaf index.
func (t *Tree) fillLeaf(ids []int, node, depth int) int {
	leaf := node - t.internal
	if node < t.internal {
		leaf = t.leftmostLeaf(node, depth)
	}
	t.buckets[leaf] = append(t.buckets[leaf], ids...)

	return leaf
}

// refreshMoments bulk-initializes the node's per-attribute accumulators from
// ids, fills the scratch weight vector with log(K+1) per attribute, and
// returns the weight total.
func (t *Tree) refreshMoments(node int, ps *Points, ids []int) float64 {
	base := node * t.dim
	var ks float64
	for a := 0; a < t.dim; a++ {
		acc := &t.mom[base+a]
		acc.Reset()
		for _, id := range ids {
			acc.Add(ps.Value(id, a))
		}
		w := acc.Weight()
		t.weights[a] = w
		ks += w
	}

	return ks
}

// updateMoments folds a single vector into the node's accumulators, refills
// the scratch weights, and returns the new weight total. Used on the
// insertion path; the fold is permanent even when a divergence below later
// rebuilds a subtree, because the point did flow through this node.
func (t *Tree) updateMoments(node int, x []float64) float64 {
	base := node * t.dim
	var ks float64
	for a := 0; a < t.dim; a++ {
		acc := &t.mom[base+a]
		acc.Add(x[a])
		w := acc.Weight()
		t.weights[a] = w
		ks += w
	}

	return ks
}

// pickAttribute selects the smallest attribute index whose cumulative weight
// reaches target. Bin edges are inclusive on the right and exclusive on the
// left, except bin 0 which is inclusive on both sides; zero-weight bins are
// therefore never selected (their interval is empty). A target that drifts
// past the cumulative total by rounding falls back to the last positively
// weighted attribute.
func pickAttribute(weights []float64, target float64) int {
	var cum float64
	for a, w := range weights {
		cum += w
		if a == 0 {
			if target <= cum {
				return 0
			}
		} else if target > cum-w && target <= cum {
			return a
		}
	}
	for a := len(weights) - 1; a >= 0; a-- {
		if weights[a] > 0 {
			return a
		}
	}

	return len(weights) - 1
}

// attrRange scans ids and returns the minimum and maximum of attribute a.
func attrRange(ps *Points, ids []int, a int) (lo, hi float64) {
	lo = ps.Value(ids[0], a)
	hi = lo
	for _, id := range ids[1:] {
		v := ps.Value(id, a)
		if v < lo {
			lo = v
		} else if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// partition reorders ids in place so that every id with value ≤ v on
// attribute a precedes every id with value > v, and returns the boundary
// position (the left-partition size). The caller guarantees lo < v < hi over
// ids, so both sides are non-empty and 0 < p < len(ids).
//
// The scan is the classic two-pointer exchange; given the same input order
// it produces the same output order, which build determinism relies on.
func partition(ps *Points, ids []int, a int, v float64) int {
	i, j := 0, len(ids)-1
	for i < j {
		for ps.Value(ids[i], a) <= v && i < j {
			i++
		}
		for ps.Value(ids[j], a) > v && j > i {
			j--
		}
		ids[i], ids[j] = ids[j], ids[i]
	}

	return j
}

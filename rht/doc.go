// Package rht implements the random histogram tree: a fixed-height binary
// partition tree over streaming points, stored as a flat arena and updated
// incrementally.
//
// # What & Why
//
// A Tree of height H is a complete binary tree addressed by heap index
// (root 0, children of i at 2i+1 and 2i+2). Internal nodes carry a split
// (attribute, threshold) chosen by drawing an attribute proportionally to
// the per-attribute weight log(K+1), where K is the running kurtosis of the
// points that flowed through the node. Leaves hold buckets of point-ids.
// Dense regions end up in crowded leaves and sparse regions in near-empty
// ones, which is what makes leaf occupancy usable as an anomaly signal.
//
//   - Build partitions a window of point-ids into the arena recursively,
//     terminating at height H, at singletons, or at stubs (nodes whose
//     kurtosis sum is zero, i.e. locally constant data).
//   - Insert routes one new point from the root, folding it into each
//     traversed node's moments and re-evaluating the node's attribute choice
//     with the node's frozen random pair. If the choice diverges from the
//     recorded split attribute, the whole subtree is collapsed and rebuilt
//     around the updated data, and the new point's landing leaf is returned.
//
// # Determinism
//
// All randomness is consumed from a Plane: one (r₀, r₁) pair per internal
// node, drawn once from a seed and immutable afterwards. Build and Insert
// make every decision from the plane and the data, so identical inputs
// reproduce identical trees and leaf assignments, including across rebuilds
// and regardless of tree-level parallelism in the caller.
//
// # Complexity
//
//	Build:  O(n·H·d) moments work over n window points
//	Insert: O(H·d) steady state; O(m·H·d) when a subtree of m points rebuilds
//	Memory: O(2^H·d) moments + O(2^H) split metadata + buckets
//
// Preconditions are the caller's contract (package forest validates all
// configuration); Points.At panics on access to an evicted id, which is a
// programmer error, not a data error.
package rht

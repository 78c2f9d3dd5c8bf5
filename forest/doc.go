// Package forest maintains an ensemble of random histogram trees over an
// unbounded numeric stream, absorbing every incoming vector and scoring it
// for anomaly by the leaves it lands in.
//
// # What & Why
//
// An Engine holds T trees of fixed height H sharing a window length W and a
// deterministic randomness plane drawn once from a seed. Each update routes
// the new vector into every tree (folding it into per-node moments and
// rebuilding subtrees whose kurtosis-driven attribute choice diverged) and
// returns the sum over trees of log(N / |leaf|), where |leaf| is the
// occupancy of the landing leaf: points in sparse regions land in
// near-empty leaves and score high.
//
// Every W points the whole forest is rebuilt from the most recent window,
// bounding memory and letting the ensemble track drift; the randomness
// plane survives rebuilds, so randomness carries across windows.
//
// # Determinism
//
//   - Same seed, same input sequence ⇒ bit-identical score sequences, with
//     or without tree-level parallelism (Options.Parallel): trees share no
//     mutable state and each consumes only its own plane.
//   - No time-based entropy, no global RNG; Seed==0 selects a fixed default
//     stream.
//
// # Complexity
//
//	UpdateAndScore: O(T·H·d) steady state; O(T·W·H·d) on a rebuild tick
//	Memory:         O(T·2^H·d) moments + O(T·2^H) metadata + O(W·d) points
//
// # Errors
//
//   - ErrDimension, ErrTreeCount, ErrHeight, ErrWindow: invalid construction.
//   - ErrDimensionMismatch: input vector length differs from the engine's.
//   - ErrNonFinite: input contains NaN or ±Inf.
//
// A window whose every coordinate is constant is not an error: the trees
// become single buckets and every score is exactly 0.
package forest

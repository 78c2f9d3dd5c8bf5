// Package moments provides numerically stable running moment accumulators
// for streaming data.
//
// # What & Why
//
// An Accumulator maintains {n, mean, M2, M3, M4} for a single real-valued
// attribute under point-by-point updates, using the one-pass recurrence of
// Pébay (2008). From the centered sums it derives the population variance
// and the (non-excess) kurtosis
//
//	K = n·M4 / M2²,
//
// with K defined as 0 whenever M4 = 0 (constant data). Kurtosis drives
// split-attribute selection in random histogram trees: attributes whose
// distribution is heavy-tailed at a node are preferred, weighted by
// log(K + 1).
//
// # Determinism & Stability
//
//   - A bulk initialization (AddAll) applies exactly the same recurrence as
//     repeated Add calls, so a rebuilt accumulator is bit-identical to one
//     grown point by point over the same sequence.
//   - No allocation, no locks; an Accumulator is a plain value. Callers that
//     share one across goroutines must synchronize externally.
//
// # Complexity
//
//	Add:      O(1)
//	AddAll:   O(n)
//	Kurtosis: O(1)
//
// See: Pébay, "Formulas for Robust, One-Pass Parallel Computation of
// Covariances and Arbitrary-Order Statistical Moments", Sandia Report
// SAND2008-6212, for the derivation of the recurrence.
package moments

// Package eval grades anomaly score sequences against binary ground-truth
// labels.
//
// # What & Why
//
// Streaming anomaly scores are unnormalized; what matters is their ranking.
// The two standard ranking summaries are provided:
//
//   - RocAuc — area under the receiver operating characteristic curve:
//     the probability that a random anomaly outranks a random inlier.
//   - AveragePrecision — the area under the precision/recall sweep,
//     more informative than AUC when anomalies are rare.
//
// Both sweep every distinct score as a threshold, so tied scores are graded
// as a group and the results are deterministic for a given input.
//
// # Errors
//
//   - ErrLengthMismatch: labels and scores differ in length.
//   - ErrEmpty: no observations.
//   - ErrLabelDomain: a label outside {0, 1}.
//   - ErrSingleClass: all labels equal; neither metric is defined.
//
// Complexity: O(n log n) for the sort, O(n) for the sweep.
package eval

// Package dataset loads labeled numeric streams from CSV files and prepares
// them for streaming experiments.
//
// # What & Why
//
// Benchmark anomaly datasets ship as (optionally gzipped) CSV files with a
// header row and an integer label column marking anomalies. Load splits the
// label column off, parses everything else as float64 features, and returns
// them in file order; Shuffle applies a seeded Fisher–Yates permutation
// jointly to features and labels, reproducing the shuffled-replay protocol
// streaming evaluations use.
//
// Gzip is detected by the ".gz" suffix. Ragged rows, non-numeric cells, and
// a missing label column are rejected with errors; the loader never guesses.
//
// # Errors
//
//   - ErrMissingLabel: the header has no column with the requested name.
//   - ErrNoRows: the file holds a header but no data.
//   - ErrBadValue: a cell failed to parse (wrapped with row/column context).
//
// Complexity: O(rows·cols) load, O(rows) shuffle.
package dataset

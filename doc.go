// Package rhforest is a streaming anomaly detector for unbounded numeric
// data: an online forest of Random Histogram Trees.
//
// 🚀 What is rhforest?
//
//	A deterministic, allocation-conscious library that brings together:
//
//	  • Running moments: numerically stable {n, mean, M2, M3, M4} per node
//	  • Flat-arena trees: complete binary trees as index arithmetic, no pointers
//	  • Online maintenance: per-point insertion with kurtosis-driven rebuilds
//
// ✨ Why choose rhforest?
//
//   - Absorb-and-score       — every vector is graded by the occupancy of the leaf it lands in
//   - Reproducible           — one seed fixes the whole randomness plane; runs are bit-identical
//   - Bounded                — a sliding window caps memory and tracks drift
//   - Pure Go                — no cgo; third-party deps only where they earn their keep
//
// Under the hood, everything is organized under five subpackages:
//
//	moments/  — one-pass moment accumulators and kurtosis weights
//	rht/      — the tree arena, builder, insertion engine, and randomness plane
//	forest/   — the Engine: T trees, windowed rebuilds, incremental scoring
//	eval/     — ROC AUC and average precision for grading score sequences
//	dataset/  — CSV / gzipped-CSV loading and seeded shuffling
//
// Quick sketch of one update:
//
//	    x ──► tree₁ ─► leaf₁ ┐
//	    x ──► tree₂ ─► leaf₂ ├─► Σ log(N/|leaf|) = anomaly score
//	    x ──► tree₃ ─► leaf₃ ┘
//
// The cmd/rhfstream driver replays labeled CSV datasets through the engine
// and reports the resulting AUC and average precision.
//
//	go get github.com/katalvlaran/rhforest
package rhforest

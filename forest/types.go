// Package forest defines configuration options and sentinel errors for the
// streaming random histogram forest engine.
package forest

import (
	"errors"

	"github.com/katalvlaran/rhforest/rht"
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Sentinel errors (construction and per-update validation)
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

var (
	// ErrDimension indicates the vector dimension passed to New is < 1.
	ErrDimension = errors.New("forest: dimension must be at least 1")

	// ErrTreeCount indicates Options.Trees ≤ 0.
	ErrTreeCount = errors.New("forest: tree count must be positive")

	// ErrHeight indicates Options.Height is outside [1, rht.MaxHeight].
	ErrHeight = errors.New("forest: height out of range")

	// ErrWindow indicates Options.Window < 2.
	ErrWindow = errors.New("forest: window must hold at least 2 points")

	// ErrDimensionMismatch indicates an input vector whose length differs
	// from the dimension the engine was built for.
	ErrDimensionMismatch = errors.New("forest: input dimension mismatch")

	// ErrNonFinite indicates an input vector containing NaN or ±Inf.
	ErrNonFinite = errors.New("forest: input contains NaN or Inf")
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Normalizer policy
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Normalizer selects the N used in the per-tree leaf contribution
// log(N / |leaf|) of the incremental score.
type Normalizer int

const (
	// NormReference reproduces classic StreamRHF: N = i+1 while the first
	// window fills, then W + (i mod W) + 1 for point index i ≥ W. With the
	// rebuild-before-insert cadence this equals the in-tree population after
	// the insert, so it doubles as the population normalizer in disguise.
	NormReference Normalizer = iota

	// NormPopulation reads N from the live forest: the number of points the
	// trees currently represent, after the insert. Defined behaviorally
	// rather than by formula; it tracks the trees no matter how the rebuild
	// cadence evolves.
	NormPopulation
)

//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––
// Options & defaults
//–––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––––

// Default knobs.
const (
	// DefaultTrees is the ensemble size used by DefaultOptions.
	DefaultTrees = 100

	// DefaultHeight is the tree height used by DefaultOptions.
	DefaultHeight = 5

	// DefaultWindow is the reference-window length used by DefaultOptions.
	DefaultWindow = 128
)

// Options defines configurable parameters for the engine.
// Zero value is not meaningful; use DefaultOptions() and override fields.
type Options struct {
	// Trees is the ensemble size T. Must be positive.
	Trees int

	// Height is the fixed tree height H ∈ [1, rht.MaxHeight]. Arenas are
	// allocated for the complete tree of this height.
	Height int

	// Window is the reference-window length W ≥ 2. Every W points the
	// forest is rebuilt from the most recent W points.
	Window int

	// Seed drives the deterministic randomness plane. Seed==0 selects a
	// fixed default stream, so the zero value is still reproducible.
	Seed int64

	// Normalizer selects the incremental-score normalizer policy.
	// Default: NormReference.
	Normalizer Normalizer

	// Parallel fans builds and inserts out across trees. Scores are
	// bit-identical either way; this is purely a throughput knob.
	Parallel bool
}

// DefaultOptions returns production-ready defaults: 100 trees of height 5
// over a 128-point window, deterministic seed stream, reference normalizer,
// sequential execution.
func DefaultOptions() Options {
	return Options{
		Trees:      DefaultTrees,
		Height:     DefaultHeight,
		Window:     DefaultWindow,
		Seed:       0,
		Normalizer: NormReference,
		Parallel:   false,
	}
}

// Validate checks the option ranges and returns the first violated sentinel.
func (o *Options) Validate() error {
	if o.Trees <= 0 {
		return ErrTreeCount
	}
	if o.Height < 1 || o.Height > rht.MaxHeight {
		return ErrHeight
	}
	if o.Window < 2 {
		return ErrWindow
	}

	return nil
}

package moments

import "math"

// Accumulator holds the running centered sums of one attribute.
// The zero value is an empty accumulator, ready for use.
//
// Invariants (after any sequence of Add calls over values x₁..xₙ):
//
//	N()    == n
//	Mean() == (Σ xᵢ) / n
//	m2     == Σ (xᵢ − mean)²
//	m3     == Σ (xᵢ − mean)³
//	m4     == Σ (xᵢ − mean)⁴
type Accumulator struct {
	n    int
	mean float64
	m2   float64
	m3   float64
	m4   float64
}

// Reset returns the accumulator to its empty state.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}

// Add folds a single observation x into the running moments.
//
// The update order below (M4 before M3 before M2) matters: each line reads
// the previous moments, exactly as in the one-pass recurrence.
//
// Complexity: O(1).
func (a *Accumulator) Add(x float64) {
	// 1) Advance the count and compute the centered increments.
	n1 := float64(a.n)
	a.n++
	n := float64(a.n)
	delta := x - a.mean
	deltaN := delta / n
	deltaN2 := deltaN * deltaN
	term := delta * deltaN * n1

	// 2) Fold into mean and central sums, highest order first.
	a.mean += deltaN
	a.m4 += term*deltaN2*(n*n-3*n+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
	a.m3 += term*deltaN*(n-2) - 3*deltaN*a.m2
	a.m2 += term
}

// AddAll resets the accumulator and folds every value of xs in order.
// The result is identical to calling Add once per element on a fresh
// accumulator, which is what lets a rebuilt tree node match one grown
// point by point.
//
// Complexity: O(len(xs)).
func (a *Accumulator) AddAll(xs []float64) {
	a.Reset()
	for _, x := range xs {
		a.Add(x)
	}
}

// N reports the number of observations folded in so far.
func (a *Accumulator) N() int { return a.n }

// Mean reports the running arithmetic mean; 0 for an empty accumulator.
func (a *Accumulator) Mean() float64 { return a.mean }

// Variance reports the population variance M2/n; 0 for n < 1.
func (a *Accumulator) Variance() float64 {
	if a.n < 1 {
		return 0
	}

	return a.m2 / float64(a.n)
}

// Kurtosis reports the non-excess kurtosis n·M4/M2².
// Constant data has M4 == 0 (and then necessarily M2 == 0); the kurtosis
// is defined as 0 in that case rather than NaN. A negative M4 can only be
// rounding residue and is treated the same way, keeping weights ≥ 0.
func (a *Accumulator) Kurtosis() float64 {
	if a.m4 <= 0 {
		return 0
	}

	return float64(a.n) * a.m4 / (a.m2 * a.m2)
}

// Weight reports the selector weight log(K + 1) for this attribute.
// The weight is non-negative, and exactly 0 for constant data.
func (a *Accumulator) Weight() float64 {
	return math.Log1p(a.Kurtosis())
}

package rht

import "fmt"

// Points is a bounded ring of the most recent stream vectors, addressed by
// point-id. Ids are assigned densely in arrival order; once more than
// capacity points have arrived, the oldest ids are evicted. Trees reference
// points only from the current reference window and the inserts since, so a
// capacity of twice the window size is always sufficient.
type Points struct {
	dim  int
	next int         // next id to be assigned
	vecs [][]float64 // ring storage; slot = id mod cap
}

// NewPoints allocates a ring for vectors of the given dimension.
// capacity must be ≥ 1 and dim ≥ 1.
func NewPoints(dim, capacity int) *Points {
	vecs := make([][]float64, capacity)
	for i := range vecs {
		vecs[i] = make([]float64, dim)
	}

	return &Points{dim: dim, vecs: vecs}
}

// Dim reports the vector dimension.
func (p *Points) Dim() int { return p.dim }

// Next reports the id the next Append will assign (== points seen so far).
func (p *Points) Next() int { return p.next }

// Append copies x into the ring and returns its assigned id.
// The caller keeps ownership of x and may reuse it.
func (p *Points) Append(x []float64) int {
	if len(x) != p.dim {
		panic(fmt.Sprintf("rht: Append dimension %d, want %d", len(x), p.dim))
	}
	id := p.next
	copy(p.vecs[id%len(p.vecs)], x)
	p.next++

	return id
}

// At returns the stored vector for id. The returned slice aliases the ring
// slot and must not be mutated or retained across Append calls.
func (p *Points) At(id int) []float64 {
	if id < 0 || id >= p.next || id < p.next-len(p.vecs) {
		panic(fmt.Sprintf("rht: point %d evicted or unknown (live range [%d,%d))",
			id, p.next-len(p.vecs), p.next))
	}

	return p.vecs[id%len(p.vecs)]
}

// Value returns coordinate attr of point id.
func (p *Points) Value(id, attr int) float64 {
	return p.At(id)[attr]
}

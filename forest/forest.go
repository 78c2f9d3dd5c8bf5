package forest

import (
	"math"
	"sync"

	"github.com/katalvlaran/rhforest/rht"
)

// Engine is the streaming anomaly scorer: T random histogram trees over a
// sliding reference window, fed one vector at a time.
//
// The engine is single-threaded by contract: each UpdateAndScore returns
// before the next is accepted. Options.Parallel only fans the independent
// per-tree work of a single update across goroutines.
type Engine struct {
	dim  int
	opts Options

	points *rht.Points
	trees  []*rht.Tree

	leaves     []int // scratch: landing leaf per tree for the current insert
	count      int   // points absorbed so far (== next point index)
	population int   // points currently represented per tree
	rebuilds   int   // windowed rebuilds fired so far
}

// New allocates the arenas and draws the randomness plane from opts.Seed.
// dim is the input vector dimension.
func New(dim int, opts Options) (*Engine, error) {
	if dim < 1 {
		return nil, ErrDimension
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	planes := rht.NewPlanes(opts.Seed, opts.Trees, opts.Height)
	trees := make([]*rht.Tree, opts.Trees)
	for t := range trees {
		trees[t] = rht.NewTree(dim, opts.Height, planes[t])
	}

	return &Engine{
		dim:    dim,
		opts:   opts,
		points: rht.NewPoints(dim, 2*opts.Window),
		trees:  trees,
		leaves: make([]int, opts.Trees),
	}, nil
}

// Dim reports the vector dimension the engine accepts.
func (e *Engine) Dim() int { return e.dim }

// Seen reports how many points the engine has absorbed.
func (e *Engine) Seen() int { return e.count }

// Rebuilds reports how many windowed rebuilds have fired.
func (e *Engine) Rebuilds() int { return e.rebuilds }

// UpdateAndScore absorbs x and returns its incremental anomaly score.
//
// Processing order per point index i:
//
//  1. when i is a positive multiple of W, rebuild every tree from the
//     points [i−W, i) — the freshly completed reference window;
//  2. insert x into every tree, collecting the landing leaf per tree;
//  3. score = Σ_t log(N / |leaf_t|) with N from the normalizer policy,
//     empty leaves contributing 0.
//
// Higher scores mean more anomalous. The magnitude is not normalized.
func (e *Engine) UpdateAndScore(x []float64) (float64, error) {
	if len(x) != e.dim {
		return 0, ErrDimensionMismatch
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFinite
		}
	}

	i := e.count
	if i > 0 && i%e.opts.Window == 0 {
		e.rebuild(i)
	}

	id := e.points.Append(x)
	e.insertAll(id)
	e.population++
	e.count++

	norm := e.normalizer(i)
	var score float64
	for t := range e.trees {
		if c := e.trees[t].LeafCount(e.leaves[t]); c > 0 {
			score += math.Log(norm / float64(c))
		}
	}

	return score, nil
}

// Stream scores every vector of points in order and returns the scores in
// one-to-one correspondence with the input. The first invalid vector aborts
// with its error and the scores collected so far.
func (e *Engine) Stream(points [][]float64) ([]float64, error) {
	scores := make([]float64, 0, len(points))
	for _, x := range points {
		s, err := e.UpdateAndScore(x)
		if err != nil {
			return scores, err
		}
		scores = append(scores, s)
	}

	return scores, nil
}

// Score routes x through the current forest without absorbing it and
// returns Σ_t log(N / |leaf_t|) over non-empty landing leaves, with N the
// current population. Useful for probing the forest; the streaming path is
// UpdateAndScore.
func (e *Engine) Score(x []float64) (float64, error) {
	if len(x) != e.dim {
		return 0, ErrDimensionMismatch
	}
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, ErrNonFinite
		}
	}

	var score float64
	for _, tr := range e.trees {
		if c := tr.LeafCount(tr.Leaf(x)); c > 0 {
			score += math.Log(float64(e.population) / float64(c))
		}
	}

	return score, nil
}

// BatchScores computes the post-build leaf scores for every point currently
// represented: each resident id gains log(N/|leaf|) per tree from the leaf
// it resides in, N being the current population. StreamRHF grades the
// initial window with exactly this pass.
func (e *Engine) BatchScores() map[int]float64 {
	scores := make(map[int]float64, e.population)
	n := float64(e.population)
	for _, tr := range e.trees {
		for leaf := 0; leaf < tr.NumLeaves(); leaf++ {
			c := tr.LeafCount(leaf)
			if c == 0 {
				continue
			}
			s := math.Log(n / float64(c))
			for _, id := range tr.Bucket(leaf) {
				scores[id] += s
			}
		}
	}

	return scores
}

// normalizer resolves N for the point with index i, after its insert.
func (e *Engine) normalizer(i int) float64 {
	switch e.opts.Normalizer {
	case NormPopulation:
		return float64(e.population)
	default: // NormReference
		w := e.opts.Window
		if i < w {
			return float64(i + 1)
		}

		return float64(w + i%w + 1)
	}
}

// rebuild discards every tree's splits and leaves and rebuilds them from
// the window [i−W, i). The randomness planes are untouched, so randomness
// carries across windows. Each tree partitions its own copy of the id list.
func (e *Engine) rebuild(i int) {
	w := e.opts.Window
	window := make([]int, w)
	for k := range window {
		window[k] = i - w + k
	}

	e.eachTree(func(t int) {
		ids := make([]int, w)
		copy(ids, window)
		e.trees[t].Build(e.points, ids)
	})

	e.population = w
	e.rebuilds++
}

// insertAll routes point id into every tree, recording the landing leaves.
func (e *Engine) insertAll(id int) {
	e.eachTree(func(t int) {
		e.leaves[t] = e.trees[t].Insert(e.points, id)
	})
}

// eachTree runs fn(t) for every tree index, fanning out across goroutines
// when Options.Parallel is set. Trees are fully independent during build
// and insert, so the result is identical either way.
func (e *Engine) eachTree(fn func(t int)) {
	if !e.opts.Parallel {
		for t := range e.trees {
			fn(t)
		}

		return
	}

	var wg sync.WaitGroup
	wg.Add(len(e.trees))
	for t := range e.trees {
		go func() {
			defer wg.Done()
			fn(t)
		}()
	}
	wg.Wait()
}

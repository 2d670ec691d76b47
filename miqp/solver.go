// Package miqp solves the allocation-equilibrium problem exactly: a
// least-squares objective over non-negative integer purchase counts,
// subject to a spend window.
//
// The search is a depth-first branch and bound over the integer lattice.
// The budget caps each variable at floor(budget/price), so the feasible
// region is finite; spend bounds prune most of it. The objective is
// evaluated incrementally on a residual vector, so a node costs O(n)
// instead of a full matrix product.
package miqp

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/PhDFlo/foliotrack"
)

// DefaultNodeLimit caps the number of search nodes. Personal portfolios
// stay far below it; if it is ever exhausted the best incumbent found so
// far is returned.
const DefaultNodeLimit = 4_000_000

// Solver is the default allocation-equilibrium solver.
type Solver struct {
	// NodeLimit overrides DefaultNodeLimit when positive.
	NodeLimit int
}

// New returns a Solver with default settings.
func New() *Solver { return &Solver{} }

type search struct {
	prices   []float64       // in search order (descending price)
	deltas   []*mat.VecDense // residual change per unit of each security
	residual *mat.VecDense
	minSpend float64
	maxSpend float64
	eps      float64

	nodes     int
	nodeLimit int

	best      float64
	bestUnits []int64
	found     bool
}

// Solve explores the feasible integer lattice and returns the unit
// vector minimizing the deviation objective, or an infeasible status
// when no vector satisfies the spend window.
func (s *Solver) Solve(p *foliotrack.Problem) (*foliotrack.Solution, error) {
	n := len(p.Prices)
	if n == 0 {
		return nil, errors.New("no decision variables")
	}
	if len(p.Invested) != n || len(p.Targets) != n {
		return nil, errors.New("prices, invested and targets must have the same length")
	}
	for _, price := range p.Prices {
		if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			return nil, errors.New("all prices must be positive finite numbers")
		}
	}
	if p.Budget < 0 {
		return nil, errors.New("budget must not be negative")
	}

	// Search the most expensive securities first: their budget bound is
	// the tightest, which keeps the tree narrow near the root.
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return p.Prices[order[a]] > p.Prices[order[b]] })

	// The objective is ‖M(invested + P·x)‖ with M = I − target·1ᵀ, so one
	// more unit of security i moves the residual by price_i·(e_i − target).
	residual := mat.NewVecDense(n, nil)
	targets := mat.NewVecDense(n, p.Targets)
	invested := mat.NewVecDense(n, p.Invested)
	residual.AddScaledVec(invested, -mat.Sum(invested), targets)

	st := &search{
		prices:    make([]float64, n),
		deltas:    make([]*mat.VecDense, n),
		residual:  residual,
		minSpend:  p.MinFraction * p.Budget,
		maxSpend:  p.Budget,
		eps:       1e-9 * math.Max(1, p.Budget),
		nodeLimit: s.NodeLimit,
	}
	if st.nodeLimit <= 0 {
		st.nodeLimit = DefaultNodeLimit
	}
	for rank, i := range order {
		st.prices[rank] = p.Prices[i]
		delta := mat.NewVecDense(n, nil)
		delta.AddScaledVec(delta, -p.Prices[i], targets)
		delta.SetVec(i, delta.AtVec(i)+p.Prices[i])
		st.deltas[rank] = delta
	}

	units := make([]int64, n)
	st.dfs(0, 0, units)

	if !st.found {
		return &foliotrack.Solution{Status: foliotrack.StatusInfeasible}, nil
	}

	// Map the solution back to the caller's variable order.
	out := make([]float64, n)
	for rank, i := range order {
		out[i] = float64(st.bestUnits[rank])
	}
	return &foliotrack.Solution{Status: foliotrack.StatusOptimal, Units: out}, nil
}

func (st *search) dfs(i int, spent float64, units []int64) {
	st.nodes++
	if st.nodes > st.nodeLimit {
		return
	}
	if i == len(st.prices) {
		if spent < st.minSpend-st.eps || spent > st.maxSpend+st.eps {
			return
		}
		obj := mat.Norm(st.residual, 2)
		if !st.found || obj < st.best {
			st.found = true
			st.best = obj
			st.bestUnits = append(st.bestUnits[:0], units...)
		}
		return
	}

	maxU := int64(math.Floor((st.maxSpend - spent + st.eps) / st.prices[i]))
	var u int64
	for u = 0; u <= maxU; u++ {
		if u > 0 {
			st.residual.AddVec(st.residual, st.deltas[i])
		}
		units[i] = u
		st.dfs(i+1, spent+float64(u)*st.prices[i], units)
	}
	units[i] = 0
	st.residual.AddScaledVec(st.residual, -float64(maxU), st.deltas[i])
}

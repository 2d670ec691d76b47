package foliotrack

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultMinFraction is the default minimum fraction of the budget the
// purchase plan must spend. Spending close to the full budget avoids
// leaving large unspent cash while still bounding the total.
const DefaultMinFraction = 0.99

// Solve statuses reported by solvers.
const (
	StatusOptimal    = "optimal"
	StatusInfeasible = "infeasible"
)

// Problem is the allocation-equilibrium optimization problem over the
// integer units to buy per security:
//
//	minimize  ‖(invested + P·x) − sum(invested + P·x)·target‖₂
//	subject to x ∈ ℤⁿ, x ≥ 0,
//	           MinFraction·Budget ≤ 1ᵀ(P·x) ≤ Budget
//
// where P is the diagonal matrix of portfolio-currency unit prices.
// Vectors are indexed in portfolio insertion order.
type Problem struct {
	Prices      []float64
	Invested    []float64
	Targets     []float64
	Budget      float64
	MinFraction float64
}

// Deviation evaluates the objective for a candidate unit vector: the
// Euclidean distance between each post-purchase invested amount and its
// proportional target share of the post-purchase total.
func (p *Problem) Deviation(units []float64) float64 {
	n := len(p.Prices)
	post := mat.NewVecDense(n, nil)
	post.MulVec(mat.NewDiagDense(n, p.Prices), mat.NewVecDense(n, units))
	post.AddVec(post, mat.NewVecDense(n, p.Invested))

	total := mat.Sum(post)
	dev := mat.NewVecDense(n, nil)
	dev.AddScaledVec(post, -total, mat.NewVecDense(n, p.Targets))
	return mat.Norm(dev, 2)
}

// Spend returns the total cost of a candidate unit vector.
func (p *Problem) Spend(units []float64) float64 {
	return mat.Dot(mat.NewVecDense(len(p.Prices), p.Prices), mat.NewVecDense(len(units), units))
}

// Solution is what a solver reports back: a status string and, when
// solved, one value per decision variable.
type Solution struct {
	Status string
	Units  []float64
}

// Solver is the optimization collaborator. It is a black box: given the
// problem it returns a status and, if solved, a value per variable.
// Tie-breaking between equally good integer solutions is solver-dependent.
type Solver interface {
	Solve(*Problem) (*Solution, error)
}

// Equilibrate computes the purchase plan that best moves the portfolio
// toward its target shares within the budget, and writes the results
// (units to buy, amount to invest, resulting final share) back onto each
// security.
//
// The solve is transactional: securities are only mutated after a valid
// solution is obtained. On failure the portfolio is left untouched and a
// *SolverError names the reported status.
//
// A minFraction of 0, or any value outside (0, 1], selects
// DefaultMinFraction.
func (p *Portfolio) Equilibrate(solver Solver, budget Money, minFraction float64) error {
	if len(p.securities) == 0 {
		return ErrEmptyPortfolio
	}
	if budget.IsNegative() {
		return fmt.Errorf("invalid budget %v: must not be negative", budget)
	}
	if minFraction <= 0 || minFraction > 1 {
		minFraction = DefaultMinFraction
	}
	// Re-derive totals and gate on target-share completeness.
	if err := p.ComputeActualShares(); err != nil {
		return err
	}

	n := len(p.securities)
	problem := &Problem{
		Prices:      make([]float64, n),
		Invested:    make([]float64, n),
		Targets:     make([]float64, n),
		Budget:      budget.AsFloat(),
		MinFraction: minFraction,
	}
	for i, s := range p.securities {
		problem.Prices[i] = s.price.AsFloat()
		problem.Invested[i] = s.invested.AsFloat()
		problem.Targets[i] = float64(s.targetShare)
	}

	sol, err := solver.Solve(problem)
	if err != nil {
		return &SolverError{Status: err.Error()}
	}
	if sol == nil || sol.Units == nil || sol.Status != StatusOptimal {
		status := StatusInfeasible
		if sol != nil && sol.Status != "" {
			status = sol.Status
		}
		return &SolverError{Status: status}
	}

	// Round to whole units and clip negative rounding artifacts.
	units := make([]int64, n)
	amounts := make([]Money, n)
	totalPost := M(0, p.currency)
	for i, s := range p.securities {
		u := int64(math.Round(sol.Units[i]))
		if u < 0 {
			u = 0
		}
		units[i] = u
		amounts[i] = s.price.Mul(Q(u)).Round()
		totalPost = totalPost.Add(s.invested).Add(amounts[i])
	}

	// Write back only now that the whole plan is known to be valid.
	for i, s := range p.securities {
		s.numberToBuy = units[i]
		s.amountToInvest = amounts[i]
		if totalPost.IsZero() {
			s.finalShare = 0
			continue
		}
		s.finalShare = Percent(s.invested.Add(amounts[i]).Div(totalPost).InexactFloat64()).Round()
	}
	return nil
}

package sizing

import (
	"fmt"

	"github.com/curioloop/optimizer/slsqp"
)

// Solver tolerances and starting points for the reference runs.
const (
	solveAccuracy = 1e-6
	solveFTol     = 1e-6
	solveMaxIter  = 1000

	// capacityGuess is the fixed starting capacity for the full model.
	capacityGuess = 20
	// batteryMassGuess is the default starting mass for the coarse model.
	batteryMassGuess = 1.0
)

// Result is a successful sizing outcome. X is the optimal design variable:
// battery capacity in Ah for the full model, battery mass in kg for the
// coarse one. The derived quantities are recomputed from X, never taken
// from solver internals.
type Result struct {
	X float64
	Derived
	NumIter int
}

// model is the capability set a sizing variant exposes to the shared
// solver driver: a scalar objective with its derivative, an optional
// inequality set, a box bound and the derived-quantity recompute.
type model interface {
	Objective(x float64) float64
	objectiveGrad(x float64) float64
	constraints() []Constraint
	bounds() slsqp.Bound
	Derived(x float64) Derived
}

func (p *Params) constraints() []Constraint { return p.Constraints() }

func (p *Params) bounds() slsqp.Bound {
	return slsqp.Bound{Lower: p.MinCapacity, Upper: p.MaxCapacity}
}

// The coarse model has no explicit constraint set: feasibility rides
// entirely on the box bound 0 <= x <= 2*FrameMass.
func (p *SimpleParams) constraints() []Constraint { return nil }

func (p *SimpleParams) bounds() slsqp.Bound {
	return slsqp.Bound{Lower: 0, Upper: 2 * p.FrameMass}
}

// Optimize sizes the battery with the full model, starting from the fixed
// capacity guess. The solve is single-shot and local: it either converges
// to a feasible optimum or returns an *InfeasibleError, never retries.
func (p *Params) Optimize() (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return solve(p, capacityGuess)
}

// Optimize sizes the battery with the coarse model from the default
// starting mass of 1 kg.
func (p *SimpleParams) Optimize() (*Result, error) {
	return p.OptimizeFrom(batteryMassGuess)
}

// OptimizeFrom sizes the battery with the coarse model from a caller-chosen
// starting mass. The method is local: different starting points may land on
// different local optima.
func (p *SimpleParams) OptimizeFrom(x0 float64) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return solve(p, x0)
}

// solve runs one SLSQP fit of a variant. Each call owns its workspace, so
// concurrent solves over distinct parameter sets do not share state.
func solve(m model, x0 float64) (*Result, error) {
	cons := m.constraints()
	neq := make([]slsqp.Evaluation, len(cons))
	for i := range cons {
		c := cons[i] // pin: each closure adapts exactly one constraint
		neq[i] = func(x, g []float64) float64 {
			if g != nil {
				g[0] = c.Grad(x[0])
			}
			return c.Eval(x[0])
		}
	}

	prob := slsqp.Problem{
		N: 1,
		Object: func(x, g []float64) float64 {
			if g != nil {
				g[0] = m.objectiveGrad(x[0])
			}
			return m.Objective(x[0])
		},
		NeqCons: neq,
		Bounds:  []slsqp.Bound{m.bounds()},
		Stop: slsqp.Termination{
			Accuracy:       solveAccuracy,
			FDiffTolerance: solveFTol,
			MaxIterations:  solveMaxIter,
		},
	}

	opt, err := prob.New()
	if err != nil {
		return nil, err
	}

	res := opt.Fit([]float64{x0}, opt.Init())
	if !res.OK {
		return nil, &InfeasibleError{Diagnostic: diagnostic(res), NumIter: res.NumIter}
	}

	x := res.X[0]
	return &Result{X: x, Derived: m.Derived(x), NumIter: res.NumIter}, nil
}

// diagnostic translates a failed solver status into the message surfaced
// by InfeasibleError.
func diagnostic(r *slsqp.Result) string {
	switch r.Status {
	case slsqp.SQPExceedMaxIter:
		return "iteration limit exceeded"
	case slsqp.NNLSExceedMaxIter:
		return "iteration limit exceeded in NNLS subproblem"
	case slsqp.ConsIncompatible:
		return "inequality constraints incompatible"
	case slsqp.SearchNotDescent:
		return "positive directional derivative for line search"
	case slsqp.LSISingularE:
		return "singular matrix E in LSI subproblem"
	case slsqp.LSEISingularC:
		return "singular matrix C in LSEI subproblem"
	case slsqp.HFTIRankDefect:
		return "rank-deficient equality constraint subproblem"
	case slsqp.BadArgument:
		return "objective or constraint evaluation failed"
	default:
		return fmt.Sprintf("solver stopped with status %d", r.Status)
	}
}

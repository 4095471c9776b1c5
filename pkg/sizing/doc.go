// Package sizing picks a multirotor battery by solving a one-variable
// constrained nonlinear program: minimize vehicle cost minus a weighted
// endurance reward, subject to a weight budget, an endurance floor and
// capacity bounds.
//
// # Variants
//
//   - Params: the full model. The design variable is battery capacity (Ah);
//     battery mass follows an affine, thrust-derated curve of capacity and
//     flight time includes the propulsion factor PropCount/PropEfficiency.
//     Feasibility is enforced by four inequality constraints on top of the
//     capacity box bound.
//
//   - SimpleParams: a coarse model. The design variable is battery mass (kg)
//     directly, flight time omits the propulsion factor, and feasibility
//     rides on the box bound 0 <= mass <= 2*FrameMass alone.
//
// Both variants are immutable constant bundles: construct once, call
// Optimize, read the Result. Model methods are pure functions of the
// parameter set and the candidate design variable, total over the reals
// (the solver probes infeasible trial points during line search), with the
// single pole TotalMass(x) == 0 mapped to NaN.
//
// # Solving
//
// The solve is a local SQP fit (github.com/curioloop/optimizer/slsqp) from a
// fixed starting point; there is no multi-start and no global-optimum
// guarantee. A converged run yields Result{X, Derived, NumIter}; anything
// else yields *InfeasibleError wrapping ErrInfeasible with the solver's
// diagnostic. Re-solving an unchanged parameter set is deterministic.
//
// The TimeWeight field (default 50) is the knob trading currency against
// minutes of endurance in the objective. It is configuration, not physics:
// tune it to taste.
//
// Example:
//
//	p := sizing.DefaultParams()
//	res, err := p.Optimize()
//	if err != nil {
//	    // errors.Is(err, sizing.ErrInfeasible) for a failed solve
//	}
//	fmt.Println(res.Derived.FlightTime) // "34.26 min"
//
// Concurrent solves are safe as long as each goroutine owns its parameter
// set; nothing is shared between invocations.
package sizing

package sizing

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible indicates the solver could not produce a design that
	// satisfies the bounds and constraints to tolerance.
	ErrInfeasible = errors.New("sizing: no feasible design")

	// ErrInvalidParams indicates a parameter set that violates the model
	// preconditions (negative masses/costs, inverted bounds, ...).
	ErrInvalidParams = errors.New("sizing: invalid parameters")
)

// InfeasibleError carries the solver's native diagnostic for a failed solve.
type InfeasibleError struct {
	Diagnostic string // solver status, verbatim
	NumIter    int    // iterations spent before giving up
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf("%v: %s (after %d iterations)", ErrInfeasible, e.Diagnostic, e.NumIter)
}

func (e *InfeasibleError) Unwrap() error { return ErrInfeasible }

// ParamError names the first parameter found invalid.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidParams, e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error { return ErrInvalidParams }

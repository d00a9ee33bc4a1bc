package cpmodel

import "context"

// Solver optimizes a model. Implementations must honor ctx cancellation and
// Parameters.TimeLimit by returning the best incumbent found so far with the
// matching StopReason, not an error. Errors are reserved for failures of the
// backend itself.
type Solver interface {
	Solve(ctx context.Context, m *Model, p Parameters) (Response, error)
}

// SolverFunc adapts a function to the Solver interface.
type SolverFunc func(ctx context.Context, m *Model, p Parameters) (Response, error)

// Solve calls f.
func (f SolverFunc) Solve(ctx context.Context, m *Model, p Parameters) (Response, error) {
	return f(ctx, m, p)
}

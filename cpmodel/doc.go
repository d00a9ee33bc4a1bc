// Package cpmodel describes integer constraint models and the contract a
// solver backend must satisfy to optimize them.
//
// A model has integer variables with finite bounds, boolean variables whose
// literals can be negated, linear constraints lo ≤ Σ cᵢ·xᵢ ≤ hi that may be
// enforced by literals (the constraint only has to hold when every
// enforcement literal is true), clauses, and a single linear objective.
// Value hints seed the search with a warm start.
//
// Models are assembled with a Builder and frozen by Builder.Model, which
// validates every reference:
//
//	b := cpmodel.NewBuilder()
//	x := b.NewIntVar(0, 10, "x")
//	on := b.NewBoolVar("on")
//	b.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x, 1), cpmodel.Constant(0)).
//		OnlyEnforceIf(on.Not())
//	b.Maximize(cpmodel.NewLinearExpr().Add(x, 1))
//	m, err := b.Model()
//
// A frozen Model is immutable and may be solved concurrently by any number
// of Solver implementations.
//
// Errors:
//
//	ErrInvalidModel  - wrapped by every validation failure of Builder.Model
package cpmodel

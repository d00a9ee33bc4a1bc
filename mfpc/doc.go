// Package mfpc formulates and solves Maximum Flow with Pairwise Conflicts:
// a classical s–t maximum flow where some arc pairs may not both carry
// positive flow.
//
// Pipeline (each stage a pure transformation of its input):
//
//	network.Parse → Build → Solver.Solve → Interpret (→ Verify)
//
// # Formulation
//
// For every arc e with capacity uₑ, Build declares flowₑ ∈ [0, uₑ] and a
// boolean activeₑ tied to it by the exact biconditional activeₑ ⟺ flowₑ > 0:
//
//	CouplingLinear (default):  flowₑ ≤ uₑ·activeₑ  and  flowₑ ≥ activeₑ
//	CouplingImplication:       activeₑ ⇒ flowₑ ≥ 1 and ¬activeₑ ⇒ flowₑ = 0
//
// A flow value z ∈ [0, Σ capacity leaving the source] balances the
// terminals: out(s) − in(s) = z, in(t) − out(t) = z, in(v) = out(v)
// elsewhere. The objective is maximize z. Each conflict pair {a, b} adds
// activeₐ + active_b ≤ 1 (ConflictLinear) or ¬activeₐ ∨ ¬active_b
// (ConflictClause).
//
// Optional strengthening:
//
//	WithRelaxationCut()        z ≤ classical max-flow value (conflicts ignored)
//	WithReachabilityPruning()  arcs on no source→sink walk are fixed inactive
//
// # Solving
//
// Solver forwards a Formulation to a cpmodel.Solver backend (cpsolver by
// default) under a time limit, optionally seeded with a warm start, and
// maps the backend status onto Status. A Solution exists only for Optimal and
// Feasible results.
//
// # Errors
//
//	ErrNilInstance            - nil instance passed to Build
//	ErrInvalidConfig          - negative time limit
//	*ModelInconsistencyError  - a returned assignment breaks the model; this
//	                            is an encoding defect, never infeasibility
package mfpc

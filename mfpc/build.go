package mfpc

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mfpc/cpmodel"
	"github.com/katalvlaran/mfpc/flow"
	"github.com/katalvlaran/mfpc/network"
)

// ErrNilInstance is returned when a nil instance is passed.
var ErrNilInstance = errors.New("mfpc: instance is nil")

// Coupling selects the encoding of activeₑ ⟺ flowₑ > 0.
type Coupling int

const (
	// CouplingLinear uses flowₑ ≤ uₑ·activeₑ and flowₑ ≥ activeₑ.
	CouplingLinear Coupling = iota
	// CouplingImplication uses two enforced constraints on flowₑ.
	CouplingImplication
)

func (c Coupling) String() string {
	if c == CouplingImplication {
		return "implication"
	}
	return "linear"
}

// ParseCoupling maps "linear" or "implication" to a Coupling.
func ParseCoupling(s string) (Coupling, error) {
	switch s {
	case "linear", "":
		return CouplingLinear, nil
	case "implication":
		return CouplingImplication, nil
	}
	return 0, fmt.Errorf("mfpc: unknown coupling %q", s)
}

// ConflictEncoding selects the encoding of a conflict pair.
type ConflictEncoding int

const (
	// ConflictLinear uses activeₐ + active_b ≤ 1.
	ConflictLinear ConflictEncoding = iota
	// ConflictClause uses ¬activeₐ ∨ ¬active_b.
	ConflictClause
)

func (c ConflictEncoding) String() string {
	if c == ConflictClause {
		return "clause"
	}
	return "linear"
}

// ParseConflictEncoding maps "linear" or "clause" to a ConflictEncoding.
func ParseConflictEncoding(s string) (ConflictEncoding, error) {
	switch s {
	case "linear", "":
		return ConflictLinear, nil
	case "clause":
		return ConflictClause, nil
	}
	return 0, fmt.Errorf("mfpc: unknown conflict encoding %q", s)
}

// BuildOptions controls the formulation.
type BuildOptions struct {
	Coupling            Coupling
	Conflicts           ConflictEncoding
	RelaxationCut       bool
	ReachabilityPruning bool
}

// BuildOption mutates BuildOptions.
type BuildOption func(*BuildOptions)

// WithCoupling selects the activation encoding.
func WithCoupling(c Coupling) BuildOption {
	return func(o *BuildOptions) { o.Coupling = c }
}

// WithConflictEncoding selects the conflict encoding.
func WithConflictEncoding(c ConflictEncoding) BuildOption {
	return func(o *BuildOptions) { o.Conflicts = c }
}

// WithRelaxationCut bounds z by the classical max-flow value.
func WithRelaxationCut() BuildOption {
	return func(o *BuildOptions) { o.RelaxationCut = true }
}

// WithReachabilityPruning fixes arcs that lie on no source→sink walk.
func WithReachabilityPruning() BuildOption {
	return func(o *BuildOptions) { o.ReachabilityPruning = true }
}

// Formulation is the constraint model of one instance together with the
// mapping from arc indices to model variables. It is not changed by solving:
// every solve works on its own Model copy, so one Formulation may be solved
// concurrently.
type Formulation struct {
	inst    *network.Instance
	opts    BuildOptions
	builder *cpmodel.Builder

	flow   map[int]cpmodel.IntVar
	active map[int]cpmodel.BoolVar
	value  cpmodel.IntVar

	pruned     []int
	relaxation int64
}

// Build translates inst into a constraint model.
//
// Steps:
//  1. Declare flowₑ, activeₑ per arc and z (O(E)).
//  2. Couple every pair exactly (O(E)).
//  3. One conservation constraint per node touched by an arc (O(V + E)),
//     then the objective: maximize z.
//  4. One exclusion per conflict pair (O(C)).
//  5. Optional relaxation cut (one max-flow) and pruning (two BFS).
func Build(inst *network.Instance, opts ...BuildOption) (*Formulation, error) {
	if inst == nil {
		return nil, ErrNilInstance
	}
	var o BuildOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := cpmodel.NewBuilder()
	f := &Formulation{
		inst:       inst,
		opts:       o,
		builder:    b,
		flow:       make(map[int]cpmodel.IntVar, inst.NumArcs()),
		active:     make(map[int]cpmodel.BoolVar, inst.NumArcs()),
		relaxation: -1,
	}

	// 1) Variables
	arcs := inst.Arcs()
	for _, a := range arcs {
		f.flow[a.Index] = b.NewIntVar(0, a.Capacity, fmt.Sprintf("flow_%d", a.Index))
		f.active[a.Index] = b.NewBoolVar(fmt.Sprintf("active_%d", a.Index))
	}
	f.value = b.NewIntVar(0, inst.SourceCapacity(), "z")

	// 2) Coupling
	for _, a := range arcs {
		fv, av := f.flow[a.Index], f.active[a.Index]
		switch o.Coupling {
		case CouplingImplication:
			b.AddGreaterOrEqual(expr(fv, 1), cpmodel.Constant(1)).
				OnlyEnforceIf(av.Lit()).WithName(fmt.Sprintf("on_%d", a.Index))
			b.AddEquality(expr(fv, 1), cpmodel.Constant(0)).
				OnlyEnforceIf(av.Not()).WithName(fmt.Sprintf("off_%d", a.Index))
		default:
			b.AddLessOrEqual(expr(fv, 1), expr(av, a.Capacity)).WithName(fmt.Sprintf("cap_%d", a.Index))
			b.AddGreaterOrEqual(expr(fv, 1), expr(av, 1)).WithName(fmt.Sprintf("min_%d", a.Index))
		}
	}

	// 3) Conservation
	for _, v := range inst.Nodes() {
		out, in := inst.Outgoing(v), inst.Incoming(v)
		if len(out) == 0 && len(in) == 0 && v != inst.Source() && v != inst.Sink() {
			continue
		}
		net := cpmodel.NewLinearExpr()
		for _, pos := range out {
			net.Add(f.flow[arcs[pos].Index], 1)
		}
		for _, pos := range in {
			net.Add(f.flow[arcs[pos].Index], -1)
		}
		switch v {
		case inst.Source():
			b.AddEquality(net, expr(f.value, 1)).WithName("source")
		case inst.Sink():
			b.AddEquality(net, expr(f.value, -1)).WithName("sink")
		default:
			b.AddEquality(net, cpmodel.Constant(0)).WithName(fmt.Sprintf("node_%d", v))
		}
	}

	// Objective
	b.Maximize(expr(f.value, 1))

	// 4) Conflicts
	for _, c := range inst.Conflicts() {
		x, y := f.active[c.A], f.active[c.B]
		name := fmt.Sprintf("conflict_%d_%d", c.A, c.B)
		switch o.Conflicts {
		case ConflictClause:
			b.AddBoolOr(x.Not(), y.Not())
		default:
			b.AddAtMostOne(x.Lit(), y.Lit()).WithName(name)
		}
	}

	// 5) Strengthening
	if o.RelaxationCut {
		res, err := flow.Dinic(inst)
		if err != nil {
			return nil, fmt.Errorf("mfpc: relaxation: %w", err)
		}
		f.relaxation = res.Value
		b.AddLessOrEqual(expr(f.value, 1), cpmodel.Constant(res.Value)).WithName("relaxation")
	}
	if o.ReachabilityPruning {
		for pos, useful := range network.UsefulArcs(inst) {
			if !useful {
				idx := arcs[pos].Index
				b.FixBool(f.active[idx], false)
				f.pruned = append(f.pruned, idx)
			}
		}
	}

	return f, nil
}

func expr(v cpmodel.Var, coeff int64) *cpmodel.LinearExpr {
	return cpmodel.NewLinearExpr().Add(v, coeff)
}

// Instance returns the instance the formulation was built from.
func (f *Formulation) Instance() *network.Instance { return f.inst }

// Options returns the options used by Build.
func (f *Formulation) Options() BuildOptions { return f.opts }

// FlowVar returns the flow variable of an arc.
func (f *Formulation) FlowVar(index int) (cpmodel.IntVar, bool) {
	v, ok := f.flow[index]
	return v, ok
}

// ActiveVar returns the activation variable of an arc.
func (f *Formulation) ActiveVar(index int) (cpmodel.BoolVar, bool) {
	v, ok := f.active[index]
	return v, ok
}

// ValueVar returns z.
func (f *Formulation) ValueVar() cpmodel.IntVar { return f.value }

// Pruned returns the arcs fixed inactive by reachability pruning.
func (f *Formulation) Pruned() []int { return append([]int(nil), f.pruned...) }

// RelaxationBound returns the classical max-flow value used as a cut, if any.
func (f *Formulation) RelaxationBound() (int64, bool) {
	return f.relaxation, f.relaxation >= 0
}

// Model returns a fresh copy of the constraint model, without hints.
func (f *Formulation) Model() (*cpmodel.Model, error) {
	return f.builder.Model()
}

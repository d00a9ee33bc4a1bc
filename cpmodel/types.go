package cpmodel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidModel wraps every validation failure reported by Builder.Model.
var ErrInvalidModel = errors.New("cpmodel: invalid model")

// Unbounded sides of a linear constraint.
const (
	NegInf int64 = math.MinInt64
	PosInf int64 = math.MaxInt64
)

// Var is anything that names a model variable.
type Var interface {
	Index() int
}

// IntVar is an integer decision variable.
type IntVar struct{ index int }

// Index returns the position of v in Model.Vars.
func (v IntVar) Index() int { return v.index }

// BoolVar is a 0/1 decision variable.
type BoolVar struct{ index int }

// Index returns the position of v in Model.Vars.
func (v BoolVar) Index() int { return v.index }

// Lit returns the positive literal of v.
func (v BoolVar) Lit() Literal { return Literal{Var: v.index} }

// Not returns the negative literal of v.
func (v BoolVar) Not() Literal { return Literal{Var: v.index, Negated: true} }

// Literal is a boolean variable or its negation.
type Literal struct {
	Var     int
	Negated bool
}

// Not flips the literal.
func (l Literal) Not() Literal { return Literal{Var: l.Var, Negated: !l.Negated} }

// Holds reports whether the literal is true under value (0 or 1).
func (l Literal) Holds(value int64) bool { return (value != 0) != l.Negated }

func (l Literal) String() string {
	if l.Negated {
		return fmt.Sprintf("¬v%d", l.Var)
	}
	return fmt.Sprintf("v%d", l.Var)
}

// Domain is the declared range of a variable.
type Domain struct {
	Name string
	Lo   int64
	Hi   int64
	Bool bool
}

// Term is one coefficient-variable product.
type Term struct {
	Var   int
	Coeff int64
}

// Linear is lo ≤ Σ terms ≤ hi, required only when every Enforce literal holds.
type Linear struct {
	Name    string
	Terms   []Term
	Lo, Hi  int64
	Enforce []Literal
}

// Objective is Σ terms + Offset, maximized or minimized.
type Objective struct {
	Terms    []Term
	Offset   int64
	Maximize bool
}

// Model is a validated, immutable constraint model.
type Model struct {
	Vars      []Domain
	Linear    []Linear
	Clauses   [][]Literal
	Objective *Objective
	Hints     map[int]int64
}

// Size summarizes a model.
type Size struct {
	Vars, Bools, Linear, Enforced, Clauses, Hints int
}

// Size counts the parts of m.
func (m *Model) Size() Size {
	s := Size{Vars: len(m.Vars), Linear: len(m.Linear), Clauses: len(m.Clauses), Hints: len(m.Hints)}
	for _, d := range m.Vars {
		if d.Bool {
			s.Bools++
		}
	}
	for _, c := range m.Linear {
		if len(c.Enforce) > 0 {
			s.Enforced++
		}
	}

	return s
}

// Status is the outcome of a solve.
type Status int

const (
	// Unknown: no solution found and nothing proven.
	Unknown Status = iota
	// Optimal: the returned solution is proven optimal.
	Optimal
	// Feasible: a solution was found but optimality was not proven.
	Feasible
	// Infeasible: the model is proven to have no solution.
	Infeasible
	// ModelInvalid: the backend rejected the model.
	ModelInvalid
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case ModelInvalid:
		return "MODEL_INVALID"
	default:
		return "UNKNOWN"
	}
}

// StopReason says why a search ended before completing.
type StopReason int

const (
	// StopNone: the search ran to completion.
	StopNone StopReason = iota
	// StopTimeLimit: Parameters.TimeLimit expired.
	StopTimeLimit
	// StopCanceled: the context was canceled.
	StopCanceled
	// StopNodeLimit: Parameters.NodeLimit search nodes were explored.
	StopNodeLimit
)

func (r StopReason) String() string {
	switch r {
	case StopTimeLimit:
		return "time-limit"
	case StopCanceled:
		return "canceled"
	case StopNodeLimit:
		return "node-limit"
	default:
		return "none"
	}
}

// Parameters tune a single solve.
type Parameters struct {
	// TimeLimit bounds wall time; zero means none.
	TimeLimit time.Duration
	// LogSearchProgress emits incumbents and a summary through Logger.
	LogSearchProgress bool
	// Logger receives progress lines; nil discards them.
	Logger *log.Logger
	// NodeLimit bounds the number of search nodes; zero means none.
	NodeLimit int64
}

// SearchStats are backend counters.
type SearchStats struct {
	Nodes        int64
	Failures     int64
	Propagations int64
	Solutions    int
}

// Response is what a solver returns.
type Response struct {
	Status     Status
	StopReason StopReason
	// Values is indexed like Model.Vars; nil unless Status is Optimal or Feasible.
	Values    []int64
	Objective int64
	// BestBound is a proven bound on the objective (upper when maximizing).
	BestBound int64
	WallTime  time.Duration
	Stats     SearchStats
}

// HasSolution reports whether Values holds an assignment.
func (r Response) HasSolution() bool {
	return r.Status == Optimal || r.Status == Feasible
}

// Value returns the value of v in the response.
func (r Response) Value(v Var) int64 { return r.Values[v.Index()] }

// BoolValue evaluates a literal in the response.
func (r Response) BoolValue(l Literal) bool { return l.Holds(r.Values[l.Var]) }

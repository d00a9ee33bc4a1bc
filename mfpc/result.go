package mfpc

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/katalvlaran/mfpc/cpmodel"
)

// Status is the canonical outcome of a solve.
type Status int

const (
	// Unknown: the backend stopped without a verdict and without a solution.
	Unknown Status = iota
	// Optimal: the solution is proven maximal.
	Optimal
	// Feasible: a valid solution exists but optimality was not proven.
	Feasible
	// Infeasible: no assignment satisfies the model.
	Infeasible
	// Timeout: the time limit expired before optimality was proven.
	Timeout
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Timeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// HasSolution reports whether results with this status carry a Solution.
func (s Status) HasSolution() bool { return s == Optimal || s == Feasible }

// Solution is an assignment returned by the solver.
type Solution struct {
	// Objective is the flow value z.
	Objective int64
	// Flow maps every arc index to its flow.
	Flow map[int]int64
	// Active maps every arc index to its activation.
	Active map[int]bool
}

// ActiveArcs returns the indices of active arcs, ascending.
func (s *Solution) ActiveArcs() []int {
	out := make([]int, 0, len(s.Active))
	for idx, on := range s.Active {
		if on {
			out = append(out, idx)
		}
	}
	sort.Ints(out)

	return out
}

// Result is the outcome of one solve. Solution is nil unless Status is
// Optimal or Feasible; Bound is nil when nothing is known about the optimum.
type Result struct {
	Status    Status
	Solution  *Solution
	SolveTime time.Duration
	Bound     *int64
	Stats     cpmodel.SearchStats
}

// Gap returns the relative optimality gap (bound − objective) / bound.
// It reports false when either side is missing or the bound lies below the
// objective, which no consistent backend produces.
func (r Result) Gap() (float64, bool) {
	if r.Solution == nil || r.Bound == nil || *r.Bound < r.Solution.Objective {
		return 0, false
	}
	if *r.Bound == r.Solution.Objective {
		return 0, true
	}

	return float64(*r.Bound-r.Solution.Objective) / float64(*r.Bound), true
}

// mapStatus folds the backend status into Status. Only a time limit turns a
// non-proven outcome into Timeout; cancellation stays Unknown or Feasible.
func mapStatus(resp cpmodel.Response) Status {
	switch resp.Status {
	case cpmodel.Optimal:
		return Optimal
	case cpmodel.Feasible:
		return Feasible
	case cpmodel.Infeasible:
		return Infeasible
	case cpmodel.Unknown:
		if resp.StopReason == cpmodel.StopTimeLimit {
			return Timeout
		}
	}
	return Unknown
}

// Interpret turns a backend response for f into a Result.
func Interpret(f *Formulation, resp cpmodel.Response) (Result, error) {
	res := Result{
		Status:    mapStatus(resp),
		SolveTime: resp.WallTime,
		Stats:     resp.Stats,
	}
	if resp.Status == cpmodel.ModelInvalid {
		return res, fmt.Errorf("mfpc: %w", cpmodel.ErrInvalidModel)
	}
	if res.Status != Infeasible {
		bound := resp.BestBound
		res.Bound = &bound
	}
	if !res.Status.HasSolution() {
		return res, nil
	}

	want := f.value.Index() + 1
	if len(resp.Values) < want {
		return Result{}, fmt.Errorf("mfpc: response holds %d values, model needs %d", len(resp.Values), want)
	}
	sol := &Solution{
		Objective: resp.Values[f.value.Index()],
		Flow:      make(map[int]int64, len(f.flow)),
		Active:    make(map[int]bool, len(f.active)),
	}
	for idx, v := range f.flow {
		sol.Flow[idx] = resp.Values[v.Index()]
	}
	for idx, v := range f.active {
		sol.Active[idx] = resp.Values[v.Index()] != 0
	}
	res.Solution = sol

	return res, nil
}

// ErrModelInconsistency is matched by every *ModelInconsistencyError.
var ErrModelInconsistency = errors.New("mfpc: model inconsistency")

// Rules checked by Verify.
const (
	RuleCoverage     = "coverage"
	RuleCapacity     = "capacity"
	RuleActivation   = "activation"
	RuleConflict     = "conflict"
	RuleConservation = "conservation"
	RuleObjective    = "objective"
)

// ModelInconsistencyError reports an assignment that violates the MFPC
// semantics. It signals a defect in the formulation or the backend.
type ModelInconsistencyError struct {
	Rule   string
	Arcs   []int
	Detail string
}

func (e *ModelInconsistencyError) Error() string {
	if len(e.Arcs) > 0 {
		return fmt.Sprintf("mfpc: model inconsistency (%s) on arcs %v: %s", e.Rule, e.Arcs, e.Detail)
	}
	return fmt.Sprintf("mfpc: model inconsistency (%s): %s", e.Rule, e.Detail)
}

// Is matches ErrModelInconsistency.
func (e *ModelInconsistencyError) Is(target error) bool { return target == ErrModelInconsistency }

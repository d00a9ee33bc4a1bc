package mfpc

import (
	"fmt"

	"github.com/katalvlaran/mfpc/network"
)

// Verify checks sol against the MFPC semantics of inst, independently of any
// model: every arc assigned, 0 ≤ flow ≤ capacity, active ⟺ flow > 0, at most
// one active arc per conflict pair, conservation at inner nodes, and an
// objective equal to the net outflow of the source and the net inflow of the
// sink. The first violation is returned as *ModelInconsistencyError.
//
// Complexity: O(V + E + C).
func Verify(inst *network.Instance, sol *Solution) error {
	if inst == nil {
		return ErrNilInstance
	}
	if sol == nil {
		return &ModelInconsistencyError{Rule: RuleCoverage, Detail: "no solution"}
	}

	balance := make([]int64, inst.NumNodes())
	for _, a := range inst.Arcs() {
		f, okF := sol.Flow[a.Index]
		on, okA := sol.Active[a.Index]
		if !okF || !okA {
			return &ModelInconsistencyError{Rule: RuleCoverage, Arcs: []int{a.Index}, Detail: "arc missing from solution"}
		}
		if f < 0 || f > a.Capacity {
			return &ModelInconsistencyError{
				Rule:   RuleCapacity,
				Arcs:   []int{a.Index},
				Detail: fmt.Sprintf("flow %d outside [0, %d]", f, a.Capacity),
			}
		}
		if on != (f > 0) {
			return &ModelInconsistencyError{
				Rule:   RuleActivation,
				Arcs:   []int{a.Index},
				Detail: fmt.Sprintf("active=%t with flow %d", on, f),
			}
		}
		balance[a.Tail] -= f
		balance[a.Head] += f
	}
	for _, c := range inst.Conflicts() {
		if sol.Active[c.A] && sol.Active[c.B] {
			return &ModelInconsistencyError{Rule: RuleConflict, Arcs: []int{c.A, c.B}, Detail: "both arcs of a conflict pair are active"}
		}
	}
	for v, b := range balance {
		node := network.Node(v)
		if node == inst.Source() || node == inst.Sink() || b == 0 {
			continue
		}
		return &ModelInconsistencyError{Rule: RuleConservation, Detail: fmt.Sprintf("node %d has imbalance %d", v, b)}
	}
	if out := -balance[inst.Source()]; out != sol.Objective {
		return &ModelInconsistencyError{
			Rule:   RuleObjective,
			Detail: fmt.Sprintf("objective %d but source sends %d", sol.Objective, out),
		}
	}
	if in := balance[inst.Sink()]; in != sol.Objective {
		return &ModelInconsistencyError{
			Rule:   RuleObjective,
			Detail: fmt.Sprintf("objective %d but sink receives %d", sol.Objective, in),
		}
	}

	return nil
}

package mfpc

import (
	"context"
	"sort"

	"github.com/katalvlaran/mfpc/flow"
	"github.com/katalvlaran/mfpc/network"
)

// ConflictRepairHint builds a conflict-free flow to seed the search.
//
// It solves classical max-flow, then for every conflict pair with both arcs
// carrying flow excludes the arc carrying less (the larger index on ties) and
// solves again, until no pair is violated. Each round excludes at least one
// arc that carried flow, so at most E rounds run. The result satisfies every
// MFPC constraint with active = flow > 0 and is usually far from optimal.
func ConflictRepairHint(ctx context.Context, inst *network.Instance) (flow.Result, error) {
	if inst == nil {
		return flow.Result{}, ErrNilInstance
	}
	excluded := make([]int, 0)
	for {
		res, err := flow.Dinic(inst, flow.WithContext(ctx), flow.WithExcluded(excluded...))
		if err != nil {
			return flow.Result{}, err
		}

		dropped := make(map[int]bool)
		for _, c := range inst.Conflicts() {
			fa, fb := res.Flow[c.A], res.Flow[c.B]
			if fa == 0 || fb == 0 || dropped[c.A] || dropped[c.B] {
				continue
			}
			switch {
			case fa < fb:
				dropped[c.A] = true
			case fb < fa:
				dropped[c.B] = true
			default:
				dropped[max(c.A, c.B)] = true
			}
		}
		if len(dropped) == 0 {
			return res, nil
		}
		for idx := range dropped {
			excluded = append(excluded, idx)
		}
		sort.Ints(excluded)
	}
}

package flow

import (
	"github.com/katalvlaran/mfpc/network"
)

// residual is an arc-indexed residual network. Edge 2k is the forward edge
// of the k-th usable arc and edge 2k+1 its reverse; e^1 is always the twin.
type residual struct {
	n      int
	source int
	sink   int

	to   []int   // edge -> head node
	cap  []int64 // edge -> remaining capacity
	adj  [][]int // node -> outgoing edge ids (forward and reverse)
	arcs []int   // usable arc k -> arc index
	orig []int64 // usable arc k -> original capacity

	// skipped arcs always report zero flow
	all []int
}

// newResidual builds the residual network of inst, dropping excluded arcs,
// zero-capacity arcs and self-loops (a loop never changes a node balance).
//
// Complexity: O(V + E).
func newResidual(inst *network.Instance, excluded map[int]bool) *residual {
	r := &residual{
		n:      inst.NumNodes(),
		source: int(inst.Source()),
		sink:   int(inst.Sink()),
		adj:    make([][]int, inst.NumNodes()),
		all:    make([]int, 0, inst.NumArcs()),
	}
	for _, a := range inst.Arcs() {
		r.all = append(r.all, a.Index)
		if excluded[a.Index] || a.Capacity == 0 || a.Tail == a.Head {
			continue
		}
		e := len(r.to)
		r.to = append(r.to, int(a.Head), int(a.Tail))
		r.cap = append(r.cap, a.Capacity, 0)
		r.adj[a.Tail] = append(r.adj[a.Tail], e)
		r.adj[a.Head] = append(r.adj[a.Head], e+1)
		r.arcs = append(r.arcs, a.Index)
		r.orig = append(r.orig, a.Capacity)
	}

	return r
}

// push moves amount along edge e and its twin.
func (r *residual) push(e int, amount int64) {
	r.cap[e] -= amount
	r.cap[e^1] += amount
}

// result reads per-arc flow back from the forward residual capacities.
func (r *residual) result(value int64) Result {
	res := Result{Value: value, Flow: make(map[int]int64, len(r.all))}
	for _, idx := range r.all {
		res.Flow[idx] = 0
	}
	for k, idx := range r.arcs {
		res.Flow[idx] = r.orig[k] - r.cap[2*k]
	}

	return res
}

// prepare validates input, applies options and builds the residual network.
func prepare(inst *network.Instance, opts []Option) (*residual, Options, error) {
	if inst == nil {
		return nil, Options{}, ErrNilInstance
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Ctx.Err(); err != nil {
		return nil, o, err
	}

	return newResidual(inst, o.Excluded), o, nil
}

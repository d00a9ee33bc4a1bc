package flow

import (
	"math"

	"github.com/katalvlaran/mfpc/network"
)

// EdmondsKarp computes a maximum flow of inst by repeatedly augmenting along
// a shortest (fewest arcs) residual path. Conflict pairs are ignored.
//
// Steps:
//  1. Apply options, build the residual network (O(V + E)).
//  2. Repeat:
//     a. Check ctx for cancellation.
//     b. BFS from the source recording the entering edge of every node.
//     c. If the sink is unreached, stop.
//     d. Walk the parent edges back to find the bottleneck, then augment.
//  3. Read per-arc flow back from the residual capacities.
//
// Complexity:
//
//	Time:   O(V · E²).
//	Memory: O(V + E).
func EdmondsKarp(inst *network.Instance, opts ...Option) (Result, error) {
	r, o, err := prepare(inst, opts)
	if err != nil {
		return Result{}, err
	}
	if r.source == r.sink {
		return r.result(0), nil
	}

	var total int64
	parent := make([]int, r.n)
	queue := make([]int, 0, r.n)
	for {
		if err = o.Ctx.Err(); err != nil {
			return Result{}, err
		}

		// 2b) BFS; parent holds the edge id used to reach each node
		for i := range parent {
			parent[i] = -1
		}
		queue = append(queue[:0], r.source)
		reached := false
		for i := 0; i < len(queue) && !reached; i++ {
			u := queue[i]
			for _, e := range r.adj[u] {
				v := r.to[e]
				if r.cap[e] <= 0 || v == r.source || parent[v] >= 0 {
					continue
				}
				parent[v] = e
				if v == r.sink {
					reached = true
					break
				}
				queue = append(queue, v)
			}
		}
		if !reached {
			break
		}

		// 2d) Bottleneck and augmentation
		delta := int64(math.MaxInt64)
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			delta = min(delta, r.cap[parent[v]])
		}
		hops := 0
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			r.push(parent[v], delta)
			hops++
		}
		total += delta
		o.Logger.Debug("edmonds-karp augment", "hops", hops, "pushed", delta, "total", total)
	}

	return r.result(total), nil
}

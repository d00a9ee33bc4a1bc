package flow

import (
	"math"

	"github.com/katalvlaran/mfpc/network"
)

// FordFulkerson computes a maximum flow of inst with the plain augmenting-path
// method: any residual path found by iterative DFS is saturated. Conflict
// pairs are ignored.
//
// Complexity:
//
//	Time:   O(E · F) where F is the flow value.
//	Memory: O(V + E).
//
// Suitable for small integral networks and as a cross-check of EdmondsKarp
// and Dinic in tests.
func FordFulkerson(inst *network.Instance, opts ...Option) (Result, error) {
	r, o, err := prepare(inst, opts)
	if err != nil {
		return Result{}, err
	}
	if r.source == r.sink {
		return r.result(0), nil
	}

	var total int64
	parent := make([]int, r.n)
	stack := make([]int, 0, r.n)
	for {
		if err = o.Ctx.Err(); err != nil {
			return Result{}, err
		}

		for i := range parent {
			parent[i] = -1
		}
		stack = append(stack[:0], r.source)
		reached := false
		for len(stack) > 0 && !reached {
			u := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
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
				stack = append(stack, v)
			}
		}
		if !reached {
			break
		}

		delta := int64(math.MaxInt64)
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			delta = min(delta, r.cap[parent[v]])
		}
		for v := r.sink; v != r.source; v = r.to[parent[v]^1] {
			r.push(parent[v], delta)
		}
		total += delta
		o.Logger.Debug("ford-fulkerson augment", "pushed", delta, "total", total)
	}

	return r.result(total), nil
}

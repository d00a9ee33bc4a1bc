package flow

import (
	"math"

	"github.com/katalvlaran/mfpc/network"
)

// Dinic computes a maximum flow of inst using Dinic's algorithm
// (level graph + blocking flows). Conflict pairs are ignored.
//
// Steps:
//  1. Apply options, build the residual network (O(V + E)).
//  2. Repeat until the sink leaves the level graph:
//     a. Check ctx for cancellation.
//     b. BFS from the source over positive residual edges to assign levels.
//     c. Push blocking flow by DFS, advancing per-node edge iterators so
//     every saturated edge is skipped for the rest of the phase.
//  3. Read per-arc flow back from the residual capacities.
//
// Complexity:
//
//	Time:   O(V² · E); O(E · √V) on unit-capacity networks.
//	Memory: O(V + E).
func Dinic(inst *network.Instance, opts ...Option) (Result, error) {
	// 1) Options and residual network
	r, o, err := prepare(inst, opts)
	if err != nil {
		return Result{}, err
	}
	if r.source == r.sink {
		return r.result(0), nil
	}

	var total int64
	level := make([]int, r.n)
	iter := make([]int, r.n)
	queue := make([]int, 0, r.n)
	for phase := 1; ; phase++ {
		// 2a) Cancellation check once per phase
		if err = o.Ctx.Err(); err != nil {
			return Result{}, err
		}

		// 2b) Level graph
		for i := range level {
			level[i] = -1
		}
		level[r.source] = 0
		queue = append(queue[:0], r.source)
		for i := 0; i < len(queue); i++ {
			u := queue[i]
			for _, e := range r.adj[u] {
				if v := r.to[e]; r.cap[e] > 0 && level[v] < 0 {
					level[v] = level[u] + 1
					queue = append(queue, v)
				}
			}
		}
		if level[r.sink] < 0 {
			break
		}

		// 2c) Blocking flow
		for i := range iter {
			iter[i] = 0
		}
		for {
			pushed := r.dinicPush(level, iter, r.source, math.MaxInt64)
			if pushed == 0 {
				break
			}
			total += pushed
			o.Logger.Debug("dinic augment", "phase", phase, "pushed", pushed, "total", total)
		}
	}

	// 3) Per-arc flow
	return r.result(total), nil
}

// dinicPush sends up to limit units from u to the sink along level-graph
// edges and returns the amount actually sent.
func (r *residual) dinicPush(level, iter []int, u int, limit int64) int64 {
	if u == r.sink {
		return limit
	}
	for ; iter[u] < len(r.adj[u]); iter[u]++ {
		e := r.adj[u][iter[u]]
		v := r.to[e]
		if r.cap[e] <= 0 || level[v] != level[u]+1 {
			continue
		}
		if got := r.dinicPush(level, iter, v, min(limit, r.cap[e])); got > 0 {
			r.push(e, got)
			return got
		}
	}

	return 0
}

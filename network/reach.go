package network

// Direction selects which way Distances walks arcs.
type Direction int

const (
	// Forward follows arcs tail→head: distance from the start node.
	Forward Direction = iota

	// Backward follows arcs head→tail: distance to the start node.
	Backward
)

// Unreachable marks nodes a search never reached.
const Unreachable = -1

// Distances runs a breadth-first search from start and returns the hop
// distance of every node, or Unreachable. Arcs with zero capacity are
// skipped: they can never carry flow. Parallel arcs and self-loops are
// harmless (a node is enqueued once).
//
// Steps:
//  1. Mark every node Unreachable, start at distance 0.
//  2. Pop the queue front u; for each arc leaving u (Forward) or entering u
//     (Backward) with positive capacity, enqueue the opposite endpoint once.
//
// Complexity: O(V + E) time, O(V) memory.
func Distances(inst *Instance, start Node, dir Direction) []int {
	dist := make([]int, inst.numNodes)
	for i := range dist {
		dist[i] = Unreachable
	}
	if start < 0 || int(start) >= inst.numNodes {
		return dist
	}

	adjacency := inst.out
	if dir == Backward {
		adjacency = inst.in
	}

	dist[start] = 0
	queue := make([]Node, 0, inst.numNodes)
	queue = append(queue, start)
	for i := 0; i < len(queue); i++ {
		u := queue[i]
		for _, pos := range adjacency[u] {
			a := inst.arcs[pos]
			if a.Capacity == 0 {
				continue
			}
			v := a.Head
			if dir == Backward {
				v = a.Tail
			}
			if dist[v] != Unreachable {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	return dist
}

// UsefulArcs reports, per arc position, whether the arc lies on some
// source→sink walk: its tail is reachable from the source and its head
// reaches the sink through positive-capacity arcs. Flow on any other arc can
// only circulate and never contributes to the flow value.
//
// Complexity: O(V + E).
func UsefulArcs(inst *Instance) []bool {
	from := Distances(inst, inst.source, Forward)
	to := Distances(inst, inst.sink, Backward)
	useful := make([]bool, len(inst.arcs))
	for pos, a := range inst.arcs {
		useful[pos] = a.Capacity > 0 && from[a.Tail] != Unreachable && to[a.Head] != Unreachable
	}

	return useful
}

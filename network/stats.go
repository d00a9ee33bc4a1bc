package network

// Summary is a structural overview of an instance.
type Summary struct {
	Nodes          int
	Arcs           int
	Conflicts      int
	Source         Node
	Sink           Node
	SourceCapacity int64
	SinkCapacity   int64
	TotalCapacity  int64

	// ParallelArcs counts arcs sharing (tail, head) with an earlier arc.
	ParallelArcs int
	SelfLoops    int

	// MaxConflictDegree is the largest number of partners of one arc;
	// ConflictedArcs is how many arcs take part in at least one pair.
	MaxConflictDegree int
	ConflictedArcs    int

	// HopDistance is the fewest arcs on a source→sink walk, or Unreachable.
	HopDistance int

	// UsefulArcs counts arcs that lie on some source→sink walk.
	UsefulArcs int
}

// Stats computes a Summary in O(V + E + C).
func Stats(inst *Instance) Summary {
	s := Summary{
		Nodes:          inst.numNodes,
		Arcs:           len(inst.arcs),
		Conflicts:      len(inst.conflicts),
		Source:         inst.source,
		Sink:           inst.sink,
		SourceCapacity: inst.SourceCapacity(),
	}

	type endpoints struct{ tail, head Node }
	seen := make(map[endpoints]struct{}, len(inst.arcs))
	for _, a := range inst.arcs {
		s.TotalCapacity += a.Capacity
		if a.Head == inst.sink {
			s.SinkCapacity += a.Capacity
		}
		if a.Tail == a.Head {
			s.SelfLoops++
		}
		key := endpoints{a.Tail, a.Head}
		if _, dup := seen[key]; dup {
			s.ParallelArcs++
		}
		seen[key] = struct{}{}
	}

	for _, partners := range inst.byArc {
		if len(partners) > 0 {
			s.ConflictedArcs++
		}
		if len(partners) > s.MaxConflictDegree {
			s.MaxConflictDegree = len(partners)
		}
	}

	s.HopDistance = Distances(inst, inst.source, Forward)[inst.sink]
	for _, ok := range UsefulArcs(inst) {
		if ok {
			s.UsefulArcs++
		}
	}

	return s
}

package network

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors wrapped by FormatError (and returned directly by New).
var (
	// ErrMissingLines indicates the input ends before header, source and sink.
	ErrMissingLines = errors.New("network: header, source and sink lines are required")

	// ErrHeader indicates the header is not exactly three integers.
	ErrHeader = errors.New("network: header must hold exactly three integers")

	// ErrTerminal indicates a source or sink line is not exactly one integer.
	ErrTerminal = errors.New("network: source and sink lines must hold exactly one integer")

	// ErrNotInteger indicates a token that is not a base-10 integer.
	ErrNotInteger = errors.New("network: token is not an integer")

	// ErrArcFields indicates an arc line with fewer than four integers.
	ErrArcFields = errors.New("network: arc line needs tail, head, capacity and index")

	// ErrNegativeCapacity indicates an arc with capacity below zero.
	ErrNegativeCapacity = errors.New("network: negative arc capacity")

	// ErrArcIndex indicates a non-positive arc index.
	ErrArcIndex = errors.New("network: arc index must be positive")

	// ErrDuplicateArcIndex indicates two arcs sharing one index.
	ErrDuplicateArcIndex = errors.New("network: duplicate arc index")

	// ErrNodeRange indicates an arc endpoint outside the node range.
	ErrNodeRange = errors.New("network: node outside node range")

	// ErrTerminalRange indicates a source or sink outside the node range.
	ErrTerminalRange = errors.New("network: source or sink outside node range")

	// ErrSourceIsSink indicates source and sink are the same node.
	ErrSourceIsSink = errors.New("network: source equals sink")

	// ErrUnknownConflictArc indicates a conflict naming an arc that does not exist.
	ErrUnknownConflictArc = errors.New("network: conflict references unknown arc")

	// ErrSelfConflict indicates an arc declared in conflict with itself.
	ErrSelfConflict = errors.New("network: arc conflicts with itself")

	// ErrCountMismatch indicates declared header counts disagree with the content.
	ErrCountMismatch = errors.New("network: declared counts do not match content")

	// ErrNodeCount indicates a node count outside [1, MaxNodes].
	ErrNodeCount = errors.New("network: node count out of range")
)

// MaxNodes bounds the node count of an instance.
const MaxNodes = 1 << 20

// FormatError reports malformed instance text.
// Line is the 1-based physical line in the input, or 0 when the problem is
// not tied to a single line.
type FormatError struct {
	Line int
	Err  error
	Msg  string
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Msg != "":
		return fmt.Sprintf("line %d: %v: %s", e.Line, e.Err, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Msg != "":
		return fmt.Sprintf("%v: %s", e.Err, e.Msg)
	default:
		return e.Err.Error()
	}
}

// Unwrap exposes the sentinel so callers can match it with errors.Is.
func (e *FormatError) Unwrap() error { return e.Err }

// IOError reports an instance file that could not be opened or read.
// It is kept apart from FormatError so batch callers can skip and continue.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("network: read %q: %v", e.Path, e.Err) }

// Unwrap returns the underlying os / io error.
func (e *IOError) Unwrap() error { return e.Err }

// Node is a dense, zero-based node identifier.
type Node int

// Arc is a directed, capacitated arc addressed by Index.
type Arc struct {
	Tail     Node
	Head     Node
	Capacity int64
	Index    int
}

// String renders the arc as "#idx tail->head (cap)".
func (a Arc) String() string {
	return fmt.Sprintf("#%d %d->%d (%d)", a.Index, a.Tail, a.Head, a.Capacity)
}

// Conflict is an unordered pair of arc indices; A < B always holds.
type Conflict struct {
	A int
	B int
}

// NewConflict normalizes (a, b) so that the smaller index comes first.
func NewConflict(a, b int) Conflict {
	if b < a {
		a, b = b, a
	}

	return Conflict{A: a, B: b}
}

// Counts holds the three header values of an instance file.
type Counts struct {
	Nodes     int
	Arcs      int
	Conflicts int
}

// Instance is an immutable MFPC instance.
type Instance struct {
	numNodes  int
	source    Node
	sink      Node
	arcs      []Arc
	conflicts []Conflict
	declared  Counts
	base      int

	// derived lookups
	position map[int]int   // arc index -> position in arcs
	out      [][]int       // node -> positions of arcs leaving it
	in       [][]int       // node -> positions of arcs entering it
	byArc    map[int][]int // arc index -> indices of conflicting arcs
}

// New validates the parts of an instance and assembles it.
// Conflicts are normalized, de-duplicated and sorted; arcs keep their order.
//
// Errors: ErrNodeCount, ErrTerminalRange, ErrSourceIsSink, ErrNodeRange,
// ErrNegativeCapacity, ErrArcIndex, ErrDuplicateArcIndex,
// ErrUnknownConflictArc, ErrSelfConflict.
//
// Complexity: O(V + E + C·log C).
func New(numNodes int, source, sink Node, arcs []Arc, conflicts []Conflict) (*Instance, error) {
	if numNodes <= 0 || numNodes > MaxNodes {
		return nil, fmt.Errorf("%w: %d", ErrNodeCount, numNodes)
	}
	if source < 0 || int(source) >= numNodes || sink < 0 || int(sink) >= numNodes {
		return nil, fmt.Errorf("%w: source=%d sink=%d nodes=%d", ErrTerminalRange, source, sink, numNodes)
	}
	if source == sink {
		return nil, ErrSourceIsSink
	}

	inst := &Instance{
		numNodes: numNodes,
		source:   source,
		sink:     sink,
		arcs:     make([]Arc, len(arcs)),
		position: make(map[int]int, len(arcs)),
		out:      make([][]int, numNodes),
		in:       make([][]int, numNodes),
		byArc:    make(map[int][]int),
		declared: Counts{Nodes: numNodes, Arcs: len(arcs)},
	}
	copy(inst.arcs, arcs)

	for pos, a := range inst.arcs {
		if a.Tail < 0 || int(a.Tail) >= numNodes || a.Head < 0 || int(a.Head) >= numNodes {
			return nil, fmt.Errorf("%w: arc %d (%d->%d)", ErrNodeRange, a.Index, a.Tail, a.Head)
		}
		if a.Capacity < 0 {
			return nil, fmt.Errorf("%w: arc %d", ErrNegativeCapacity, a.Index)
		}
		if a.Index <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrArcIndex, a.Index)
		}
		if _, dup := inst.position[a.Index]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateArcIndex, a.Index)
		}
		inst.position[a.Index] = pos
		inst.out[a.Tail] = append(inst.out[a.Tail], pos)
		inst.in[a.Head] = append(inst.in[a.Head], pos)
	}

	seen := make(map[Conflict]struct{}, len(conflicts))
	inst.conflicts = make([]Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		c = NewConflict(c.A, c.B)
		if c.A == c.B {
			return nil, fmt.Errorf("%w: %d", ErrSelfConflict, c.A)
		}
		if _, ok := inst.position[c.A]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownConflictArc, c.A)
		}
		if _, ok := inst.position[c.B]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownConflictArc, c.B)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		inst.conflicts = append(inst.conflicts, c)
	}
	sort.Slice(inst.conflicts, func(i, j int) bool {
		if inst.conflicts[i].A != inst.conflicts[j].A {
			return inst.conflicts[i].A < inst.conflicts[j].A
		}

		return inst.conflicts[i].B < inst.conflicts[j].B
	})
	for _, c := range inst.conflicts {
		inst.byArc[c.A] = append(inst.byArc[c.A], c.B)
		inst.byArc[c.B] = append(inst.byArc[c.B], c.A)
	}
	inst.declared.Conflicts = len(inst.conflicts)

	return inst, nil
}

// NumNodes returns the number of nodes; nodes are 0..NumNodes()-1.
func (inst *Instance) NumNodes() int { return inst.numNodes }

// NumArcs returns the number of arcs.
func (inst *Instance) NumArcs() int { return len(inst.arcs) }

// NumConflicts returns the number of distinct conflict pairs.
func (inst *Instance) NumConflicts() int { return len(inst.conflicts) }

// Source returns the source node.
func (inst *Instance) Source() Node { return inst.source }

// Sink returns the sink node.
func (inst *Instance) Sink() Node { return inst.sink }

// Declared returns the header counts as written in the input.
func (inst *Instance) Declared() Counts { return inst.declared }

// Base returns the indexing base (0 or 1) of the text the instance was parsed from.
func (inst *Instance) Base() int { return inst.base }

// Nodes returns all node identifiers in ascending order.
func (inst *Instance) Nodes() []Node {
	nodes := make([]Node, inst.numNodes)
	for i := range nodes {
		nodes[i] = Node(i)
	}

	return nodes
}

// Arcs returns a copy of the arcs in input order.
func (inst *Instance) Arcs() []Arc {
	out := make([]Arc, len(inst.arcs))
	copy(out, inst.arcs)

	return out
}

// ArcAt returns the arc at position pos (input order).
func (inst *Instance) ArcAt(pos int) Arc { return inst.arcs[pos] }

// Arc looks an arc up by its index.
func (inst *Instance) Arc(index int) (Arc, bool) {
	pos, ok := inst.position[index]
	if !ok {
		return Arc{}, false
	}

	return inst.arcs[pos], true
}

// Position returns the input-order position of the arc with the given index.
func (inst *Instance) Position(index int) (int, bool) {
	pos, ok := inst.position[index]

	return pos, ok
}

// Outgoing returns the positions of arcs whose tail is v.
func (inst *Instance) Outgoing(v Node) []int {
	if v < 0 || int(v) >= inst.numNodes {
		return nil
	}

	return append([]int(nil), inst.out[v]...)
}

// Incoming returns the positions of arcs whose head is v.
func (inst *Instance) Incoming(v Node) []int {
	if v < 0 || int(v) >= inst.numNodes {
		return nil
	}

	return append([]int(nil), inst.in[v]...)
}

// Conflicts returns a copy of the sorted conflict pairs.
func (inst *Instance) Conflicts() []Conflict {
	out := make([]Conflict, len(inst.conflicts))
	copy(out, inst.conflicts)

	return out
}

// ConflictsOf returns the indices of arcs in conflict with the given arc.
func (inst *Instance) ConflictsOf(index int) []int {
	return append([]int(nil), inst.byArc[index]...)
}

// SourceCapacity is the total capacity of arcs leaving the source.
// It bounds the flow value from above.
func (inst *Instance) SourceCapacity() int64 {
	var total int64
	for _, pos := range inst.out[inst.source] {
		total += inst.arcs[pos].Capacity
	}

	return total
}

// WithConflicts returns a new instance with the same network and the given
// conflict set. The receiver is left untouched.
func (inst *Instance) WithConflicts(conflicts []Conflict) (*Instance, error) {
	next, err := New(inst.numNodes, inst.source, inst.sink, inst.arcs, conflicts)
	if err != nil {
		return nil, err
	}
	next.base = inst.base
	next.declared = Counts{Nodes: inst.declared.Nodes, Arcs: inst.declared.Arcs, Conflicts: len(next.conflicts)}

	return next, nil
}

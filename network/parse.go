package network

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// IndexBase selects how node identifiers in the text are interpreted.
type IndexBase int

const (
	// BaseAuto treats the text as 1-based when no identifier is 0 and the
	// largest identifier equals the declared node count; 0-based otherwise.
	BaseAuto IndexBase = iota

	// Base0 treats node identifiers as already zero-based.
	Base0

	// Base1 treats node identifiers as one-based.
	Base1
)

// String returns "auto", "0" or "1".
func (b IndexBase) String() string {
	switch b {
	case Base0:
		return "0"
	case Base1:
		return "1"
	default:
		return "auto"
	}
}

// ParseIndexBase converts "auto", "0" or "1" into an IndexBase.
func ParseIndexBase(s string) (IndexBase, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "", "auto":
		return BaseAuto, nil
	case "0":
		return Base0, nil
	case "1":
		return Base1, nil
	default:
		return BaseAuto, fmt.Errorf("network: unknown index base %q", s)
	}
}

// ParseOption configures the parser.
type ParseOption func(*parseOptions)

type parseOptions struct {
	base         IndexBase
	strictCounts bool
}

// WithNodeBase forces the indexing base instead of detecting it.
func WithNodeBase(base IndexBase) ParseOption {
	return func(o *parseOptions) { o.base = base }
}

// WithStrictCounts rejects files whose declared node or arc counts differ
// from the parsed content (ErrCountMismatch). Conflict counts stay advisory:
// files disagree on whether a pair is counted once or per endpoint.
func WithStrictCounts() ParseOption {
	return func(o *parseOptions) { o.strictCounts = true }
}

// textLine is a trimmed, non-empty input line with its 1-based position.
type textLine struct {
	no   int
	text string
}

// rawArc is an arc line before base conversion.
type rawArc struct {
	line       int
	tail, head int64
	capacity   int64
	index      int
}

// pendingConflict is a directed (this, that) reference awaiting resolution.
type pendingConflict struct {
	line int
	this int
	that int
}

// ParseFile reads and parses the instance stored at path.
// Open/read failures are returned as *IOError, malformed text as *FormatError.
func ParseFile(path string, opts ...ParseOption) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	defer f.Close()

	inst, err := Parse(f, opts...)
	var ioErr *IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
	}

	return inst, err
}

// ParseString parses an instance held in memory.
func ParseString(s string, opts ...ParseOption) (*Instance, error) {
	return Parse(strings.NewReader(s), opts...)
}

// Parse reads the textual instance format from r.
//
// Steps:
//  1. Collect trimmed, non-empty lines (physical line numbers are kept for errors).
//  2. Header: exactly three integers (nodes, arcs, conflicts), advisory.
//  3. Source and sink: one integer each.
//  4. Arc lines: tail head capacity index [conflicting indices...]; indices
//     must be unique, capacities non-negative.
//  5. Resolve the indexing base, convert every node to zero-based form and
//     derive the node count from the declared count and the arcs.
//  6. Resolve conflict references once all arcs are known; (a,b) and (b,a)
//     collapse into one normalized pair.
//
// Complexity: O(L + E + C·log C) for L input bytes.
func Parse(r io.Reader, opts ...ParseOption) (*Instance, error) {
	o := parseOptions{base: BaseAuto}
	for _, opt := range opts {
		opt(&o)
	}

	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	if len(lines) < 3 {
		return nil, &FormatError{Err: ErrMissingLines, Msg: fmt.Sprintf("found %d non-empty lines", len(lines))}
	}

	// 2) Header.
	header, err := integers(lines[0])
	if err != nil {
		return nil, err
	}
	if len(header) != 3 {
		return nil, &FormatError{Line: lines[0].no, Err: ErrHeader, Msg: fmt.Sprintf("got %d values", len(header))}
	}
	if header[0] > MaxNodes {
		return nil, &FormatError{Line: lines[0].no, Err: ErrNodeCount,
			Msg: fmt.Sprintf("%d declared, at most %d supported", header[0], MaxNodes)}
	}
	declared := Counts{Nodes: int(header[0]), Arcs: int(header[1]), Conflicts: int(header[2])}

	// 3) Terminals.
	source, err := terminal(lines[1])
	if err != nil {
		return nil, err
	}
	sink, err := terminal(lines[2])
	if err != nil {
		return nil, err
	}

	// 4) Arcs and raw conflict references.
	arcs := make([]rawArc, 0, len(lines)-3)
	seenIndex := make(map[int]int, len(lines)-3)
	var pending []pendingConflict
	for _, ln := range lines[3:] {
		fields, ferr := integers(ln)
		if ferr != nil {
			return nil, ferr
		}
		if len(fields) < 4 {
			return nil, &FormatError{Line: ln.no, Err: ErrArcFields, Msg: fmt.Sprintf("got %d values", len(fields))}
		}
		a := rawArc{line: ln.no, tail: fields[0], head: fields[1], capacity: fields[2], index: int(fields[3])}
		if a.capacity < 0 {
			return nil, &FormatError{Line: ln.no, Err: ErrNegativeCapacity, Msg: strconv.FormatInt(a.capacity, 10)}
		}
		if a.index <= 0 {
			return nil, &FormatError{Line: ln.no, Err: ErrArcIndex, Msg: strconv.Itoa(a.index)}
		}
		if first, dup := seenIndex[a.index]; dup {
			return nil, &FormatError{Line: ln.no, Err: ErrDuplicateArcIndex,
				Msg: fmt.Sprintf("index %d already defined on line %d", a.index, first)}
		}
		seenIndex[a.index] = ln.no
		for _, ref := range fields[4:] {
			pending = append(pending, pendingConflict{line: ln.no, this: a.index, that: int(ref)})
		}
		arcs = append(arcs, a)
	}

	// 5) Indexing base and node range.
	// Ids past the declared count extend the range, but never beyond what
	// the arcs themselves could name, nor past MaxNodes.
	base := resolveBase(o.base, declared.Nodes, source, sink, arcs)
	numNodes := declared.Nodes
	limit := min(max(int64(declared.Nodes), 2*int64(len(arcs))+2), MaxNodes)
	converted := make([]Arc, len(arcs))
	for i, a := range arcs {
		tail, head := a.tail-int64(base), a.head-int64(base)
		if tail < 0 || head < 0 {
			return nil, &FormatError{Line: a.line, Err: ErrNodeRange,
				Msg: fmt.Sprintf("%d->%d with base %d", a.tail, a.head, base)}
		}
		if tail >= limit || head >= limit {
			return nil, &FormatError{Line: a.line, Err: ErrNodeRange,
				Msg: fmt.Sprintf("%d->%d beyond %d nodes", a.tail, a.head, limit)}
		}
		if int(tail)+1 > numNodes {
			numNodes = int(tail) + 1
		}
		if int(head)+1 > numNodes {
			numNodes = int(head) + 1
		}
		converted[i] = Arc{Tail: Node(tail), Head: Node(head), Capacity: a.capacity, Index: a.index}
	}
	src, snk := source.value-int64(base), sink.value-int64(base)
	if src < 0 || src >= int64(numNodes) {
		return nil, &FormatError{Line: source.line, Err: ErrTerminalRange,
			Msg: fmt.Sprintf("source %d not in [%d, %d]", source.value, base, numNodes-1+base)}
	}
	if snk < 0 || snk >= int64(numNodes) {
		return nil, &FormatError{Line: sink.line, Err: ErrTerminalRange,
			Msg: fmt.Sprintf("sink %d not in [%d, %d]", sink.value, base, numNodes-1+base)}
	}
	if src == snk {
		return nil, &FormatError{Line: sink.line, Err: ErrSourceIsSink, Msg: strconv.FormatInt(sink.value, 10)}
	}
	if o.strictCounts && (declared.Nodes != numNodes || declared.Arcs != len(arcs)) {
		return nil, &FormatError{Line: lines[0].no, Err: ErrCountMismatch,
			Msg: fmt.Sprintf("declared %d nodes / %d arcs, found %d / %d", declared.Nodes, declared.Arcs, numNodes, len(arcs))}
	}

	// 6) Conflict resolution after every arc is known.
	conflicts := make([]Conflict, 0, len(pending))
	seen := make(map[Conflict]struct{}, len(pending))
	for _, p := range pending {
		if p.that == p.this {
			return nil, &FormatError{Line: p.line, Err: ErrSelfConflict, Msg: strconv.Itoa(p.this)}
		}
		if _, ok := seenIndex[p.that]; !ok {
			return nil, &FormatError{Line: p.line, Err: ErrUnknownConflictArc,
				Msg: fmt.Sprintf("arc %d references %d", p.this, p.that)}
		}
		c := NewConflict(p.this, p.that)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		conflicts = append(conflicts, c)
	}

	inst, err := New(numNodes, Node(src), Node(snk), converted, conflicts)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	inst.base = base
	inst.declared = declared

	return inst, nil
}

// readLines splits r into trimmed, non-empty lines.
func readLines(r io.Reader) ([]textLine, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var (
		out []textLine
		no  int
	)
	for sc.Scan() {
		no++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		out = append(out, textLine{no: no, text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, &IOError{Err: err}
	}

	return out, nil
}

// integers splits a line into base-10 integers.
func integers(ln textLine) ([]int64, error) {
	tokens := strings.Fields(ln.text)
	out := make([]int64, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, &FormatError{Line: ln.no, Err: ErrNotInteger, Msg: strconv.Quote(tok)}
		}
		out[i] = v
	}

	return out, nil
}

// terminalValue is a source or sink identifier with its line.
type terminalValue struct {
	line  int
	value int64
}

func terminal(ln textLine) (terminalValue, error) {
	vals, err := integers(ln)
	if err != nil {
		return terminalValue{}, err
	}
	if len(vals) != 1 {
		return terminalValue{}, &FormatError{Line: ln.no, Err: ErrTerminal, Msg: fmt.Sprintf("got %d values", len(vals))}
	}

	return terminalValue{line: ln.no, value: vals[0]}, nil
}

// resolveBase applies the BaseAuto rule; forced bases are returned as-is.
func resolveBase(requested IndexBase, declaredNodes int, source, sink terminalValue, arcs []rawArc) int {
	switch requested {
	case Base0:
		return 0
	case Base1:
		return 1
	}
	minID, maxID := source.value, source.value
	see := func(v int64) {
		if v < minID {
			minID = v
		}
		if v > maxID {
			maxID = v
		}
	}
	see(sink.value)
	for _, a := range arcs {
		see(a.tail)
		see(a.head)
	}
	if minID >= 1 && maxID == int64(declaredNodes) {
		return 1
	}

	return 0
}

package network

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteOption configures Write.
type WriteOption func(*writeOptions)

type writeOptions struct {
	renumber bool
	base     int
	forced   bool
}

// WithRenumber re-assigns arc indices 1..m in arc order; conflicts follow.
func WithRenumber() WriteOption {
	return func(o *writeOptions) { o.renumber = true }
}

// WithOutputBase writes node identifiers in the given base (0 or 1) instead
// of the base the instance was parsed from.
func WithOutputBase(base int) WriteOption {
	return func(o *writeOptions) {
		o.base = base
		o.forced = true
	}
}

// Write serializes inst in the textual instance format.
// Each conflict pair is written once, on the line of whichever of its two
// arcs comes first in arc order. The header carries the actual node, arc and
// conflict-pair counts.
//
// Complexity: O(V + E + C).
func Write(w io.Writer, inst *Instance, opts ...WriteOption) error {
	o := writeOptions{base: inst.base}
	for _, opt := range opts {
		opt(&o)
	}
	if o.base != 0 && o.base != 1 {
		return fmt.Errorf("network: output base must be 0 or 1, got %d", o.base)
	}

	// label maps an original arc index to the index written out.
	label := make(map[int]int, len(inst.arcs))
	for pos, a := range inst.arcs {
		if o.renumber {
			label[a.Index] = pos + 1
		} else {
			label[a.Index] = a.Index
		}
	}

	// Attach each pair to the earlier arc (by position).
	attached := make([][]int, len(inst.arcs))
	for _, c := range inst.conflicts {
		pa, pb := inst.position[c.A], inst.position[c.B]
		if pb < pa {
			pa, pb = pb, pa
		}
		attached[pa] = append(attached[pa], label[inst.arcs[pb].Index])
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d\n", inst.numNodes, len(inst.arcs), len(inst.conflicts))
	fmt.Fprintf(bw, "%d\n", int(inst.source)+o.base)
	fmt.Fprintf(bw, "%d\n", int(inst.sink)+o.base)

	var sb strings.Builder
	for pos, a := range inst.arcs {
		sb.Reset()
		sb.WriteString(strconv.Itoa(int(a.Tail) + o.base))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(int(a.Head) + o.base))
		sb.WriteByte(' ')
		sb.WriteString(strconv.FormatInt(a.Capacity, 10))
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(label[a.Index]))
		for _, other := range attached[pos] {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(other))
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Format returns the textual form of inst (see Write).
func Format(inst *Instance, opts ...WriteOption) string {
	var sb strings.Builder
	// strings.Builder never fails; a bad output base yields an empty string.
	if err := Write(&sb, inst, opts...); err != nil {
		return ""
	}

	return sb.String()
}

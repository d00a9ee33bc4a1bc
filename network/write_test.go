package network_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/network"
)

// arcShape drops the index so arcs compare as a multiset of (tail, head, cap).
type arcShape struct {
	Tail, Head network.Node
	Capacity   int64
}

func shapes(inst *network.Instance) []arcShape {
	out := make([]arcShape, 0, inst.NumArcs())
	for _, a := range inst.Arcs() {
		out = append(out, arcShape{a.Tail, a.Head, a.Capacity})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Tail != out[j].Tail {
			return out[i].Tail < out[j].Tail
		}
		if out[i].Head != out[j].Head {
			return out[i].Head < out[j].Head
		}
		return out[i].Capacity < out[j].Capacity
	})

	return out
}

// conflictShapes renders conflicts as pairs of arc positions, which survive renumbering.
func conflictShapes(inst *network.Instance) [][2]int {
	out := make([][2]int, 0, inst.NumConflicts())
	for _, c := range inst.Conflicts() {
		pa, _ := inst.Position(c.A)
		pb, _ := inst.Position(c.B)
		if pb < pa {
			pa, pb = pb, pa
		}
		out = append(out, [2]int{pa, pb})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})

	return out
}

// randomText builds a well-formed instance text with sparse, shuffled indices.
func randomText(r *rand.Rand) *network.Instance {
	n := 3 + r.Intn(6)
	m := 1 + r.Intn(12)
	arcs := make([]network.Arc, m)
	perm := r.Perm(m * 3)
	for i := range arcs {
		arcs[i] = network.Arc{
			Tail:     network.Node(r.Intn(n)),
			Head:     network.Node(r.Intn(n)),
			Capacity: int64(r.Intn(9)),
			Index:    perm[i] + 1,
		}
	}
	var conflicts []network.Conflict
	for k := r.Intn(m + 1); k > 0; k-- {
		a, b := r.Intn(m), r.Intn(m)
		if a != b {
			conflicts = append(conflicts, network.Conflict{A: arcs[a].Index, B: arcs[b].Index})
		}
	}
	inst, err := network.New(n, 0, network.Node(n-1), arcs, conflicts)
	if err != nil {
		panic(err)
	}

	return inst
}

// TestRoundTrip formats, renumbers and re-parses random instances.
func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		inst := randomText(r)
		for _, renumber := range []bool{false, true} {
			var opts []network.WriteOption
			if renumber {
				opts = append(opts, network.WithRenumber())
			}
			text := network.Format(inst, opts...)
			back, err := network.ParseString(text, network.WithNodeBase(network.Base0), network.WithStrictCounts())
			require.NoError(t, err, text)

			require.Equal(t, inst.Nodes(), back.Nodes())
			require.Equal(t, inst.Source(), back.Source())
			require.Equal(t, inst.Sink(), back.Sink())
			if diff := cmp.Diff(shapes(inst), shapes(back)); diff != "" {
				t.Fatalf("arc multiset changed (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(conflictShapes(inst), conflictShapes(back)); diff != "" {
				t.Fatalf("conflict set changed (-want +got):\n%s", diff)
			}
			if !renumber {
				require.Equal(t, inst.Arcs(), back.Arcs())
				require.Equal(t, inst.Conflicts(), back.Conflicts())
			}
		}
	}
}

// TestRenumberPreservesOrder assigns 1..m in arc order.
func TestRenumberPreservesOrder(t *testing.T) {
	inst, err := network.ParseString("3 2 1\n0\n2\n0 1 5 40 10\n1 2 6 10\n")
	require.NoError(t, err)

	back, err := network.ParseString(network.Format(inst, network.WithRenumber()))
	require.NoError(t, err)
	require.Equal(t, 1, back.ArcAt(0).Index)
	require.Equal(t, 2, back.ArcAt(1).Index)
	require.Equal(t, []network.Conflict{{A: 1, B: 2}}, back.Conflicts())
}

// TestFormatKeepsBase writes a one-based instance back as one-based text.
func TestFormatKeepsBase(t *testing.T) {
	text := "3 2 0\n1\n3\n1 2 4 1\n2 3 4 2\n"
	inst, err := network.ParseString(text)
	require.NoError(t, err)
	require.Equal(t, text, network.Format(inst))
	require.Equal(t, "3 2 0\n0\n2\n0 1 4 1\n1 2 4 2\n", network.Format(inst, network.WithOutputBase(0)))
	require.Empty(t, network.Format(inst, network.WithOutputBase(2)))
}

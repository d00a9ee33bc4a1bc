package network_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/network"
)

// TestDistances checks forward and backward hop counts on the paper network.
func TestDistances(t *testing.T) {
	inst, err := network.ParseString(paperText)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 1, 2, 2, 2, 3}, network.Distances(inst, inst.Source(), network.Forward))
	require.Equal(t, []int{3, 2, 2, 1, 1, 1, 0}, network.Distances(inst, inst.Sink(), network.Backward))
}

// TestDistancesSkipsZeroCapacity treats empty arcs as absent.
func TestDistancesSkipsZeroCapacity(t *testing.T) {
	inst, err := network.ParseString("3 2 0\n0\n2\n0 1 0 1\n1 2 4 2\n")
	require.NoError(t, err)

	dist := network.Distances(inst, 0, network.Forward)
	require.Equal(t, []int{0, network.Unreachable, network.Unreachable}, dist)
	require.Equal(t, []int{network.Unreachable, network.Unreachable, network.Unreachable},
		network.Distances(inst, 9, network.Forward))
}

// TestUsefulArcs flags dead ends and detached cycles.
func TestUsefulArcs(t *testing.T) {
	// 0->1->3 is the only route; 1->2 is a dead end; 4<->5 is a detached cycle.
	text := `6 5 0
0
3
0 1 2 1
1 3 2 2
1 2 2 3
4 5 1 4
5 4 1 5
`
	inst, err := network.ParseString(text)
	require.NoError(t, err)
	require.Equal(t, []bool{true, true, false, false, false}, network.UsefulArcs(inst))

	s := network.Stats(inst)
	require.Equal(t, 2, s.UsefulArcs)
	require.Equal(t, 2, s.HopDistance)
}

// TestStats summarizes the paper network.
func TestStats(t *testing.T) {
	inst, err := network.ParseString(paperText)
	require.NoError(t, err)

	s := network.Stats(inst)
	require.Equal(t, network.Summary{
		Nodes:             7,
		Arcs:              9,
		Conflicts:         5,
		Source:            0,
		Sink:              6,
		SourceCapacity:    9,
		SinkCapacity:      15,
		TotalCapacity:     34,
		ParallelArcs:      0,
		SelfLoops:         0,
		MaxConflictDegree: 2,
		ConflictedArcs:    7,
		HopDistance:       3,
		UsefulArcs:        9,
	}, s)
}

package network_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mfpc/network"
)

// paperText is the seven-node network of the MFPC paper (zero-based).
// Arc 6 is listed with its partners 7 and 9 although 7 also lists 6: the
// duplicate direction must collapse.
const paperText = `7 9 5
0
6
0 1 3 1
0 2 6 2 8
1 4 2 3 4
1 3 1 4
4 6 5 5
3 6 3 6 7 9
2 3 4 7 9 6
2 5 3 8
5 6 7 9
`

// ParseSuite exercises the instance parser.
type ParseSuite struct {
	suite.Suite
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseSuite))
}

// TestPaperInstance checks counts, terminals and normalized conflicts.
func (s *ParseSuite) TestPaperInstance() {
	inst, err := network.ParseString(paperText)
	require.NoError(s.T(), err)

	require.Equal(s.T(), 7, inst.NumNodes())
	require.Equal(s.T(), 9, inst.NumArcs())
	require.Equal(s.T(), network.Node(0), inst.Source())
	require.Equal(s.T(), network.Node(6), inst.Sink())
	require.Equal(s.T(), 0, inst.Base())

	want := []network.Conflict{{A: 2, B: 8}, {A: 3, B: 4}, {A: 6, B: 7}, {A: 6, B: 9}, {A: 7, B: 9}}
	if diff := cmp.Diff(want, inst.Conflicts()); diff != "" {
		s.T().Errorf("conflicts mismatch (-want +got):\n%s", diff)
	}

	a, ok := inst.Arc(7)
	require.True(s.T(), ok)
	require.Equal(s.T(), network.Arc{Tail: 2, Head: 3, Capacity: 4, Index: 7}, a)
	require.ElementsMatch(s.T(), []int{6, 9}, inst.ConflictsOf(7))
	require.Equal(s.T(), int64(9), inst.SourceCapacity())
}

// TestConflictSymmetry verifies that (a,b) and (b,a) never coexist.
func (s *ParseSuite) TestConflictSymmetry() {
	inst, err := network.ParseString(paperText)
	require.NoError(s.T(), err)

	seen := map[[2]int]bool{}
	for _, c := range inst.Conflicts() {
		require.Less(s.T(), c.A, c.B, "pair must be normalized")
		require.False(s.T(), seen[[2]int{c.B, c.A}], "reversed duplicate %v", c)
		require.False(s.T(), seen[[2]int{c.A, c.B}], "duplicate %v", c)
		seen[[2]int{c.A, c.B}] = true
	}
}

// TestForwardReference allows a conflict naming an arc defined later.
func (s *ParseSuite) TestForwardReference() {
	inst, err := network.ParseString("3 2 1\n0\n2\n0 1 4 1 2\n1 2 4 2\n")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []network.Conflict{{A: 1, B: 2}}, inst.Conflicts())
}

// TestBlankLinesAndSpacing tolerates blank lines and odd whitespace.
func (s *ParseSuite) TestBlankLinesAndSpacing() {
	text := "\n  3 2 0 \n\n0\n\t2\n0   1 4 1\n\n1 2\t4 2\n\n"
	inst, err := network.ParseString(text)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, inst.NumArcs())
}

// TestOneBasedDetection converts a one-based file to zero-based nodes.
func (s *ParseSuite) TestOneBasedDetection() {
	inst, err := network.ParseString("3 2 0\n1\n3\n1 2 4 1\n2 3 4 2\n")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, inst.Base())
	require.Equal(s.T(), 3, inst.NumNodes())
	require.Equal(s.T(), network.Node(0), inst.Source())
	require.Equal(s.T(), network.Node(2), inst.Sink())
	require.Equal(s.T(), network.Arc{Tail: 0, Head: 1, Capacity: 4, Index: 1}, inst.ArcAt(0))
}

// TestForcedBase overrides detection in both directions.
func (s *ParseSuite) TestForcedBase() {
	text := "3 2 0\n1\n3\n1 2 4 1\n2 3 4 2\n"

	inst, err := network.ParseString(text, network.WithNodeBase(network.Base0))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, inst.NumNodes(), "node 3 extends the zero-based range")
	require.Equal(s.T(), network.Node(1), inst.Source())

	_, err = network.ParseString("3 1 0\n0\n2\n0 2 4 1\n", network.WithNodeBase(network.Base1))
	require.ErrorIs(s.T(), err, network.ErrNodeRange)
}

// TestParallelArcs keeps parallel arcs apart by index.
func (s *ParseSuite) TestParallelArcs() {
	inst, err := network.ParseString("2 2 1\n0\n1\n0 1 2 1 2\n0 1 3 2\n")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, inst.NumArcs())
	require.Equal(s.T(), []int{0, 1}, inst.Outgoing(0))
}

// TestIdempotence parses the same text twice and compares structurally.
func (s *ParseSuite) TestIdempotence() {
	first, err := network.ParseString(paperText)
	require.NoError(s.T(), err)
	second, err := network.ParseString(paperText)
	require.NoError(s.T(), err)

	require.Equal(s.T(), first.Arcs(), second.Arcs())
	require.Equal(s.T(), first.Conflicts(), second.Conflicts())
	require.Equal(s.T(), first.Nodes(), second.Nodes())
	require.Equal(s.T(), network.Format(first), network.Format(second))
}

// TestAdvisoryCounts accepts wrong header counts unless strict.
func (s *ParseSuite) TestAdvisoryCounts() {
	text := "2 5 9\n0\n2\n0 1 1 1\n1 2 1 2\n"
	inst, err := network.ParseString(text)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3, inst.NumNodes())
	require.Equal(s.T(), network.Counts{Nodes: 2, Arcs: 5, Conflicts: 9}, inst.Declared())

	_, err = network.ParseString(text, network.WithStrictCounts())
	require.ErrorIs(s.T(), err, network.ErrCountMismatch)
}

// TestFormatErrors is a table of rejected inputs.
func (s *ParseSuite) TestFormatErrors() {
	cases := []struct {
		name string
		text string
		want error
		line int
	}{
		{"empty", "", network.ErrMissingLines, 0},
		{"only header", "3 1 0\n0\n", network.ErrMissingLines, 0},
		{"short header", "3 1\n0\n2\n0 2 1 1\n", network.ErrHeader, 1},
		{"long header", "3 1 0 7\n0\n2\n0 2 1 1\n", network.ErrHeader, 1},
		{"non integer header", "3 x 0\n0\n2\n", network.ErrNotInteger, 1},
		{"two sources", "3 1 0\n0 1\n2\n0 2 1 1\n", network.ErrTerminal, 2},
		{"short arc", "3 1 0\n0\n2\n0 2 1\n", network.ErrArcFields, 4},
		{"non integer arc", "3 1 0\n0\n2\n0 2 1.5 1\n", network.ErrNotInteger, 4},
		{"negative capacity", "3 1 0\n0\n2\n0 2 -1 1\n", network.ErrNegativeCapacity, 4},
		{"zero index", "3 1 0\n0\n2\n0 2 1 0\n", network.ErrArcIndex, 4},
		{"duplicate index", "3 2 0\n0\n2\n0 1 1 1\n1 2 1 1\n", network.ErrDuplicateArcIndex, 5},
		{"source out of range", "3 1 0\n9\n2\n0 2 1 1\n", network.ErrTerminalRange, 2},
		{"sink out of range", "3 1 0\n0\n-1\n0 2 1 1\n", network.ErrTerminalRange, 3},
		{"source is sink", "3 1 0\n2\n2\n0 2 1 1\n", network.ErrSourceIsSink, 3},
		{"dangling conflict", "3 2 1\n0\n2\n0 1 1 1 7\n1 2 1 2\n", network.ErrUnknownConflictArc, 4},
		{"self conflict", "3 2 1\n0\n2\n0 1 1 1\n1 2 1 2 2\n", network.ErrSelfConflict, 5},
		{"huge node id", "3 1 0\n0\n2\n0 100000000000000 1 1\n", network.ErrNodeRange, 4},
		{"node past arc bound", "3 1 0\n0\n2\n0 4 1 1\n", network.ErrNodeRange, 4},
		{"huge node count", "100000000000 1 0\n0\n2\n0 2 1 1\n", network.ErrNodeCount, 1},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := network.ParseString(tc.text)
			require.Error(s.T(), err)
			require.ErrorIs(s.T(), err, tc.want)

			var fe *network.FormatError
			require.True(s.T(), errors.As(err, &fe), "want *FormatError, got %T", err)
			require.Equal(s.T(), tc.line, fe.Line)
		})
	}
}

// TestNodeCountBound rejects oversized instances before allocating them.
func (s *ParseSuite) TestNodeCountBound() {
	_, err := network.New(network.MaxNodes+1, 0, 1, nil, nil)
	require.ErrorIs(s.T(), err, network.ErrNodeCount)

	_, err = network.New(0, 0, 1, nil, nil)
	require.ErrorIs(s.T(), err, network.ErrNodeCount)

	// Growth past the header stays available up to what the arcs can name.
	inst, err := network.ParseString("2 2 0\n0\n1\n0 5 1 1\n5 1 1 2\n")
	require.NoError(s.T(), err)
	require.Equal(s.T(), 6, inst.NumNodes())
}

// TestParseFile separates I/O failures from format failures.
func (s *ParseSuite) TestParseFile() {
	dir := s.T().TempDir()

	_, err := network.ParseFile(filepath.Join(dir, "missing.txt"))
	var ioErr *network.IOError
	require.True(s.T(), errors.As(err, &ioErr))
	require.ErrorIs(s.T(), err, os.ErrNotExist)
	var fe *network.FormatError
	require.False(s.T(), errors.As(err, &fe))

	good := filepath.Join(dir, "paper.txt")
	require.NoError(s.T(), os.WriteFile(good, []byte(paperText), 0o600))
	inst, err := network.ParseFile(good)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 9, inst.NumArcs())

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(s.T(), os.WriteFile(bad, []byte("1 2\n"), 0o600))
	_, err = network.ParseFile(bad)
	require.True(s.T(), errors.As(err, &fe))
}

// TestErrorMessage keeps the line number in the rendered message.
func (s *ParseSuite) TestErrorMessage() {
	_, err := network.ParseString("3 2 0\n0\n2\n0 1 1 1\n1 2 1 1\n")
	require.Error(s.T(), err)
	require.True(s.T(), strings.HasPrefix(err.Error(), "line 5: network: duplicate arc index"), err.Error())
}

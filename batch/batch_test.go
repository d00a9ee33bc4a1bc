package batch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/batch"
	"github.com/katalvlaran/mfpc/cpmodel"
	"github.com/katalvlaran/mfpc/mfpc"
	"github.com/katalvlaran/mfpc/network"
)

const diamond = `4 4 1
0
3
0 1 5 1 2
0 2 3 2
1 3 5 3
2 3 3 4
`

func setup(t *testing.T) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a_diamond.txt": diamond,
		"b_broken.txt":  "4 1 0\n0\n3\n0 1 x 1\n",
		"c_same.txt":    "3 1 0\n1\n1\n1 2 3 1\n",
		"notes.md":      "not an instance",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o700))

	paths, err := batch.Discover(dir)
	require.NoError(t, err)
	return dir, paths
}

func TestDiscover(t *testing.T) {
	dir, paths := setup(t)
	require.Equal(t, []string{
		filepath.Join(dir, "a_diamond.txt"),
		filepath.Join(dir, "b_broken.txt"),
		filepath.Join(dir, "c_same.txt"),
	}, paths)

	_, err := batch.Discover(filepath.Join(dir, "absent"))
	require.Error(t, err)
	_, err = batch.DiscoverPattern(dir, "[")
	require.Error(t, err)
}

// TestRunIsolatesFailures: broken files do not affect the others.
func TestRunIsolatesFailures(t *testing.T) {
	dir, paths := setup(t)
	paths = append(paths, filepath.Join(dir, "missing.txt"))

	for _, workers := range []int{1, 4} {
		out := batch.Run(context.Background(), paths,
			batch.WithWorkers(workers),
			batch.WithConfig(mfpc.Config{TimeLimit: 10 * time.Second, Verify: true}),
		)
		require.Len(t, out, 4)

		require.True(t, out[0].OK())
		require.Equal(t, "a_diamond", out[0].Name)
		require.Equal(t, network.Counts{Nodes: 4, Arcs: 4, Conflicts: 1}, out[0].Counts)
		require.Equal(t, mfpc.Optimal, out[0].Result.Status)
		require.Equal(t, int64(5), out[0].Result.Solution.Objective)

		require.Equal(t, batch.StageParse, out[1].Stage)
		var fe *network.FormatError
		require.True(t, errors.As(out[1].Err, &fe))

		require.Equal(t, batch.StageParse, out[2].Stage)
		require.ErrorIs(t, out[2].Err, network.ErrSourceIsSink)

		require.Equal(t, batch.StageRead, out[3].Stage)
		var ioErr *network.IOError
		require.True(t, errors.As(out[3].Err, &ioErr))

		s := batch.Summarize(out)
		require.Equal(t, 4, s.Total)
		require.Equal(t, 3, s.Failed)
		require.Equal(t, 1, s.ByStatus[mfpc.Optimal])
		require.Equal(t, 2, s.ByStage[batch.StageParse])
	}
}

// TestRunCanceled reports canceled solves without failing them.
func TestRunCanceled(t *testing.T) {
	_, paths := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := batch.Run(ctx, paths[:1], batch.WithBuildOptions(mfpc.WithRelaxationCut()))
	require.True(t, out[0].OK())
	require.Equal(t, mfpc.Unknown, out[0].Result.Status)
	require.Nil(t, out[0].Result.Solution)
}

// TestRunSurvivesBadInstances: an oversized node id is a parse failure and a
// crashing backend is a solve failure; neither takes down the batch.
func TestRunSurvivesBadInstances(t *testing.T) {
	dir := t.TempDir()
	huge := filepath.Join(dir, "huge.txt")
	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(huge, []byte("3 1 0\n0\n2\n0 100000000000000 1 1\n"), 0o600))
	require.NoError(t, os.WriteFile(good, []byte(diamond), 0o600))

	out := batch.Run(context.Background(), []string{huge, good}, batch.WithWorkers(2))
	require.Equal(t, batch.StageParse, out[0].Stage)
	require.ErrorIs(t, out[0].Err, network.ErrNodeRange)
	require.True(t, out[1].OK())
	require.Equal(t, int64(5), out[1].Result.Solution.Objective)

	crashing := cpmodel.SolverFunc(func(context.Context, *cpmodel.Model, cpmodel.Parameters) (cpmodel.Response, error) {
		panic("backend crashed")
	})
	out = batch.Run(context.Background(), []string{good, good},
		batch.WithWorkers(2),
		batch.WithSolver(mfpc.NewSolver(mfpc.WithBackend(crashing))),
	)
	for _, o := range out {
		require.False(t, o.OK())
		require.Equal(t, batch.StageSolve, o.Stage)
		require.ErrorContains(t, o.Err, "backend crashed")
	}
}

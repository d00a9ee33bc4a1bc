package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/config"
	"github.com/katalvlaran/mfpc/mfpc"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := config.Loader{}.Load()
	require.NoError(t, err)
	if diff := cmp.Diff(config.Defaults(), *cfg); diff != "" {
		t.Fatalf("defaults changed (-want +got):\n%s", diff)
	}
	require.Equal(t, mfpc.DefaultTimeLimit, cfg.MFPC().TimeLimit)
}

// TestLayering: YAML over defaults, .env over YAML, environment over .env.
func TestLayering(t *testing.T) {
	dir := t.TempDir()
	file := write(t, dir, "mfpc.yaml", `
solve:
  time_limit: 90s
  coupling: implication
  relaxation_cut: true
batch:
  workers: 2
log:
  level: debug
`)
	dotenv := write(t, dir, ".env", "MFPC_WORKERS=6\nMFPC_LOG_FORMAT=json\n")

	cfg, err := config.Loader{
		File:    file,
		EnvFile: dotenv,
		Lookup:  env(map[string]string{"MFPC_LOG_FORMAT": "logfmt", "MFPC_CONFLICTS": "clause"}),
	}.Load()
	require.NoError(t, err)

	require.Equal(t, 90*time.Second, cfg.Solve.TimeLimit)
	require.Equal(t, "implication", cfg.Solve.Coupling)
	require.Equal(t, "clause", cfg.Solve.Conflicts)
	require.True(t, cfg.Solve.RelaxationCut)
	require.True(t, cfg.Solve.Verify)
	require.Equal(t, 6, cfg.Batch.Workers)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "logfmt", cfg.Log.Format)
	require.Equal(t, "*.txt", cfg.Batch.Pattern)

	opts, err := cfg.BuildOptions()
	require.NoError(t, err)
	require.Len(t, opts, 3)
	popts, err := cfg.ParseOptions()
	require.NoError(t, err)
	require.Len(t, popts, 1)
	require.Equal(t, "logfmt", cfg.Logging().Format)
}

func TestInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]config.Loader{
		"bad coupling":   {Lookup: env(map[string]string{"MFPC_COUPLING": "weak"})},
		"bad duration":   {Lookup: env(map[string]string{"MFPC_TIME_LIMIT": "soon"})},
		"negative limit": {Lookup: env(map[string]string{"MFPC_TIME_LIMIT": "-1s"})},
		"zero workers":   {Lookup: env(map[string]string{"MFPC_WORKERS": "0"})},
		"bad base":       {Lookup: env(map[string]string{"MFPC_NODE_BASE": "2"})},
		"bad yaml":       {File: write(t, dir, "bad.yaml", "solve: [1, 2")},
	}
	for name, l := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := l.Load()
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}

	_, err := config.Loader{File: filepath.Join(dir, "missing.yaml")}.Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, config.ErrInvalid)
}

func TestMissingDotenvIgnored(t *testing.T) {
	cfg, err := config.Loader{EnvFile: filepath.Join(t.TempDir(), ".env")}.Load()
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Batch.Workers)
}

// Package batch solves many instance files independently. Each file gets its
// own model; a failure is recorded in that file's Outcome and never stops
// the others.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/mfpc/mfpc"
	"github.com/katalvlaran/mfpc/network"
)

// DefaultPattern selects instance files in Discover.
const DefaultPattern = "*.txt"

// Stage is the last pipeline step an instance reached.
type Stage string

const (
	StageRead  Stage = "read"
	StageParse Stage = "parse"
	StageBuild Stage = "build"
	StageSolve Stage = "solve"
	StageDone  Stage = "done"
)

// Outcome is the record of one instance. Err is nil iff Stage is StageDone.
type Outcome struct {
	Path    string
	Name    string
	Stage   Stage
	Err     error
	Counts  network.Counts
	Source  network.Node
	Sink    network.Node
	Result  mfpc.Result
	Elapsed time.Duration
}

// OK reports whether the instance went through every stage.
func (o Outcome) OK() bool { return o.Err == nil && o.Stage == StageDone }

// Options configures Run.
type Options struct {
	Workers int
	Config  mfpc.Config
	Build   []mfpc.BuildOption
	Parse   []network.ParseOption
	Solver  *mfpc.Solver
	Logger  *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// WithWorkers bounds parallelism; values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithConfig sets the per-instance solve configuration.
func WithConfig(cfg mfpc.Config) Option {
	return func(o *Options) { o.Config = cfg }
}

// WithBuildOptions sets the formulation options.
func WithBuildOptions(opts ...mfpc.BuildOption) Option {
	return func(o *Options) { o.Build = append(o.Build, opts...) }
}

// WithParseOptions sets the reader options.
func WithParseOptions(opts ...network.ParseOption) Option {
	return func(o *Options) { o.Parse = append(o.Parse, opts...) }
}

// WithSolver replaces the default solver.
func WithSolver(s *mfpc.Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.Solver = s
		}
	}
}

// WithLogger routes per-instance logging to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Discover lists files in dir matching DefaultPattern, sorted by name.
func Discover(dir string) ([]string, error) {
	return DiscoverPattern(dir, DefaultPattern)
}

// DiscoverPattern lists regular files in dir whose names match pattern.
func DiscoverPattern(dir, pattern string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("batch: pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)

	return out, nil
}

// Run processes paths with at most Workers instances in flight and returns
// one Outcome per path, in input order.
func Run(ctx context.Context, paths []string, opts ...Option) []Outcome {
	o := Options{Workers: 1, Logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Solver == nil {
		o.Solver = mfpc.NewSolver(mfpc.WithLogger(o.Logger))
	}
	logger := o.Logger.WithPrefix("batch")

	outcomes := make([]Outcome, len(paths))
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			outcomes[i] = runOne(ctx, path, o)
			out := &outcomes[i]
			if out.OK() {
				logger.Info("instance solved", "name", out.Name, "status", out.Result.Status, "elapsed", out.Elapsed.Round(time.Millisecond))
			} else {
				logger.Warn("instance failed", "name", out.Name, "stage", out.Stage, "err", out.Err)
			}
			return nil
		})
	}
	_ = g.Wait() // failures live in the outcomes

	return outcomes
}

func runOne(ctx context.Context, path string, o Options) (out Outcome) {
	start := time.Now()
	out = Outcome{Path: path, Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), Stage: StageRead}
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("batch: %s: panic at %s: %v", out.Name, out.Stage, r)
		}
		out.Elapsed = time.Since(start)
	}()

	data, err := os.ReadFile(path)
	if err != nil {
		out.Err = &network.IOError{Path: path, Err: err}
		return out
	}
	out.Stage = StageParse
	inst, err := network.Parse(bytes.NewReader(data), o.Parse...)
	if err != nil {
		out.Err = err
		return out
	}
	out.Counts = network.Counts{Nodes: inst.NumNodes(), Arcs: inst.NumArcs(), Conflicts: inst.NumConflicts()}
	out.Source, out.Sink = inst.Source(), inst.Sink()

	out.Stage = StageBuild
	f, err := mfpc.Build(inst, o.Build...)
	if err != nil {
		out.Err = err
		return out
	}
	out.Stage = StageSolve
	out.Result, out.Err = o.Solver.Solve(ctx, f, o.Config)
	if out.Err == nil {
		out.Stage = StageDone
	}

	return out
}

// Summary aggregates outcomes.
type Summary struct {
	Total    int
	Failed   int
	ByStatus map[mfpc.Status]int
	ByStage  map[Stage]int
	Solve    time.Duration
}

// Summarize counts outcomes by status and failure stage.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes), ByStatus: map[mfpc.Status]int{}, ByStage: map[Stage]int{}}
	for _, o := range outcomes {
		if !o.OK() {
			s.Failed++
			s.ByStage[o.Stage]++
			continue
		}
		s.ByStatus[o.Result.Status]++
		s.Solve += o.Result.SolveTime
	}
	return s
}

package mfpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/mfpc/cpmodel"
	"github.com/katalvlaran/mfpc/cpsolver"
	"github.com/katalvlaran/mfpc/network"
)

// DefaultTimeLimit applies when Config.TimeLimit is zero.
const DefaultTimeLimit = 60 * time.Second

// ErrInvalidConfig is returned for a negative time limit.
var ErrInvalidConfig = errors.New("mfpc: invalid config")

// Config tunes a single solve.
type Config struct {
	// TimeLimit bounds the search; zero selects DefaultTimeLimit.
	TimeLimit time.Duration
	// Verbose forwards search progress to the solver logger.
	Verbose bool
	// WarmStart maps arc indices to suggested flows. Unknown indices are
	// ignored; values are clamped into the arc's domain.
	WarmStart map[int]int64
	// Verify re-checks a returned solution with Verify.
	Verify bool
	// AutoWarmStart seeds the search with ConflictRepairHint when WarmStart
	// is empty.
	AutoWarmStart bool
}

// Solver runs formulations on a cpmodel backend.
type Solver struct {
	backend cpmodel.Solver
	logger  *log.Logger
	build   []BuildOption
}

// SolverOption mutates a Solver.
type SolverOption func(*Solver)

// WithBackend replaces the default cpsolver backend.
func WithBackend(b cpmodel.Solver) SolverOption {
	return func(s *Solver) {
		if b != nil {
			s.backend = b
		}
	}
}

// WithLogger routes solver logging to l.
func WithLogger(l *log.Logger) SolverOption {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBuildOptions sets the options SolveInstance and SolveFile pass to Build.
func WithBuildOptions(opts ...BuildOption) SolverOption {
	return func(s *Solver) { s.build = append(s.build, opts...) }
}

// NewSolver returns a Solver using cpsolver and a silent logger by default.
func NewSolver(opts ...SolverOption) *Solver {
	s := &Solver{
		backend: cpsolver.New(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithPrefix("mfpc")

	return s
}

// Solve optimizes f under cfg. Non-proven outcomes are not errors: they are
// reported through Result.Status. Errors come from invalid configuration,
// backend failures and, with cfg.Verify, from *ModelInconsistencyError, in
// which case the Result is returned alongside the error.
func (s *Solver) Solve(ctx context.Context, f *Formulation, cfg Config) (Result, error) {
	if f == nil {
		return Result{}, ErrNilInstance
	}
	if cfg.TimeLimit < 0 {
		return Result{}, fmt.Errorf("%w: time limit %s is negative", ErrInvalidConfig, cfg.TimeLimit)
	}
	if cfg.TimeLimit == 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}
	if ctx == nil {
		ctx = context.Background()
	}

	warm := cfg.WarmStart
	if len(warm) == 0 && cfg.AutoWarmStart {
		repaired, err := ConflictRepairHint(ctx, f.inst)
		if err != nil {
			return Result{}, fmt.Errorf("mfpc: warm start: %w", err)
		}
		s.logger.Debug("conflict-repair warm start", "value", repaired.Value, "active", len(repaired.Active()))
		warm = repaired.Flow
	}
	model, err := f.Model()
	if err != nil {
		return Result{}, fmt.Errorf("mfpc: %w", err)
	}
	model.Hints = s.hints(f, warm)
	size := model.Size()
	s.logger.Debug("model ready",
		"vars", size.Vars,
		"linear", size.Linear,
		"clauses", size.Clauses,
		"hints", size.Hints,
		"pruned", len(f.pruned),
	)

	resp, err := s.backend.Solve(ctx, model, cpmodel.Parameters{
		TimeLimit:         cfg.TimeLimit,
		LogSearchProgress: cfg.Verbose,
		Logger:            s.logger,
	})
	if err != nil {
		return Result{}, fmt.Errorf("mfpc: backend: %w", err)
	}
	res, err := Interpret(f, resp)
	if err != nil {
		return res, err
	}
	s.logger.Info("solved",
		"status", res.Status,
		"objective", objectiveOf(res),
		"time", res.SolveTime.Round(time.Millisecond),
	)

	if cfg.Verify && res.Solution != nil {
		if err = Verify(f.inst, res.Solution); err != nil {
			s.logger.Error("solution failed verification", "err", err)
			return res, err
		}
	}

	return res, nil
}

// SolveInstance builds inst with the solver's build options and solves it.
func (s *Solver) SolveInstance(ctx context.Context, inst *network.Instance, cfg Config) (Result, error) {
	f, err := Build(inst, s.build...)
	if err != nil {
		return Result{}, err
	}
	return s.Solve(ctx, f, cfg)
}

// SolveFile parses the instance at path and solves it.
func (s *Solver) SolveFile(ctx context.Context, path string, cfg Config, opts ...network.ParseOption) (Result, error) {
	inst, err := network.ParseFile(path, opts...)
	if err != nil {
		return Result{}, err
	}
	return s.SolveInstance(ctx, inst, cfg)
}

// hints translates warm into variable hints for one solve. A flow hint also
// hints its activation; a complete warm start hints z with the source's net
// outflow. Values are clamped into their domains, so the result always
// validates against f's model.
func (s *Solver) hints(f *Formulation, warm map[int]int64) map[int]int64 {
	out := make(map[int]int64, 2*len(warm)+1)
	if len(warm) == 0 {
		return out
	}

	pruned := make(map[int]bool, len(f.pruned))
	for _, idx := range f.pruned {
		pruned[idx] = true
	}

	var forwarded, ignored int
	for idx, val := range warm {
		fv, ok := f.flow[idx]
		if !ok {
			ignored++
			continue
		}
		a, _ := f.inst.Arc(idx)
		val = min(max(val, 0), a.Capacity)
		if pruned[idx] {
			val = 0
		}
		out[fv.Index()] = val
		if val > 0 {
			out[f.active[idx].Index()] = 1
		} else {
			out[f.active[idx].Index()] = 0
		}
		forwarded++
	}

	if forwarded == f.inst.NumArcs() {
		var net int64
		for _, pos := range f.inst.Outgoing(f.inst.Source()) {
			net += clampedHint(f, warm, pos, pruned)
		}
		for _, pos := range f.inst.Incoming(f.inst.Source()) {
			net -= clampedHint(f, warm, pos, pruned)
		}
		if net >= 0 && net <= f.inst.SourceCapacity() {
			out[f.value.Index()] = net
		}
	}
	s.logger.Debug("warm start", "forwarded", forwarded, "ignored", ignored)

	return out
}

func clampedHint(f *Formulation, warm map[int]int64, pos int, pruned map[int]bool) int64 {
	a := f.inst.ArcAt(pos)
	if pruned[a.Index] {
		return 0
	}
	return min(max(warm[a.Index], 0), a.Capacity)
}

func objectiveOf(r Result) any {
	if r.Solution == nil {
		return "-"
	}
	return r.Solution.Objective
}

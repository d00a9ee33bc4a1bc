package cpsolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/mfpc/cpmodel"
)

// ErrNilModel is returned when Solve receives a nil model.
var ErrNilModel = errors.New("cpsolver: model is nil")

// Solver implements cpmodel.Solver. It keeps no state between calls and is
// safe for concurrent use.
type Solver struct {
	opts Options
}

var _ cpmodel.Solver = (*Solver)(nil)

// New returns a Solver configured by opts.
func New(opts ...Option) *Solver {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Solver{opts: o}
}

// Solve runs branch-and-bound on m until optimality is proven, the model is
// found infeasible, or the budget in p (or ctx) runs out.
//
// Steps:
//  1. Validate m and build watch lists (O(model)).
//  2. Propagate at the root; failure proves infeasibility.
//  3. Depth-first search with the objective cut, see package doc.
//  4. Map the outcome to a status:
//     complete + incumbent → Optimal, complete without → Infeasible,
//     stopped + incumbent → Feasible, stopped without → Unknown.
func (s *Solver) Solve(ctx context.Context, m *cpmodel.Model, p cpmodel.Parameters) (cpmodel.Response, error) {
	start := time.Now()
	if m == nil {
		return cpmodel.Response{Status: cpmodel.ModelInvalid}, ErrNilModel
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := p.Logger
	if logger == nil {
		logger = s.opts.Logger
	}

	e, err := newEngine(ctx, m, s.opts, p, logger.WithPrefix("cpsolver"))
	if err != nil {
		return cpmodel.Response{Status: cpmodel.ModelInvalid, WallTime: time.Since(start)}, err
	}
	e.start = start
	if p.TimeLimit > 0 {
		e.deadline = start.Add(p.TimeLimit)
	}

	resp := e.run()
	resp.WallTime = time.Since(start)
	if p.LogSearchProgress {
		e.log.Info("search finished",
			"status", resp.Status,
			"stop", resp.StopReason,
			"objective", resp.Objective,
			"bound", resp.BestBound,
			"nodes", resp.Stats.Nodes,
			"failures", resp.Stats.Failures,
			"wall", resp.WallTime.Round(time.Millisecond),
		)
	}

	return resp, nil
}

// run performs steps 2-4 of Solve.
func (e *engine) run() cpmodel.Response {
	resp := cpmodel.Response{}
	e.rootBound = e.objectiveBound()
	if e.interrupted() {
		resp.Status = cpmodel.Unknown
		resp.StopReason = e.stop
		resp.BestBound = e.rootBound
		return resp
	}
	if !e.propagate() {
		resp.Status = cpmodel.Infeasible
		resp.Stats = e.stats
		return resp
	}
	e.rootBound = e.objectiveBound()
	if e.par.LogSearchProgress {
		e.log.Info("root propagated",
			"vars", len(e.lo),
			"linear", len(e.lins),
			"clauses", len(e.clauses),
			"bound", e.rootBound,
		)
	}

	e.search()

	resp.StopReason = e.stop
	resp.Stats = e.stats
	switch {
	case e.best != nil && e.stop == cpmodel.StopNone:
		resp.Status = cpmodel.Optimal
	case e.best != nil:
		resp.Status = cpmodel.Feasible
	case e.stop == cpmodel.StopNone:
		resp.Status = cpmodel.Infeasible
	default:
		resp.Status = cpmodel.Unknown
	}
	if e.best != nil {
		resp.Values = e.best
		resp.Objective = e.bestObj
	}
	if resp.Status == cpmodel.Optimal {
		resp.BestBound = e.bestObj
	} else {
		resp.BestBound = e.rootBound
	}

	return resp
}

// newEngine validates m and prepares the propagation structures.
func newEngine(ctx context.Context, m *cpmodel.Model, opts Options, p cpmodel.Parameters, l *log.Logger) (*engine, error) {
	n := len(m.Vars)
	e := &engine{
		ctx:         ctx,
		m:           m,
		opt:         opts,
		par:         p,
		log:         l,
		lo:          make([]int64, n),
		hi:          make([]int64, n),
		watchLin:    make([][]int, n),
		watchClause: make([][]int, n),
		cut:         -1,
	}
	for v, d := range m.Vars {
		if d.Lo > d.Hi {
			return nil, fmt.Errorf("%w: %q has empty domain", cpmodel.ErrInvalidModel, d.Name)
		}
		if d.Bool && (d.Lo < 0 || d.Hi > 1) {
			return nil, fmt.Errorf("%w: boolean %q outside [0, 1]", cpmodel.ErrInvalidModel, d.Name)
		}
		e.lo[v], e.hi[v] = d.Lo, d.Hi
		if d.Bool {
			e.order = append(e.order, v)
		}
	}
	for v, d := range m.Vars {
		if !d.Bool {
			e.order = append(e.order, v)
		}
	}

	checkVar := func(v int) error {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: unknown variable %d", cpmodel.ErrInvalidModel, v)
		}
		return nil
	}
	checkLit := func(l cpmodel.Literal) error {
		if err := checkVar(l.Var); err != nil {
			return err
		}
		if !m.Vars[l.Var].Bool {
			return fmt.Errorf("%w: literal on non-boolean %q", cpmodel.ErrInvalidModel, m.Vars[l.Var].Name)
		}
		return nil
	}

	for _, c := range m.Linear {
		id := len(e.lins)
		seen := make(map[int]bool, len(c.Terms)+len(c.Enforce))
		for _, t := range c.Terms {
			if err := checkVar(t.Var); err != nil {
				return nil, err
			}
			if t.Coeff != 0 && !seen[t.Var] {
				seen[t.Var] = true
				e.watchLin[t.Var] = append(e.watchLin[t.Var], id)
			}
		}
		for _, l := range c.Enforce {
			if err := checkLit(l); err != nil {
				return nil, err
			}
			if !seen[l.Var] {
				seen[l.Var] = true
				e.watchLin[l.Var] = append(e.watchLin[l.Var], id)
			}
		}
		e.lins = append(e.lins, linear{terms: mergeTerms(c.Terms), lo: c.Lo, hi: c.Hi, enforce: c.Enforce})
	}
	for _, cl := range m.Clauses {
		id := len(e.clauses)
		for _, l := range cl {
			if err := checkLit(l); err != nil {
				return nil, err
			}
			e.watchClause[l.Var] = append(e.watchClause[l.Var], id)
		}
		e.clauses = append(e.clauses, cl)
	}
	if m.Objective != nil {
		for _, t := range m.Objective.Terms {
			if err := checkVar(t.Var); err != nil {
				return nil, err
			}
		}
		e.cut = len(e.lins)
		terms := mergeTerms(m.Objective.Terms)
		for _, t := range terms {
			e.watchLin[t.Var] = append(e.watchLin[t.Var], e.cut)
		}
		e.lins = append(e.lins, linear{terms: terms, lo: cpmodel.NegInf, hi: cpmodel.PosInf})
	}

	e.inLin = make([]bool, len(e.lins))
	e.inClause = make([]bool, len(e.clauses))
	for i := range e.lins {
		e.enqueueLin(i)
	}
	for i := range e.clauses {
		e.enqueueClause(i)
	}

	return e, nil
}

// mergeTerms folds duplicate variables and drops zero coefficients.
func mergeTerms(terms []cpmodel.Term) []cpmodel.Term {
	pos := make(map[int]int, len(terms))
	out := make([]cpmodel.Term, 0, len(terms))
	for _, t := range terms {
		if i, ok := pos[t.Var]; ok {
			out[i].Coeff += t.Coeff
			continue
		}
		pos[t.Var] = len(out)
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if t.Coeff != 0 {
			kept = append(kept, t)
		}
	}

	return kept
}

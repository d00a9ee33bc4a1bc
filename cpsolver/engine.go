package cpsolver

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/katalvlaran/mfpc/cpmodel"
)

// bigBound marks constraint sides that can never bind: builder models keep
// every activity within ±2^60.
const bigBound int64 = 1 << 61

// linear is an internal copy of a cpmodel.Linear; the objective cut is one too.
type linear struct {
	terms   []cpmodel.Term
	lo, hi  int64
	enforce []cpmodel.Literal
}

// trailEntry records the bounds of v before a change.
type trailEntry struct {
	v      int
	lo, hi int64
}

type interval struct{ lo, hi int64 }

// litState values.
const (
	litUnfixed = iota
	litFalse
	litTrue
)

// engine holds all search data of one solve.
type engine struct {
	ctx context.Context
	m   *cpmodel.Model
	opt Options
	par cpmodel.Parameters
	log *log.Logger

	// Current domains and undo trail
	lo, hi []int64
	trail  []trailEntry

	// Constraints and watch lists (variable -> constraint ids)
	lins        []linear
	clauses     [][]cpmodel.Literal
	watchLin    [][]int
	watchClause [][]int
	cut         int // index of the objective cut in lins, -1 without objective

	// Propagation queues
	queueLin    []int
	inLin       []bool
	queueClause []int
	inClause    []bool

	// Branching order: booleans, then integers
	order []int

	// Budget
	start    time.Time
	deadline time.Time
	stop     cpmodel.StopReason
	done     bool

	// Incumbent
	best      []int64
	bestObj   int64
	rootBound int64

	stats cpmodel.SearchStats
}

// narrow intersects the domain of v with [lo, hi], trails the change and
// wakes watchers. It reports false when the domain becomes empty.
func (e *engine) narrow(v int, lo, hi int64) bool {
	lo = max(lo, e.lo[v])
	hi = min(hi, e.hi[v])
	if lo > hi {
		return false
	}
	if lo == e.lo[v] && hi == e.hi[v] {
		return true
	}
	e.trail = append(e.trail, trailEntry{v: v, lo: e.lo[v], hi: e.hi[v]})
	e.lo[v], e.hi[v] = lo, hi
	for _, c := range e.watchLin[v] {
		e.enqueueLin(c)
	}
	for _, c := range e.watchClause[v] {
		e.enqueueClause(c)
	}

	return true
}

// undo restores every domain changed after mark.
func (e *engine) undo(mark int) {
	for i := len(e.trail) - 1; i >= mark; i-- {
		t := e.trail[i]
		e.lo[t.v], e.hi[t.v] = t.lo, t.hi
	}
	e.trail = e.trail[:mark]
}

func (e *engine) litState(l cpmodel.Literal) int {
	if e.lo[l.Var] != e.hi[l.Var] {
		return litUnfixed
	}
	if l.Holds(e.lo[l.Var]) {
		return litTrue
	}
	return litFalse
}

// setLiteral makes l true.
func (e *engine) setLiteral(l cpmodel.Literal) bool {
	if l.Negated {
		return e.narrow(l.Var, 0, 0)
	}
	return e.narrow(l.Var, 1, 1)
}

func (e *engine) enqueueLin(c int) {
	if !e.inLin[c] {
		e.inLin[c] = true
		e.queueLin = append(e.queueLin, c)
	}
}

func (e *engine) enqueueClause(c int) {
	if !e.inClause[c] {
		e.inClause[c] = true
		e.queueClause = append(e.queueClause, c)
	}
}

func (e *engine) clearQueues() {
	for _, c := range e.queueLin {
		e.inLin[c] = false
	}
	for _, c := range e.queueClause {
		e.inClause[c] = false
	}
	e.queueLin = e.queueLin[:0]
	e.queueClause = e.queueClause[:0]
}

// propagate runs all queued constraints to a fixed point. Clauses go first
// since they are cheaper. On failure the queues are emptied.
func (e *engine) propagate() bool {
	if e.cut >= 0 {
		e.enqueueLin(e.cut)
	}
	for len(e.queueLin) > 0 || len(e.queueClause) > 0 {
		var ok bool
		if n := len(e.queueClause); n > 0 {
			c := e.queueClause[n-1]
			e.queueClause = e.queueClause[:n-1]
			e.inClause[c] = false
			ok = e.propagateClause(c)
		} else {
			n = len(e.queueLin)
			c := e.queueLin[n-1]
			e.queueLin = e.queueLin[:n-1]
			e.inLin[c] = false
			ok = e.propagateLinear(c)
		}
		e.stats.Propagations++
		if !ok {
			e.clearQueues()
			return false
		}
	}

	return true
}

// propagateClause fails on an all-false clause and forces a lone unfixed literal.
func (e *engine) propagateClause(c int) bool {
	var (
		last    cpmodel.Literal
		unfixed int
	)
	for _, l := range e.clauses[c] {
		switch e.litState(l) {
		case litTrue:
			return true
		case litUnfixed:
			unfixed++
			last = l
		}
	}
	switch unfixed {
	case 0:
		return false
	case 1:
		return e.setLiteral(last)
	default:
		return true
	}
}

// propagateLinear tightens the terms of constraint c from the activity bounds
// of the others. While enforcement is undecided it only detects an impossible
// linear part, which falsifies the last unfixed enforcement literal.
func (e *engine) propagateLinear(c int) bool {
	con := &e.lins[c]

	var (
		pending cpmodel.Literal
		open    int
	)
	for _, l := range con.enforce {
		switch e.litState(l) {
		case litFalse:
			return true
		case litUnfixed:
			open++
			pending = l
		}
	}

	var minSum, maxSum int64
	for _, t := range con.terms {
		a, b := t.Coeff*e.lo[t.Var], t.Coeff*e.hi[t.Var]
		if a > b {
			a, b = b, a
		}
		minSum += a
		maxSum += b
	}
	hasLo := con.lo > -bigBound
	hasHi := con.hi < bigBound
	violated := (hasHi && minSum > con.hi) || (hasLo && maxSum < con.lo)

	if open > 0 {
		if violated && open == 1 {
			return e.setLiteral(pending.Not())
		}
		return true
	}
	if violated {
		return false
	}

	for _, t := range con.terms {
		lo, hi := e.lo[t.Var], e.hi[t.Var]
		a, b := t.Coeff*lo, t.Coeff*hi
		if a > b {
			a, b = b, a
		}
		newLo, newHi := lo, hi
		if hasHi {
			// coeff·x ≤ hi − (minSum − a)
			slack := con.hi - (minSum - a)
			if t.Coeff > 0 {
				newHi = min(newHi, floorDiv(slack, t.Coeff))
			} else {
				newLo = max(newLo, ceilDiv(slack, t.Coeff))
			}
		}
		if hasLo {
			// coeff·x ≥ lo − (maxSum − b)
			need := con.lo - (maxSum - b)
			if t.Coeff > 0 {
				newLo = max(newLo, ceilDiv(need, t.Coeff))
			} else {
				newHi = min(newHi, floorDiv(need, t.Coeff))
			}
		}
		if (newLo != lo || newHi != hi) && !e.narrow(t.Var, newLo, newHi) {
			return false
		}
	}

	return true
}

// objectiveBound is the best objective value the current domains allow.
func (e *engine) objectiveBound() int64 {
	obj := e.m.Objective
	if obj == nil {
		return 0
	}
	s := obj.Offset
	for _, t := range e.lins[e.cut].terms {
		a, b := t.Coeff*e.lo[t.Var], t.Coeff*e.hi[t.Var]
		if obj.Maximize {
			s += max(a, b)
		} else {
			s += min(a, b)
		}
	}

	return s
}

// search explores the subtree below the current (propagated) domains.
func (e *engine) search() {
	e.stats.Nodes++
	if e.exhausted() {
		return
	}
	v := e.pickVar()
	if v < 0 {
		e.record()
		return
	}
	for _, br := range e.branches(v) {
		mark := len(e.trail)
		if e.narrow(v, br.lo, br.hi) && e.propagate() {
			e.search()
		} else {
			e.clearQueues()
			e.stats.Failures++
		}
		e.undo(mark)
		if e.stop != cpmodel.StopNone || e.done {
			return
		}
	}
}

// pickVar returns the first unfixed variable in branching order, or -1.
func (e *engine) pickVar() int {
	for _, v := range e.order {
		if e.lo[v] != e.hi[v] {
			return v
		}
	}
	return -1
}

// branches splits the domain of v around its preferred value: the hint when
// it is still inside the domain, the upper bound otherwise.
func (e *engine) branches(v int) []interval {
	lo, hi := e.lo[v], e.hi[v]
	pref := hi
	if h, ok := e.m.Hints[v]; ok && h >= lo && h <= hi {
		pref = h
	}
	out := make([]interval, 0, 3)
	out = append(out, interval{pref, pref})
	if pref < hi {
		out = append(out, interval{pref + 1, hi})
	}
	if pref > lo {
		out = append(out, interval{lo, pref - 1})
	}

	return out
}

// record stores a leaf as the new incumbent and tightens the objective cut.
func (e *engine) record() {
	values := append([]int64(nil), e.lo...)
	if e.opt.VerifySolutions {
		if err := e.m.Check(values); err != nil {
			e.log.Warn("discarding inconsistent leaf", "err", err)
			return
		}
	}
	obj := e.m.ObjectiveValue(values)
	e.best, e.bestObj = values, obj
	e.stats.Solutions++
	if e.par.LogSearchProgress {
		e.log.Info("incumbent",
			"objective", obj,
			"nodes", e.stats.Nodes,
			"elapsed", time.Since(e.start).Round(time.Millisecond),
		)
	}

	if e.cut < 0 || obj == e.rootBound {
		e.done = true
		return
	}
	cut := &e.lins[e.cut]
	if e.m.Objective.Maximize {
		cut.lo = obj + 1 - e.m.Objective.Offset
	} else {
		cut.hi = obj - 1 - e.m.Objective.Offset
	}
}

// exhausted enforces the node limit on every node and checks the clock and
// context every CheckEvery nodes, starting with the first.
func (e *engine) exhausted() bool {
	if e.par.NodeLimit > 0 && e.stats.Nodes > e.par.NodeLimit {
		e.stop = cpmodel.StopNodeLimit
		return true
	}
	if (e.stats.Nodes-1)%e.opt.CheckEvery != 0 {
		return false
	}
	return e.interrupted()
}

// interrupted checks the context and the deadline, recording the stop reason.
func (e *engine) interrupted() bool {
	if err := e.ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			e.stop = cpmodel.StopTimeLimit
		} else {
			e.stop = cpmodel.StopCanceled
		}
		return true
	}
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		e.stop = cpmodel.StopTimeLimit
		return true
	}

	return false
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

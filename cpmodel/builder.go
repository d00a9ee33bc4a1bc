package cpmodel

import (
	"fmt"
	"math"
)

// Builder assembles a Model. It is not safe for concurrent use.
type Builder struct {
	vars    []Domain
	linear  []*Linear
	clauses []*clause
	obj     *Objective
	hints   map[int]int64
	err     error
}

type clause struct {
	lits []Literal
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{hints: make(map[int]int64)}
}

// NewIntVar declares an integer variable in [lo, hi].
func (b *Builder) NewIntVar(lo, hi int64, name string) IntVar {
	if lo > hi {
		b.fail(fmt.Errorf("variable %q has empty domain [%d, %d]", name, lo, hi))
	}
	b.vars = append(b.vars, Domain{Name: name, Lo: lo, Hi: hi})
	return IntVar{index: len(b.vars) - 1}
}

// NewConstant declares a variable fixed to c.
func (b *Builder) NewConstant(c int64) IntVar {
	return b.NewIntVar(c, c, fmt.Sprintf("const_%d", c))
}

// NewBoolVar declares a 0/1 variable.
func (b *Builder) NewBoolVar(name string) BoolVar {
	b.vars = append(b.vars, Domain{Name: name, Lo: 0, Hi: 1, Bool: true})
	return BoolVar{index: len(b.vars) - 1}
}

// FixBool narrows v to a single value.
func (b *Builder) FixBool(v BoolVar, value bool) {
	if b.check(v.index) {
		d := &b.vars[v.index]
		if value {
			d.Lo = 1
		} else {
			d.Hi = 0
		}
	}
}

// NumVars returns the number of declared variables.
func (b *Builder) NumVars() int { return len(b.vars) }

// Constraint is a handle for refining the last added constraint.
type Constraint struct {
	lin *Linear
	cl  *clause
}

// OnlyEnforceIf makes the constraint conditional on all lits being true.
// For clauses this is folded in as the negated literals.
func (c *Constraint) OnlyEnforceIf(lits ...Literal) *Constraint {
	switch {
	case c.lin != nil:
		c.lin.Enforce = append(c.lin.Enforce, lits...)
	case c.cl != nil:
		for _, l := range lits {
			c.cl.lits = append(c.cl.lits, l.Not())
		}
	}
	return c
}

// WithName labels a linear constraint for diagnostics.
func (c *Constraint) WithName(name string) *Constraint {
	if c.lin != nil {
		c.lin.Name = name
	}
	return c
}

// AddLinearConstraint adds lo ≤ expr ≤ hi. NegInf and PosInf leave a side open.
func (b *Builder) AddLinearConstraint(expr *LinearExpr, lo, hi int64) *Constraint {
	k := expr.ConstantTerm()
	if lo != NegInf {
		lo -= k
	}
	if hi != PosInf {
		hi -= k
	}
	lin := &Linear{Terms: expr.Terms(), Lo: lo, Hi: hi}
	for _, t := range lin.Terms {
		b.check(t.Var)
	}
	b.linear = append(b.linear, lin)

	return &Constraint{lin: lin}
}

// AddEquality adds lhs == rhs.
func (b *Builder) AddEquality(lhs, rhs *LinearExpr) *Constraint {
	return b.AddLinearConstraint(diff(lhs, rhs), 0, 0)
}

// AddLessOrEqual adds lhs ≤ rhs.
func (b *Builder) AddLessOrEqual(lhs, rhs *LinearExpr) *Constraint {
	return b.AddLinearConstraint(diff(lhs, rhs), NegInf, 0)
}

// AddGreaterOrEqual adds lhs ≥ rhs.
func (b *Builder) AddGreaterOrEqual(lhs, rhs *LinearExpr) *Constraint {
	return b.AddLinearConstraint(diff(lhs, rhs), 0, PosInf)
}

// AddGreaterThan adds lhs > rhs.
func (b *Builder) AddGreaterThan(lhs, rhs *LinearExpr) *Constraint {
	return b.AddLinearConstraint(diff(lhs, rhs), 1, PosInf)
}

// AddBoolOr requires at least one literal to be true.
func (b *Builder) AddBoolOr(lits ...Literal) *Constraint {
	cl := &clause{lits: append([]Literal(nil), lits...)}
	for _, l := range lits {
		b.checkBool(l.Var)
	}
	b.clauses = append(b.clauses, cl)

	return &Constraint{cl: cl}
}

// AddAtMostOne allows at most one literal to be true.
func (b *Builder) AddAtMostOne(lits ...Literal) *Constraint {
	expr := NewLinearExpr()
	for _, l := range lits {
		b.checkBool(l.Var)
		expr.AddLiteral(l, 1)
	}
	return b.AddLinearConstraint(expr, NegInf, 1)
}

// Maximize sets the objective. A later call replaces it.
func (b *Builder) Maximize(expr *LinearExpr) {
	b.setObjective(expr, true)
}

// Minimize sets the objective. A later call replaces it.
func (b *Builder) Minimize(expr *LinearExpr) {
	b.setObjective(expr, false)
}

func (b *Builder) setObjective(expr *LinearExpr, maximize bool) {
	obj := &Objective{Terms: expr.Terms(), Offset: expr.ConstantTerm(), Maximize: maximize}
	for _, t := range obj.Terms {
		b.check(t.Var)
	}
	b.obj = obj
}

// AddHint suggests a value for v. Later hints for the same variable win.
func (b *Builder) AddHint(v Var, value int64) {
	if b.check(v.Index()) {
		b.hints[v.Index()] = value
	}
}

// Model validates and freezes the builder's content. The builder stays usable.
func (b *Builder) Model() (*Model, error) {
	if b.err != nil {
		return nil, b.err
	}
	m := &Model{
		Vars:    append([]Domain(nil), b.vars...),
		Linear:  make([]Linear, 0, len(b.linear)),
		Clauses: make([][]Literal, 0, len(b.clauses)),
		Hints:   make(map[int]int64, len(b.hints)),
	}
	for _, c := range b.linear {
		lin := *c
		lin.Terms = append([]Term(nil), c.Terms...)
		lin.Enforce = append([]Literal(nil), c.Enforce...)
		for _, l := range lin.Enforce {
			if err := b.literalOK(l); err != nil {
				return nil, err
			}
		}
		if err := b.magnitudeOK(lin.Terms, lin.Name); err != nil {
			return nil, err
		}
		m.Linear = append(m.Linear, lin)
	}
	for _, c := range b.clauses {
		for _, l := range c.lits {
			if err := b.literalOK(l); err != nil {
				return nil, err
			}
		}
		m.Clauses = append(m.Clauses, append([]Literal(nil), c.lits...))
	}
	if b.obj != nil {
		obj := *b.obj
		obj.Terms = append([]Term(nil), b.obj.Terms...)
		if err := b.magnitudeOK(obj.Terms, "objective"); err != nil {
			return nil, err
		}
		m.Objective = &obj
	}
	for v, val := range b.hints {
		d := b.vars[v]
		if val < d.Lo || val > d.Hi {
			return nil, fmt.Errorf("%w: hint %d for %q outside [%d, %d]", ErrInvalidModel, val, d.Name, d.Lo, d.Hi)
		}
		m.Hints[v] = val
	}

	return m, nil
}

func diff(lhs, rhs *LinearExpr) *LinearExpr {
	return NewLinearExpr().AddExpr(lhs, 1).AddExpr(rhs, -1)
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
}

func (b *Builder) check(v int) bool {
	if v < 0 || v >= len(b.vars) {
		b.fail(fmt.Errorf("unknown variable %d", v))
		return false
	}
	return true
}

func (b *Builder) checkBool(v int) {
	if b.check(v) && !b.vars[v].Bool {
		b.fail(fmt.Errorf("variable %q used as a literal is not boolean", b.vars[v].Name))
	}
}

func (b *Builder) literalOK(l Literal) error {
	if l.Var < 0 || l.Var >= len(b.vars) || !b.vars[l.Var].Bool {
		return fmt.Errorf("%w: literal %s does not name a boolean variable", ErrInvalidModel, l)
	}
	return nil
}

// magnitudeBudget keeps every partial sum of a propagated constraint inside int64.
const magnitudeBudget = float64(1 << 60)

func (b *Builder) magnitudeOK(terms []Term, name string) error {
	var total float64
	for _, t := range terms {
		d := b.vars[t.Var]
		span := math.Max(math.Abs(float64(d.Lo)), math.Abs(float64(d.Hi)))
		total += math.Abs(float64(t.Coeff)) * span
	}
	if total > magnitudeBudget {
		return fmt.Errorf("%w: constraint %q may overflow int64", ErrInvalidModel, name)
	}
	return nil
}

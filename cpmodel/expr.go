package cpmodel

import "sort"

// LinearExpr is Σ coeff·var + constant with terms merged per variable.
type LinearExpr struct {
	coeffs   map[int]int64
	constant int64
}

// NewLinearExpr returns an empty expression.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{coeffs: make(map[int]int64)}
}

// Constant returns the expression holding only c.
func Constant(c int64) *LinearExpr {
	return NewLinearExpr().AddConstant(c)
}

// Add adds coeff·v.
func (e *LinearExpr) Add(v Var, coeff int64) *LinearExpr {
	e.coeffs[v.Index()] += coeff
	return e
}

// AddLiteral adds coeff·l; a negated literal contributes coeff·(1 − x).
func (e *LinearExpr) AddLiteral(l Literal, coeff int64) *LinearExpr {
	if l.Negated {
		e.constant += coeff
		e.coeffs[l.Var] -= coeff
		return e
	}
	e.coeffs[l.Var] += coeff

	return e
}

// AddSum adds every variable with coefficient one.
func (e *LinearExpr) AddSum(vars ...Var) *LinearExpr {
	for _, v := range vars {
		e.Add(v, 1)
	}
	return e
}

// AddConstant adds c.
func (e *LinearExpr) AddConstant(c int64) *LinearExpr {
	e.constant += c
	return e
}

// AddExpr adds coeff·other.
func (e *LinearExpr) AddExpr(other *LinearExpr, coeff int64) *LinearExpr {
	for v, c := range other.coeffs {
		e.coeffs[v] += c * coeff
	}
	e.constant += other.constant * coeff

	return e
}

// Terms returns the non-zero terms ordered by variable index.
func (e *LinearExpr) Terms() []Term {
	out := make([]Term, 0, len(e.coeffs))
	for v, c := range e.coeffs {
		if c != 0 {
			out = append(out, Term{Var: v, Coeff: c})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Var < out[j].Var })

	return out
}

// ConstantTerm returns the constant part.
func (e *LinearExpr) ConstantTerm() int64 { return e.constant }

// Eval computes the expression under values indexed by variable.
func (e *LinearExpr) Eval(values []int64) int64 {
	s := e.constant
	for v, c := range e.coeffs {
		s += c * values[v]
	}
	return s
}

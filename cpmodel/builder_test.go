package cpmodel_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mfpc/cpmodel"
)

// TestTermsMerge folds repeated variables and drops zero coefficients.
func TestTermsMerge(t *testing.T) {
	b := cpmodel.NewBuilder()
	x := b.NewIntVar(0, 5, "x")
	y := b.NewIntVar(0, 5, "y")

	e := cpmodel.NewLinearExpr().Add(y, 2).Add(x, 3).Add(y, -2).Add(x, 1).AddConstant(4)
	want := []cpmodel.Term{{Var: x.Index(), Coeff: 4}}
	if diff := cmp.Diff(want, e.Terms()); diff != "" {
		t.Fatalf("terms (-want +got):\n%s", diff)
	}
	require.Equal(t, int64(4), e.ConstantTerm())
	require.Equal(t, int64(12), e.Eval([]int64{2, 5}))
}

// TestNegatedLiteral expands ¬x into 1 − x.
func TestNegatedLiteral(t *testing.T) {
	b := cpmodel.NewBuilder()
	x := b.NewBoolVar("x")
	e := cpmodel.NewLinearExpr().AddLiteral(x.Not(), 3)
	require.Equal(t, []cpmodel.Term{{Var: 0, Coeff: -3}}, e.Terms())
	require.Equal(t, int64(3), e.ConstantTerm())
	require.True(t, x.Not().Holds(0))
	require.False(t, x.Lit().Holds(0))
	require.Equal(t, x.Lit(), x.Not().Not())
}

// TestConstraintBoundsAbsorbConstant moves expression constants into bounds.
func TestConstraintBoundsAbsorbConstant(t *testing.T) {
	b := cpmodel.NewBuilder()
	x := b.NewIntVar(0, 9, "x")
	on := b.NewBoolVar("on")
	b.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x, 1).AddConstant(2), cpmodel.Constant(7)).
		OnlyEnforceIf(on.Lit()).WithName("cap")
	b.AddGreaterThan(cpmodel.NewLinearExpr().Add(x, 1), cpmodel.Constant(0))
	b.AddAtMostOne(on.Lit(), on.Not())
	b.AddBoolOr(on.Lit()).OnlyEnforceIf(on.Lit())
	b.Maximize(cpmodel.NewLinearExpr().Add(x, 1))
	b.AddHint(x, 3)

	m, err := b.Model()
	require.NoError(t, err)
	require.Len(t, m.Linear, 3)
	require.Equal(t, cpmodel.Linear{
		Name:    "cap",
		Terms:   []cpmodel.Term{{Var: 0, Coeff: 1}},
		Lo:      cpmodel.NegInf,
		Hi:      5,
		Enforce: []cpmodel.Literal{on.Lit()},
	}, m.Linear[0])
	require.Equal(t, int64(1), m.Linear[1].Lo)
	// on + (1 - on) <= 1 leaves no terms and bound 0.
	require.Empty(t, m.Linear[2].Terms)
	require.Equal(t, int64(0), m.Linear[2].Hi)
	require.Equal(t, [][]cpmodel.Literal{{on.Lit(), on.Not()}}, m.Clauses)
	require.Equal(t, map[int]int64{0: 3}, m.Hints)
	require.Equal(t, cpmodel.Size{Vars: 2, Bools: 1, Linear: 3, Enforced: 1, Clauses: 1, Hints: 1}, m.Size())
}

// TestModelValidation covers the invalid-model paths.
func TestModelValidation(t *testing.T) {
	cases := []struct {
		name  string
		build func(b *cpmodel.Builder)
	}{
		{"empty domain", func(b *cpmodel.Builder) { b.NewIntVar(3, 2, "x") }},
		{"int literal", func(b *cpmodel.Builder) {
			x := b.NewIntVar(0, 1, "x")
			b.AddBoolOr(cpmodel.Literal{Var: x.Index()})
		}},
		{"unknown enforcement", func(b *cpmodel.Builder) {
			x := b.NewIntVar(0, 1, "x")
			b.AddLinearConstraint(cpmodel.NewLinearExpr().Add(x, 1), 0, 1).
				OnlyEnforceIf(cpmodel.Literal{Var: 7})
		}},
		{"hint outside domain", func(b *cpmodel.Builder) {
			x := b.NewIntVar(0, 4, "x")
			b.AddHint(x, 5)
		}},
		{"overflow", func(b *cpmodel.Builder) {
			x := b.NewIntVar(0, 1<<40, "x")
			b.AddLinearConstraint(cpmodel.NewLinearExpr().Add(x, 1<<30), 0, cpmodel.PosInf)
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := cpmodel.NewBuilder()
			tc.build(b)
			_, err := b.Model()
			require.ErrorIs(t, err, cpmodel.ErrInvalidModel)
		})
	}
}

// TestCheck evaluates assignments against a small model.
func TestCheck(t *testing.T) {
	b := cpmodel.NewBuilder()
	x := b.NewIntVar(0, 4, "x")
	on := b.NewBoolVar("on")
	b.AddLessOrEqual(cpmodel.NewLinearExpr().Add(x, 1), cpmodel.Constant(0)).OnlyEnforceIf(on.Not())
	b.AddBoolOr(on.Lit(), on.Not())
	b.Maximize(cpmodel.NewLinearExpr().Add(x, 2).AddConstant(1))
	m, err := b.Model()
	require.NoError(t, err)

	require.NoError(t, m.Check([]int64{3, 1}))
	require.NoError(t, m.Check([]int64{0, 0}))
	require.Error(t, m.Check([]int64{3, 0}))
	require.Error(t, m.Check([]int64{5, 1}))
	require.Error(t, m.Check([]int64{1}))
	require.Equal(t, int64(7), m.ObjectiveValue([]int64{3, 1}))
}

// TestSolverFunc adapts a closure.
func TestSolverFunc(t *testing.T) {
	var s cpmodel.Solver = cpmodel.SolverFunc(func(context.Context, *cpmodel.Model, cpmodel.Parameters) (cpmodel.Response, error) {
		return cpmodel.Response{Status: cpmodel.Infeasible}, nil
	})
	resp, err := s.Solve(context.Background(), &cpmodel.Model{}, cpmodel.Parameters{})
	require.NoError(t, err)
	require.False(t, resp.HasSolution())
	require.Equal(t, "INFEASIBLE", resp.Status.String())
	for r, want := range map[cpmodel.StopReason]string{
		cpmodel.StopNone:      "none",
		cpmodel.StopTimeLimit: "time-limit",
		cpmodel.StopCanceled:  "canceled",
		cpmodel.StopNodeLimit: "node-limit",
	} {
		require.Equal(t, want, r.String())
	}
}

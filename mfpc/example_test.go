package mfpc_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/mfpc/mfpc"
	"github.com/katalvlaran/mfpc/network"
)

// ExampleSolver_SolveInstance solves a diamond where the two upper arcs
// conflict, so only one of the two routes may be used.
func ExampleSolver_SolveInstance() {
	text := `4 4 1
0
3
0 1 5 1 2
0 2 3 2
1 3 5 3
2 3 3 4
`
	inst, err := network.ParseString(text)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := mfpc.NewSolver().SolveInstance(context.Background(), inst, mfpc.Config{Verify: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(res.Status, res.Solution.Objective, res.Solution.ActiveArcs())
	// Output:
	// OPTIMAL 5 [1 3]
}

// ExampleBuild inspects the formulation before solving.
func ExampleBuild() {
	inst, _ := network.ParseString("3 3 0\n0\n2\n0 1 4 1\n1 2 4 2\n1 0 1 3\n")
	f, _ := mfpc.Build(inst, mfpc.WithRelaxationCut(), mfpc.WithReachabilityPruning())
	bound, _ := f.RelaxationBound()
	m, _ := f.Model()
	fmt.Println("relaxation:", bound)
	fmt.Println("pruned:", f.Pruned())
	fmt.Println("variables:", m.Size().Vars)
	// Output:
	// relaxation: 4
	// pruned: []
	// variables: 7
}

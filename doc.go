// Package mfpc is the home of a maximum-flow solver for networks whose arcs
// may be declared in conflict: of two conflicting arcs, at most one may carry
// flow. The plain problem is polynomial; the conflicts make it NP-hard, so
// the core is an exact constraint model solved by branch-and-bound.
//
// What is inside?
//
//	network/  - immutable Instance, text reader/writer, reachability, stats
//	flow/     - classical max flow: Ford–Fulkerson, Edmonds–Karp, Dinic
//	cpmodel/  - integer/boolean model builder, the solver contract, checker
//	cpsolver/ - pure-Go propagation + depth-first branch-and-bound backend
//	mfpc/     - MFPC formulation, solve orchestration, result interpretation
//	batch/    - many instance files solved in parallel, failures isolated
//	config/   - defaults → YAML → .env → MFPC_* environment, validated
//	logging/  - charmbracelet/log construction (text, json, logfmt)
//	cmd/mfpc  - the command line: solve, batch, inspect, relax
//
// Quick start:
//
//	inst, err := network.ParseFile("instance.txt")
//	if err != nil { ... }
//	res, err := mfpc.NewSolver().SolveInstance(ctx, inst, mfpc.Config{Verify: true})
//	fmt.Println(res.Status, res.Solution.Objective, res.Solution.ActiveArcs())
//
// Or from a shell:
//
//	go install github.com/katalvlaran/mfpc/cmd/mfpc@latest
//	mfpc solve instance.txt --time-limit 30s
package mfpc

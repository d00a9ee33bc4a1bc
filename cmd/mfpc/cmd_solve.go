package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mfpc/mfpc"
	"github.com/katalvlaran/mfpc/network"
)

var solveFlags struct {
	solveOverrides
	markdown bool
}

var solveCmd = &cobra.Command{
	Use:   "solve <instance>",
	Short: "Solve one instance and print the active arcs",
	Args:  cobra.ExactArgs(1),
	RunE:  runSolve,
}

func init() {
	f := solveCmd.Flags()
	solveFlags.register(f)
	f.BoolVar(&solveFlags.markdown, "markdown", false, "render the arc table as Markdown")
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg := *settings
	if err := solveFlags.apply(cmd, &cfg); err != nil {
		return err
	}
	parseOpts, err := cfg.ParseOptions()
	if err != nil {
		return err
	}
	buildOpts, err := cfg.BuildOptions()
	if err != nil {
		return err
	}

	inst, err := network.ParseFile(args[0], parseOpts...)
	if err != nil {
		return err
	}
	f, err := mfpc.Build(inst, buildOpts...)
	if err != nil {
		return err
	}
	solver := mfpc.NewSolver(mfpc.WithLogger(logger))
	res, err := solver.Solve(cmd.Context(), f, cfg.MFPC())
	if err != nil {
		return fmt.Errorf("solve %s: %w", args[0], err)
	}

	printResult(cmd.OutOrStdout(), args[0], inst, res, solveFlags.markdown)
	return nil
}

func printResult(out io.Writer, path string, inst *network.Instance, res mfpc.Result, markdown bool) {
	field(out, "Instance", fmt.Sprintf("%s (%d nodes, %d arcs, %d conflicts)",
		filepath.Base(path), inst.NumNodes(), inst.NumArcs(), inst.NumConflicts()))
	field(out, "Status", res.Status)
	if res.Solution != nil {
		field(out, "Objective", res.Solution.Objective)
	}
	if res.Bound != nil {
		field(out, "Bound", *res.Bound)
	}
	if gap, ok := res.Gap(); ok {
		field(out, "Gap", fmt.Sprintf("%.2f%%", 100*gap))
	}
	field(out, "Time", round(res.SolveTime))
	field(out, "Search", fmt.Sprintf("nodes=%d failures=%d solutions=%d",
		res.Stats.Nodes, res.Stats.Failures, res.Stats.Solutions))
	if res.Solution == nil {
		return
	}

	fmt.Fprintln(out)
	w := newTable("Arc", "Tail", "Head", "Flow", "Capacity")
	rightAlign(w, 1, 2, 3, 4, 5)
	for _, idx := range res.Solution.ActiveArcs() {
		a, _ := inst.Arc(idx)
		w.AppendRow(table.Row{idx, node(inst, a.Tail), node(inst, a.Head), res.Solution.Flow[idx], a.Capacity})
	}
	w.AppendFooter(table.Row{"", "", "z", res.Solution.Objective, ""})
	render(out, w, markdown)
}

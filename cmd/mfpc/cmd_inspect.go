package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mfpc/network"
)

var inspectFlags struct {
	markdown bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <instance>",
	Short: "Print structural statistics of an instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectFlags.markdown, "markdown", false, "render as Markdown")
}

func runInspect(cmd *cobra.Command, args []string) error {
	parseOpts, err := settings.ParseOptions()
	if err != nil {
		return err
	}
	inst, err := network.ParseFile(args[0], parseOpts...)
	if err != nil {
		return err
	}
	s := network.Stats(inst)
	declared := inst.Declared()

	hops := any(s.HopDistance)
	if s.HopDistance == network.Unreachable {
		hops = "unreachable"
	}
	w := newTable("Property", "Value")
	rightAlign(w, 2)
	w.AppendRows([]table.Row{
		{"Nodes", counted(s.Nodes, declared.Nodes)},
		{"Arcs", counted(s.Arcs, declared.Arcs)},
		{"Conflicts", counted(s.Conflicts, declared.Conflicts)},
		{"Node base", inst.Base()},
		{"Source", node(inst, s.Source)},
		{"Sink", node(inst, s.Sink)},
		{"Source capacity", s.SourceCapacity},
		{"Sink capacity", s.SinkCapacity},
		{"Total capacity", s.TotalCapacity},
		{"Parallel arcs", s.ParallelArcs},
		{"Self-loops", s.SelfLoops},
		{"Conflicted arcs", s.ConflictedArcs},
		{"Max conflict degree", s.MaxConflictDegree},
		{"Hop distance", hops},
		{"Useful arcs", s.UsefulArcs},
	})
	render(cmd.OutOrStdout(), w, inspectFlags.markdown)

	return nil
}

// counted shows the declared header value next to the real one when they differ.
func counted(actual, declared int) string {
	if actual == declared {
		return fmt.Sprint(actual)
	}
	return fmt.Sprintf("%d (header %d)", actual, declared)
}

package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mfpc/flow"
	"github.com/katalvlaran/mfpc/network"
)

var relaxFlags struct {
	algorithm string
	arcs      bool
	markdown  bool
}

var relaxCmd = &cobra.Command{
	Use:   "relax <instance>",
	Short: "Compute the maximum flow with conflicts ignored",
	Long: "relax drops every conflict pair and runs a classical max-flow\n" +
		"algorithm. The value is an upper bound on the conflict-aware optimum\n" +
		"and equals it when the instance has no conflicts.",
	Args: cobra.ExactArgs(1),
	RunE: runRelax,
}

var algorithms = map[string]func(*network.Instance, ...flow.Option) (flow.Result, error){
	"dinic":          flow.Dinic,
	"edmonds-karp":   flow.EdmondsKarp,
	"ford-fulkerson": flow.FordFulkerson,
}

func init() {
	f := relaxCmd.Flags()
	f.StringVar(&relaxFlags.algorithm, "algorithm", "dinic", "dinic, edmonds-karp or ford-fulkerson")
	f.BoolVar(&relaxFlags.arcs, "arcs", false, "list the flow on every arc")
	f.BoolVar(&relaxFlags.markdown, "markdown", false, "render the arc list as Markdown")
}

func runRelax(cmd *cobra.Command, args []string) error {
	run, ok := algorithms[strings.ToLower(relaxFlags.algorithm)]
	if !ok {
		return fmt.Errorf("unknown algorithm %q", relaxFlags.algorithm)
	}
	parseOpts, err := settings.ParseOptions()
	if err != nil {
		return err
	}
	inst, err := network.ParseFile(args[0], parseOpts...)
	if err != nil {
		return err
	}
	res, err := run(inst, flow.WithContext(cmd.Context()), flow.WithLogger(logger))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	field(out, "Algorithm", relaxFlags.algorithm)
	field(out, "Max flow", res.Value)
	field(out, "Active", len(res.Active()))
	if !relaxFlags.arcs {
		return nil
	}

	fmt.Fprintln(out)
	w := newTable("Arc", "Tail", "Head", "Flow", "Capacity", "Conflicts")
	rightAlign(w, 1, 2, 3, 4, 5)
	for _, a := range inst.Arcs() {
		w.AppendRow(table.Row{a.Index, node(inst, a.Tail), node(inst, a.Head), res.Flow[a.Index], a.Capacity,
			fmt.Sprint(inst.ConflictsOf(a.Index))})
	}
	render(out, w, relaxFlags.markdown)

	return nil
}

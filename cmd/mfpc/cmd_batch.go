package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mfpc/batch"
	"github.com/katalvlaran/mfpc/mfpc"
)

var batchFlags struct {
	solveOverrides
	workers  int
	pattern  string
	markdown bool
}

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Solve every instance file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	f := batchCmd.Flags()
	batchFlags.register(f)
	f.IntVar(&batchFlags.workers, "workers", 0, "instances solved in parallel (default from settings, 4)")
	f.StringVar(&batchFlags.pattern, "pattern", "", "file name pattern (default from settings, *.txt)")
	f.BoolVar(&batchFlags.markdown, "markdown", false, "render the summary as Markdown")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := *settings
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = batchFlags.workers
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Batch.Pattern = batchFlags.pattern
	}
	if err := batchFlags.apply(cmd, &cfg); err != nil {
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

	paths, err := batch.DiscoverPattern(args[0], cfg.Batch.Pattern)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files matching %q in %s", cfg.Batch.Pattern, args[0])
	}
	logger.Info("batch started", "dir", args[0], "instances", len(paths), "workers", cfg.Batch.Workers)

	outcomes := batch.Run(cmd.Context(), paths,
		batch.WithWorkers(cfg.Batch.Workers),
		batch.WithConfig(cfg.MFPC()),
		batch.WithBuildOptions(buildOpts...),
		batch.WithParseOptions(parseOpts...),
		batch.WithSolver(mfpc.NewSolver(mfpc.WithLogger(logger))),
		batch.WithLogger(logger),
	)

	w := newTable("Instance", "Nodes", "Arcs", "Conflicts", "Status", "Objective", "Bound", "Time")
	rightAlign(w, 2, 3, 4, 6, 7, 8)
	for _, o := range outcomes {
		if !o.OK() {
			w.AppendRow(table.Row{o.Name, "", "", "", "failed at " + string(o.Stage), "", "", round(o.Elapsed)})
			continue
		}
		row := table.Row{o.Name, o.Counts.Nodes, o.Counts.Arcs, o.Counts.Conflicts, o.Result.Status, "", "", round(o.Result.SolveTime)}
		if o.Result.Solution != nil {
			row[5] = o.Result.Solution.Objective
		}
		if o.Result.Bound != nil {
			row[6] = *o.Result.Bound
		}
		w.AppendRow(row)
	}
	sum := batch.Summarize(outcomes)
	w.AppendFooter(table.Row{fmt.Sprintf("%d instances", sum.Total), "", "", "",
		fmt.Sprintf("%d optimal", sum.ByStatus[mfpc.Optimal]), "", "", round(sum.Solve)})
	out := cmd.OutOrStdout()
	render(out, w, batchFlags.markdown)

	for _, o := range outcomes {
		if !o.OK() {
			fmt.Fprintf(out, "%s: %v\n", o.Name, o.Err)
		}
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d instances failed", sum.Failed, sum.Total)
	}

	return nil
}

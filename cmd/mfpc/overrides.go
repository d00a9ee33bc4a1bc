package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/mfpc/config"
)

// solveOverrides are the flags solve and batch share. Only flags the user
// set replace the loaded settings.
type solveOverrides struct {
	timeLimit     time.Duration
	verbose       bool
	verify        bool
	warmStart     bool
	coupling      string
	conflicts     string
	relaxationCut bool
	prune         bool
	nodeBase      string
	strictCounts  bool
}

func (o *solveOverrides) register(f *pflag.FlagSet) {
	f.DurationVar(&o.timeLimit, "time-limit", 0, "search time limit (default from settings, 60s)")
	f.BoolVar(&o.verbose, "verbose", false, "log search progress")
	f.BoolVar(&o.verify, "verify", true, "re-check returned solutions")
	f.BoolVar(&o.warmStart, "warm-start", false, "seed the search with a conflict-repaired max flow")
	f.StringVar(&o.coupling, "coupling", "", "flow/activation link: linear or implication")
	f.StringVar(&o.conflicts, "conflicts", "", "conflict encoding: linear or clause")
	f.BoolVar(&o.relaxationCut, "relaxation-cut", false, "bound z by the conflict-free max flow")
	f.BoolVar(&o.prune, "prune", false, "fix arcs off every source-to-sink walk to inactive")
	f.StringVar(&o.nodeBase, "node-base", "", "node numbering: auto, 0 or 1")
	f.BoolVar(&o.strictCounts, "strict-counts", false, "reject files whose header counts disagree with the content")
}

func (o *solveOverrides) apply(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	if f.Changed("time-limit") {
		cfg.Solve.TimeLimit = o.timeLimit
	}
	if f.Changed("verbose") {
		cfg.Solve.Verbose = o.verbose
	}
	if f.Changed("verify") {
		cfg.Solve.Verify = o.verify
	}
	if f.Changed("warm-start") {
		cfg.Solve.AutoWarmStart = o.warmStart
	}
	if f.Changed("coupling") {
		cfg.Solve.Coupling = o.coupling
	}
	if f.Changed("conflicts") {
		cfg.Solve.Conflicts = o.conflicts
	}
	if f.Changed("relaxation-cut") {
		cfg.Solve.RelaxationCut = o.relaxationCut
	}
	if f.Changed("prune") {
		cfg.Solve.ReachabilityPruning = o.prune
	}
	if f.Changed("node-base") {
		cfg.Parse.NodeBase = o.nodeBase
	}
	if f.Changed("strict-counts") {
		cfg.Parse.StrictCounts = o.strictCounts
	}

	return cfg.Validate()
}

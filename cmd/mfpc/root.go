package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/mfpc/config"
	"github.com/katalvlaran/mfpc/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

// settings and logger are prepared by loadSettings before a subcommand runs.
var (
	settings *config.Config
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mfpc",
	Short: "Maximum flow with pairwise arc conflicts",
	Long: "mfpc reads flow networks whose arcs may be declared in conflict with\n" +
		"each other and finds the largest source-to-sink flow in which no two\n" +
		"conflicting arcs carry flow at the same time.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&rootFlags.configPath, "config", "", "YAML settings file")
	f.StringVar(&rootFlags.logLevel, "log-level", "", "debug, info, warn or error")
	f.StringVar(&rootFlags.logFormat, "log-format", "", "text, json or logfmt")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(relaxCmd)
	rootCmd.Version = version
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if rootFlags.logLevel != "" {
		cfg.Log.Level = rootFlags.logLevel
	}
	if rootFlags.logFormat != "" {
		cfg.Log.Format = rootFlags.logFormat
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	p := cfg.Logging()
	p.Output = cmd.ErrOrStderr()
	l, err := logging.New(p)
	if err != nil {
		return err
	}
	settings, logger = cfg, l

	return nil
}

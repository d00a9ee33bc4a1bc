// Package config loads run settings for the mfpc command.
//
// Sources, later ones winning:
//
//  1. Defaults()
//  2. a YAML file (optional)
//  3. MFPC_* variables from a .env file (optional, missing file ignored)
//  4. MFPC_* variables from the process environment
//
// Command-line flags are applied by the caller on top of the result.
// The merged value is checked with struct tags before it is returned.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/mfpc/logging"
	"github.com/katalvlaran/mfpc/mfpc"
	"github.com/katalvlaran/mfpc/network"
)

// ErrInvalid wraps every validation or conversion failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete run configuration.
type Config struct {
	Solve Solve `yaml:"solve"`
	Parse Parse `yaml:"parse"`
	Batch Batch `yaml:"batch"`
	Log   Log   `yaml:"log"`
}

// Solve holds model and search settings.
type Solve struct {
	TimeLimit           time.Duration `yaml:"time_limit" validate:"gte=0"`
	Verbose             bool          `yaml:"verbose"`
	Verify              bool          `yaml:"verify"`
	AutoWarmStart       bool          `yaml:"auto_warm_start"`
	Coupling            string        `yaml:"coupling" validate:"oneof=linear implication"`
	Conflicts           string        `yaml:"conflicts" validate:"oneof=linear clause"`
	RelaxationCut       bool          `yaml:"relaxation_cut"`
	ReachabilityPruning bool          `yaml:"reachability_pruning"`
}

// Parse holds instance reader settings.
type Parse struct {
	NodeBase     string `yaml:"node_base" validate:"oneof=auto 0 1"`
	StrictCounts bool   `yaml:"strict_counts"`
}

// Batch holds directory processing settings.
type Batch struct {
	Workers int    `yaml:"workers" validate:"gte=1,lte=256"`
	Pattern string `yaml:"pattern" validate:"required"`
}

// Log holds logger settings.
type Log struct {
	Level      string `yaml:"level" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"oneof=text json logfmt"`
	Timestamps bool   `yaml:"timestamps"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Solve: Solve{
			TimeLimit: mfpc.DefaultTimeLimit,
			Verify:    true,
			Coupling:  "linear",
			Conflicts: "linear",
		},
		Parse: Parse{NodeBase: "auto"},
		Batch: Batch{Workers: 4, Pattern: "*.txt"},
		Log:   Log{Level: "info", Format: "text"},
	}
}

// Loader describes where configuration comes from.
type Loader struct {
	// File is a YAML file; empty skips it.
	File string
	// EnvFile is a dotenv file; a missing file is skipped.
	EnvFile string
	// Lookup reads the process environment; nil disables it.
	Lookup func(string) (string, bool)
}

// Load reads path (optional), ./.env and the process environment.
func Load(path string) (*Config, error) {
	return Loader{File: path, EnvFile: ".env", Lookup: os.LookupEnv}.Load()
}

// Load merges all sources over Defaults and validates the result.
func (l Loader) Load() (*Config, error) {
	cfg := Defaults()

	if l.File != "" {
		data, err := os.ReadFile(l.File)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", l.File, err)
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, l.File, err)
		}
	}

	dotenv := map[string]string{}
	if l.EnvFile != "" {
		if m, err := godotenv.Read(l.EnvFile); err == nil {
			dotenv = m
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, l.EnvFile, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if l.Lookup != nil {
			if v, ok := l.Lookup(key); ok {
				return v, true
			}
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// envBinding ties one MFPC_* variable to a field.
type envBinding struct {
	key string
	set func(c *Config, v string) error
}

var envBindings = []envBinding{
	{"MFPC_TIME_LIMIT", func(c *Config, v string) (err error) { c.Solve.TimeLimit, err = time.ParseDuration(v); return }},
	{"MFPC_VERBOSE", func(c *Config, v string) (err error) { c.Solve.Verbose, err = strconv.ParseBool(v); return }},
	{"MFPC_VERIFY", func(c *Config, v string) (err error) { c.Solve.Verify, err = strconv.ParseBool(v); return }},
	{"MFPC_AUTO_WARM_START", func(c *Config, v string) (err error) { c.Solve.AutoWarmStart, err = strconv.ParseBool(v); return }},
	{"MFPC_COUPLING", func(c *Config, v string) error { c.Solve.Coupling = v; return nil }},
	{"MFPC_CONFLICTS", func(c *Config, v string) error { c.Solve.Conflicts = v; return nil }},
	{"MFPC_RELAXATION_CUT", func(c *Config, v string) (err error) { c.Solve.RelaxationCut, err = strconv.ParseBool(v); return }},
	{"MFPC_REACHABILITY_PRUNING", func(c *Config, v string) (err error) {
		c.Solve.ReachabilityPruning, err = strconv.ParseBool(v)
		return
	}},
	{"MFPC_NODE_BASE", func(c *Config, v string) error { c.Parse.NodeBase = v; return nil }},
	{"MFPC_STRICT_COUNTS", func(c *Config, v string) (err error) { c.Parse.StrictCounts, err = strconv.ParseBool(v); return }},
	{"MFPC_WORKERS", func(c *Config, v string) (err error) { c.Batch.Workers, err = strconv.Atoi(v); return }},
	{"MFPC_PATTERN", func(c *Config, v string) error { c.Batch.Pattern = v; return nil }},
	{"MFPC_LOG_LEVEL", func(c *Config, v string) error { c.Log.Level = v; return nil }},
	{"MFPC_LOG_FORMAT", func(c *Config, v string) error { c.Log.Format = v; return nil }},
	{"MFPC_LOG_TIMESTAMPS", func(c *Config, v string) (err error) { c.Log.Timestamps, err = strconv.ParseBool(v); return }},
}

func applyEnv(c *Config, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(b.key)
		if !ok {
			continue
		}
		if err := b.set(c, v); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, b.key, v, err)
		}
	}
	return nil
}

// MFPC converts the solve section into a solve configuration.
func (c *Config) MFPC() mfpc.Config {
	return mfpc.Config{
		TimeLimit:     c.Solve.TimeLimit,
		Verbose:       c.Solve.Verbose,
		Verify:        c.Solve.Verify,
		AutoWarmStart: c.Solve.AutoWarmStart,
	}
}

// BuildOptions converts the solve section into formulation options.
func (c *Config) BuildOptions() ([]mfpc.BuildOption, error) {
	coupling, err := mfpc.ParseCoupling(c.Solve.Coupling)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	enc, err := mfpc.ParseConflictEncoding(c.Solve.Conflicts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	opts := []mfpc.BuildOption{mfpc.WithCoupling(coupling), mfpc.WithConflictEncoding(enc)}
	if c.Solve.RelaxationCut {
		opts = append(opts, mfpc.WithRelaxationCut())
	}
	if c.Solve.ReachabilityPruning {
		opts = append(opts, mfpc.WithReachabilityPruning())
	}

	return opts, nil
}

// ParseOptions converts the parse section into reader options.
func (c *Config) ParseOptions() ([]network.ParseOption, error) {
	base, err := network.ParseIndexBase(c.Parse.NodeBase)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	opts := []network.ParseOption{network.WithNodeBase(base)}
	if c.Parse.StrictCounts {
		opts = append(opts, network.WithStrictCounts())
	}

	return opts, nil
}

// Logging converts the log section into logger parameters.
func (c *Config) Logging() logging.Params {
	return logging.Params{Level: c.Log.Level, Format: c.Log.Format, Timestamps: c.Log.Timestamps}
}

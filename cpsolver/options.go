package cpsolver

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options configures a Solver.
type Options struct {
	// Logger is used when Parameters.Logger is nil.
	Logger *log.Logger

	// CheckEvery is the number of search nodes between budget checks.
	CheckEvery int64

	// VerifySolutions re-checks every incumbent against the model.
	VerifySolutions bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns a silent logger, checks every 256 nodes and
// verifies incumbents.
func DefaultOptions() Options {
	return Options{
		Logger:          log.New(io.Discard),
		CheckEvery:      256,
		VerifySolutions: true,
	}
}

// WithLogger sets the fallback logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCheckEvery sets the budget check interval; values below 1 are ignored.
func WithCheckEvery(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.CheckEvery = n
		}
	}
}

// WithoutVerification skips the incumbent re-check.
func WithoutVerification() Option {
	return func(o *Options) { o.VerifySolutions = false }
}

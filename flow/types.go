package flow

import (
	"context"
	"errors"
	"io"
	"sort"

	"github.com/charmbracelet/log"
)

// ErrNilInstance is returned when a nil instance is passed.
var ErrNilInstance = errors.New("flow: instance is nil")

// Options configures all max-flow algorithms.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// Excluded holds arc indices that must carry no flow.
	Excluded map[int]bool

	// Logger receives one debug line per augmentation.
	Logger *log.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Background context, no exclusions, silent logger.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		Excluded: map[int]bool{},
		Logger:   log.New(io.Discard),
	}
}

// WithContext sets the context checked between phases.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithExcluded forces the given arcs to zero flow. Repeated calls accumulate.
func WithExcluded(indices ...int) Option {
	return func(o *Options) {
		for _, idx := range indices {
			o.Excluded[idx] = true
		}
	}
}

// WithLogger routes augmentation traces to l.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Result holds a maximum flow.
type Result struct {
	// Value is the net flow leaving the source.
	Value int64

	// Flow maps every arc index to the flow it carries (zero included).
	Flow map[int]int64
}

// Active returns the indices of arcs carrying positive flow, ascending.
func (r Result) Active() []int {
	out := make([]int, 0, len(r.Flow))
	for idx, f := range r.Flow {
		if f > 0 {
			out = append(out, idx)
		}
	}
	sort.Ints(out)

	return out
}

// Package logging builds the charmbracelet loggers shared by the command
// line and the libraries it drives.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Formats accepted by New.
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

// Params configures a logger.
type Params struct {
	// Level is debug, info, warn or error.
	Level string
	// Format is text, json or logfmt.
	Format string
	// Timestamps adds a time field to every line.
	Timestamps bool
	// Output defaults to stderr.
	Output io.Writer
}

// New returns a logger for p.
func New(p Params) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(p.Level))
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	var formatter log.Formatter
	switch strings.ToLower(p.Format) {
	case FormatText, "":
		formatter = log.TextFormatter
	case FormatJSON:
		formatter = log.JSONFormatter
	case FormatLogfmt:
		formatter = log.LogfmtFormatter
	default:
		return nil, fmt.Errorf("logging: unknown format %q", p.Format)
	}

	out := p.Output
	if out == nil {
		out = os.Stderr
	}

	return log.NewWithOptions(out, log.Options{
		Level:           level,
		Formatter:       formatter,
		ReportTimestamp: p.Timestamps,
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

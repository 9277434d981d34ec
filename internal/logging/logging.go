// Package logging builds the hclog loggers used throughout switchboard.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// Options configures a root logger.
type Options struct {
	// Name prefixes every line. Components add their own via Named.
	Name string

	// Level is one of trace, debug, info, warn, error or off.
	// Unknown values fall back to info.
	Level string

	// JSON selects JSON output instead of the text format.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a root logger.
func New(opts Options) hclog.Logger {
	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	level, ok := ParseLevel(opts.Level)
	if !ok {
		level = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       opts.Name,
		Level:      level,
		Output:     output,
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// ParseLevel parses a level name. The empty string is info.
func ParseLevel(s string) (hclog.Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return hclog.Info, true
	}
	level := hclog.LevelFromString(s)
	if level == hclog.NoLevel {
		return hclog.NoLevel, false
	}
	return level, true
}

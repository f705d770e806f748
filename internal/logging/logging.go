// SPDX-License-Identifier: MPL-2.0

// Package logging builds the charmbracelet logger shared by the CLI and the
// catalog index.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultPrefix is written before every log line.
const DefaultPrefix = "planbuild"

// Options configures New.
type Options struct {
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// Level is a charmbracelet level name ("debug", "info", "warn", "error").
	// Empty means info.
	Level string
	// Prefix defaults to DefaultPrefix. Use "-" for no prefix.
	Prefix          string
	ReportTimestamp bool
}

// New returns a logger for opts. An unknown level is an error.
func New(opts Options) (*log.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	prefix := opts.Prefix
	switch prefix {
	case "":
		prefix = DefaultPrefix
	case "-":
		prefix = ""
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: opts.ReportTimestamp,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

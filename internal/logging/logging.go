// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the diagnostic logger shared by all stages. Status
// lines meant for the user are still written to an io.Writer by each stage;
// this logger carries warnings, dropped segments and retry notices.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Config holds logger settings, usually taken from --log-level and --log-json.
type Config struct {
	// Level is one of debug, info, warn, error (default info).
	Level string

	// JSON switches to one JSON object per line.
	JSON bool

	// Output defaults to os.Stderr.
	Output io.Writer

	// TimeFormat defaults to 15:04:05.
	TimeFormat string
}

// New returns a charm logger configured from cfg. An unknown level is an error.
func New(cfg Config) (*log.Logger, error) {
	level := log.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		l, err := log.ParseLevel(s)
		if err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", s, err)
		}
		level = l
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "15:04:05"
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
		Level:           level,
	})
	if cfg.JSON {
		logger.SetFormatter(log.JSONFormatter)
	} else {
		logger.SetFormatter(log.TextFormatter)
	}
	return logger, nil
}

// Discard returns a logger that drops everything. Tests and library callers
// that do not care about diagnostics use it.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

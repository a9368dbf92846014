// SPDX-License-Identifier: MPL-2.0

// Package logging builds the diagnostics logger.
//
// Diagnostics go to the given writer (stderr in the CLI) and, when a log file
// is configured, are also appended to a size-rotated file.
package logging

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Prefix is printed before every diagnostics line.
const Prefix = "bundler"

type (
	// Options configures New.
	Options struct {
		// Debug lowers the level from Warn to Debug.
		Debug bool
		// File enables the rotating log file when non-empty.
		File string
		// BaseDir resolves a relative File.
		BaseDir    string
		MaxSizeMB  int
		MaxBackups int
		MaxAgeDays int
	}

	// Logger is a charm logger that owns its rotating file, if any.
	Logger struct {
		*log.Logger
		file *lumberjack.Logger
	}
)

// New returns a logger writing to w and, if opts.File is set, to the
// rotating file as well.
func New(w io.Writer, opts Options) *Logger {
	l := &Logger{}

	out := w
	if opts.File != "" {
		path := opts.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(opts.BaseDir, path)
		}
		l.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		out = io.MultiWriter(w, l.file)
	}

	l.Logger = log.NewWithOptions(out, log.Options{
		Prefix:          Prefix,
		Level:           Level(opts.Debug),
		ReportTimestamp: l.file != nil,
		TimeFormat:      time.DateTime,
	})
	return l
}

// Level maps the debug switch to a log level.
func Level(debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// Close closes the log file. It is a no-op without one.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

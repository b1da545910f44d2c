// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the zerolog diagnostic log. The TUI owns the
// terminal, so events go to a file rather than stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options controls where and how much is logged.
type Options struct {
	// Level is a zerolog level name; empty means info
	Level string
	// File is the log path; empty discards everything
	File string
	// Debug forces the debug level
	Debug bool
}

// Setup opens the log file, builds the logger and installs it as the
// zerolog global logger. The returned closer must be called on exit.
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	if opts.File == "" || level == zerolog.Disabled {
		logger := zerolog.Nop()
		log.Logger = logger
		return logger, nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := New(f, level)
	log.Logger = logger
	return logger, f, nil
}

// New builds a timestamped logger writing JSON lines to w.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

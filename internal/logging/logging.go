// Copyright (c) 2026 Cilo Authors
// SPDX-License-Identifier: MIT
// See LICENSES/MIT.txt for full license text

// Package logging builds the session logger. Operator-facing text never goes
// through here; the log is a record of what the session did.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/sharedco/decom/internal/config"
)

// New returns a logger configured from cfg and a close func for its output.
func New(cfg config.LogConfig) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}

	out, closeFn, err := openOutput(cfg.File)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(out)

	return logger, closeFn, nil
}

// Discard returns a logger that drops everything, for tests and for commands
// that do not touch the platform.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func openOutput(path string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch path {
	case "":
		return io.Discard, noop, nil
	case "-":
		return os.Stderr, noop, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, f.Close, nil
}

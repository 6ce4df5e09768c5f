// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logger is the process-wide structured logger.
//
// The TUI owns stdout, so log lines go to a file (see Options.Path). Until
// Init is called every call is discarded, which keeps tests quiet.
package logger

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Options configures Init.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	Path   string // log file; empty writes to stderr
}

var (
	mu   sync.Mutex
	log  = newDiscard()
	file *os.File
)

func newDiscard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Init replaces the logger. It may be called again to reconfigure; the
// previous log file is closed.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}

	l := logrus.New()
	l.SetLevel(level)

	switch strings.ToLower(opts.Format) {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			DisableColors: opts.Path != "",
		})
	}

	var f *os.File
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0700); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		f, err = os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.SetOutput(f)
	} else {
		l.SetOutput(os.Stderr)
	}

	mu.Lock()
	defer mu.Unlock()
	if file != nil {
		file.Close()
	}
	log, file = l, f

	// Libraries that print through the standard logger (the genai SDK)
	// must not write over the TUI.
	stdlog.SetFlags(0)
	stdlog.SetOutput(stdWriter{})
	return nil
}

// stdWriter forwards standard library log output as warnings.
type stdWriter struct{}

func (stdWriter) Write(p []byte) (int, error) {
	current().WithField("source", "stdlog").Warn(strings.TrimSpace(string(p)))
	return len(p), nil
}

// SetOutput redirects the logger, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// SetLevel changes the minimum level at runtime.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()
	log.SetLevel(lvl)
	return nil
}

// ParseLevel accepts logrus level names; empty means info.
func ParseLevel(level string) (logrus.Level, error) {
	if strings.TrimSpace(level) == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	log = newDiscard()
	return err
}

func current() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

// WithField starts an entry with one field.
func WithField(key string, value any) *logrus.Entry {
	return current().WithField(key, value)
}

// WithFields starts an entry with several fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return current().WithFields(fields)
}

// WithError starts an entry carrying err.
func WithError(err error) *logrus.Entry {
	return current().WithError(err)
}

func Debugf(format string, args ...any) { current().Debugf(format, args...) }
func Infof(format string, args ...any)  { current().Infof(format, args...) }
func Warnf(format string, args ...any)  { current().Warnf(format, args...) }
func Errorf(format string, args ...any) { current().Errorf(format, args...) }

package main

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// LogParams wrapper around key values used for logging
type LogParams map[string]interface{}

// Logger writes diagnostics to stderr; stdout is reserved for sampled
// lines.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger returns a text logger writing to w at level warn.
func NewLogger(w io.Writer) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return &Logger{entry: logrus.NewEntry(l)}
}

// Debug logs a debug message
func (l *Logger) Debug(s string) {
	l.entry.Debug(s)
}

// Info logs a message with level `info`
func (l *Logger) Info(s string) {
	l.entry.Info(s)
}

// Warn logs a message with level `warning`
func (l *Logger) Warn(s string) {
	l.entry.Warn(s)
}

// With returns a logger initialized with the parameters
func (l *Logger) With(params LogParams) *Logger {
	fields := logrus.Fields{}
	for k, v := range params {
		fields[k] = v
	}
	return &Logger{entry: l.entry.WithFields(fields)}
}

// SetLevel sets the level of the logger
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.WithHint(errors.Wrap(err, "--log-level"),
			"use one of panic, fatal, error, warn, info, debug, trace")
	}
	l.entry.Logger.SetLevel(lvl)
	return nil
}

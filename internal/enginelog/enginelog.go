// Package enginelog wraps go.uber.org/zap behind a narrow Debugf/
// Infof/Warnf surface (internal/executor.Logger needs only Debugf of
// it), grounded on
// dphaener-conduit's zap.Logger usage (DESIGN.md survey notes) — a
// single structured sugared logger, configurable once at Context
// construction, rather than a global. A quill Context that never calls
// WithLogger gets a no-op logger so logging is always optional.
package enginelog

import "go.uber.org/zap"

// Logger adapts a *zap.SugaredLogger to the Debugf/Infof/Warnf shape;
// its Debugf method is what internal/executor.Logger requires.
type Logger struct {
	sugar *zap.SugaredLogger
}

// New wraps an existing *zap.Logger.
func New(l *zap.Logger) *Logger {
	return &Logger{sugar: l.Sugar()}
}

// NewProduction builds a Logger from zap's production preset (JSON,
// info level and above), the default a CLI embedder reaches for.
func NewProduction() (*Logger, error) {
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

// NewDevelopment builds a Logger from zap's development preset
// (console-friendly, debug level and above), used by cmd/quill's
// `--verbose` flag and internal/repl.
func NewDevelopment() (*Logger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return New(l), nil
}

func (l *Logger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *Logger) Infof(format string, args ...any)   { l.sugar.Infof(format, args...) }
func (l *Logger) Warnf(format string, args ...any)   { l.sugar.Warnf(format, args...) }

// Sync flushes any buffered log entries; callers should defer it after
// constructing a Logger, matching zap's own convention.
func (l *Logger) Sync() error { return l.sugar.Sync() }

// noop implements the executor.Logger interface by discarding
// everything; it is not exported because internal/executor already
// supplies its own default — enginelog only needs to satisfy the
// interface shape for Context's WithLogger option's zero case.
type noop struct{}

func (noop) Debugf(string, ...any) {}
func (noop) Infof(string, ...any)  {}
func (noop) Warnf(string, ...any)  {}

// Noop returns a Logger-shaped value that discards all output.
var Noop = noop{}

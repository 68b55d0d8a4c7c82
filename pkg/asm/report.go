package asm

import (
	"log/slog"
)

// Reporter receives diagnostics and progress text. Returning false from
// either method aborts the compile with Interrupted.
type Reporter interface {
	Error(kind ErrorKind, msg string) bool
	Output(msg string) bool
}

// ReporterFuncs adapts plain callbacks to a Reporter. A nil callback
// continues.
type ReporterFuncs struct {
	ErrorFunc  func(kind ErrorKind, msg string) bool
	OutputFunc func(msg string) bool
}

func (r ReporterFuncs) Error(kind ErrorKind, msg string) bool {
	if r.ErrorFunc == nil {
		return true
	}
	return r.ErrorFunc(kind, msg)
}

func (r ReporterFuncs) Output(msg string) bool {
	if r.OutputFunc == nil {
		return true
	}
	return r.OutputFunc(msg)
}

// SlogReporter logs errors at error level and output at info level. It never
// interrupts.
type SlogReporter struct {
	Logger *slog.Logger
}

// NewSlogReporter creates a reporter on l, or on the default logger if l is nil.
func NewSlogReporter(l *slog.Logger) *SlogReporter {
	if l == nil {
		l = slog.Default()
	}
	return &SlogReporter{Logger: l}
}

func (r *SlogReporter) Error(kind ErrorKind, msg string) bool {
	r.Logger.Error(msg, "kind", kind.String())
	return true
}

func (r *SlogReporter) Output(msg string) bool {
	r.Logger.Info(msg)
	return true
}

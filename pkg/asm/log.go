package asm

import (
	"context"
	"log/slog"
)

// LevelTrace sits below debug and carries resolver state transitions.
const LevelTrace slog.Level = slog.LevelDebug - 4

// Trace logs msg at LevelTrace on l, or on the default logger if l is nil.
func Trace(l *slog.Logger, msg string, args ...any) {
	if l == nil {
		l = slog.Default()
	}
	l.Log(context.Background(), LevelTrace, msg, args...)
}

package asm

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/parser"
)

// ErrorKind classifies everything the assembler reports.
type ErrorKind int

const (
	None ErrorKind = iota
	OpenFileFailed
	CreateFileFailed
	InvalidDirective
	InvalidMnemonic
	InvalidToken
	UnknownMnemonic
	NoMatchingInstruction
	AmbiguousInstruction
	WriteFailed
	Interrupted
)

var kindNames = [...]string{
	None:                  "None",
	OpenFileFailed:        "OpenFileFailed",
	CreateFileFailed:      "CreateFileFailed",
	InvalidDirective:      "InvalidDirective",
	InvalidMnemonic:       "InvalidMnemonic",
	InvalidToken:          "InvalidToken",
	UnknownMnemonic:       "UnknownMnemonic",
	NoMatchingInstruction: "NoMatchingInstruction",
	AmbiguousInstruction:  "AmbiguousInstruction",
	WriteFailed:           "WriteFailed",
	Interrupted:           "Interrupted",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is a user-facing assembly error. Line is 1-based and zero when the
// error is not tied to a source line.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of err, None for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return None
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, parser.ErrUnknownMnemonic):
		return UnknownMnemonic
	case errors.Is(err, parser.ErrInvalidDirective):
		return InvalidDirective
	}
	return InvalidToken
}

// InternalError is raised with panic when the resolver or encoder reaches a
// state well-formed input never produces.
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return "internal error: " + e.Msg }

func internalf(format string, args ...any) {
	panic(&InternalError{Msg: fmt.Sprintf(format, args...)})
}

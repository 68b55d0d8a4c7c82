// Package asm resolves RSCM assembly into instructions and writes binaries.
//
// Each source line is parsed into tokens, which a Resolver consumes one at a
// time. A mnemonic may stand for several opcodes; the resolver picks the one
// whose declared operands fit what was supplied, fills defaults and pushes
// operands for opcodes that take them from the value stack.
package asm

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/bytecode"
	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/parser"
)

// MaxLineLength is the longest source line Assemble accepts, in bytes.
const MaxLineLength = 64 * 1024

// ErrInterrupted is returned once the reporter asks to stop.
var ErrInterrupted = &Error{Kind: Interrupted, Msg: "compile interrupted"}

// Assembler runs lines through the parser and resolver and collects the
// result. Errors are confined to the line they occur on.
type Assembler struct {
	table    *isa.Table
	parser   *parser.Parser
	resolver *Resolver
	reporter Reporter
	log      *slog.Logger
	header   bytecode.Header

	lineNo      int
	lines       []Line
	errs        []*Error
	interrupted bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithTable replaces the built-in instruction table.
func WithTable(t *isa.Table) Option {
	return func(a *Assembler) { a.table = t }
}

// WithReporter sets the diagnostics sink.
func WithReporter(r Reporter) Option {
	return func(a *Assembler) { a.reporter = r }
}

// WithLogger sets the logger for resolver tracing.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// WithHeader sets the header written in front of the instructions.
func WithHeader(h bytecode.Header) Option {
	return func(a *Assembler) { a.header = h }
}

// New creates an assembler. Without options it uses the built-in table,
// reports through slog and writes a default header.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		table:  isa.Default(),
		header: bytecode.NewHeader(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = slog.Default()
	}
	if a.reporter == nil {
		a.reporter = NewSlogReporter(a.log)
	}
	a.parser = parser.New(a.table)
	a.resolver = NewResolver(a.table, a.log)
	return a
}

// AssembleLine processes one line of source. On error the line contributes
// nothing and the error has already been reported.
func (a *Assembler) AssembleLine(line string) error {
	if a.interrupted {
		return ErrInterrupted
	}
	a.lineNo++

	if name, ok := parser.Directive(line); ok && name != "." {
		a.log.Debug("directive ignored", "line", a.lineNo, "directive", name)
	}

	toks, err := a.parser.Parse(line)
	if err != nil {
		return a.fail(&Error{Kind: KindOf(err), Msg: err.Error()})
	}

	for _, tok := range toks {
		if err := a.resolver.Digest(tok); err != nil {
			return a.fail(asError(err))
		}
	}

	out, err := a.resolver.EndLine()
	if err != nil {
		return a.fail(asError(err))
	}
	a.lines = append(a.lines, out...)
	return nil
}

// Assemble reads r line by line and returns every resolved instruction. The
// error is the first one reported; lines after it are still assembled. A line
// longer than MaxLineLength is rejected on its own like any other bad line.
func (a *Assembler) Assemble(r io.Reader) ([]Line, error) {
	br := bufio.NewReader(r)
	for {
		line, rerr := br.ReadString('\n')
		if line != "" {
			if err := a.assembleRaw(line); err != nil && a.interrupted {
				return a.lines, err
			}
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return a.lines, a.fail(&Error{Kind: OpenFileFailed, Msg: errors.Wrap(rerr, "read source").Error()})
		}
	}

	out, err := a.resolver.Flush()
	if err != nil {
		return a.lines, a.fail(asError(err))
	}
	a.lines = append(a.lines, out...)
	return a.lines, a.Err()
}

func (a *Assembler) assembleRaw(line string) error {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if len(line) <= MaxLineLength {
		return a.AssembleLine(line)
	}
	if a.interrupted {
		return ErrInterrupted
	}
	a.lineNo++
	return a.fail(newError(InvalidToken, "line is %d bytes, longer than %d", len(line), MaxLineLength))
}

// Lines returns the instructions resolved so far.
func (a *Assembler) Lines() []Line { return a.lines }

// Errors returns every error reported so far.
func (a *Assembler) Errors() []*Error { return a.errs }

// Err returns the first reported error, or nil.
func (a *Assembler) Err() error {
	if a.interrupted {
		return ErrInterrupted
	}
	if len(a.errs) == 0 {
		return nil
	}
	return a.errs[0]
}

// Header returns the header the assembler writes.
func (a *Assembler) Header() bytecode.Header { return a.header }

// WriteTo encodes the header and every resolved instruction to w.
func (a *Assembler) WriteTo(w io.Writer) (int64, error) {
	enc := bytecode.NewEncoder(w, a.header)
	err := enc.Encode(a.lines)
	return enc.Written(), err
}

func (a *Assembler) output(msg string) bool {
	if !a.reporter.Output(msg) {
		a.interrupted = true
	}
	return !a.interrupted
}

func (a *Assembler) fail(e *Error) error {
	a.resolver.Abort()
	if e.Line == 0 {
		e.Line = a.lineNo
	}
	a.errs = append(a.errs, e)
	if !a.reporter.Error(e.Kind, e.Error()) {
		a.interrupted = true
		return ErrInterrupted
	}
	return e
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindOf(err), Msg: err.Error()}
}

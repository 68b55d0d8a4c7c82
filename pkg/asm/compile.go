package asm

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Compile assembles the file at in and writes the binary to out. The whole
// source is resolved before out is created, so a missing input never leaves
// an output file behind. Per-line errors are reported and skipped; the
// result is the kind of the first one, or None.
func Compile(in, out string, opts ...Option) ErrorKind {
	a := New(opts...)
	if !a.output("Opening file " + in) {
		return Interrupted
	}

	src, err := os.Open(in)
	if err != nil {
		return a.abort(OpenFileFailed, errors.Wrap(err, "open source"))
	}
	_, aerr := a.Assemble(src)
	src.Close()
	if a.interrupted {
		return Interrupted
	}
	if k := KindOf(aerr); k == OpenFileFailed {
		return k
	}

	dst, err := os.Create(out)
	if err != nil {
		return a.abort(CreateFileFailed, errors.Wrap(err, "create output"))
	}
	bw := bufio.NewWriter(dst)
	n, err := a.WriteTo(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return a.abort(WriteFailed, err)
	}

	msg := fmt.Sprintf("Wrote %d instructions (%d bytes) to %s", len(a.lines), n, out)
	if len(a.errs) > 0 {
		msg += fmt.Sprintf(", %d errors", len(a.errs))
	}
	if !a.output(msg) {
		return Interrupted
	}
	return KindOf(aerr)
}

func (a *Assembler) abort(kind ErrorKind, err error) ErrorKind {
	e := &Error{Kind: kind, Msg: err.Error()}
	a.errs = append(a.errs, e)
	if !a.reporter.Error(kind, e.Error()) {
		a.interrupted = true
		return Interrupted
	}
	return kind
}

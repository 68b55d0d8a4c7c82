package asm

import (
	"fmt"
	"log/slog"

	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/types"
)

// State is the phase of the resolver between tokens.
type State int

const (
	ExpectMnemonic State = iota
	CollectingOperands
	InstructionComplete
	numStates
)

func (s State) String() string {
	switch s {
	case ExpectMnemonic:
		return "ExpectMnemonic"
	case CollectingOperands:
		return "CollectingOperands"
	case InstructionComplete:
		return "InstructionComplete"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type tokenClass int

const (
	tokMnemonic tokenClass = iota
	tokValue
	tokComma
	numTokenClasses
)

func classify(tok types.Operand) tokenClass {
	switch tok.(type) {
	case types.InstructionRef:
		return tokMnemonic
	case types.Repetition:
		return tokComma
	}
	return tokValue
}

type transition func(r *Resolver, tok types.Operand) error

var transitions = [numStates][numTokenClasses]transition{
	ExpectMnemonic: {
		tokMnemonic: (*Resolver).begin,
		tokValue:    (*Resolver).strayValue,
		tokComma:    (*Resolver).leadingComma,
	},
	CollectingOperands: {
		tokMnemonic: (*Resolver).closeAndBegin,
		tokValue:    (*Resolver).collect,
		tokComma:    (*Resolver).closeAndRepeat,
	},
	InstructionComplete: {
		tokMnemonic: (*Resolver).closeAndBegin,
		tokValue:    (*Resolver).feedFriend,
		tokComma:    (*Resolver).repeat,
	},
}

// instruction is the mnemonic being assembled and what it resolved to.
type instruction struct {
	mnemonic *isa.Mnemonic
	op       isa.Opcode
	fixed    bool // single candidate, opcode known up front
	ops      []types.Operand
	res      resolution
	done     bool
}

// Resolver turns a stream of parsed tokens into resolved instructions. It
// keeps the previous mnemonic so a comma can repeat it, across lines too.
type Resolver struct {
	table *isa.Table
	log   *slog.Logger

	state   State
	cur     *instruction
	last    *isa.Mnemonic
	comma   bool // a comma is waiting for its operands
	pending []Line
}

// NewResolver creates a resolver over table. A nil logger uses the default.
func NewResolver(table *isa.Table, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{table: table, log: log}
}

// State returns the current phase.
func (r *Resolver) State() State { return r.state }

// Continues reports whether the last line ended in a comma and the next line
// supplies its operands.
func (r *Resolver) Continues() bool { return r.comma }

// Digest consumes one token.
func (r *Resolver) Digest(tok types.Operand) error {
	class := classify(tok)
	Trace(r.log, "digest", "state", r.state.String(), "token", tok.String(), "type", tok.Type())
	return transitions[r.state][class](r, tok)
}

// EndLine closes a textual line and returns the instructions it completed.
// A line ending in a comma still returns what it finished; only the
// instruction waiting for operands stays open for the next line. On error the
// pending instructions are dropped.
func (r *Resolver) EndLine() ([]Line, error) {
	if r.comma {
		Trace(r.log, "continue", "mnemonic", r.cur.mnemonic.Name)
		return r.take(), nil
	}
	if err := r.close(); err != nil {
		r.Abort()
		return nil, err
	}
	r.state = ExpectMnemonic
	return r.take(), nil
}

func (r *Resolver) take() []Line {
	out := r.pending
	r.pending = nil
	return out
}

// Flush ends the input. A comma still waiting for operands is an error.
func (r *Resolver) Flush() ([]Line, error) {
	if r.comma {
		r.Abort()
		return nil, newError(InvalidToken, "input ends after ','")
	}
	return r.EndLine()
}

// Abort discards everything not yet returned by EndLine. The mnemonic
// available for repetition is kept.
func (r *Resolver) Abort() {
	r.state = ExpectMnemonic
	r.cur = nil
	r.comma = false
	r.pending = nil
}

func (r *Resolver) begin(tok types.Operand) error {
	ref := tok.(types.InstructionRef)
	m, ok := r.table.Lookup(ref.Name)
	if !ok {
		return newError(UnknownMnemonic, "%s", ref.Name)
	}
	r.start(m)
	if r.cur.fixed {
		v, _ := r.table.Variant(r.cur.op)
		if len(v.Params) == 0 {
			return r.finalize(InstructionComplete)
		}
	}
	r.setState(CollectingOperands)
	return nil
}

func (r *Resolver) start(m *isa.Mnemonic) {
	r.cur = &instruction{mnemonic: m}
	if len(m.Candidates) == 1 {
		r.cur.op = m.Candidates[0]
		r.cur.fixed = true
	}
	r.last = m
}

func (r *Resolver) strayValue(tok types.Operand) error {
	return newError(InvalidMnemonic, "expected a mnemonic, got %s '%s'", tok.Type(), tok)
}

// leadingComma repeats the previous mnemonic at the start of a line.
func (r *Resolver) leadingComma(types.Operand) error {
	if r.last == nil {
		return newError(InvalidToken, "',' with no instruction to repeat")
	}
	r.startRepeat(r.last)
	return nil
}

func (r *Resolver) startRepeat(m *isa.Mnemonic) {
	r.start(m)
	r.comma = true
	r.setState(CollectingOperands)
}

func (r *Resolver) collect(tok types.Operand) error {
	r.cur.ops = append(r.cur.ops, tok)
	r.comma = false
	if len(r.cur.ops) < r.table.MaxParams(r.cur.mnemonic) {
		return nil
	}
	return r.finalize(InstructionComplete)
}

func (r *Resolver) closeAndBegin(tok types.Operand) error {
	if r.comma {
		return newError(InvalidToken, "expected an operand after ',', got %s", tok)
	}
	if err := r.close(); err != nil {
		return err
	}
	return r.begin(tok)
}

func (r *Resolver) closeAndRepeat(tok types.Operand) error {
	if r.comma {
		return newError(InvalidToken, "expected an operand after ','")
	}
	if err := r.finalize(InstructionComplete); err != nil {
		return err
	}
	return r.repeat(tok)
}

// repeat handles a comma after a complete instruction. Operands of a
// friend-fed instruction keep accumulating; otherwise the mnemonic starts
// over with a new operand list.
func (r *Resolver) repeat(types.Operand) error {
	if r.comma {
		return newError(InvalidToken, "expected an operand after ','")
	}
	if r.cur.res.friend {
		r.comma = true
		return nil
	}
	m := r.cur.mnemonic
	if err := r.close(); err != nil {
		return err
	}
	r.startRepeat(m)
	return nil
}

// feedFriend adds an operand to a complete instruction. Only mnemonics with
// a friend accept more operands than their variants declare.
func (r *Resolver) feedFriend(tok types.Operand) error {
	if !r.table.HasFriend(r.cur.mnemonic) {
		return newError(NoMatchingInstruction, "%s takes no further operand %s", r.cur.mnemonic.Name, tok)
	}
	r.cur.ops = append(r.cur.ops, tok)
	r.comma = false
	return r.finalize(InstructionComplete)
}

// finalize resolves the current instruction and moves to next on success.
func (r *Resolver) finalize(next State) error {
	in := r.cur
	res, err := resolve(r.table, in.mnemonic, in.ops, 0)
	if err != nil {
		return err
	}
	if in.fixed {
		if got := res.lines[len(res.lines)-1].Op; got != in.op {
			internalf("%s resolved to %s, fixed as %s", in.mnemonic.Name, got, in.op)
		}
	}
	in.res = res
	in.done = true
	Trace(r.log, "resolved", "mnemonic", in.mnemonic.Name, "lines", len(res.lines), "friend", res.friend)
	r.setState(next)
	return nil
}

// close finalizes the current instruction if needed and queues its lines.
func (r *Resolver) close() error {
	if r.cur == nil {
		return nil
	}
	if !r.cur.done {
		if err := r.finalize(InstructionComplete); err != nil {
			return err
		}
	}
	r.pending = append(r.pending, r.cur.res.lines...)
	r.cur = nil
	r.setState(ExpectMnemonic)
	return nil
}

func (r *Resolver) setState(s State) {
	if s != r.state {
		Trace(r.log, "transition", "from", r.state.String(), "to", s.String())
	}
	r.state = s
}

package asm

import (
	"fmt"
	"strings"

	"github.com/psilLang/clara/pkg/bytecode"
	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/parser"
	"github.com/psilLang/clara/pkg/types"
)

// Line is one resolved instruction: an opcode and its operands at their
// final widths.
type Line = bytecode.Record

type resolution struct {
	lines  []Line
	friend bool // operands were pushed with the friend mnemonic
}

// match is a variant that accepts a set of operands.
type match struct {
	v     *isa.Variant
	args  []types.Value
	slack int
}

func (m match) line() Line {
	l := Line{Op: m.v.Op}
	for i, k := range m.v.Params {
		w, err := types.Widen(m.args[i], k)
		if err != nil {
			internalf("%s: %v", m.v, err)
		}
		l.Operands = append(l.Operands, w)
	}
	return l
}

// Resolve picks the one variant of m that accepts ops and returns the
// instructions to emit. When no variant takes the operands directly and a
// candidate has a friend mnemonic, each operand is pushed with the friend
// first and the candidate follows.
func Resolve(t *isa.Table, m *isa.Mnemonic, ops []types.Operand) ([]Line, error) {
	res, err := resolve(t, m, ops, 0)
	return res.lines, err
}

func resolve(t *isa.Table, m *isa.Mnemonic, ops []types.Operand, depth int) (resolution, error) {
	vals := make([]types.Value, len(ops))
	for i, op := range ops {
		v, ok := op.(types.Value)
		if !ok {
			return resolution{}, newError(InvalidToken, "%s: %s '%s' is not a value", m.Name, op.Type(), op)
		}
		vals[i] = v
	}

	matches := candidates(t, m.Candidates, vals)
	switch len(matches) {
	case 1:
		return resolution{lines: []Line{matches[0].line()}}, nil
	case 0:
	default:
		return resolution{}, ambiguous(m, vals, matches)
	}

	// Friends never nest: a pushed operand resolves on its own.
	if depth == 0 && len(vals) > 0 {
		if res, ok, err := synthesize(t, m, vals, depth); ok {
			return res, err
		}
	}
	return resolution{}, newError(NoMatchingInstruction, "no variant of %s takes %s", m.Name, describe(vals))
}

// candidates returns the variants among ops that accept vals with the least
// widening. Integers fit any slot at least as wide, so an exact fit wins over
// a wider one.
func candidates(t *isa.Table, ops []isa.Opcode, vals []types.Value) []match {
	n := len(vals)
	best := -1
	var out []match
	for _, op := range ops {
		v, ok := t.Variant(op)
		if !ok {
			internalf("opcode %d missing from table", op)
		}
		if v.MinParams > n || len(v.Params) < n {
			continue
		}

		args := vals
		if len(v.Params) > n {
			if len(v.Defaults) != len(v.Params)-n {
				continue
			}
			args = append(append([]types.Value(nil), vals...), defaults(v)...)
		}

		slack, ok := fit(v.Params, args)
		if !ok {
			continue
		}
		switch {
		case best < 0 || slack < best:
			best = slack
			out = out[:0]
		case slack > best:
			continue
		}
		out = append(out, match{v: v, args: args, slack: slack})
	}
	return out
}

func fit(params []types.Kind, args []types.Value) (int, bool) {
	slack := 0
	for i, k := range params {
		if !types.Matches(args[i], k) {
			return 0, false
		}
		if k.Role() == types.RoleInt {
			slack += types.Slack(args[i], k)
		}
	}
	return slack, true
}

func defaults(v *isa.Variant) []types.Value {
	out := make([]types.Value, len(v.Defaults))
	for i, s := range v.Defaults {
		d, err := parser.ParseLiteral(s)
		if err != nil {
			internalf("%s: bad default %q", v.Name(), s)
		}
		out[i] = d
	}
	return out
}

// synthesize pushes every operand with the friend mnemonic of a candidate
// that resolves without operands. ok is false when m has no such candidate.
func synthesize(t *isa.Table, m *isa.Mnemonic, vals []types.Value, depth int) (res resolution, ok bool, err error) {
	var (
		target *match
		friend *isa.Mnemonic
	)
	for _, op := range m.Candidates {
		f, has := t.Friend(op)
		if !has {
			continue
		}
		ms := candidates(t, []isa.Opcode{op}, nil)
		if len(ms) == 0 {
			continue
		}
		if target != nil {
			return resolution{}, true, newError(AmbiguousInstruction,
				"%s has more than one stack form: %s, %s", m.Name, target.v, ms[0].v)
		}
		target, friend = &ms[0], f
	}
	if target == nil {
		return resolution{}, false, nil
	}

	lines := make([]Line, 0, len(vals)+1)
	for _, v := range vals {
		sub, err := resolve(t, friend, []types.Operand{v}, depth+1)
		if err != nil {
			return resolution{}, true, err
		}
		lines = append(lines, sub.lines...)
	}
	lines = append(lines, target.line())
	return resolution{lines: lines, friend: true}, true, nil
}

func ambiguous(m *isa.Mnemonic, vals []types.Value, ms []match) *Error {
	names := make([]string, len(ms))
	for i, x := range ms {
		names[i] = x.v.String()
	}
	return newError(AmbiguousInstruction, "%s with %s matches %s", m.Name, describe(vals), strings.Join(names, " | "))
}

func describe(vals []types.Value) string {
	if len(vals) == 0 {
		return "no operands"
	}
	kinds := make([]string, len(vals))
	for i, v := range vals {
		kinds[i] = v.Type()
	}
	noun := "operands"
	if len(vals) == 1 {
		noun = "operand"
	}
	return fmt.Sprintf("%d %s (%s)", len(vals), noun, strings.Join(kinds, ", "))
}

package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/psilLang/clara/pkg/types"
)

func TestParseLiteralWidths(t *testing.T) {
	tests := []struct {
		lit      string
		expected types.Value
	}{
		{"0", types.Int8(0)},
		{"127", types.Int8(127)},
		{"128", types.Int16(128)},
		{"-127", types.Int8(-127)},
		{"-128", types.Int16(-128)},
		{"32767", types.Int16(32767)},
		{"32768", types.Int32(32768)},
		{"70000", types.Int32(70000)},
		{"-70000", types.Int32(-70000)},
		{"0x10", types.Int8(16)},
		{"0xFFFF", types.Int32(0xFFFF)},
		{"4294967295", types.Int32(-1)},
		{"1.5", types.Float(1.5)},
		{"-0.25", types.Float(-0.25)},
		{"1e3", types.Float(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.lit, func(t *testing.T) {
			v, err := ParseLiteral(tt.lit)
			require.NoError(t, err)
			require.True(t, tt.expected.Equal(v), "expected %s %s, got %s %s", tt.expected.Type(), tt.expected, v.Type(), v)
		})
	}
}

func TestParseLiteralInvalid(t *testing.T) {
	for _, lit := range []string{"", "-", "12abc", "1.2.3", "--1", "0x", "1e40"} {
		t.Run(lit, func(t *testing.T) {
			_, err := ParseLiteral(lit)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidToken))
		})
	}
}

func TestParseLiteralOutOfRange(t *testing.T) {
	for _, lit := range []string{"99999999999", "-2147483649", "4294967296", "0x100000000"} {
		t.Run(lit, func(t *testing.T) {
			v, err := ParseLiteral(lit)
			require.Nil(t, v)
			require.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
			require.Contains(t, err.Error(), "range")
		})
	}

	_, err := Parse("push 99999999999")
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line     string
		expected []types.Operand
	}{
		{"push 1", []types.Operand{types.InstructionRef{Name: "push"}, types.Int8(1)}},
		{"  PUSH\t\t300  ", []types.Operand{types.InstructionRef{Name: "push"}, types.Int16(300)}},
		{"push 1, 2, 3", []types.Operand{
			types.InstructionRef{Name: "push"}, types.Int8(1),
			types.Repetition{}, types.Int8(2),
			types.Repetition{}, types.Int8(3),
		}},
		{"add 3,4", []types.Operand{
			types.InstructionRef{Name: "add"}, types.Int8(3), types.Repetition{}, types.Int8(4),
		}},
		{"jz 10", []types.Operand{types.InstructionRef{Name: "jnt"}, types.Int8(10)}},
		{"push -1.5", []types.Operand{types.InstructionRef{Name: "push"}, types.Float(-1.5)}},
		{"push 1 ; trailing comment", []types.Operand{types.InstructionRef{Name: "push"}, types.Int8(1)}},
		{"ret .end", []types.Operand{types.InstructionRef{Name: "ret"}}},
		{"push 1,", []types.Operand{types.InstructionRef{Name: "push"}, types.Int8(1), types.Repetition{}}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ops, err := Parse(tt.line)
			require.NoError(t, err)
			require.Len(t, ops, len(tt.expected))
			for i := range tt.expected {
				require.True(t, tt.expected[i].Equal(ops[i]), "operand %d: expected %s, got %s", i, tt.expected[i], ops[i])
			}
		})
	}
}

func TestParseBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "; only a comment"} {
		ops, err := Parse(line)
		require.NoError(t, err)
		require.Empty(t, ops)
	}
}

func TestParseDirectiveOnly(t *testing.T) {
	ops, err := Parse(".data 1 2 3")
	require.NoError(t, err)
	require.Empty(t, ops)

	name, ok := Directive("push 1 .Stack 4")
	require.True(t, ok)
	require.Equal(t, ".stack", name)

	_, ok = Directive("push 1")
	require.False(t, ok)
}

func TestParseBareDirective(t *testing.T) {
	_, err := Parse("push 1 .")
	require.True(t, errors.Is(err, ErrInvalidDirective))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		line  string
		err   error
		token string
	}{
		{"frob 1", ErrUnknownMnemonic, "frob"},
		{"push x", ErrUnknownMnemonic, "x"},
		{"push 12abc", ErrInvalidToken, "12abc"},
		{"push -", ErrInvalidToken, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			ops, err := Parse(tt.line)
			require.Nil(t, ops)
			require.True(t, errors.Is(err, tt.err), "got %v", err)
			var te *TokenError
			require.True(t, errors.As(err, &te))
			require.Equal(t, tt.token, te.Token)
		})
	}
}

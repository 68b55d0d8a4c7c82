// Package bytecode writes and reads RSCM binaries: a fixed header followed by
// a flat stream of (opcode, operand bytes...) records.
package bytecode

import (
	"strings"

	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/types"
)

// Record is one resolved instruction in output order.
type Record struct {
	Op       isa.Opcode
	Operands []types.Operand
}

// Size returns the encoded size of the record for a given opcode width.
func (r Record) Size(insnSize int) int {
	n := insnSize
	for _, op := range r.Operands {
		if v, ok := op.(types.Value); ok {
			n += v.Width()
		}
	}
	return n
}

// Equal compares opcode and operands.
func (r Record) Equal(o Record) bool {
	if r.Op != o.Op || len(r.Operands) != len(o.Operands) {
		return false
	}
	for i, op := range r.Operands {
		if !op.Equal(o.Operands[i]) {
			return false
		}
	}
	return true
}

func (r Record) String() string {
	if len(r.Operands) == 0 {
		return isa.OpName(r.Op)
	}
	parts := make([]string, len(r.Operands))
	for i, op := range r.Operands {
		parts[i] = op.String()
	}
	return isa.OpName(r.Op) + " " + strings.Join(parts, ", ")
}

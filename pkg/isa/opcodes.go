// Package isa describes the RSCM instruction set: opcode ids, the operand
// slots of every opcode variant, mnemonics and the friend map used to feed
// stack-operand opcodes.
package isa

import "fmt"

// Opcode is the id written to the output stream.
type Opcode uint16

// Opcodes are numbered in table order; the numbering is part of the
// binary format.
const (
	OpNop    Opcode = iota // no operation
	OpBreak                // breakpoint
	OpThrow                // [imm8] raise exception
	OpPushN                // push null
	OpPushB                // [imm8] push byte
	OpPushW                // [imm16] push word
	OpPushD                // [imm32] push dword
	OpPushF                // [float32] push float
	OpPushAB               // push byte array
	OpPushAW               // push word array
	OpPushAD               // push dword array
	OpPushAF               // push float array
	OpPushS                // [string32] push string
	OpPop                  // [imm8] pop n values
	OpPopLN                // [local8] pop into local
	OpPopL                 // [local16] pop into local
	OpPopLE                // [local32] pop into local
	OpPopV                 // [global16] pop into global
	OpPopVE                // [global32] pop into global
	OpSwap                 // a b -- b a
	OpDup                  // a -- a a
	OpDupE                 // [imm8] duplicate n values
	OpLocal                // n -- local
	OpGlobal               // n -- global
	OpArray                // [imm8] n -- array
	OpExf                  // external function
	OpInc                  // a -- a+1
	OpDec                  // a -- a-1
	OpAdd                  // a b -- a+b
	OpSub                  // a b -- a-b
	OpMul                  // a b -- a*b
	OpDiv                  // a b -- a/b
	OpMod                  // a b -- a%b
	OpAnd                  // a b -- a&b
	OpOr                   // a b -- a|b
	OpXor                  // a b -- a^b
	OpShl                  // a b -- a<<b
	OpShr                  // a b -- a>>b
	OpNeg                  // a -- -a
	OpNot                  // a -- ^a
	OpToI                  // f -- int
	OpToF                  // i -- float
	OpCmpNN                // a -- (a!=null)
	OpCmpE                 // a b -- (a==b)
	OpCmpNE                // a b -- (a!=b)
	OpCmpGE                // a b -- (a>=b)
	OpCmpLE                // a b -- (a<=b)
	OpCmpG                 // a b -- (a>b)
	OpCmpL                 // a b -- (a<b)
	OpIf                   // conditional block
	OpEval                 // [imm8] evaluate n conditions
	OpJt                   // [imm32] jump if true
	OpJnt                  // [imm32] jump if not true
	OpJmp                  // addr -- jump
	OpJmpA                 // [imm32] jump absolute
	OpSwitch               // [imm16][imm32] switch table
	OpRSwitch              // [imm16][imm32] range switch table
	OpCall                 // addr -- call
	OpCallA                // [imm32] call absolute
	OpEnter                // [imm8] reserve locals
	OpRet                  // return

	NumOpcodes
)

// InvalidOpcode marks an instruction whose opcode is not yet fixed.
const InvalidOpcode Opcode = 0xFFFF

var opNames = [NumOpcodes]string{
	"nop", "break", "throw",
	"pushn", "pushb", "pushw", "pushd", "pushf",
	"pushab", "pushaw", "pushad", "pushaf", "pushs",
	"pop", "popln", "popl", "pople", "popv", "popve",
	"swap", "dup", "dupe",
	"local", "global", "array",
	"exf", "inc", "dec",
	"add", "sub", "mul", "div", "mod",
	"and", "or", "xor", "shl", "shr", "neg", "not",
	"toi", "tof",
	"cmpnn", "cmpe", "cmpne", "cmpge", "cmple", "cmpg", "cmpl",
	"if", "eval", "jt", "jnt", "jmp", "jmpa",
	"sw", "rsw", "call", "calla", "enter", "ret",
}

// OpName returns the name of an opcode for debugging
func OpName(op Opcode) string {
	if op < NumOpcodes {
		return opNames[op]
	}
	if op == InvalidOpcode {
		return "invalid"
	}
	return fmt.Sprintf("?%04X", uint16(op))
}

func (op Opcode) String() string { return OpName(op) }

// Valid reports whether op names a real opcode.
func (op Opcode) Valid() bool { return op < NumOpcodes }

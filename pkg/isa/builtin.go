package isa

import "github.com/psilLang/clara/pkg/types"

// variants holds the operand slots of every opcode:
// {opcode, minParams, params, defaults}
var variants = []Variant{
	{Op: OpNop},
	{Op: OpBreak},
	{Op: OpThrow, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpPushN},
	{Op: OpPushB, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpPushW, MinParams: 1, Params: []types.Kind{types.Imm16}},
	{Op: OpPushD, MinParams: 1, Params: []types.Kind{types.Imm32}},
	{Op: OpPushF, MinParams: 1, Params: []types.Kind{types.Float32}},
	{Op: OpPushAB},
	{Op: OpPushAW},
	{Op: OpPushAD},
	{Op: OpPushAF},
	{Op: OpPushS, MinParams: 1, Params: []types.Kind{types.String32}},
	{Op: OpPop, Params: []types.Kind{types.Imm8}, Defaults: []string{"1"}},
	{Op: OpPopLN, MinParams: 1, Params: []types.Kind{types.Local8}},
	{Op: OpPopL, MinParams: 1, Params: []types.Kind{types.Local16}},
	{Op: OpPopLE, MinParams: 1, Params: []types.Kind{types.Local32}},
	{Op: OpPopV, MinParams: 1, Params: []types.Kind{types.Global16}},
	{Op: OpPopVE, MinParams: 1, Params: []types.Kind{types.Global32}},
	{Op: OpSwap},
	{Op: OpDup},
	{Op: OpDupE, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpLocal},
	{Op: OpGlobal},
	{Op: OpArray, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpExf},
	{Op: OpInc},
	{Op: OpDec},
	{Op: OpAdd},
	{Op: OpSub},
	{Op: OpMul},
	{Op: OpDiv},
	{Op: OpMod},
	{Op: OpAnd},
	{Op: OpOr},
	{Op: OpXor},
	{Op: OpShl},
	{Op: OpShr},
	{Op: OpNeg},
	{Op: OpNot},
	{Op: OpToI},
	{Op: OpToF},
	{Op: OpCmpNN},
	{Op: OpCmpE},
	{Op: OpCmpNE},
	{Op: OpCmpGE},
	{Op: OpCmpLE},
	{Op: OpCmpG},
	{Op: OpCmpL},
	{Op: OpIf},
	{Op: OpEval, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpJt, MinParams: 1, Params: []types.Kind{types.Imm32}},
	{Op: OpJnt, MinParams: 1, Params: []types.Kind{types.Imm32}},
	{Op: OpJmp},
	{Op: OpJmpA, MinParams: 1, Params: []types.Kind{types.Imm32}},
	{Op: OpSwitch, MinParams: 2, Params: []types.Kind{types.Imm16, types.Imm32}},
	{Op: OpRSwitch, MinParams: 2, Params: []types.Kind{types.Imm16, types.Imm32}},
	{Op: OpCall},
	{Op: OpCallA, MinParams: 1, Params: []types.Kind{types.Imm32}},
	{Op: OpEnter, MinParams: 1, Params: []types.Kind{types.Imm8}},
	{Op: OpRet},
}

var mnemonics = []Mnemonic{
	{"nop", []Opcode{OpNop}},
	{"break", []Opcode{OpBreak}},
	{"throw", []Opcode{OpThrow}},
	{"push", []Opcode{OpPushN, OpPushB, OpPushW, OpPushD, OpPushF, OpPushS}},
	{"pushab", []Opcode{OpPushAB}},
	{"pushaw", []Opcode{OpPushAW}},
	{"pushad", []Opcode{OpPushAD}},
	{"pushaf", []Opcode{OpPushAF}},
	{"pop", []Opcode{OpPop, OpPopLN, OpPopL, OpPopLE, OpPopV, OpPopVE}},
	{"swap", []Opcode{OpSwap}},
	{"dup", []Opcode{OpDup, OpDupE}},
	{"local", []Opcode{OpLocal}},
	{"global", []Opcode{OpGlobal}},
	{"array", []Opcode{OpArray}},
	{"exf", []Opcode{OpExf}},
	{"inc", []Opcode{OpInc}},
	{"dec", []Opcode{OpDec}},
	{"add", []Opcode{OpAdd}},
	{"sub", []Opcode{OpSub}},
	{"mul", []Opcode{OpMul}},
	{"div", []Opcode{OpDiv}},
	{"mod", []Opcode{OpMod}},
	{"and", []Opcode{OpAnd}},
	{"or", []Opcode{OpOr}},
	{"xor", []Opcode{OpXor}},
	{"shl", []Opcode{OpShl}},
	{"shr", []Opcode{OpShr}},
	{"neg", []Opcode{OpNeg}},
	{"not", []Opcode{OpNot}},
	{"toi", []Opcode{OpToI}},
	{"tof", []Opcode{OpToF}},
	{"cmpnn", []Opcode{OpCmpNN}},
	{"cmpe", []Opcode{OpCmpE}},
	{"cmpne", []Opcode{OpCmpNE}},
	{"cmpge", []Opcode{OpCmpGE}},
	{"cmple", []Opcode{OpCmpLE}},
	{"cmpg", []Opcode{OpCmpG}},
	{"cmpl", []Opcode{OpCmpL}},
	{"if", []Opcode{OpIf}},
	{"eval", []Opcode{OpEval}},
	{"jt", []Opcode{OpJt}},
	{"jnt", []Opcode{OpJnt}},
	{"jmp", []Opcode{OpJmp, OpJmpA}},
	{"switch", []Opcode{OpSwitch}},
	{"rswitch", []Opcode{OpRSwitch}},
	{"call", []Opcode{OpCall, OpCallA}},
	{"enter", []Opcode{OpEnter}},
	{"ret", []Opcode{OpRet}},
}

var aliases = map[string]string{
	"loc":    "local",
	"glob":   "global",
	"arr":    "array",
	"jnz":    "jt",
	"jz":     "jnt",
	"jump":   "jmp",
	"goto":   "jmp",
	"sw":     "switch",
	"rsw":    "rswitch",
	"return": "ret",
}

// friends lists opcodes whose operands come from the value stack; supplied
// operands are pushed with the friend mnemonic first.
var friends = map[Opcode]string{
	OpPushAB: "push",
	OpPushAW: "push",
	OpPushAD: "push",
	OpPushAF: "push",
	OpSwap:   "push",
	OpLocal:  "push",
	OpGlobal: "push",
	OpArray:  "push",
	OpInc:    "push",
	OpDec:    "push",
	OpAdd:    "push",
	OpSub:    "push",
	OpMul:    "push",
	OpDiv:    "push",
	OpMod:    "push",
	OpAnd:    "push",
	OpOr:     "push",
	OpXor:    "push",
	OpShl:    "push",
	OpShr:    "push",
	OpNeg:    "push",
	OpNot:    "push",
	OpToI:    "push",
	OpToF:    "push",
	OpCmpNN:  "push",
	OpCmpE:   "push",
	OpCmpNE:  "push",
	OpCmpGE:  "push",
	OpCmpLE:  "push",
	OpCmpG:   "push",
	OpCmpL:   "push",
	OpJmp:    "push",
	OpCall:   "push",
}

var builtin = MustTable(variants, mnemonics, aliases, friends)

// Default returns the built-in RSCM instruction table.
func Default() *Table { return builtin }

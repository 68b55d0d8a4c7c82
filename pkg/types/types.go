// Package types defines the operand model shared by the parser, resolver and encoder.
// Every token of an assembly line becomes an Operand.
package types

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Operand is the interface all parsed tokens implement.
// The set of implementations is closed to this package.
type Operand interface {
	// String returns the assembly form of the operand
	String() string
	// Type returns the type name for error messages
	Type() string
	// Equal checks equality with another operand
	Equal(other Operand) bool

	operand()
}

// Value is an operand that can be written to the output stream.
type Value interface {
	Operand
	// Role is the matching class of the value
	Role() Role
	// Width is the encoded size in bytes
	Width() int
	// Bytes returns the little-endian encoding at Width bytes
	Bytes() []byte
}

// Role classifies values and parameter slots for matching.
type Role uint8

const (
	RoleNone Role = iota
	RoleInt
	RoleFloat
	RoleLocal
	RoleGlobal
	RoleString
)

func (r Role) String() string {
	switch r {
	case RoleInt:
		return "int"
	case RoleFloat:
		return "float"
	case RoleLocal:
		return "local"
	case RoleGlobal:
		return "global"
	case RoleString:
		return "string"
	}
	return "none"
}

// Kind is a declared parameter slot of an instruction variant.
type Kind uint8

const (
	KindNone Kind = iota
	Imm8
	Imm16
	Imm32
	Float32
	Local8
	Local16
	Local32
	Global16
	Global32
	String32
)

var kindNames = [...]string{
	KindNone: "none",
	Imm8:     "imm8",
	Imm16:    "imm16",
	Imm32:    "imm32",
	Float32:  "float32",
	Local8:   "local8",
	Local16:  "local16",
	Local32:  "local32",
	Global16: "global16",
	Global32: "global32",
	String32: "string32",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Width returns the slot size in bytes.
func (k Kind) Width() int {
	switch k {
	case Imm8, Local8:
		return 1
	case Imm16, Local16, Global16:
		return 2
	case Imm32, Float32, Local32, Global32, String32:
		return 4
	}
	return 0
}

// Role returns the matching class of the slot.
func (k Kind) Role() Role {
	switch k {
	case Imm8, Imm16, Imm32:
		return RoleInt
	case Float32:
		return RoleFloat
	case Local8, Local16, Local32:
		return RoleLocal
	case Global16, Global32:
		return RoleGlobal
	case String32:
		return RoleString
	}
	return RoleNone
}

// Int8 is a one byte signed immediate
type Int8 int8

func (v Int8) String() string { return fmt.Sprintf("%d", int8(v)) }
func (v Int8) Type() string   { return "int8" }
func (v Int8) Role() Role     { return RoleInt }
func (v Int8) Width() int     { return 1 }
func (v Int8) Bytes() []byte  { return []byte{byte(v)} }
func (Int8) operand()         {}

func (v Int8) Equal(other Operand) bool {
	o, ok := other.(Int8)
	return ok && v == o
}

// Int16 is a two byte signed immediate
type Int16 int16

func (v Int16) String() string { return fmt.Sprintf("%d", int16(v)) }
func (v Int16) Type() string   { return "int16" }
func (v Int16) Role() Role     { return RoleInt }
func (v Int16) Width() int     { return 2 }
func (Int16) operand()         {}

func (v Int16) Bytes() []byte {
	return binary.LittleEndian.AppendUint16(nil, uint16(v))
}

func (v Int16) Equal(other Operand) bool {
	o, ok := other.(Int16)
	return ok && v == o
}

// Int32 is a four byte signed immediate. Unsigned literals above
// math.MaxInt32 keep their bit pattern.
type Int32 int32

func (v Int32) String() string { return fmt.Sprintf("%d", int32(v)) }
func (v Int32) Type() string   { return "int32" }
func (v Int32) Role() Role     { return RoleInt }
func (v Int32) Width() int     { return 4 }
func (Int32) operand()         {}

func (v Int32) Bytes() []byte {
	return binary.LittleEndian.AppendUint32(nil, uint32(v))
}

func (v Int32) Equal(other Operand) bool {
	o, ok := other.(Int32)
	return ok && v == o
}

// Float is a 32-bit floating point immediate
type Float float32

func (v Float) String() string { return fmt.Sprintf("%g", float32(v)) }
func (v Float) Type() string   { return "float32" }
func (v Float) Role() Role     { return RoleFloat }
func (v Float) Width() int     { return 4 }
func (Float) operand()         {}

func (v Float) Bytes() []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(float32(v)))
}

func (v Float) Equal(other Operand) bool {
	o, ok := other.(Float)
	return ok && v == o
}

// Local references a local variable slot
type Local struct {
	Size  int // 1, 2 or 4 bytes
	Index uint32
}

func (l Local) String() string { return fmt.Sprintf("local%d[%d]", l.Size*8, l.Index) }
func (l Local) Type() string   { return "local" }
func (l Local) Role() Role     { return RoleLocal }
func (l Local) Width() int     { return l.Size }
func (l Local) Bytes() []byte  { return putUint(l.Index, l.Size) }
func (Local) operand()         {}

func (l Local) Equal(other Operand) bool {
	o, ok := other.(Local)
	return ok && l == o
}

// Global references a global variable slot
type Global struct {
	Size  int // 2 or 4 bytes
	Index uint32
}

func (g Global) String() string { return fmt.Sprintf("global%d[%d]", g.Size*8, g.Index) }
func (g Global) Type() string   { return "global" }
func (g Global) Role() Role     { return RoleGlobal }
func (g Global) Width() int     { return g.Size }
func (g Global) Bytes() []byte  { return putUint(g.Index, g.Size) }
func (Global) operand()         {}

func (g Global) Equal(other Operand) bool {
	o, ok := other.(Global)
	return ok && g == o
}

// StringRef is an offset into the string segment
type StringRef uint32

func (s StringRef) String() string { return fmt.Sprintf("str[%d]", uint32(s)) }
func (s StringRef) Type() string   { return "string" }
func (s StringRef) Role() Role     { return RoleString }
func (s StringRef) Width() int     { return 4 }
func (s StringRef) Bytes() []byte  { return putUint(uint32(s), 4) }
func (StringRef) operand()         {}

func (s StringRef) Equal(other Operand) bool {
	o, ok := other.(StringRef)
	return ok && s == o
}

// InstructionRef is a mnemonic token. Name is the canonical lower-case mnemonic.
type InstructionRef struct {
	Name string
}

func (r InstructionRef) String() string { return r.Name }
func (r InstructionRef) Type() string   { return "instruction" }
func (InstructionRef) operand()         {}

func (r InstructionRef) Equal(other Operand) bool {
	o, ok := other.(InstructionRef)
	return ok && r == o
}

// Repetition is the comma token
type Repetition struct{}

func (Repetition) String() string { return "," }
func (Repetition) Type() string   { return "repetition" }
func (Repetition) operand()       {}

func (Repetition) Equal(other Operand) bool {
	_, ok := other.(Repetition)
	return ok
}

func putUint(v uint32, size int) []byte {
	switch size {
	case 1:
		return []byte{byte(v)}
	case 2:
		return binary.LittleEndian.AppendUint16(nil, uint16(v))
	}
	return binary.LittleEndian.AppendUint32(nil, v)
}

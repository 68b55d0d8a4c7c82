package bytecode

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/isa"
	"github.com/psilLang/clara/pkg/types"
)

// Decode reads a binary back into its header and records. Operand widths come
// from the declared parameters of each opcode in table.
func Decode(r io.Reader, table *isa.Table) (Header, []Record, error) {
	br := bufio.NewReader(r)
	h, err := ReadHeader(br)
	if err != nil {
		return h, nil, err
	}

	switch h.InstructionSize {
	case 1, 2, 4:
	default:
		return h, nil, errors.Errorf("unsupported instruction size %d", h.InstructionSize)
	}

	var records []Record
	opBuf := make([]byte, h.InstructionSize)
	offset := HeaderSize
	for {
		if _, err := io.ReadFull(br, opBuf); err != nil {
			if err == io.EOF {
				return h, records, nil
			}
			return h, records, errors.Wrapf(err, "opcode at %#04x", offset)
		}

		op := isa.Opcode(readUint(opBuf))
		v, ok := table.Variant(op)
		if !ok {
			return h, records, errors.Errorf("unknown opcode %#x at %#04x", uint32(op), offset)
		}

		rec := Record{Op: op}
		for _, k := range v.Params {
			buf := make([]byte, k.Width())
			if _, err := io.ReadFull(br, buf); err != nil {
				return h, records, errors.Wrapf(err, "%s operand at %#04x", v.Name(), offset)
			}
			rec.Operands = append(rec.Operands, decodeValue(k, buf))
		}
		records = append(records, rec)
		offset += rec.Size(int(h.InstructionSize))
	}
}

func decodeValue(k types.Kind, buf []byte) types.Value {
	n := readUint(buf)
	switch k {
	case types.Imm8:
		return types.Int8(n)
	case types.Imm16:
		return types.Int16(n)
	case types.Imm32:
		return types.Int32(n)
	case types.Float32:
		return types.Float(math.Float32frombits(n))
	case types.Local8, types.Local16, types.Local32:
		return types.Local{Size: k.Width(), Index: n}
	case types.Global16, types.Global32:
		return types.Global{Size: k.Width(), Index: n}
	}
	return types.StringRef(n)
}

func readUint(buf []byte) uint32 {
	switch len(buf) {
	case 1:
		return uint32(buf[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(buf))
	}
	return binary.LittleEndian.Uint32(buf)
}

// Disassemble renders records as text, one per line with its file offset.
func Disassemble(h Header, records []Record) string {
	var sb strings.Builder
	pc := HeaderSize
	for _, r := range records {
		sb.WriteString(fmt.Sprintf("%04X: %s\n", pc, r))
		pc += r.Size(int(h.InstructionSize))
	}
	return sb.String()
}

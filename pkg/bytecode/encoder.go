package bytecode

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/psilLang/clara/pkg/types"
)

// Encoder serializes records after a header. The output is append-only and
// the first write failure sticks: every later Encode returns it unchanged.
type Encoder struct {
	out         io.Writer
	header      Header
	wroteHeader bool
	records     int
	written     int64
	err         error
}

// NewEncoder creates an encoder writing to w.
func NewEncoder(w io.Writer, h Header) *Encoder {
	return &Encoder{out: w, header: h}
}

// Encode writes the header on first use and then every record in order:
// the opcode in Header.InstructionSize bytes followed by each operand at its
// finalized width. It panics if a record carries an operand that has no
// encoding; the resolver never produces one.
func (e *Encoder) Encode(records []Record) error {
	switch e.header.InstructionSize {
	case 1, 2, 4:
	default:
		return errors.Errorf("unsupported instruction size %d", e.header.InstructionSize)
	}

	if e.err != nil {
		return e.err
	}

	if !e.wroteHeader {
		var hdr bytes.Buffer
		if _, err := e.header.WriteTo(&hdr); err != nil {
			return err
		}
		if !e.emit(hdr.Bytes()) {
			return e.err
		}
		e.wroteHeader = true
	}

	buf := make([]byte, 0, 16)
	for _, r := range records {
		buf = e.appendRecord(buf[:0], r)
		if !e.emit(buf) {
			return e.err
		}
		e.records++
	}
	return nil
}

// emit writes p and records a failure, including a short write.
func (e *Encoder) emit(p []byte) bool {
	n, err := e.out.Write(p)
	e.written += int64(n)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		e.err = errors.Wrapf(err, "write record %d", e.records)
		return false
	}
	return true
}

func (e *Encoder) appendRecord(buf []byte, r Record) []byte {
	switch e.header.InstructionSize {
	case 1:
		buf = append(buf, byte(r.Op))
	case 2:
		buf = binary.LittleEndian.AppendUint16(buf, uint16(r.Op))
	case 4:
		buf = binary.LittleEndian.AppendUint32(buf, uint32(r.Op))
	}
	for _, op := range r.Operands {
		v, ok := op.(types.Value)
		if !ok {
			panic(fmt.Sprintf("bytecode: %s operand %q in %s has no encoding", op.Type(), op, r.Op))
		}
		buf = append(buf, v.Bytes()...)
	}
	return buf
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 { return e.written }

// Records returns the number of records written so far.
func (e *Encoder) Records() int { return e.records }

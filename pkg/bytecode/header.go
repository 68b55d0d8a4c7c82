package bytecode

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// The signature and architecture of loaded scripts must match or the file is
// considered invalid.
const (
	Signature    uint32 = 0x00434C45 // "CLE"
	Architecture uint32 = 0x5253434D // "RSCM", reduced instruction SCM
)

// Format version written by this package and the newest one it reads.
const (
	VersionMajor = 1
	VersionMinor = 0
)

// HeaderSize is the packed size of Header in bytes.
const HeaderSize = 27

// ErrInvalidHeader is returned when a header fails validation.
var ErrInvalidHeader = errors.New("invalid header")

// Header is the fixed preamble of every binary. Fields are written packed and
// little-endian in declaration order.
type Header struct {
	Signature    uint32
	Architecture uint32

	// Version packs the minor version in the low nibble and the major
	// version in the high nibble.
	Version           uint8
	InstructionSize   uint8  // bytes per opcode
	IntegerSize       uint8
	NumGlobals        uint32 // global space to reserve
	GlobalsOffset     uint32
	StackSize         uint32 // stack space needed in total
	StringSegmentSize uint32
}

// NewHeader returns a header with the current version and default layout.
func NewHeader() Header {
	return Header{
		Signature:       Signature,
		Architecture:    Architecture,
		Version:         PackVersion(VersionMajor, VersionMinor),
		InstructionSize: 1,
		IntegerSize:     4,
	}
}

// PackVersion combines a major and minor version into one byte.
func PackVersion(major, minor uint8) uint8 {
	return major<<4 | minor&0x0F
}

// Major returns the major format version.
func (h Header) Major() uint8 { return h.Version >> 4 }

// Minor returns the minor format version.
func (h Header) Minor() uint8 { return h.Version & 0x0F }

// Validate reports whether the header was written by a compatible assembler:
// signature and architecture match and the version is not newer than ours.
func (h Header) Validate() bool {
	if h.Signature != Signature || h.Architecture != Architecture {
		return false
	}
	if h.Major() != VersionMajor {
		return h.Major() < VersionMajor
	}
	return h.Minor() <= VersionMinor
}

// WriteTo writes the packed header.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return 0, errors.Wrap(err, "write header")
	}
	return HeaderSize, nil
}

// ReadHeader loads and validates a header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return h, errors.Wrap(err, "read header")
	}
	if !h.Validate() {
		return h, errors.Wrapf(ErrInvalidHeader, "signature %#08x, architecture %#08x, version %d.%d",
			h.Signature, h.Architecture, h.Major(), h.Minor())
	}
	return h, nil
}

package section

import (
	"encoding/binary"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
)

// EncapsulationHeader is the 4-byte prefix of every top-level CDR message.
type EncapsulationHeader struct {
	// Representation selects the encoding of the body. byte offset 0-1
	Representation format.Representation
	// Options is reserved; it is carried through decode and re-encode unchanged. byte offset 2-3
	Options uint16
}

// NewEncapsulationHeader returns a plain CDR header for the given byte order
// with zero options.
func NewEncapsulationHeader(littleEndian bool) EncapsulationHeader {
	if littleEndian {
		return EncapsulationHeader{Representation: format.RepresentationCDRLE}
	}

	return EncapsulationHeader{Representation: format.RepresentationCDRBE}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 4 bytes)
//
// Returns:
//   - error: malformed ErrInvalidHeaderSize if data is not 4 bytes, or unsupported
//     ErrUnknownRepresentation if the representation is not plain CDR
func (h *EncapsulationHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.Malformed("read header", 0, errs.ErrInvalidHeaderSize)
	}

	// The identifier and options are always big-endian, independent of the
	// byte order they select for the body.
	rep := format.Representation(binary.BigEndian.Uint16(data[representationOffset:]))
	if !rep.IsSupported() {
		return errs.Unsupported("read header", errs.ErrUnknownRepresentation)
	}

	h.Representation = rep
	h.Options = binary.BigEndian.Uint16(data[optionsOffset:])

	return nil
}

// Bytes serializes the header into a new 4-byte slice.
func (h EncapsulationHeader) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the serialized header to b and returns the extended slice.
func (h EncapsulationHeader) AppendTo(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, uint16(h.Representation))
	b = binary.BigEndian.AppendUint16(b, h.Options)

	return b
}

// PutTo writes the serialized header into the first 4 bytes of b.
// b must be at least HeaderSize bytes long.
func (h EncapsulationHeader) PutTo(b []byte) {
	binary.BigEndian.PutUint16(b[representationOffset:], uint16(h.Representation))
	binary.BigEndian.PutUint16(b[optionsOffset:], h.Options)
}

// IsLittleEndian reports whether the body is little-endian.
func (h EncapsulationHeader) IsLittleEndian() bool {
	return h.Representation.IsLittleEndian()
}

// GetEndianEngine returns the byte-order engine selected by the header.
func (h EncapsulationHeader) GetEndianEngine() endian.EndianEngine {
	return endian.ForLittleEndian(h.IsLittleEndian())
}

// ParseEncapsulationHeader parses the header at the start of a message.
//
// Parameters:
//   - data: Message bytes (must be at least 4 bytes)
//
// Returns:
//   - EncapsulationHeader: Parsed header
//   - []byte: The message body following the header
//   - error: invalid argument for empty input, malformed for fewer than 4 bytes,
//     or unsupported for an unknown representation
func ParseEncapsulationHeader(data []byte) (EncapsulationHeader, []byte, error) {
	if len(data) == 0 {
		return EncapsulationHeader{}, nil, errs.InvalidArgument("read header", errs.ErrEmptyInput)
	}

	if len(data) < HeaderSize {
		return EncapsulationHeader{}, nil, errs.Malformed("read header", 0, errs.ErrTruncated)
	}

	h := EncapsulationHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return EncapsulationHeader{}, nil, err
	}

	return h, data[HeaderSize:], nil
}

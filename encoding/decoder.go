package encoding

import (
	"math"
	"unicode/utf8"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/options"
	"github.com/arloliu/cdr/section"
)

// Decoder reads CDR primitives, strings and sequences from a read-only buffer.
//
// Every read aligns relative to the start of the body, range-checks before
// touching any byte, and returns a classified error instead of panicking, so
// a Decoder is safe to run on untrusted input. A Decoder owns one cursor and
// must not be shared between goroutines; independent Decoders over the same
// buffer may run in parallel.
type Decoder struct {
	body      []byte
	cur       Cursor
	engine    endian.EndianEngine
	native    bool
	header    section.EncapsulationHeader
	maxLength int
}

// NewDecoder parses the encapsulation header at the start of data and returns
// a Decoder positioned at the first body byte.
//
// With WithoutHeader, data is taken as a bare body whose byte order comes from
// WithLittleEndian or WithBigEndian.
//
// Parameters:
//   - data: Encoded message (not copied; must stay unmodified while decoding)
//   - opts: Optional configuration (WithMaxLength, WithoutHeader, ...)
//
// Returns:
//   - *Decoder: Decoder positioned after the header
//   - error: invalid argument for empty input, malformed for a short header,
//     unsupported for an unknown representation
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	header := cfg.header
	body := data
	if !cfg.noHeader {
		var err error
		header, body, err = section.ParseEncapsulationHeader(data)
		if err != nil {
			return nil, err
		}
	}

	d := NewBodyDecoder(body, header.GetEndianEngine())
	d.header = header
	d.maxLength = cfg.maxLength

	return d, nil
}

// NewBodyDecoder returns a Decoder over a headerless body in the given byte order.
func NewBodyDecoder(body []byte, engine endian.EndianEngine) *Decoder {
	return &Decoder{
		body:   body,
		cur:    NewCursor(len(body)),
		engine: engine,
		native: endian.CompareNativeEndian(engine),
		header: section.NewEncapsulationHeader(endian.IsLittleEndian(engine)),
	}
}

// Header returns the encapsulation header the message was decoded with.
func (d *Decoder) Header() section.EncapsulationHeader {
	return d.header
}

// EndianEngine returns the byte order of the body.
func (d *Decoder) EndianEngine() endian.EndianEngine {
	return d.engine
}

// Offset returns the current body offset.
func (d *Decoder) Offset() int {
	return d.cur.Offset()
}

// Remaining returns the number of unread body bytes.
func (d *Decoder) Remaining() int {
	return d.cur.Remaining()
}

func (d *Decoder) next(width int) ([]byte, error) {
	start, err := d.cur.Next(Alignment(width), width)
	if err != nil {
		return nil, err
	}

	return d.body[start : start+width], nil
}

// ReadBool reads one octet that must be 0 or 1.
func (d *Decoder) ReadBool() (bool, error) {
	offset := d.cur.Offset()
	b, err := d.next(1)
	if err != nil {
		return false, err
	}

	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errs.Malformed("read bool", offset, errs.ErrInvalidBool)
	}
}

// ReadInt8 reads a signed octet.
func (d *Decoder) ReadInt8() (int8, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

// ReadUint8 reads an octet.
func (d *Decoder) ReadUint8() (uint8, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadInt16 reads a 2-byte aligned int16.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads a 2-byte aligned uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.next(2)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint16(b), nil
}

// ReadInt32 reads a 4-byte aligned int32.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a 4-byte aligned uint32.
func (d *Decoder) ReadUint32() (uint32, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint32(b), nil
}

// ReadInt64 reads an 8-byte aligned int64.
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads an 8-byte aligned uint64.
func (d *Decoder) ReadUint64() (uint64, error) {
	b, err := d.next(8)
	if err != nil {
		return 0, err
	}

	return d.engine.Uint64(b), nil
}

// ReadFloat32 reads a 4-byte aligned IEEE 754 float32.
func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an 8-byte aligned IEEE 754 float64.
func (d *Decoder) ReadFloat64() (float64, error) {
	v, err := d.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadLength reads a uint32 count prefix and checks that count elements of at
// least minWidth bytes each can still fit in the remaining body. The check
// runs before any allocation, so a hostile prefix cannot trigger a huge one.
//
// Parameters:
//   - minWidth: Lower bound on the encoded size of one element (at least 1)
//
// Returns:
//   - int: The element count
//   - error: malformed ErrLengthOverflow or ErrLengthLimit
func (d *Decoder) ReadLength(minWidth int) (int, error) {
	offset := d.cur.Offset()
	n, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}

	if d.maxLength > 0 && uint64(n) > uint64(d.maxLength) {
		return 0, errs.Malformed("read length", offset, errs.ErrLengthLimit)
	}

	if minWidth < 1 {
		minWidth = 1
	}
	if uint64(n)*uint64(minWidth) > uint64(d.cur.Remaining()) {
		return 0, errs.Malformed("read length", offset, errs.ErrLengthOverflow)
	}

	return int(n), nil
}

// ReadString reads a length-prefixed, NUL-terminated UTF-8 string.
//
// The length counts the terminator. A length of 0 is accepted as the empty
// string because some writers emit it; every other length must end in a NUL
// and the bytes before it must be valid UTF-8.
//
// Returns:
//   - string: The decoded string (copied out of the buffer)
//   - error: malformed ErrTruncated, ErrLengthOverflow, ErrMissingTerminator or ErrInvalidUTF8
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadLength(1)
	if err != nil {
		return "", err
	}

	if n == 0 {
		return "", nil
	}

	offset := d.cur.Offset()
	b, err := d.readRaw(n)
	if err != nil {
		return "", err
	}

	if b[n-1] != 0 {
		return "", errs.Malformed("read string", offset, errs.ErrMissingTerminator)
	}

	b = b[:n-1]
	if !utf8.Valid(b) {
		return "", errs.Malformed("read string", offset, errs.ErrInvalidUTF8)
	}

	return string(b), nil
}

// ReadBytes reads a sequence<octet> and returns a copy of its contents.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLength(1)
	if err != nil {
		return nil, err
	}

	b, err := d.readRaw(n)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	out := make([]byte, n)
	copy(out, b)

	return out, nil
}

// readRaw reserves n unaligned bytes and returns a view into the body.
func (d *Decoder) readRaw(n int) ([]byte, error) {
	start, err := d.cur.Next(1, n)
	if err != nil {
		return nil, err
	}

	return d.body[start : start+n], nil
}

package encoding

import (
	"math"
	"unicode/utf8"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/options"
	"github.com/arloliu/cdr/internal/pool"
	"github.com/arloliu/cdr/section"
)

type encoderMode uint8

const (
	modeGrow  encoderMode = iota // append to a pooled, growable buffer
	modeFixed                    // write into a caller-supplied buffer
	modeSize                     // count bytes only
)

// Encoder writes CDR primitives, strings and sequences.
//
// An Encoder runs in one of three modes:
//   - NewEncoder: appends to a pooled buffer that grows as needed
//   - NewSizer: writes nothing and only accumulates the encoded size
//   - NewFixedEncoder: writes into a caller-supplied buffer; once the buffer is
//     full it keeps counting, so Err reports the exact size that was required
//
// Write methods do not return errors. The first failure is kept and reported
// by Err, which callers check once after a whole message has been written.
// Padding bytes are always written as zero.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	mode      encoderMode
	buf       *pool.ByteBuffer
	dst       []byte
	hdrLen    int
	pos       int // body offset; alignment origin
	engine    endian.EndianEngine
	native    bool
	header    section.EncapsulationHeader
	err       error
	truncated bool
}

func newEncoder(mode encoderMode, opts []Option) (*Encoder, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	engine := cfg.EndianEngine()
	e := &Encoder{
		mode:   mode,
		engine: engine,
		native: endian.CompareNativeEndian(engine),
		header: cfg.header,
	}
	if !cfg.noHeader {
		e.hdrLen = section.HeaderSize
	}

	return e, nil
}

// NewEncoder creates a growable Encoder backed by a pooled buffer.
//
// The encapsulation header is written immediately unless WithoutHeader is given.
// Call Finish when the bytes are no longer needed to return the buffer to the pool.
//
// Parameters:
//   - opts: Optional configuration (WithBigEndian, WithOptions, WithoutHeader, ...)
//
// Returns:
//   - *Encoder: Encoder ready for writing
//   - error: Configuration error if invalid options provided
func NewEncoder(opts ...Option) (*Encoder, error) {
	e, err := newEncoder(modeGrow, opts)
	if err != nil {
		return nil, err
	}

	e.buf = pool.GetMessageBuffer()
	if e.hdrLen > 0 {
		e.buf.B = e.header.AppendTo(e.buf.B)
	}

	return e, nil
}

// NewSizer creates an Encoder in size-query mode. It allocates nothing for
// the message and cannot fail; Len reports the encoded size once the message
// has been written.
func NewSizer(opts ...Option) (*Encoder, error) {
	return newEncoder(modeSize, opts)
}

// NewFixedEncoder creates an Encoder that writes into dst.
//
// dst is used from index 0 and never grown. When the message does not fit,
// Err returns an error matching errs.ErrBufferTooSmall whose required size is
// the full encoded length.
func NewFixedEncoder(dst []byte, opts ...Option) (*Encoder, error) {
	e, err := newEncoder(modeFixed, opts)
	if err != nil {
		return nil, err
	}

	e.dst = dst
	if e.hdrLen > 0 {
		if len(dst) < section.HeaderSize {
			e.truncated = true
		} else {
			e.header.PutTo(dst)
		}
	}

	return e, nil
}

// Header returns the encapsulation header this encoder writes.
func (e *Encoder) Header() section.EncapsulationHeader {
	return e.header
}

// EndianEngine returns the byte order of the body.
func (e *Encoder) EndianEngine() endian.EndianEngine {
	return e.engine
}

// Len returns the number of bytes written so far, header included. In size-query
// and overflowing fixed modes it is the number of bytes that would have been written.
func (e *Encoder) Len() int {
	return e.hdrLen + e.pos
}

// Offset returns the current body offset.
func (e *Encoder) Offset() int {
	return e.pos
}

// Err returns the first error encountered while writing, or a buffer-too-small
// error if a fixed buffer was exhausted.
func (e *Encoder) Err() error {
	if e.err != nil {
		return e.err
	}

	if e.truncated {
		return errs.BufferTooSmall(e.Len(), len(e.dst))
	}

	return nil
}

// Bytes returns the encoded message.
//
// In growable mode the slice references the pooled buffer and stays valid until
// Finish. In fixed mode it is the written prefix of dst, or nil after overflow.
// In size-query mode it is always nil.
//
// Panics if Finish() has been called on a growable encoder.
func (e *Encoder) Bytes() []byte {
	switch e.mode {
	case modeGrow:
		if e.buf == nil {
			panic("encoder already finished - cannot access bytes after Finish()")
		}

		return e.buf.Bytes()
	case modeFixed:
		if e.truncated {
			return nil
		}

		return e.dst[:e.Len()]
	default:
		return nil
	}
}

// Finish returns the pooled buffer of a growable encoder. The encoder must not
// be used afterwards. It is a no-op in the other modes.
func (e *Encoder) Finish() {
	if e.buf != nil {
		pool.PutMessageBuffer(e.buf)
		e.buf = nil
	}
}

// setErr records the first write failure.
func (e *Encoder) setErr(err error) {
	if e.err == nil {
		e.err = err
	}
}

// reserve pads to alignment with zero bytes, advances the position by n, and
// returns the n-byte region to fill. It returns nil when nothing should be
// written: in size-query mode, or once a fixed buffer has run out.
func (e *Encoder) reserve(alignment, n int) []byte {
	pad := Padding(e.pos, alignment)
	total := pad + n

	switch e.mode {
	case modeGrow:
		if e.buf == nil {
			panic("encoder already finished - cannot write after Finish()")
		}
		start := e.buf.Len()
		e.buf.ExtendOrGrow(total)
		e.pos += total
		region := e.buf.Slice(start, start+total)
		clear(region[:pad])

		return region[pad:]
	case modeFixed:
		start := e.Len()
		e.pos += total
		if e.truncated || start+total > len(e.dst) {
			e.truncated = true
			return nil
		}
		region := e.dst[start : start+total]
		clear(region[:pad])

		return region[pad:]
	default:
		e.pos += total
		return nil
	}
}

// WriteBool writes one octet, 1 for true and 0 for false.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

// WriteInt8 writes a signed octet.
func (e *Encoder) WriteInt8(v int8) {
	e.WriteUint8(uint8(v))
}

// WriteUint8 writes an octet.
func (e *Encoder) WriteUint8(v uint8) {
	if b := e.reserve(1, 1); b != nil {
		b[0] = v
	}
}

// WriteInt16 writes a 2-byte aligned int16.
func (e *Encoder) WriteInt16(v int16) {
	e.WriteUint16(uint16(v))
}

// WriteUint16 writes a 2-byte aligned uint16.
func (e *Encoder) WriteUint16(v uint16) {
	if b := e.reserve(2, 2); b != nil {
		e.engine.PutUint16(b, v)
	}
}

// WriteInt32 writes a 4-byte aligned int32.
func (e *Encoder) WriteInt32(v int32) {
	e.WriteUint32(uint32(v))
}

// WriteUint32 writes a 4-byte aligned uint32.
func (e *Encoder) WriteUint32(v uint32) {
	if b := e.reserve(4, 4); b != nil {
		e.engine.PutUint32(b, v)
	}
}

// WriteInt64 writes an 8-byte aligned int64.
func (e *Encoder) WriteInt64(v int64) {
	e.WriteUint64(uint64(v))
}

// WriteUint64 writes an 8-byte aligned uint64.
func (e *Encoder) WriteUint64(v uint64) {
	if b := e.reserve(8, 8); b != nil {
		e.engine.PutUint64(b, v)
	}
}

// WriteFloat32 writes a 4-byte aligned IEEE 754 float32.
func (e *Encoder) WriteFloat32(v float32) {
	e.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes an 8-byte aligned IEEE 754 float64.
func (e *Encoder) WriteFloat64(v float64) {
	e.WriteUint64(math.Float64bits(v))
}

// WriteLength writes a uint32 count prefix. Counts that do not fit in 32 bits
// record an invalid-argument error.
func (e *Encoder) WriteLength(n int) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		e.setErr(errs.InvalidArgument("write length", errs.ErrLengthLimit))
		n = 0
	}
	e.WriteUint32(uint32(n)) //nolint:gosec
}

// WriteString writes s as a length-prefixed, NUL-terminated string.
// The empty string is written as length 1 followed by a single NUL. Invalid
// UTF-8 records an invalid-argument error.
func (e *Encoder) WriteString(s string) {
	if !utf8.ValidString(s) {
		e.setErr(errs.InvalidArgument("write string", errs.ErrInvalidUTF8))
	}
	e.WriteLength(len(s) + 1)
	if b := e.reserve(1, len(s)+1); b != nil {
		copy(b, s)
		b[len(s)] = 0
	}
}

// WriteBytes writes b as a sequence<octet>.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteLength(len(b))
	e.writeRaw(b)
}

// writeRaw writes b without a prefix or alignment.
func (e *Encoder) writeRaw(b []byte) {
	if r := e.reserve(1, len(b)); r != nil {
		copy(r, b)
	}
}

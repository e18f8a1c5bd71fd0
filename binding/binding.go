// Package binding adapts the codec to foreign-function hosts that cannot
// consume Go errors: C shims, Python extensions and similar.
//
// Every failure maps to a small status Code, and on Unix systems to a POSIX
// errno. Serialize follows the two-call protocol: call it with a nil buffer
// to learn the size, then again with a buffer of that size.
package binding

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/registry"
)

// Code is the host-facing status of a binding call.
type Code int

const (
	CodeOK Code = iota
	CodeInvalidArgument
	CodeBufferTooSmall
	CodeMalformed
	CodeUnsupported
	CodeInternal
)

func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeInvalidArgument:
		return "invalid argument"
	case CodeBufferTooSmall:
		return "buffer too small"
	case CodeMalformed:
		return "malformed encoding"
	case CodeUnsupported:
		return "unsupported"
	default:
		return "internal error"
	}
}

// CodeOf classifies err. A nil error is CodeOK; an unclassified error is CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}

	switch errs.KindOf(err) {
	case errs.KindInvalidArgument:
		return CodeInvalidArgument
	case errs.KindBufferTooSmall:
		return CodeBufferTooSmall
	case errs.KindMalformed:
		return CodeMalformed
	case errs.KindUnsupported:
		return CodeUnsupported
	default:
		return CodeInternal
	}
}

// Serialize encodes m into dst.
//
// With a nil dst it only measures: it returns the required size and a nil
// error. With a dst that is too short it returns the required size together
// with an error of CodeBufferTooSmall. On success it returns the number of
// bytes written.
//
// Parameters:
//   - m: Record to encode
//   - dst: Output buffer, or nil to query the size
//   - opts: Encoder options such as encoding.WithBigEndian()
//
// Returns:
//   - int: Required size, which equals the bytes written on success
//   - error: nil, buffer too small, or invalid argument for a nil record
func Serialize(m encoding.Marshaler, dst []byte, opts ...encoding.Option) (int, error) {
	if m == nil {
		return 0, errs.InvalidArgument("serialize", errs.ErrNilTarget)
	}

	if dst == nil {
		sizer, err := encoding.NewSizer(opts...)
		if err != nil {
			return 0, err
		}
		m.MarshalCDR(sizer)

		return sizer.Len(), sizer.Err()
	}

	e, err := encoding.NewFixedEncoder(dst, opts...)
	if err != nil {
		return 0, err
	}
	m.MarshalCDR(e)

	return e.Len(), e.Err()
}

// Deserialize decodes data as the record registered under schema. It either
// returns a fully populated record or an error, never both.
func Deserialize(schema string, data []byte) (encoding.Message, error) {
	if len(data) == 0 {
		return nil, errs.InvalidArgument("deserialize", errs.ErrEmptyInput)
	}

	return registry.Decode(schema, data)
}

// DeserializeInto decodes data into m, leaving m untouched on failure.
func DeserializeInto(data []byte, m encoding.Message) error {
	if m == nil {
		return errs.InvalidArgument("deserialize", errs.ErrNilTarget)
	}

	tmp, err := Deserialize(m.SchemaName(), data)
	if err != nil {
		return err
	}

	return copyInto(m, tmp)
}

// Package cdr encodes and decodes OMG Common Data Representation (CDR)
// messages as used by ROS 2 and other DDS middleware.
//
// A top-level message is a 4-byte encapsulation header followed by the body.
// The header's representation identifier selects the byte order (CDR_BE or
// CDR_LE); every primitive in the body is aligned to its own size relative to
// the first body byte.
//
// # Basic Usage
//
// Encoding a record:
//
//	import (
//	    "github.com/arloliu/cdr"
//	    "github.com/arloliu/cdr/msgs/geometrymsgs"
//	)
//
//	pose := &geometrymsgs.Pose{Orientation: geometrymsgs.IdentityQuaternion()}
//	data, err := cdr.Marshal(pose)
//
// Decoding it again:
//
//	got, err := cdr.Decode[geometrymsgs.Pose](data)
//
// Encoding into a caller-owned buffer uses a two-call protocol: the first
// call reports the required size when the buffer is too small.
//
//	n, err := cdr.MarshalTo(buf, pose)
//	if size, ok := errs.RequiredSize(err); ok {
//	    buf = make([]byte, size)
//	    n, err = cdr.MarshalTo(buf, pose)
//	}
//
// # Package Structure
//
// This package wraps the encoding package for the common cases. Custom record
// types implement encoding.Marshaler and encoding.Unmarshaler by calling the
// Encoder and Decoder primitives in field order. The registry package maps
// schema names to the built-in record types under msgs/, and the layout
// package decodes fixed-stride rows such as PointCloud2 data.
package cdr

import (
	"slices"

	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/internal/hash"
)

// Marshal encodes m as a little-endian top-level message.
//
// Returns:
//   - []byte: Encoded message owned by the caller
//   - error: invalid argument if a string or sequence exceeds the uint32 length limit
func Marshal(m encoding.Marshaler) ([]byte, error) {
	return MarshalWithOptions(m)
}

// MarshalWithOptions encodes m with the given encoder options, e.g.
// encoding.WithBigEndian().
func MarshalWithOptions(m encoding.Marshaler, opts ...encoding.Option) ([]byte, error) {
	e, err := encoding.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Finish()

	m.MarshalCDR(e)
	if err := e.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(e.Bytes()), nil
}

// MarshalTo encodes m into dst without allocating.
//
// Returns:
//   - int: Bytes written to dst
//   - error: errs.ErrBufferTooSmall when dst is too short; errs.RequiredSize
//     extracts the size needed for a second call. dst may have been partially
//     written in that case.
func MarshalTo(dst []byte, m encoding.Marshaler, opts ...encoding.Option) (int, error) {
	e, err := encoding.NewFixedEncoder(dst, opts...)
	if err != nil {
		return 0, err
	}

	m.MarshalCDR(e)
	if err := e.Err(); err != nil {
		return 0, err
	}

	return e.Len(), nil
}

// Size returns the encoded length of m, header included, without encoding it.
func Size(m encoding.Marshaler, opts ...encoding.Option) (int, error) {
	e, err := encoding.NewSizer(opts...)
	if err != nil {
		return 0, err
	}

	m.MarshalCDR(e)
	if err := e.Err(); err != nil {
		return 0, err
	}

	return e.Len(), nil
}

// Unmarshal decodes the top-level message data into m. The byte order is
// taken from the encapsulation header. Bytes after the message are ignored.
//
// Returns:
//   - error: invalid argument for empty input, malformed for truncated or
//     invalid content, unsupported for an unknown representation
func Unmarshal(data []byte, m encoding.Unmarshaler, opts ...encoding.Option) error {
	d, err := encoding.NewDecoder(data, opts...)
	if err != nil {
		return err
	}

	return m.UnmarshalCDR(d)
}

// Decode decodes data into a new T.
func Decode[T any, PT interface {
	*T
	encoding.Unmarshaler
}](data []byte, opts ...encoding.Option) (*T, error) {
	out := new(T)
	if err := Unmarshal(data, PT(out), opts...); err != nil {
		return nil, err
	}

	return out, nil
}

// SchemaID computes the 64-bit identifier of a schema name using xxHash64.
// Recordings store this identifier in place of the name.
func SchemaID(name string) uint64 {
	return hash.ID(name)
}

// Package errs defines the error taxonomy shared by every codec component.
//
// Every failure is classified into one Kind:
//
//   - KindInvalidArgument: empty input or a nil target handed to the codec
//   - KindBufferTooSmall:  the caller-supplied output buffer is short; the
//     required size travels with the error (see BufferTooSmallError)
//   - KindMalformed:       truncated input, invalid UTF-8, a bad length prefix or
//     a field descriptor that does not fit its row
//   - KindUnsupported:     an encapsulation identifier or datatype tag this codec
//     does not implement
//
// Callers test the kind with errors.Is against the kind sentinels
// (ErrInvalidArgument, ErrBufferTooSmall, ErrMalformed, ErrUnsupported) and the
// specific cause with errors.Is against the detail sentinels (ErrTruncated,
// ErrInvalidUTF8, ...). Binding layers translate with KindOf.
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a codec failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindBufferTooSmall
	KindMalformed
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindBufferTooSmall:
		return "buffer too small"
	case KindMalformed:
		return "malformed encoding"
	case KindUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Error is a classified codec failure.
type Error struct {
	// Kind is the taxonomy bucket of the failure.
	Kind Kind
	// Op names the failing operation, e.g. "read string".
	Op string
	// Offset is the body offset at which the failure was detected, or -1.
	Offset int
	// Err is the underlying cause, usually one of the detail sentinels.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Offset >= 0 && e.Op != "" {
		msg = fmt.Sprintf("%s at offset %d", msg, e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so a classified error satisfies
// errors.Is against its kind sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// Kind sentinels. Compare with errors.Is.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument, Offset: -1}
	ErrBufferTooSmall  = &Error{Kind: KindBufferTooSmall, Offset: -1}
	ErrMalformed       = &Error{Kind: KindMalformed, Offset: -1}
	ErrUnsupported     = &Error{Kind: KindUnsupported, Offset: -1}
)

// Detail sentinels carried as the cause of a classified error.
var (
	ErrEmptyInput             = errors.New("empty input")
	ErrNilTarget              = errors.New("nil target")
	ErrTruncated              = errors.New("read past end of buffer")
	ErrInvalidUTF8            = errors.New("string is not valid UTF-8")
	ErrMissingTerminator      = errors.New("string is missing its NUL terminator")
	ErrInvalidBool            = errors.New("boolean octet is neither 0 nor 1")
	ErrLengthLimit            = errors.New("length prefix exceeds configured limit")
	ErrLengthOverflow         = errors.New("length prefix exceeds remaining bytes")
	ErrDecompressLimit        = errors.New("decompressed size exceeds limit")
	ErrInvalidHeaderSize      = errors.New("encapsulation header must be 4 bytes")
	ErrUnknownRepresentation  = errors.New("unknown encapsulation representation")
	ErrUnknownDatatype        = errors.New("unknown point field datatype")
	ErrFieldOutOfBounds       = errors.New("field exceeds row stride")
	ErrFieldOverlap           = errors.New("fields overlap")
	ErrZeroCount              = errors.New("field count must be at least 1")
	ErrDuplicateField         = errors.New("duplicate field name")
	ErrInvalidStride          = errors.New("invalid row stride")
	ErrRowOutOfRange          = errors.New("row index out of range")
	ErrPayloadSizeMismatch    = errors.New("payload size does not match declared dimensions")
	ErrChecksumMismatch       = errors.New("checksum mismatch")
	ErrUnknownSchema          = errors.New("unknown schema")
	ErrInvalidSchemaName      = errors.New("invalid schema name")
	ErrUnknownCompression     = errors.New("unknown compression")
	ErrInvalidRecordingHeader = errors.New("invalid recording header")
	ErrHashCollision          = errors.New("schema id hash collision")
)

// InvalidArgument classifies cause as KindInvalidArgument.
func InvalidArgument(op string, cause error) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Offset: -1, Err: cause}
}

// Malformed classifies cause as KindMalformed detected at offset.
func Malformed(op string, offset int, cause error) error {
	return &Error{Kind: KindMalformed, Op: op, Offset: offset, Err: cause}
}

// Unsupported classifies cause as KindUnsupported.
func Unsupported(op string, cause error) error {
	return &Error{Kind: KindUnsupported, Op: op, Offset: -1, Err: cause}
}

// BufferTooSmallError reports a short output buffer together with the exact
// size needed, so the caller can reallocate and retry without re-querying.
type BufferTooSmallError struct {
	Required  int
	Available int
}

func (e *BufferTooSmallError) Error() string {
	return fmt.Sprintf("buffer too small: need %d bytes, have %d", e.Required, e.Available)
}

// Is matches ErrBufferTooSmall and any *Error of kind KindBufferTooSmall.
func (e *BufferTooSmallError) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.Kind == KindBufferTooSmall
}

// BufferTooSmall returns a *BufferTooSmallError.
func BufferTooSmall(required, available int) error {
	return &BufferTooSmallError{Required: required, Available: available}
}

// KindOf returns the taxonomy kind of err, or KindUnknown when err carries no
// classification.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var small *BufferTooSmallError
	if errors.As(err, &small) {
		return KindBufferTooSmall
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}

	return KindUnknown
}

// RequiredSize extracts the required buffer size from a BufferTooSmallError
// anywhere in err's chain.
func RequiredSize(err error) (int, bool) {
	var small *BufferTooSmallError
	if errors.As(err, &small) {
		return small.Required, true
	}

	return 0, false
}

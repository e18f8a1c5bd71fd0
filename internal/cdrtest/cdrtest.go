// Package cdrtest provides assertions shared by the record type tests.
package cdrtest

import (
	"slices"
	"testing"

	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/stretchr/testify/require"
)

// Unmarshaler constrains PT to a pointer to T that can decode itself.
type Unmarshaler[T any] interface {
	*T
	encoding.Unmarshaler
}

// Encode marshals m into a new top-level message.
func Encode(tb testing.TB, m encoding.Marshaler, opts ...encoding.Option) []byte {
	tb.Helper()

	e, err := encoding.NewEncoder(opts...)
	require.NoError(tb, err)
	defer e.Finish()

	m.MarshalCDR(e)
	require.NoError(tb, e.Err())

	return slices.Clone(e.Bytes())
}

// Decode unmarshals data into a new T.
func Decode[T any, PT Unmarshaler[T]](data []byte, opts ...encoding.Option) (*T, error) {
	d, err := encoding.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	out := new(T)
	if err := PT(out).UnmarshalCDR(d); err != nil {
		return nil, err
	}

	return out, nil
}

// RoundTrip encodes v in both byte orders and checks that decoding recovers
// it, that re-encoding is byte-identical, that the sizer agrees with the real
// size, and that every truncation fails as malformed.
func RoundTrip[T any, PT interface {
	Unmarshaler[T]
	encoding.Marshaler
}](tb testing.TB, v *T) {
	tb.Helper()

	for _, opt := range []encoding.Option{encoding.WithLittleEndian(), encoding.WithBigEndian()} {
		data := Encode(tb, PT(v), opt)

		got, err := Decode[T, PT](data)
		require.NoError(tb, err)
		require.Equal(tb, v, got)
		require.Equal(tb, data, Encode(tb, PT(got), opt))

		sizer, err := encoding.NewSizer(opt)
		require.NoError(tb, err)
		PT(v).MarshalCDR(sizer)
		require.Equal(tb, len(data), sizer.Len())

		RequireTruncationSafe[T, PT](tb, data)
	}
}

// RequireTruncationSafe checks that every proper prefix of data fails to
// decode with a malformed error.
func RequireTruncationSafe[T any, PT Unmarshaler[T]](tb testing.TB, data []byte) {
	tb.Helper()

	for n := 1; n < len(data); n++ {
		_, err := Decode[T, PT](data[:n])
		require.ErrorIs(tb, err, errs.ErrMalformed, "prefix of %d/%d bytes", n, len(data))
	}
}

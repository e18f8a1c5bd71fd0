package encoding

import (
	"bytes"
	"encoding/binary"
	"math"
	"runtime"
	"testing"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
	"github.com/stretchr/testify/require"
)

var (
	headerLE = []byte{0x00, 0x01, 0x00, 0x00}
	headerBE = []byte{0x00, 0x00, 0x00, 0x00}
)

func withHeader(header []byte, body ...byte) []byte {
	return append(append([]byte{}, header...), body...)
}

func TestNewDecoder_Header(t *testing.T) {
	t.Run("Little endian", func(t *testing.T) {
		d, err := NewDecoder(headerLE)
		require.NoError(t, err)
		require.Equal(t, format.RepresentationCDRLE, d.Header().Representation)
		require.Equal(t, endian.GetLittleEndianEngine(), d.EndianEngine())
		require.Equal(t, 0, d.Remaining())
	})

	t.Run("Big endian with options", func(t *testing.T) {
		d, err := NewDecoder([]byte{0x00, 0x00, 0x00, 0x05})
		require.NoError(t, err)
		require.Equal(t, format.RepresentationCDRBE, d.Header().Representation)
		require.Equal(t, uint16(5), d.Header().Options)
	})

	t.Run("Empty input", func(t *testing.T) {
		_, err := NewDecoder(nil)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)

		_, err = NewDecoder([]byte{})
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("Short header", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x00, 0x01})
		require.ErrorIs(t, err, errs.ErrMalformed)
	})

	t.Run("Unsupported representation", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x00, 0x03, 0x00, 0x00, 0x01})
		require.ErrorIs(t, err, errs.ErrUnsupported)
	})

	t.Run("Invalid option", func(t *testing.T) {
		_, err := NewDecoder(headerLE, WithMaxLength(-1))
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestDecoder_Primitives(t *testing.T) {
	t.Run("Little endian", func(t *testing.T) {
		d, err := NewDecoder(withHeader(headerLE,
			0x78, 0x56, 0x34, 0x12, // uint32
			0x00, 0x00, 0x80, 0x3f, // float32 1.0
			0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01, // uint64
		))
		require.NoError(t, err)

		u32, err := d.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, uint32(0x12345678), u32)

		f32, err := d.ReadFloat32()
		require.NoError(t, err)
		require.Equal(t, float32(1.0), f32)

		u64, err := d.ReadUint64()
		require.NoError(t, err)
		require.Equal(t, uint64(0x0102030405060708), u64)
		require.Equal(t, 0, d.Remaining())
	})

	t.Run("Big endian", func(t *testing.T) {
		d, err := NewDecoder(withHeader(headerBE,
			0xff, 0xfe, // int16 -2
			0x00, 0x00, // padding
			0xbf, 0x80, 0x00, 0x00, // float32 -1.0
			0x40, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // float64 2.0
		))
		require.NoError(t, err)

		i16, err := d.ReadInt16()
		require.NoError(t, err)
		require.Equal(t, int16(-2), i16)

		f32, err := d.ReadFloat32()
		require.NoError(t, err)
		require.Equal(t, float32(-1.0), f32)

		f64, err := d.ReadFloat64()
		require.NoError(t, err)
		require.Equal(t, 2.0, f64)
	})

	t.Run("Padding is skipped not interpreted", func(t *testing.T) {
		d, err := NewDecoder(withHeader(headerLE,
			0x07, 0xff, 0xff, 0xff,
			0x01, 0x00, 0x00, 0x00,
		))
		require.NoError(t, err)

		u8, err := d.ReadUint8()
		require.NoError(t, err)
		require.Equal(t, uint8(7), u8)

		u32, err := d.ReadUint32()
		require.NoError(t, err)
		require.Equal(t, uint32(1), u32)
	})

	t.Run("Signed values", func(t *testing.T) {
		d, err := NewDecoder(withHeader(headerLE,
			0x80,                   // int8 -128
			0x00, 0x00, 0x00,       // padding
			0xff, 0xff, 0xff, 0xff, // int32 -1
			0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, // int64 min
		))
		require.NoError(t, err)

		i8, err := d.ReadInt8()
		require.NoError(t, err)
		require.Equal(t, int8(-128), i8)

		i32, err := d.ReadInt32()
		require.NoError(t, err)
		require.Equal(t, int32(-1), i32)

		i64, err := d.ReadInt64()
		require.NoError(t, err)
		require.Equal(t, int64(math.MinInt64), i64)
	})

	t.Run("Failed read does not advance", func(t *testing.T) {
		d, err := NewDecoder(withHeader(headerLE, 0x01, 0x02, 0x03))
		require.NoError(t, err)

		_, err = d.ReadUint32()
		require.ErrorIs(t, err, errs.ErrMalformed)
		require.ErrorIs(t, err, errs.ErrTruncated)
		require.Equal(t, 0, d.Offset())

		u16, err := d.ReadUint16()
		require.NoError(t, err)
		require.Equal(t, uint16(0x0201), u16)
	})
}

func TestDecoder_Bool(t *testing.T) {
	d, err := NewDecoder(withHeader(headerLE, 0x01, 0x00, 0x02))
	require.NoError(t, err)

	v, err := d.ReadBool()
	require.NoError(t, err)
	require.True(t, v)

	v, err = d.ReadBool()
	require.NoError(t, err)
	require.False(t, v)

	_, err = d.ReadBool()
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.ErrorIs(t, err, errs.ErrInvalidBool)
}

func TestDecoder_String(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		want    string
		wantErr error
	}{
		{"ascii", []byte{0x03, 0, 0, 0, 'h', 'i', 0x00}, "hi", nil},
		{"empty", []byte{0x01, 0, 0, 0, 0x00}, "", nil},
		{"zero length", []byte{0x00, 0, 0, 0}, "", nil},
		{"utf8", []byte{0x04, 0, 0, 0, 0xc3, 0xa9, 'x', 0x00}, "éx", nil},
		{"missing terminator", []byte{0x03, 0, 0, 0, 'h', 'i', 'j'}, "", errs.ErrMissingTerminator},
		{"invalid utf8", []byte{0x03, 0, 0, 0, 0xff, 0xfe, 0x00}, "", errs.ErrInvalidUTF8},
		{"length past end", []byte{0x10, 0, 0, 0, 'h', 0x00}, "", errs.ErrLengthOverflow},
		{"truncated length", []byte{0x03, 0}, "", errs.ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDecoder(withHeader(headerLE, tt.body...))
			require.NoError(t, err)

			s, err := d.ReadString()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, errs.ErrMalformed)
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, s)
			require.Equal(t, 0, d.Remaining())
		})
	}
}

func TestDecoder_MaxLength(t *testing.T) {
	data := withHeader(headerLE, 0x03, 0, 0, 0, 'h', 'i', 0x00)

	d, err := NewDecoder(data, WithMaxLength(2))
	require.NoError(t, err)
	_, err = d.ReadString()
	require.ErrorIs(t, err, errs.ErrLengthLimit)

	d, err = NewDecoder(data, WithMaxLength(3))
	require.NoError(t, err)
	s, err := d.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hi", s)
}

func TestDecoder_Bytes(t *testing.T) {
	data := withHeader(headerLE, 0x02, 0, 0, 0, 0xaa, 0xbb)
	d, err := NewDecoder(data)
	require.NoError(t, err)

	b, err := d.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{0xaa, 0xbb}, b)

	data[8] = 0x00
	require.Equal(t, []byte{0xaa, 0xbb}, b, "decoded bytes must not alias the input")
}

func TestDecoder_HugeCountDoesNotAllocate(t *testing.T) {
	d, err := NewDecoder(withHeader(headerLE, 0xff, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00))
	require.NoError(t, err)

	_, err = ReadSequence[float64](d)
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.ErrorIs(t, err, errs.ErrLengthOverflow)
}

func TestReadStructs_HugeCountBoundsAllocation(t *testing.T) {
	// The count matches the remaining bytes, so it passes the length check,
	// but the first element fails on its string length.
	const n = 1 << 20
	body := binary.LittleEndian.AppendUint32(nil, n)
	body = append(body, bytes.Repeat([]byte{0xff}, n)...)

	d, err := NewDecoder(withHeader(headerLE, body...))
	require.NoError(t, err)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err = ReadStructs[point](d)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(n))
}

func TestDecoder_WithoutHeader(t *testing.T) {
	d, err := NewDecoder([]byte{0x12, 0x34}, WithoutHeader(), WithBigEndian())
	require.NoError(t, err)

	v, err := d.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), v)
	require.False(t, d.Header().IsLittleEndian())

	body := NewBodyDecoder([]byte{0x12, 0x34}, endian.GetLittleEndianEngine())
	v, err = body.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x3412), v)
}

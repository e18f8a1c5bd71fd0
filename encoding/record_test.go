package encoding

import (
	"math"
	"slices"
	"testing"

	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/section"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y  float32
	Label string
}

func (p *point) MarshalCDR(e *Encoder) {
	e.WriteFloat32(p.X)
	e.WriteFloat32(p.Y)
	e.WriteString(p.Label)
}

func (p *point) UnmarshalCDR(d *Decoder) error {
	var err error
	if p.X, err = d.ReadFloat32(); err != nil {
		return err
	}
	if p.Y, err = d.ReadFloat32(); err != nil {
		return err
	}
	p.Label, err = d.ReadString()

	return err
}

// sample mixes every primitive width, strings, sequences, fixed arrays and
// nested structures.
type sample struct {
	Flag    bool
	I8      int8
	U8      uint8
	I16     int16
	U16     uint16
	I32     int32
	U32     uint32
	I64     int64
	U64     uint64
	F32     float32
	F64     float64
	Name    string
	Tags    []string
	Samples []int16
	Matrix  [4]float64
	Origin  point
	Points  []point
	Raw     []byte
	Tail    uint8
}

func (s *sample) MarshalCDR(e *Encoder) {
	e.WriteBool(s.Flag)
	e.WriteInt8(s.I8)
	e.WriteUint8(s.U8)
	e.WriteInt16(s.I16)
	e.WriteUint16(s.U16)
	e.WriteInt32(s.I32)
	e.WriteUint32(s.U32)
	e.WriteInt64(s.I64)
	e.WriteUint64(s.U64)
	e.WriteFloat32(s.F32)
	e.WriteFloat64(s.F64)
	e.WriteString(s.Name)
	WriteStrings(e, s.Tags)
	WriteSequence(e, s.Samples)
	WriteArray(e, s.Matrix[:])
	s.Origin.MarshalCDR(e)
	WriteStructs(e, s.Points)
	e.WriteBytes(s.Raw)
	e.WriteUint8(s.Tail)
}

func (s *sample) UnmarshalCDR(d *Decoder) error {
	var err error
	if s.Flag, err = d.ReadBool(); err != nil {
		return err
	}
	if s.I8, err = d.ReadInt8(); err != nil {
		return err
	}
	if s.U8, err = d.ReadUint8(); err != nil {
		return err
	}
	if s.I16, err = d.ReadInt16(); err != nil {
		return err
	}
	if s.U16, err = d.ReadUint16(); err != nil {
		return err
	}
	if s.I32, err = d.ReadInt32(); err != nil {
		return err
	}
	if s.U32, err = d.ReadUint32(); err != nil {
		return err
	}
	if s.I64, err = d.ReadInt64(); err != nil {
		return err
	}
	if s.U64, err = d.ReadUint64(); err != nil {
		return err
	}
	if s.F32, err = d.ReadFloat32(); err != nil {
		return err
	}
	if s.F64, err = d.ReadFloat64(); err != nil {
		return err
	}
	if s.Name, err = d.ReadString(); err != nil {
		return err
	}
	if s.Tags, err = ReadStrings(d); err != nil {
		return err
	}
	if s.Samples, err = ReadSequence[int16](d); err != nil {
		return err
	}
	if err = ReadArrayInto(d, s.Matrix[:]); err != nil {
		return err
	}
	if err = s.Origin.UnmarshalCDR(d); err != nil {
		return err
	}
	if s.Points, err = ReadStructs[point](d); err != nil {
		return err
	}
	if s.Raw, err = d.ReadBytes(); err != nil {
		return err
	}
	s.Tail, err = d.ReadUint8()

	return err
}

func fullSample() *sample {
	return &sample{
		Flag:    true,
		I8:      -7,
		U8:      200,
		I16:     -1234,
		U16:     54321,
		I32:     -123456789,
		U32:     4000000000,
		I64:     math.MinInt64 + 1,
		U64:     math.MaxUint64 - 1,
		F32:     3.5,
		F64:     -0.125,
		Name:    "base_link",
		Tags:    []string{"lidar", "", "前方"},
		Samples: []int16{1, -1, 32767, -32768},
		Matrix:  [4]float64{1, 0, 0, 1},
		Origin:  point{X: 1, Y: 2, Label: "o"},
		Points:  []point{{X: 0.5, Y: -0.5, Label: "a"}, {X: 9, Y: 8, Label: ""}},
		Raw:     []byte{0xde, 0xad, 0xbe, 0xef, 0x00},
		Tail:    0x5a,
	}
}

func encodeSample(t *testing.T, s *sample, opts ...Option) []byte {
	t.Helper()

	e, err := NewEncoder(opts...)
	require.NoError(t, err)
	defer e.Finish()

	s.MarshalCDR(e)
	require.NoError(t, e.Err())

	return slices.Clone(e.Bytes())
}

func decodeSample(data []byte, opts ...Option) (*sample, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	s := &sample{}
	if err := s.UnmarshalCDR(d); err != nil {
		return nil, err
	}

	return s, nil
}

func TestRoundTrip(t *testing.T) {
	cases := map[string]*sample{
		"full":  fullSample(),
		"zero":  {},
		"empty": {Name: "", Origin: point{Label: ""}},
	}

	for name, want := range cases {
		for _, order := range []struct {
			name string
			opt  Option
		}{{"LE", WithLittleEndian()}, {"BE", WithBigEndian()}} {
			t.Run(name+"/"+order.name, func(t *testing.T) {
				data := encodeSample(t, want, order.opt)

				got, err := decodeSample(data)
				require.NoError(t, err)
				require.Equal(t, want, got)
			})
		}
	}
}

func TestRoundTrip_ReencodeIsByteIdentical(t *testing.T) {
	data := encodeSample(t, fullSample(), WithOptions(0x0102))

	d, err := NewDecoder(data)
	require.NoError(t, err)
	s := &sample{}
	require.NoError(t, s.UnmarshalCDR(d))

	again := encodeSample(t, s, WithHeader(d.Header()))
	require.Equal(t, data, again)
}

func TestRoundTrip_TrailingBytesIgnored(t *testing.T) {
	data := append(encodeSample(t, fullSample()), 0x00, 0x00, 0x00)

	got, err := decodeSample(data)
	require.NoError(t, err)
	require.Equal(t, fullSample(), got)
}

func TestTruncationAtEveryByte(t *testing.T) {
	for _, opt := range []Option{WithLittleEndian(), WithBigEndian()} {
		data := encodeSample(t, fullSample(), opt)

		for n := 1; n < len(data); n++ {
			_, err := decodeSample(data[:n])
			require.Error(t, err, "truncated to %d of %d bytes", n, len(data))
			require.ErrorIs(t, err, errs.ErrMalformed, "truncated to %d of %d bytes", n, len(data))
		}
	}
}

// fieldSpans records where each multi-byte primitive of a fixed-layout record lands.
func fieldSpans(e *Encoder) [][2]int {
	var spans [][2]int
	mark := func(width int, write func()) {
		write()
		spans = append(spans, [2]int{e.Offset() - width, e.Offset()})
	}

	mark(1, func() { e.WriteUint8(1) })
	mark(2, func() { e.WriteInt16(-300) })
	mark(4, func() { e.WriteUint32(0xdeadbeef) })
	mark(8, func() { e.WriteFloat64(math.Pi) })
	mark(2, func() { e.WriteUint16(7) })
	mark(4, func() { e.WriteFloat32(-2.5) })
	mark(8, func() { e.WriteInt64(-42) })

	return spans
}

func TestEndiannessMirror(t *testing.T) {
	le, err := NewEncoder(WithLittleEndian())
	require.NoError(t, err)
	defer le.Finish()
	be, err := NewEncoder(WithBigEndian())
	require.NoError(t, err)
	defer be.Finish()

	spans := fieldSpans(le)
	require.Equal(t, spans, fieldSpans(be))

	leBody := le.Bytes()[section.HeaderSize:]
	beBody := be.Bytes()[section.HeaderSize:]
	require.Equal(t, len(leBody), len(beBody))

	for _, span := range spans {
		field := slices.Clone(leBody[span[0]:span[1]])
		slices.Reverse(field)
		require.Equal(t, field, beBody[span[0]:span[1]], "field at %v", span)
	}

	require.Equal(t, byte(0x01), le.Bytes()[1])
	require.Equal(t, byte(0x00), be.Bytes()[1])
}

func TestAlignmentInvariant(t *testing.T) {
	e, err := NewEncoder(WithoutHeader())
	require.NoError(t, err)
	defer e.Finish()

	prevEnd := 0
	for _, span := range fieldSpans(e) {
		width := span[1] - span[0]
		align := Alignment(width)
		want := prevEnd + Padding(prevEnd, align)
		require.Equal(t, want, span[0])
		require.Zero(t, span[0]%align)
		prevEnd = span[1]
	}
}

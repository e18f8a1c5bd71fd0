package layout

import (
	"testing"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
	"github.com/stretchr/testify/require"
)

var le = endian.GetLittleEndianEngine()

func xyFields() []FieldDescriptor {
	return []FieldDescriptor{
		{Name: "x", Offset: 0, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "y", Offset: 4, Datatype: format.DatatypeFloat32, Count: 1},
	}
}

// xyRow is little-endian 1.0f followed by 2.0f.
var xyRow = []byte{0, 0, 128, 63, 0, 0, 0, 64}

func TestNewPlan_SortsByOffset(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "intensity", Offset: 12, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "x", Offset: 0, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "z", Offset: 8, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "y", Offset: 4, Datatype: format.DatatypeFloat32, Count: 1},
	}

	plan, err := NewPlan(fields, 16, le)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y", "z", "intensity"}, plan.Names())
	require.Equal(t, 16, plan.Stride())
	require.Equal(t, 4, plan.Width())
	require.Equal(t, "intensity", fields[0].Name, "input must not be reordered")

	idx, count, ok := plan.Lookup("z")
	require.True(t, ok)
	require.Equal(t, 2, idx)
	require.Equal(t, 1, count)

	_, _, ok = plan.Lookup("rgb")
	require.False(t, ok)
}

func TestNewPlan_Validation(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldDescriptor
		stride int
		kind   error
		cause  error
	}{
		{
			name:   "exceeds stride",
			fields: []FieldDescriptor{{Name: "x", Offset: 4, Datatype: format.DatatypeFloat64, Count: 1}},
			stride: 8,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrFieldOutOfBounds,
		},
		{
			name:   "count exceeds stride",
			fields: []FieldDescriptor{{Name: "v", Offset: 0, Datatype: format.DatatypeUint16, Count: 5}},
			stride: 8,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrFieldOutOfBounds,
		},
		{
			name:   "huge count does not wrap",
			fields: []FieldDescriptor{{Name: "v", Offset: 1, Datatype: format.DatatypeFloat64, Count: 0xffffffff}},
			stride: 8,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrFieldOutOfBounds,
		},
		{
			name: "overlap",
			fields: []FieldDescriptor{
				{Name: "a", Offset: 0, Datatype: format.DatatypeUint32, Count: 1},
				{Name: "b", Offset: 2, Datatype: format.DatatypeUint16, Count: 1},
			},
			stride: 8,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrFieldOverlap,
		},
		{
			name:   "zero count",
			fields: []FieldDescriptor{{Name: "x", Offset: 0, Datatype: format.DatatypeFloat32, Count: 0}},
			stride: 4,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrZeroCount,
		},
		{
			name: "duplicate name",
			fields: []FieldDescriptor{
				{Name: "x", Offset: 0, Datatype: format.DatatypeFloat32, Count: 1},
				{Name: "x", Offset: 4, Datatype: format.DatatypeFloat32, Count: 1},
			},
			stride: 8,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrDuplicateField,
		},
		{
			name:   "unknown datatype",
			fields: []FieldDescriptor{{Name: "x", Offset: 0, Datatype: 9, Count: 1}},
			stride: 8,
			kind:   errs.ErrUnsupported,
			cause:  errs.ErrUnknownDatatype,
		},
		{
			name:   "zero stride",
			fields: xyFields(),
			stride: 0,
			kind:   errs.ErrMalformed,
			cause:  errs.ErrInvalidStride,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPlan(tt.fields, tt.stride, le)
			require.ErrorIs(t, err, tt.kind)
			require.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestNewPlan_NilEngine(t *testing.T) {
	_, err := NewPlan(xyFields(), 8, nil)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestNewPlan_AdjacentAndPadded(t *testing.T) {
	// Gaps between columns and trailing row padding are both fine.
	fields := []FieldDescriptor{
		{Name: "x", Offset: 0, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "ring", Offset: 4, Datatype: format.DatatypeUint16, Count: 1},
		{Name: "t", Offset: 8, Datatype: format.DatatypeFloat64, Count: 1},
	}

	plan, err := NewPlan(fields, 32, le)
	require.NoError(t, err)
	require.Equal(t, 3, plan.Width())
}

func TestPlan_DecodeRow(t *testing.T) {
	plan, err := NewPlan(xyFields(), 8, le)
	require.NoError(t, err)

	data := append(append([]byte{}, xyRow...), 0, 0, 64, 64, 0, 0, 128, 64) // 3.0f, 4.0f

	rec, err := plan.DecodeRow(data, 0)
	require.NoError(t, err)
	x, ok := rec.Value("x")
	require.True(t, ok)
	require.Equal(t, 1.0, x)
	y, _ := rec.Value("y")
	require.Equal(t, 2.0, y)

	rec, err = plan.DecodeRow(data, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{3.0, 4.0}, rec.Raw())

	_, err = plan.DecodeRow(data, 2)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
	require.ErrorIs(t, err, errs.ErrRowOutOfRange)

	_, err = plan.DecodeRow(data[:12], 0)
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.ErrorIs(t, err, errs.ErrPayloadSizeMismatch)

	_, err = plan.DecodeRow(nil, 0)
	require.ErrorIs(t, err, errs.ErrRowOutOfRange)
}

func TestPlan_DecodeRowInto(t *testing.T) {
	plan, err := NewPlan(xyFields(), 8, le)
	require.NoError(t, err)

	dst := make([]float64, 2)
	require.NoError(t, plan.DecodeRowInto(xyRow, 0, dst))
	require.Equal(t, []float64{1, 2}, dst)

	err = plan.DecodeRowInto(xyRow, 0, make([]float64, 1))
	require.ErrorIs(t, err, errs.ErrBufferTooSmall)
}

func TestPlan_AllDatatypes(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "i8", Offset: 0, Datatype: format.DatatypeInt8, Count: 1},
		{Name: "u8", Offset: 1, Datatype: format.DatatypeUint8, Count: 1},
		{Name: "i16", Offset: 2, Datatype: format.DatatypeInt16, Count: 1},
		{Name: "u16", Offset: 4, Datatype: format.DatatypeUint16, Count: 1},
		{Name: "i32", Offset: 8, Datatype: format.DatatypeInt32, Count: 1},
		{Name: "u32", Offset: 12, Datatype: format.DatatypeUint32, Count: 1},
		{Name: "f32", Offset: 16, Datatype: format.DatatypeFloat32, Count: 1},
		{Name: "f64", Offset: 24, Datatype: format.DatatypeFloat64, Count: 1},
	}
	row := []byte{
		0xff,       // i8 -1
		0xff,       // u8 255
		0xfe, 0xff, // i16 -2
		0x34, 0x12, // u16 0x1234
		0x00, 0x00, // gap
		0xfd, 0xff, 0xff, 0xff, // i32 -3
		0x00, 0x00, 0x00, 0x80, // u32 2^31
		0x00, 0x00, 0xc0, 0x3f, // f32 1.5
		0x00, 0x00, 0x00, 0x00, // gap
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0, 0xbf, // f64 -1.0
	}

	plan, err := NewPlan(fields, len(row), le)
	require.NoError(t, err)

	rec, err := plan.DecodeRow(row, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{-1, 255, -2, 0x1234, -3, 2147483648, 1.5, -1}, rec.Raw())
}

func TestPlan_BigEndianAppliedPerElement(t *testing.T) {
	fields := []FieldDescriptor{
		{Name: "v", Offset: 0, Datatype: format.DatatypeUint16, Count: 2},
		{Name: "f", Offset: 4, Datatype: format.DatatypeFloat32, Count: 1},
	}
	row := []byte{0x12, 0x34, 0x00, 0x01, 0x3f, 0x80, 0x00, 0x00}

	plan, err := NewPlan(fields, 8, endian.GetBigEndianEngine())
	require.NoError(t, err)

	rec, err := plan.DecodeRow(row, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0x1234, 1}, rec.Values("v"))
	f, _ := rec.Value("f")
	require.Equal(t, 1.0, f)
}

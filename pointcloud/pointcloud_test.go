package pointcloud

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/cdrtest"
	"github.com/arloliu/cdr/msgs/sensormsgs"
	"github.com/stretchr/testify/require"
)

func xyzFields() []sensormsgs.PointField {
	return []sensormsgs.PointField{
		{Name: "x", Offset: 0, Datatype: sensormsgs.Float32, Count: 1},
		{Name: "y", Offset: 4, Datatype: sensormsgs.Float32, Count: 1},
		{Name: "z", Offset: 8, Datatype: sensormsgs.Float32, Count: 1},
	}
}

func xyzCloud(points [][3]float32, bigEndian bool) *sensormsgs.PointCloud2 {
	var order binary.AppendByteOrder = binary.LittleEndian
	if bigEndian {
		order = binary.BigEndian
	}

	data := make([]byte, 0, len(points)*12)
	for _, p := range points {
		for _, v := range p {
			data = order.AppendUint32(data, math.Float32bits(v))
		}
	}

	return &sensormsgs.PointCloud2{
		Height:      1,
		Width:       uint32(len(points)),
		Fields:      xyzFields(),
		IsBigEndian: bigEndian,
		PointStep:   12,
		RowStep:     uint32(len(data)),
		Data:        data,
		IsDense:     true,
	}
}

func TestDecode_XYZ(t *testing.T) {
	input := [][3]float32{{1, 2, 3}, {4, 5, 6}, {-1, -2, -3}}

	for _, be := range []bool{false, true} {
		points, err := Decode(xyzCloud(input, be))
		require.NoError(t, err)
		require.Equal(t, []Point{
			{X: 1, Y: 2, Z: 3},
			{X: 4, Y: 5, Z: 6},
			{X: -1, Y: -2, Z: -3},
		}, points)
	}
}

func TestDecode_Empty(t *testing.T) {
	points, err := Decode(&sensormsgs.PointCloud2{})
	require.NoError(t, err)
	require.Nil(t, points)

	// Rows with no points.
	points, err = Decode(&sensormsgs.PointCloud2{Height: 4, Fields: xyzFields(), PointStep: 12})
	require.NoError(t, err)
	require.Nil(t, points)
}

func TestDecode_ClusterIDAndExtras(t *testing.T) {
	pcd := &sensormsgs.PointCloud2{
		Height: 1,
		Width:  2,
		Fields: []sensormsgs.PointField{
			{Name: "x", Offset: 0, Datatype: sensormsgs.Float32, Count: 1},
			{Name: "y", Offset: 4, Datatype: sensormsgs.Float32, Count: 1},
			{Name: "z", Offset: 8, Datatype: sensormsgs.Float32, Count: 1},
			{Name: "cluster_id", Offset: 12, Datatype: sensormsgs.Int32, Count: 1},
			{Name: "intensity", Offset: 16, Datatype: sensormsgs.Uint16, Count: 1},
			{Name: "rgb", Offset: 18, Datatype: 42, Count: 1},
		},
		PointStep: 20,
		RowStep:   40,
	}

	for i := range 2 {
		row := make([]byte, 20)
		binary.LittleEndian.PutUint32(row[0:], math.Float32bits(float32(i)+0.5))
		binary.LittleEndian.PutUint32(row[12:], uint32(int32(-7+i))) //nolint:gosec
		binary.LittleEndian.PutUint16(row[16:], uint16(100*(i+1)))
		row[18], row[19] = 0xff, 0xff
		pcd.Data = append(pcd.Data, row...)
	}

	points, err := Decode(pcd)
	require.NoError(t, err)
	require.Equal(t, []Point{
		{X: 0.5, ClusterID: -7, Fields: map[string]float64{"intensity": 100}},
		{X: 1.5, ClusterID: -6, Fields: map[string]float64{"intensity": 200}},
	}, points)
}

func TestDecode_RowPadding(t *testing.T) {
	// Two rows of one point each, every row padded to 16 bytes.
	pcd := &sensormsgs.PointCloud2{
		Height:    2,
		Width:     1,
		Fields:    []sensormsgs.PointField{{Name: "x", Offset: 0, Datatype: sensormsgs.Float64, Count: 1}},
		PointStep: 8,
		RowStep:   16,
	}
	pcd.Data = binary.LittleEndian.AppendUint64(pcd.Data, math.Float64bits(1.25))
	pcd.Data = append(pcd.Data, 0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef)
	pcd.Data = binary.LittleEndian.AppendUint64(pcd.Data, math.Float64bits(-2.5))

	// The last row needs no padding.
	points, err := Decode(pcd)
	require.NoError(t, err)
	require.Equal(t, []Point{{X: 1.25}, {X: -2.5}}, points)
}

func TestDecode_Errors(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		_, err := Decode(nil)
		require.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("short data", func(t *testing.T) {
		pcd := xyzCloud([][3]float32{{1, 2, 3}, {4, 5, 6}}, false)
		pcd.Data = pcd.Data[:20]
		_, err := Decode(pcd)
		require.ErrorIs(t, err, errs.ErrMalformed)
		require.ErrorIs(t, err, errs.ErrTruncated)
	})

	t.Run("row step too small", func(t *testing.T) {
		pcd := xyzCloud([][3]float32{{1, 2, 3}, {4, 5, 6}}, false)
		pcd.RowStep = 12
		_, err := Decode(pcd)
		require.ErrorIs(t, err, errs.ErrInvalidStride)
	})

	t.Run("field past point step", func(t *testing.T) {
		pcd := xyzCloud([][3]float32{{1, 2, 3}}, false)
		pcd.PointStep = 10
		_, err := Decode(pcd)
		require.ErrorIs(t, err, errs.ErrFieldOutOfBounds)
	})

	t.Run("zero point step", func(t *testing.T) {
		pcd := xyzCloud([][3]float32{{1, 2, 3}}, false)
		pcd.PointStep = 0
		_, err := Decode(pcd)
		require.ErrorIs(t, err, errs.ErrMalformed)
	})
}

func TestDecode_AfterCDRRoundTrip(t *testing.T) {
	src := xyzCloud([][3]float32{{0.25, 0.5, 0.75}, {8, 16, 32}}, true)
	src.Header.FrameID = "lidar"

	data := cdrtest.Encode(t, src)
	pcd, err := cdrtest.Decode[sensormsgs.PointCloud2](data)
	require.NoError(t, err)

	points, err := Decode(pcd)
	require.NoError(t, err)
	require.Equal(t, []Point{{X: 0.25, Y: 0.5, Z: 0.75}, {X: 8, Y: 16, Z: 32}}, points)
}

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan(xyzCloud(nil, false))
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y", "z"}, plan.Names())
	require.Equal(t, 12, plan.Stride())
}

func BenchmarkDecode(b *testing.B) {
	input := make([][3]float32, 4096)
	for i := range input {
		input[i] = [3]float32{float32(i), float32(i) * 2, float32(i) * 3}
	}
	pcd := xyzCloud(input, false)

	b.ReportAllocs()
	for b.Loop() {
		if _, err := Decode(pcd); err != nil {
			b.Fatal(err)
		}
	}
}

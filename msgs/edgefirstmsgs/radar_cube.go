package edgefirstmsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// RadarCube dimension labels used in Layout.
const (
	DimensionUndefined uint8 = 0
	DimensionRange     uint8 = 1
	DimensionDoppler   uint8 = 2
	DimensionAzimuth   uint8 = 3
	DimensionElevation uint8 = 4
	DimensionRxChannel uint8 = 5
	DimensionSequence  uint8 = 6
)

// RadarCube is a multi-dimensional radar measurement. Layout labels each
// axis of Shape, Scales converts bin indices to physical units, and Cube
// holds the samples in row-major order. When IsComplex is set, the innermost
// axis interleaves real and imaginary parts.
type RadarCube struct {
	Header    stdmsgs.Header `json:"header" yaml:"header"`
	Timestamp uint64         `json:"timestamp" yaml:"timestamp"`
	Layout    []uint8        `json:"layout" yaml:"layout"`
	Shape     []uint16       `json:"shape" yaml:"shape"`
	Scales    []float32      `json:"scales" yaml:"scales"`
	Cube      []int16        `json:"cube" yaml:"cube"`
	IsComplex bool           `json:"is_complex" yaml:"is_complex"`
}

var _ encoding.Message = (*RadarCube)(nil)

// Elements returns the product of Shape, the sample count Cube should hold.
func (c *RadarCube) Elements() int {
	if len(c.Shape) == 0 {
		return 0
	}

	n := 1
	for _, s := range c.Shape {
		n *= int(s)
	}

	return n
}

func (*RadarCube) SchemaName() string {
	return "edgefirst_msgs/msg/RadarCube"
}

func (c *RadarCube) MarshalCDR(e *encoding.Encoder) {
	c.Header.MarshalCDR(e)
	e.WriteUint64(c.Timestamp)
	encoding.WriteSequence(e, c.Layout)
	encoding.WriteSequence(e, c.Shape)
	encoding.WriteSequence(e, c.Scales)
	encoding.WriteSequence(e, c.Cube)
	e.WriteBool(c.IsComplex)
}

func (c *RadarCube) UnmarshalCDR(d *encoding.Decoder) error {
	if err := c.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if c.Timestamp, err = d.ReadUint64(); err != nil {
		return err
	}

	if c.Layout, err = encoding.ReadSequence[uint8](d); err != nil {
		return err
	}

	if c.Shape, err = encoding.ReadSequence[uint16](d); err != nil {
		return err
	}

	if c.Scales, err = encoding.ReadSequence[float32](d); err != nil {
		return err
	}

	if c.Cube, err = encoding.ReadSequence[int16](d); err != nil {
		return err
	}

	c.IsComplex, err = d.ReadBool()

	return err
}

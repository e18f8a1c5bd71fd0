package sensormsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/format"
	"github.com/arloliu/cdr/layout"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// PointField datatype tags.
const (
	Int8    = format.DatatypeInt8
	Uint8   = format.DatatypeUint8
	Int16   = format.DatatypeInt16
	Uint16  = format.DatatypeUint16
	Int32   = format.DatatypeInt32
	Uint32  = format.DatatypeUint32
	Float32 = format.DatatypeFloat32
	Float64 = format.DatatypeFloat64
)

// PointField describes one channel of a PointCloud2 point.
type PointField struct {
	Name     string          `json:"name" yaml:"name"`
	Offset   uint32          `json:"offset" yaml:"offset"`
	Datatype format.Datatype `json:"datatype" yaml:"datatype"`
	Count    uint32          `json:"count" yaml:"count"`
}

var _ encoding.Message = (*PointField)(nil)

// Descriptor converts the field into a layout column descriptor.
func (f PointField) Descriptor() layout.FieldDescriptor {
	return layout.FieldDescriptor{
		Name:     f.Name,
		Offset:   f.Offset,
		Datatype: f.Datatype,
		Count:    f.Count,
	}
}

func (*PointField) SchemaName() string {
	return "sensor_msgs/msg/PointField"
}

func (f *PointField) MarshalCDR(e *encoding.Encoder) {
	e.WriteString(f.Name)
	e.WriteUint32(f.Offset)
	e.WriteUint8(uint8(f.Datatype))
	e.WriteUint32(f.Count)
}

func (f *PointField) UnmarshalCDR(d *encoding.Decoder) error {
	var err error
	if f.Name, err = d.ReadString(); err != nil {
		return err
	}

	if f.Offset, err = d.ReadUint32(); err != nil {
		return err
	}

	tag, err := d.ReadUint8()
	if err != nil {
		return err
	}
	f.Datatype = format.Datatype(tag)

	f.Count, err = d.ReadUint32()

	return err
}

// PointCloud2 is a collection of N-dimensional points stored as fixed-stride
// rows described by Fields. Data holds Height rows of RowStep bytes, each
// holding Width points of PointStep bytes.
type PointCloud2 struct {
	Header      stdmsgs.Header `json:"header" yaml:"header"`
	Height      uint32         `json:"height" yaml:"height"`
	Width       uint32         `json:"width" yaml:"width"`
	Fields      []PointField   `json:"fields" yaml:"fields"`
	IsBigEndian bool           `json:"is_bigendian" yaml:"is_bigendian"`
	PointStep   uint32         `json:"point_step" yaml:"point_step"`
	RowStep     uint32         `json:"row_step" yaml:"row_step"`
	Data        []byte         `json:"data" yaml:"data"`
	IsDense     bool           `json:"is_dense" yaml:"is_dense"`
}

var _ encoding.Message = (*PointCloud2)(nil)

// Descriptors returns the layout descriptors of every field.
func (p *PointCloud2) Descriptors() []layout.FieldDescriptor {
	out := make([]layout.FieldDescriptor, len(p.Fields))
	for i, f := range p.Fields {
		out[i] = f.Descriptor()
	}

	return out
}

// Points returns the number of points the header declares.
func (p *PointCloud2) Points() int {
	return int(p.Height) * int(p.Width)
}

func (*PointCloud2) SchemaName() string {
	return "sensor_msgs/msg/PointCloud2"
}

func (p *PointCloud2) MarshalCDR(e *encoding.Encoder) {
	p.Header.MarshalCDR(e)
	e.WriteUint32(p.Height)
	e.WriteUint32(p.Width)
	encoding.WriteStructs(e, p.Fields)
	e.WriteBool(p.IsBigEndian)
	e.WriteUint32(p.PointStep)
	e.WriteUint32(p.RowStep)
	e.WriteBytes(p.Data)
	e.WriteBool(p.IsDense)
}

func (p *PointCloud2) UnmarshalCDR(d *encoding.Decoder) error {
	if err := p.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if p.Height, err = d.ReadUint32(); err != nil {
		return err
	}

	if p.Width, err = d.ReadUint32(); err != nil {
		return err
	}

	if p.Fields, err = encoding.ReadStructs[PointField](d); err != nil {
		return err
	}

	if p.IsBigEndian, err = d.ReadBool(); err != nil {
		return err
	}

	if p.PointStep, err = d.ReadUint32(); err != nil {
		return err
	}

	if p.RowStep, err = d.ReadUint32(); err != nil {
		return err
	}

	if p.Data, err = d.ReadBytes(); err != nil {
		return err
	}

	p.IsDense, err = d.ReadBool()

	return err
}

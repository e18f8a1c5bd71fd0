package geometrymsgs

import (
	"github.com/arloliu/cdr/encoding"
)

// Vector3 is a free vector in 3-space.
type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var _ encoding.Message = (*Vector3)(nil)

func (*Vector3) SchemaName() string {
	return "geometry_msgs/msg/Vector3"
}

func (v *Vector3) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat64(v.X)
	e.WriteFloat64(v.Y)
	e.WriteFloat64(v.Z)
}

func (v *Vector3) UnmarshalCDR(d *encoding.Decoder) error {
	var xyz [3]float64
	if err := encoding.ReadArrayInto(d, xyz[:]); err != nil {
		return err
	}
	v.X, v.Y, v.Z = xyz[0], xyz[1], xyz[2]

	return nil
}

// Point is a position in 3-space.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

var _ encoding.Message = (*Point)(nil)

func (*Point) SchemaName() string {
	return "geometry_msgs/msg/Point"
}

func (p *Point) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat64(p.X)
	e.WriteFloat64(p.Y)
	e.WriteFloat64(p.Z)
}

func (p *Point) UnmarshalCDR(d *encoding.Decoder) error {
	var xyz [3]float64
	if err := encoding.ReadArrayInto(d, xyz[:]); err != nil {
		return err
	}
	p.X, p.Y, p.Z = xyz[0], xyz[1], xyz[2]

	return nil
}

// Point32 is a single-precision Point, used where memory matters more than range.
type Point32 struct {
	X float32 `json:"x" yaml:"x"`
	Y float32 `json:"y" yaml:"y"`
	Z float32 `json:"z" yaml:"z"`
}

var _ encoding.Message = (*Point32)(nil)

func (*Point32) SchemaName() string {
	return "geometry_msgs/msg/Point32"
}

func (p *Point32) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat32(p.X)
	e.WriteFloat32(p.Y)
	e.WriteFloat32(p.Z)
}

func (p *Point32) UnmarshalCDR(d *encoding.Decoder) error {
	var xyz [3]float32
	if err := encoding.ReadArrayInto(d, xyz[:]); err != nil {
		return err
	}
	p.X, p.Y, p.Z = xyz[0], xyz[1], xyz[2]

	return nil
}

// Quaternion is an orientation. The identity rotation is {0, 0, 0, 1}.
type Quaternion struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
	W float64 `json:"w" yaml:"w"`
}

var _ encoding.Message = (*Quaternion)(nil)

// IdentityQuaternion returns the rotation that leaves vectors unchanged.
func IdentityQuaternion() Quaternion {
	return Quaternion{W: 1}
}

func (*Quaternion) SchemaName() string {
	return "geometry_msgs/msg/Quaternion"
}

func (q *Quaternion) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat64(q.X)
	e.WriteFloat64(q.Y)
	e.WriteFloat64(q.Z)
	e.WriteFloat64(q.W)
}

func (q *Quaternion) UnmarshalCDR(d *encoding.Decoder) error {
	var v [4]float64
	if err := encoding.ReadArrayInto(d, v[:]); err != nil {
		return err
	}
	q.X, q.Y, q.Z, q.W = v[0], v[1], v[2], v[3]

	return nil
}

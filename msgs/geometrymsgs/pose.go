package geometrymsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Pose is a position plus an orientation.
type Pose struct {
	Position    Point      `json:"position" yaml:"position"`
	Orientation Quaternion `json:"orientation" yaml:"orientation"`
}

var _ encoding.Message = (*Pose)(nil)

func (*Pose) SchemaName() string {
	return "geometry_msgs/msg/Pose"
}

func (p *Pose) MarshalCDR(e *encoding.Encoder) {
	p.Position.MarshalCDR(e)
	p.Orientation.MarshalCDR(e)
}

func (p *Pose) UnmarshalCDR(d *encoding.Decoder) error {
	if err := p.Position.UnmarshalCDR(d); err != nil {
		return err
	}

	return p.Orientation.UnmarshalCDR(d)
}

// Pose2D is a planar position and heading in radians.
type Pose2D struct {
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Theta float64 `json:"theta" yaml:"theta"`
}

var _ encoding.Message = (*Pose2D)(nil)

func (*Pose2D) SchemaName() string {
	return "geometry_msgs/msg/Pose2D"
}

func (p *Pose2D) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat64(p.X)
	e.WriteFloat64(p.Y)
	e.WriteFloat64(p.Theta)
}

func (p *Pose2D) UnmarshalCDR(d *encoding.Decoder) error {
	var v [3]float64
	if err := encoding.ReadArrayInto(d, v[:]); err != nil {
		return err
	}
	p.X, p.Y, p.Theta = v[0], v[1], v[2]

	return nil
}

// Transform is the translation and rotation from one frame to another.
type Transform struct {
	Translation Vector3    `json:"translation" yaml:"translation"`
	Rotation    Quaternion `json:"rotation" yaml:"rotation"`
}

var _ encoding.Message = (*Transform)(nil)

func (*Transform) SchemaName() string {
	return "geometry_msgs/msg/Transform"
}

func (t *Transform) MarshalCDR(e *encoding.Encoder) {
	t.Translation.MarshalCDR(e)
	t.Rotation.MarshalCDR(e)
}

func (t *Transform) UnmarshalCDR(d *encoding.Decoder) error {
	if err := t.Translation.UnmarshalCDR(d); err != nil {
		return err
	}

	return t.Rotation.UnmarshalCDR(d)
}

// TransformStamped places a Transform from Header.FrameID to ChildFrameID in time.
type TransformStamped struct {
	Header       stdmsgs.Header `json:"header" yaml:"header"`
	ChildFrameID string         `json:"child_frame_id" yaml:"child_frame_id"`
	Transform    Transform      `json:"transform" yaml:"transform"`
}

var _ encoding.Message = (*TransformStamped)(nil)

func (*TransformStamped) SchemaName() string {
	return "geometry_msgs/msg/TransformStamped"
}

func (t *TransformStamped) MarshalCDR(e *encoding.Encoder) {
	t.Header.MarshalCDR(e)
	e.WriteString(t.ChildFrameID)
	t.Transform.MarshalCDR(e)
}

func (t *TransformStamped) UnmarshalCDR(d *encoding.Decoder) error {
	if err := t.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if t.ChildFrameID, err = d.ReadString(); err != nil {
		return err
	}

	return t.Transform.UnmarshalCDR(d)
}

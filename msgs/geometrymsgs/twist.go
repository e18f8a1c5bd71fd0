package geometrymsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Twist is a velocity split into linear and angular parts.
type Twist struct {
	Linear  Vector3 `json:"linear" yaml:"linear"`
	Angular Vector3 `json:"angular" yaml:"angular"`
}

var _ encoding.Message = (*Twist)(nil)

func (*Twist) SchemaName() string {
	return "geometry_msgs/msg/Twist"
}

func (t *Twist) MarshalCDR(e *encoding.Encoder) {
	t.Linear.MarshalCDR(e)
	t.Angular.MarshalCDR(e)
}

func (t *Twist) UnmarshalCDR(d *encoding.Decoder) error {
	if err := t.Linear.UnmarshalCDR(d); err != nil {
		return err
	}

	return t.Angular.UnmarshalCDR(d)
}

// TwistStamped is a Twist with a reference frame and timestamp.
type TwistStamped struct {
	Header stdmsgs.Header `json:"header" yaml:"header"`
	Twist  Twist          `json:"twist" yaml:"twist"`
}

var _ encoding.Message = (*TwistStamped)(nil)

func (*TwistStamped) SchemaName() string {
	return "geometry_msgs/msg/TwistStamped"
}

func (t *TwistStamped) MarshalCDR(e *encoding.Encoder) {
	t.Header.MarshalCDR(e)
	t.Twist.MarshalCDR(e)
}

func (t *TwistStamped) UnmarshalCDR(d *encoding.Decoder) error {
	if err := t.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	return t.Twist.UnmarshalCDR(d)
}

// Accel is an acceleration split into linear and angular parts.
type Accel struct {
	Linear  Vector3 `json:"linear" yaml:"linear"`
	Angular Vector3 `json:"angular" yaml:"angular"`
}

var _ encoding.Message = (*Accel)(nil)

func (*Accel) SchemaName() string {
	return "geometry_msgs/msg/Accel"
}

func (a *Accel) MarshalCDR(e *encoding.Encoder) {
	a.Linear.MarshalCDR(e)
	a.Angular.MarshalCDR(e)
}

func (a *Accel) UnmarshalCDR(d *encoding.Decoder) error {
	if err := a.Linear.UnmarshalCDR(d); err != nil {
		return err
	}

	return a.Angular.UnmarshalCDR(d)
}

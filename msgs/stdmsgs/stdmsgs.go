// Package stdmsgs holds std_msgs records plus the small rosgraph and service
// framing types that travel alongside them.
package stdmsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/builtininterfaces"
)

// Header carries the acquisition time and coordinate frame of a stamped record.
type Header struct {
	Stamp   builtininterfaces.Time `json:"stamp" yaml:"stamp"`
	FrameID string                 `json:"frame_id" yaml:"frame_id"`
}

var _ encoding.Message = (*Header)(nil)

func (*Header) SchemaName() string {
	return "std_msgs/msg/Header"
}

func (h *Header) MarshalCDR(e *encoding.Encoder) {
	h.Stamp.MarshalCDR(e)
	e.WriteString(h.FrameID)
}

func (h *Header) UnmarshalCDR(d *encoding.Decoder) error {
	if err := h.Stamp.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	h.FrameID, err = d.ReadString()

	return err
}

// ColorRGBA is a color with components in [0, 1].
type ColorRGBA struct {
	R float32 `json:"r" yaml:"r"`
	G float32 `json:"g" yaml:"g"`
	B float32 `json:"b" yaml:"b"`
	A float32 `json:"a" yaml:"a"`
}

var _ encoding.Message = (*ColorRGBA)(nil)

func (*ColorRGBA) SchemaName() string {
	return "std_msgs/msg/ColorRGBA"
}

func (c *ColorRGBA) MarshalCDR(e *encoding.Encoder) {
	e.WriteFloat32(c.R)
	e.WriteFloat32(c.G)
	e.WriteFloat32(c.B)
	e.WriteFloat32(c.A)
}

func (c *ColorRGBA) UnmarshalCDR(d *encoding.Decoder) error {
	var v [4]float32
	if err := encoding.ReadArrayInto(d, v[:]); err != nil {
		return err
	}
	c.R, c.G, c.B, c.A = v[0], v[1], v[2], v[3]

	return nil
}

// Clock is the simulated-time broadcast of rosgraph_msgs.
type Clock struct {
	Clock builtininterfaces.Time `json:"clock" yaml:"clock"`
}

var _ encoding.Message = (*Clock)(nil)

func (*Clock) SchemaName() string {
	return "rosgraph_msgs/msg/Clock"
}

func (c *Clock) MarshalCDR(e *encoding.Encoder) {
	c.Clock.MarshalCDR(e)
}

func (c *Clock) UnmarshalCDR(d *encoding.Decoder) error {
	return c.Clock.UnmarshalCDR(d)
}

// ServiceHeader prefixes service requests and replies so that a reply can be
// matched to its request. It is framing, not a message, and has no schema name.
type ServiceHeader struct {
	GUID int64  `json:"guid" yaml:"guid"`
	Seq  uint64 `json:"seq" yaml:"seq"`
}

var (
	_ encoding.Marshaler   = (*ServiceHeader)(nil)
	_ encoding.Unmarshaler = (*ServiceHeader)(nil)
)

func (s *ServiceHeader) MarshalCDR(e *encoding.Encoder) {
	e.WriteInt64(s.GUID)
	e.WriteUint64(s.Seq)
}

func (s *ServiceHeader) UnmarshalCDR(d *encoding.Decoder) error {
	var err error
	if s.GUID, err = d.ReadInt64(); err != nil {
		return err
	}
	s.Seq, err = d.ReadUint64()

	return err
}

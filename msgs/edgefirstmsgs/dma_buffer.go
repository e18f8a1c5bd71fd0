package edgefirstmsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// DmaBuffer describes a frame shared through a DMA buffer file descriptor
// owned by process PID. FD is -1 when no buffer is attached.
type DmaBuffer struct {
	Header stdmsgs.Header `json:"header" yaml:"header"`
	PID    uint32         `json:"pid" yaml:"pid"`
	FD     int32          `json:"fd" yaml:"fd"`
	Width  uint32         `json:"width" yaml:"width"`
	Height uint32         `json:"height" yaml:"height"`
	Stride uint32         `json:"stride" yaml:"stride"`
	Fourcc uint32         `json:"fourcc" yaml:"fourcc"`
	Length uint32         `json:"length" yaml:"length"`
}

var _ encoding.Message = (*DmaBuffer)(nil)

// Fourcc packs a four-character pixel format code such as "YUYV".
func Fourcc(code string) uint32 {
	var v uint32
	for i := 0; i < 4 && i < len(code); i++ {
		v |= uint32(code[i]) << (8 * i)
	}

	return v
}

func (*DmaBuffer) SchemaName() string {
	return "edgefirst_msgs/msg/DmaBuffer"
}

func (b *DmaBuffer) MarshalCDR(e *encoding.Encoder) {
	b.Header.MarshalCDR(e)
	e.WriteUint32(b.PID)
	e.WriteInt32(b.FD)
	encoding.WriteArray(e, []uint32{b.Width, b.Height, b.Stride, b.Fourcc, b.Length})
}

func (b *DmaBuffer) UnmarshalCDR(d *encoding.Decoder) error {
	if err := b.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if b.PID, err = d.ReadUint32(); err != nil {
		return err
	}

	if b.FD, err = d.ReadInt32(); err != nil {
		return err
	}

	var v [5]uint32
	if err := encoding.ReadArrayInto(d, v[:]); err != nil {
		return err
	}
	b.Width, b.Height, b.Stride, b.Fourcc, b.Length = v[0], v[1], v[2], v[3], v[4]

	return nil
}

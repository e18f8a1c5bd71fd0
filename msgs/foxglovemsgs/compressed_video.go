// Package foxglovemsgs holds foxglove_msgs records.
package foxglovemsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// CompressedVideo is one frame of an encoded video stream. Format names the
// codec, such as "h264" or "h265"; Data holds the frame's access units.
type CompressedVideo struct {
	Header stdmsgs.Header `json:"header" yaml:"header"`
	Data   []byte         `json:"data" yaml:"data"`
	Format string         `json:"format" yaml:"format"`
}

var _ encoding.Message = (*CompressedVideo)(nil)

func (*CompressedVideo) SchemaName() string {
	return "foxglove_msgs/msg/CompressedVideo"
}

func (v *CompressedVideo) MarshalCDR(e *encoding.Encoder) {
	v.Header.MarshalCDR(e)
	e.WriteBytes(v.Data)
	e.WriteString(v.Format)
}

func (v *CompressedVideo) UnmarshalCDR(d *encoding.Decoder) error {
	if err := v.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if v.Data, err = d.ReadBytes(); err != nil {
		return err
	}
	v.Format, err = d.ReadString()

	return err
}

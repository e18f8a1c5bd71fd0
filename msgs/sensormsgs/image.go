package sensormsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Image is an uncompressed image. Data holds Height rows of Step bytes.
type Image struct {
	Header      stdmsgs.Header `json:"header" yaml:"header"`
	Height      uint32         `json:"height" yaml:"height"`
	Width       uint32         `json:"width" yaml:"width"`
	Encoding    string         `json:"encoding" yaml:"encoding"`
	IsBigEndian uint8          `json:"is_bigendian" yaml:"is_bigendian"`
	Step        uint32         `json:"step" yaml:"step"`
	Data        []byte         `json:"data" yaml:"data"`
}

var _ encoding.Message = (*Image)(nil)

func (*Image) SchemaName() string {
	return "sensor_msgs/msg/Image"
}

func (m *Image) MarshalCDR(e *encoding.Encoder) {
	m.Header.MarshalCDR(e)
	e.WriteUint32(m.Height)
	e.WriteUint32(m.Width)
	e.WriteString(m.Encoding)
	e.WriteUint8(m.IsBigEndian)
	e.WriteUint32(m.Step)
	e.WriteBytes(m.Data)
}

func (m *Image) UnmarshalCDR(d *encoding.Decoder) error {
	if err := m.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if m.Height, err = d.ReadUint32(); err != nil {
		return err
	}

	if m.Width, err = d.ReadUint32(); err != nil {
		return err
	}

	if m.Encoding, err = d.ReadString(); err != nil {
		return err
	}

	if m.IsBigEndian, err = d.ReadUint8(); err != nil {
		return err
	}

	if m.Step, err = d.ReadUint32(); err != nil {
		return err
	}

	m.Data, err = d.ReadBytes()

	return err
}

// CompressedImage is an image in a container format such as "jpeg" or "png".
type CompressedImage struct {
	Header stdmsgs.Header `json:"header" yaml:"header"`
	Format string         `json:"format" yaml:"format"`
	Data   []byte         `json:"data" yaml:"data"`
}

var _ encoding.Message = (*CompressedImage)(nil)

func (*CompressedImage) SchemaName() string {
	return "sensor_msgs/msg/CompressedImage"
}

func (m *CompressedImage) MarshalCDR(e *encoding.Encoder) {
	m.Header.MarshalCDR(e)
	e.WriteString(m.Format)
	e.WriteBytes(m.Data)
}

func (m *CompressedImage) UnmarshalCDR(d *encoding.Decoder) error {
	if err := m.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if m.Format, err = d.ReadString(); err != nil {
		return err
	}
	m.Data, err = d.ReadBytes()

	return err
}

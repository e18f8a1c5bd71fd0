package sensormsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// RegionOfInterest is a sub-window of an image.
type RegionOfInterest struct {
	XOffset   uint32 `json:"x_offset" yaml:"x_offset"`
	YOffset   uint32 `json:"y_offset" yaml:"y_offset"`
	Height    uint32 `json:"height" yaml:"height"`
	Width     uint32 `json:"width" yaml:"width"`
	DoRectify bool   `json:"do_rectify" yaml:"do_rectify"`
}

var _ encoding.Message = (*RegionOfInterest)(nil)

func (*RegionOfInterest) SchemaName() string {
	return "sensor_msgs/msg/RegionOfInterest"
}

func (r *RegionOfInterest) MarshalCDR(e *encoding.Encoder) {
	e.WriteUint32(r.XOffset)
	e.WriteUint32(r.YOffset)
	e.WriteUint32(r.Height)
	e.WriteUint32(r.Width)
	e.WriteBool(r.DoRectify)
}

func (r *RegionOfInterest) UnmarshalCDR(d *encoding.Decoder) error {
	var v [4]uint32
	if err := encoding.ReadArrayInto(d, v[:]); err != nil {
		return err
	}
	r.XOffset, r.YOffset, r.Height, r.Width = v[0], v[1], v[2], v[3]

	var err error
	r.DoRectify, err = d.ReadBool()

	return err
}

// CameraInfo holds the calibration of a pinhole camera. K, R and P are
// row-major matrices and encode as fixed arrays with no count prefix.
type CameraInfo struct {
	Header          stdmsgs.Header   `json:"header" yaml:"header"`
	Height          uint32           `json:"height" yaml:"height"`
	Width           uint32           `json:"width" yaml:"width"`
	DistortionModel string           `json:"distortion_model" yaml:"distortion_model"`
	D               []float64        `json:"d" yaml:"d"`
	K               [9]float64       `json:"k" yaml:"k"`
	R               [9]float64       `json:"r" yaml:"r"`
	P               [12]float64      `json:"p" yaml:"p"`
	BinningX        uint32           `json:"binning_x" yaml:"binning_x"`
	BinningY        uint32           `json:"binning_y" yaml:"binning_y"`
	ROI             RegionOfInterest `json:"roi" yaml:"roi"`
}

var _ encoding.Message = (*CameraInfo)(nil)

func (*CameraInfo) SchemaName() string {
	return "sensor_msgs/msg/CameraInfo"
}

func (c *CameraInfo) MarshalCDR(e *encoding.Encoder) {
	c.Header.MarshalCDR(e)
	e.WriteUint32(c.Height)
	e.WriteUint32(c.Width)
	e.WriteString(c.DistortionModel)
	encoding.WriteSequence(e, c.D)
	encoding.WriteArray(e, c.K[:])
	encoding.WriteArray(e, c.R[:])
	encoding.WriteArray(e, c.P[:])
	e.WriteUint32(c.BinningX)
	e.WriteUint32(c.BinningY)
	c.ROI.MarshalCDR(e)
}

func (c *CameraInfo) UnmarshalCDR(d *encoding.Decoder) error {
	if err := c.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	var err error
	if c.Height, err = d.ReadUint32(); err != nil {
		return err
	}

	if c.Width, err = d.ReadUint32(); err != nil {
		return err
	}

	if c.DistortionModel, err = d.ReadString(); err != nil {
		return err
	}

	if c.D, err = encoding.ReadSequence[float64](d); err != nil {
		return err
	}

	for _, m := range [][]float64{c.K[:], c.R[:], c.P[:]} {
		if err := encoding.ReadArrayInto(d, m); err != nil {
			return err
		}
	}

	if c.BinningX, err = d.ReadUint32(); err != nil {
		return err
	}

	if c.BinningY, err = d.ReadUint32(); err != nil {
		return err
	}

	return c.ROI.UnmarshalCDR(d)
}

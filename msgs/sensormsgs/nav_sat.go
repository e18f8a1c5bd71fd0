package sensormsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// NavSatStatus fix states.
const (
	StatusNoFix   int8 = -1
	StatusFix     int8 = 0
	StatusSBASFix int8 = 1
	StatusGBASFix int8 = 2
)

// NavSatStatus service bits.
const (
	ServiceGPS     uint16 = 1
	ServiceGLONASS uint16 = 2
	ServiceCompass uint16 = 4 // includes BeiDou
	ServiceGalileo uint16 = 8
)

// NavSatFix position covariance types.
const (
	CovarianceTypeUnknown       uint8 = 0
	CovarianceTypeApproximated  uint8 = 1
	CovarianceTypeDiagonalKnown uint8 = 2
	CovarianceTypeKnown         uint8 = 3
)

// NavSatStatus describes the quality of a satellite fix.
type NavSatStatus struct {
	Status  int8   `json:"status" yaml:"status"`
	Service uint16 `json:"service" yaml:"service"`
}

var _ encoding.Message = (*NavSatStatus)(nil)

func (*NavSatStatus) SchemaName() string {
	return "sensor_msgs/msg/NavSatStatus"
}

func (s *NavSatStatus) MarshalCDR(e *encoding.Encoder) {
	e.WriteInt8(s.Status)
	e.WriteUint16(s.Service)
}

func (s *NavSatStatus) UnmarshalCDR(d *encoding.Decoder) error {
	var err error
	if s.Status, err = d.ReadInt8(); err != nil {
		return err
	}
	s.Service, err = d.ReadUint16()

	return err
}

// NavSatFix is a WGS 84 position from a satellite receiver.
type NavSatFix struct {
	Header                 stdmsgs.Header `json:"header" yaml:"header"`
	Status                 NavSatStatus   `json:"status" yaml:"status"`
	Latitude               float64        `json:"latitude" yaml:"latitude"`
	Longitude              float64        `json:"longitude" yaml:"longitude"`
	Altitude               float64        `json:"altitude" yaml:"altitude"`
	PositionCovariance     [9]float64     `json:"position_covariance" yaml:"position_covariance"`
	PositionCovarianceType uint8          `json:"position_covariance_type" yaml:"position_covariance_type"`
}

var _ encoding.Message = (*NavSatFix)(nil)

func (*NavSatFix) SchemaName() string {
	return "sensor_msgs/msg/NavSatFix"
}

func (f *NavSatFix) MarshalCDR(e *encoding.Encoder) {
	f.Header.MarshalCDR(e)
	f.Status.MarshalCDR(e)
	e.WriteFloat64(f.Latitude)
	e.WriteFloat64(f.Longitude)
	e.WriteFloat64(f.Altitude)
	encoding.WriteArray(e, f.PositionCovariance[:])
	e.WriteUint8(f.PositionCovarianceType)
}

func (f *NavSatFix) UnmarshalCDR(d *encoding.Decoder) error {
	if err := f.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	if err := f.Status.UnmarshalCDR(d); err != nil {
		return err
	}

	var pos [3]float64
	if err := encoding.ReadArrayInto(d, pos[:]); err != nil {
		return err
	}
	f.Latitude, f.Longitude, f.Altitude = pos[0], pos[1], pos[2]

	if err := encoding.ReadArrayInto(d, f.PositionCovariance[:]); err != nil {
		return err
	}

	var err error
	f.PositionCovarianceType, err = d.ReadUint8()

	return err
}

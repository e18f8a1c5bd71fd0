package sensormsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/geometrymsgs"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Imu is one inertial measurement. A covariance whose first element is -1
// marks the corresponding estimate as unavailable.
type Imu struct {
	Header                       stdmsgs.Header          `json:"header" yaml:"header"`
	Orientation                  geometrymsgs.Quaternion `json:"orientation" yaml:"orientation"`
	OrientationCovariance        [9]float64              `json:"orientation_covariance" yaml:"orientation_covariance"`
	AngularVelocity              geometrymsgs.Vector3    `json:"angular_velocity" yaml:"angular_velocity"`
	AngularVelocityCovariance    [9]float64              `json:"angular_velocity_covariance" yaml:"angular_velocity_covariance"`
	LinearAcceleration           geometrymsgs.Vector3    `json:"linear_acceleration" yaml:"linear_acceleration"`
	LinearAccelerationCovariance [9]float64              `json:"linear_acceleration_covariance" yaml:"linear_acceleration_covariance"`
}

var _ encoding.Message = (*Imu)(nil)

func (*Imu) SchemaName() string {
	return "sensor_msgs/msg/Imu"
}

func (m *Imu) MarshalCDR(e *encoding.Encoder) {
	m.Header.MarshalCDR(e)
	m.Orientation.MarshalCDR(e)
	encoding.WriteArray(e, m.OrientationCovariance[:])
	m.AngularVelocity.MarshalCDR(e)
	encoding.WriteArray(e, m.AngularVelocityCovariance[:])
	m.LinearAcceleration.MarshalCDR(e)
	encoding.WriteArray(e, m.LinearAccelerationCovariance[:])
}

func (m *Imu) UnmarshalCDR(d *encoding.Decoder) error {
	if err := m.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	if err := m.Orientation.UnmarshalCDR(d); err != nil {
		return err
	}

	if err := encoding.ReadArrayInto(d, m.OrientationCovariance[:]); err != nil {
		return err
	}

	if err := m.AngularVelocity.UnmarshalCDR(d); err != nil {
		return err
	}

	if err := encoding.ReadArrayInto(d, m.AngularVelocityCovariance[:]); err != nil {
		return err
	}

	if err := m.LinearAcceleration.UnmarshalCDR(d); err != nil {
		return err
	}

	return encoding.ReadArrayInto(d, m.LinearAccelerationCovariance[:])
}

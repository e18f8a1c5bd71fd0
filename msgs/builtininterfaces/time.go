// Package builtininterfaces holds the builtin_interfaces time types embedded
// in nearly every other record.
package builtininterfaces

import (
	"time"

	"github.com/arloliu/cdr/encoding"
)

const nanosPerSecond = 1_000_000_000

// Time is an absolute timestamp as seconds and nanoseconds since the Unix epoch.
type Time struct {
	Sec     int32  `json:"sec" yaml:"sec"`
	Nanosec uint32 `json:"nanosec" yaml:"nanosec"`
}

var _ encoding.Message = (*Time)(nil)

// NewTime returns a Time from its two components.
func NewTime(sec int32, nanosec uint32) Time {
	return Time{Sec: sec, Nanosec: nanosec}
}

// TimeFromNanos splits a nanosecond count into seconds and nanoseconds.
func TimeFromNanos(nanos uint64) Time {
	return Time{
		Sec:     int32(nanos / nanosPerSecond),  //nolint:gosec
		Nanosec: uint32(nanos % nanosPerSecond), //nolint:gosec
	}
}

// TimeFromTime converts a time.Time.
func TimeFromTime(t time.Time) Time {
	return TimeFromNanos(uint64(t.UnixNano())) //nolint:gosec
}

// Nanos returns the timestamp as nanoseconds since the epoch.
func (t Time) Nanos() int64 {
	return int64(t.Sec)*nanosPerSecond + int64(t.Nanosec)
}

// Time converts to a time.Time in UTC.
func (t Time) Time() time.Time {
	return time.Unix(int64(t.Sec), int64(t.Nanosec)).UTC()
}

func (*Time) SchemaName() string {
	return "builtin_interfaces/msg/Time"
}

func (t *Time) MarshalCDR(e *encoding.Encoder) {
	e.WriteInt32(t.Sec)
	e.WriteUint32(t.Nanosec)
}

func (t *Time) UnmarshalCDR(d *encoding.Decoder) error {
	var err error
	if t.Sec, err = d.ReadInt32(); err != nil {
		return err
	}
	t.Nanosec, err = d.ReadUint32()

	return err
}

// Duration is a signed span of time as seconds and nanoseconds.
type Duration struct {
	Sec     int32  `json:"sec" yaml:"sec"`
	Nanosec uint32 `json:"nanosec" yaml:"nanosec"`
}

var _ encoding.Message = (*Duration)(nil)

// DurationFromStd converts a non-negative time.Duration.
func DurationFromStd(d time.Duration) Duration {
	return Duration{
		Sec:     int32(d / time.Second),                 //nolint:gosec
		Nanosec: uint32((d % time.Second).Nanoseconds()), //nolint:gosec
	}
}

// Std converts to a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d.Sec)*time.Second + time.Duration(d.Nanosec)
}

func (*Duration) SchemaName() string {
	return "builtin_interfaces/msg/Duration"
}

func (d *Duration) MarshalCDR(e *encoding.Encoder) {
	e.WriteInt32(d.Sec)
	e.WriteUint32(d.Nanosec)
}

func (d *Duration) UnmarshalCDR(dec *encoding.Decoder) error {
	var err error
	if d.Sec, err = dec.ReadInt32(); err != nil {
		return err
	}
	d.Nanosec, err = dec.ReadUint32()

	return err
}

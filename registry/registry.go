// Package registry maps ROS 2 schema names such as "sensor_msgs/msg/Image"
// to the record types that encode them.
//
// The registry is built once at package initialisation and is read-only
// afterwards, so every function is safe for concurrent use.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/hash"
	"github.com/arloliu/cdr/msgs/builtininterfaces"
	"github.com/arloliu/cdr/msgs/edgefirstmsgs"
	"github.com/arloliu/cdr/msgs/foxglovemsgs"
	"github.com/arloliu/cdr/msgs/geometrymsgs"
	"github.com/arloliu/cdr/msgs/sensormsgs"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Schema describes one registered record type.
type Schema struct {
	// Name is the full schema name, e.g. "geometry_msgs/msg/Pose".
	Name string
	// Package is the first path element, e.g. "geometry_msgs".
	Package string
	// Type is the last path element, e.g. "Pose".
	Type string
	// ID is the xxHash64 of Name.
	ID uint64

	factory func() encoding.Message
}

// New returns a zero value of the schema's record type.
func (s Schema) New() encoding.Message {
	return s.factory()
}

var factories = []func() encoding.Message{
	func() encoding.Message { return new(builtininterfaces.Time) },
	func() encoding.Message { return new(builtininterfaces.Duration) },

	func() encoding.Message { return new(stdmsgs.Header) },
	func() encoding.Message { return new(stdmsgs.ColorRGBA) },
	func() encoding.Message { return new(stdmsgs.Clock) },

	func() encoding.Message { return new(geometrymsgs.Vector3) },
	func() encoding.Message { return new(geometrymsgs.Point) },
	func() encoding.Message { return new(geometrymsgs.Point32) },
	func() encoding.Message { return new(geometrymsgs.Quaternion) },
	func() encoding.Message { return new(geometrymsgs.Pose) },
	func() encoding.Message { return new(geometrymsgs.Pose2D) },
	func() encoding.Message { return new(geometrymsgs.Transform) },
	func() encoding.Message { return new(geometrymsgs.TransformStamped) },
	func() encoding.Message { return new(geometrymsgs.Twist) },
	func() encoding.Message { return new(geometrymsgs.TwistStamped) },
	func() encoding.Message { return new(geometrymsgs.Accel) },

	func() encoding.Message { return new(sensormsgs.PointField) },
	func() encoding.Message { return new(sensormsgs.PointCloud2) },
	func() encoding.Message { return new(sensormsgs.Image) },
	func() encoding.Message { return new(sensormsgs.CompressedImage) },
	func() encoding.Message { return new(sensormsgs.RegionOfInterest) },
	func() encoding.Message { return new(sensormsgs.CameraInfo) },
	func() encoding.Message { return new(sensormsgs.NavSatStatus) },
	func() encoding.Message { return new(sensormsgs.NavSatFix) },
	func() encoding.Message { return new(sensormsgs.Imu) },

	func() encoding.Message { return new(edgefirstmsgs.Track) },
	func() encoding.Message { return new(edgefirstmsgs.Box) },
	func() encoding.Message { return new(edgefirstmsgs.Detect) },
	func() encoding.Message { return new(edgefirstmsgs.Mask) },
	func() encoding.Message { return new(edgefirstmsgs.DmaBuffer) },
	func() encoding.Message { return new(edgefirstmsgs.RadarCube) },

	func() encoding.Message { return new(foxglovemsgs.CompressedVideo) },
}

var (
	byName = make(map[string]Schema, len(factories))
	byID   = make(map[uint64]Schema, len(factories))
	names  []string
)

func init() {
	for _, f := range factories {
		name := f().SchemaName()
		pkg, typ, err := ParseSchema(name)
		if err != nil {
			panic(fmt.Sprintf("registry: %v", err))
		}

		s := Schema{Name: name, Package: pkg, Type: typ, ID: hash.ID(name), factory: f}
		if _, dup := byName[name]; dup {
			panic("registry: duplicate schema " + name)
		}
		if other, dup := byID[s.ID]; dup {
			panic(fmt.Sprintf("registry: id collision between %s and %s", name, other.Name))
		}

		byName[name] = s
		byID[s.ID] = s
		names = append(names, name)
	}
	slices.Sort(names)
}

// ParseSchema splits a schema name of the form "package/msg/Type".
//
// Returns:
//   - pkg: The package, e.g. "sensor_msgs"
//   - typ: The type name, e.g. "Image"
//   - err: invalid argument ErrInvalidSchemaName if the name has any other shape
func ParseSchema(name string) (pkg string, typ string, err error) {
	parts := strings.Split(name, "/")
	if len(parts) != 3 || parts[1] != "msg" || parts[0] == "" || parts[2] == "" {
		return "", "", errs.InvalidArgument("parse schema", fmt.Errorf("%w: %q", errs.ErrInvalidSchemaName, name))
	}

	return parts[0], parts[2], nil
}

// IsSupported reports whether name is well-formed and registered.
func IsSupported(name string) bool {
	_, ok := byName[name]
	return ok
}

// List returns every registered schema name in lexical order.
func List() []string {
	return slices.Clone(names)
}

// ID returns the 64-bit identifier of a schema name. It is defined for any
// string, registered or not.
func ID(name string) uint64 {
	return hash.ID(name)
}

// Lookup returns the registered schema with the given name.
func Lookup(name string) (Schema, bool) {
	s, ok := byName[name]
	return s, ok
}

// LookupID returns the registered schema with the given identifier.
func LookupID(id uint64) (Schema, bool) {
	s, ok := byID[id]
	return s, ok
}

// New returns a zero value of the record type registered under name.
//
// Returns:
//   - encoding.Message: Pointer to a new zero record
//   - error: invalid argument for a malformed name, unsupported
//     ErrUnknownSchema for a well-formed name that is not registered
func New(name string) (encoding.Message, error) {
	if _, _, err := ParseSchema(name); err != nil {
		return nil, err
	}

	s, ok := byName[name]
	if !ok {
		return nil, errs.Unsupported("new message", fmt.Errorf("%w: %s", errs.ErrUnknownSchema, name))
	}

	return s.New(), nil
}

// Decode decodes a top-level CDR message into the record type registered
// under name.
func Decode(name string, data []byte, opts ...encoding.Option) (encoding.Message, error) {
	m, err := New(name)
	if err != nil {
		return nil, err
	}

	d, err := encoding.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	if err := m.UnmarshalCDR(d); err != nil {
		return nil, err
	}

	return m, nil
}

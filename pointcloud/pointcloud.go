// Package pointcloud expands sensor_msgs/PointCloud2 payloads into points.
//
// Rows are decoded through a layout.Plan built from the message's fields, so
// every bound is checked once up front and malformed clouds produce errors
// rather than panics.
package pointcloud

import (
	"fmt"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/pool"
	"github.com/arloliu/cdr/layout"
	"github.com/arloliu/cdr/msgs/sensormsgs"
)

// Promoted field names.
const (
	FieldX         = "x"
	FieldY         = "y"
	FieldZ         = "z"
	FieldClusterID = "cluster_id"
)

// Point is one decoded point. Coordinates default to zero when the cloud has
// no such field. Fields holds the first element of every other field and is
// nil when there are none.
type Point struct {
	X         float64            `json:"x" yaml:"x"`
	Y         float64            `json:"y" yaml:"y"`
	Z         float64            `json:"z" yaml:"z"`
	ClusterID int64              `json:"cluster_id" yaml:"cluster_id"`
	Fields    map[string]float64 `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// extra is a non-promoted column and its position inside a record.
type extra struct {
	name  string
	index int
}

// Decode expands every point of pcd in row-major order.
//
// Fields with an unknown datatype tag are skipped. Row r starts at
// r*RowStep; bytes between the last point of a row and the next row are
// ignored.
//
// Returns:
//   - []Point: Height*Width points, nil for an empty cloud
//   - error: invalid argument for a nil cloud; malformed if the fields do not
//     fit PointStep, RowStep is shorter than a row of points, or Data is too
//     short for the declared dimensions
func Decode(pcd *sensormsgs.PointCloud2) ([]Point, error) {
	if pcd == nil {
		return nil, errs.InvalidArgument("decode point cloud", errs.ErrNilTarget)
	}

	n := pcd.Points()
	if n == 0 {
		return nil, nil
	}

	plan, err := NewPlan(pcd)
	if err != nil {
		return nil, err
	}

	rowBytes := uint64(pcd.Width) * uint64(pcd.PointStep)
	if uint64(pcd.RowStep) < rowBytes {
		return nil, errs.Malformed("decode point cloud", -1, fmt.Errorf("%w: row step %d, %d points of %d bytes",
			errs.ErrInvalidStride, pcd.RowStep, pcd.Width, pcd.PointStep))
	}

	need := uint64(pcd.Height-1)*uint64(pcd.RowStep) + rowBytes
	if uint64(len(pcd.Data)) < need {
		return nil, errs.Malformed("decode point cloud", len(pcd.Data), fmt.Errorf("%w: %d bytes, %d required",
			errs.ErrTruncated, len(pcd.Data), need))
	}

	x, y, z, id, extras := promote(plan)

	scratch, cleanup := pool.GetFloat64Slice(plan.Width())
	defer cleanup()

	points := make([]Point, 0, n)
	for r := range int(pcd.Height) {
		start := r * int(pcd.RowStep)
		row := pcd.Data[start : start+int(rowBytes)]

		for c := range int(pcd.Width) {
			if err := plan.DecodeRowInto(row, c, scratch); err != nil {
				return nil, err
			}

			var p Point
			if x >= 0 {
				p.X = scratch[x]
			}
			if y >= 0 {
				p.Y = scratch[y]
			}
			if z >= 0 {
				p.Z = scratch[z]
			}
			if id >= 0 {
				p.ClusterID = int64(scratch[id])
			}
			if len(extras) > 0 {
				p.Fields = make(map[string]float64, len(extras))
				for _, e := range extras {
					p.Fields[e.name] = scratch[e.index]
				}
			}
			points = append(points, p)
		}
	}

	return points, nil
}

// NewPlan builds the layout plan of one point of pcd: its known fields, a
// stride of PointStep and the byte order IsBigEndian declares.
func NewPlan(pcd *sensormsgs.PointCloud2) (*layout.Plan, error) {
	if pcd == nil {
		return nil, errs.InvalidArgument("decode point cloud", errs.ErrNilTarget)
	}

	fields := make([]layout.FieldDescriptor, 0, len(pcd.Fields))
	for _, f := range pcd.Fields {
		if !f.Datatype.IsValid() {
			continue
		}
		fields = append(fields, f.Descriptor())
	}

	engine := endian.GetLittleEndianEngine()
	if pcd.IsBigEndian {
		engine = endian.GetBigEndianEngine()
	}

	return layout.NewPlan(fields, int(pcd.PointStep), engine)
}

// promote resolves record positions of the promoted fields (-1 if absent)
// and lists the remaining columns.
func promote(plan *layout.Plan) (x, y, z, id int, extras []extra) {
	x, y, z, id = -1, -1, -1, -1
	for _, name := range plan.Names() {
		idx, _, _ := plan.Lookup(name)
		switch name {
		case FieldX:
			x = idx
		case FieldY:
			y = idx
		case FieldZ:
			z = idx
		case FieldClusterID:
			id = idx
		default:
			extras = append(extras, extra{name: name, index: idx})
		}
	}

	return x, y, z, id, extras
}

package edgefirstmsgs

import (
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/msgs/builtininterfaces"
	"github.com/arloliu/cdr/msgs/stdmsgs"
)

// Track identifies the object a Box follows across frames. An empty ID means
// the box is untracked.
type Track struct {
	ID       string                 `json:"id" yaml:"id"`
	Lifetime int32                  `json:"lifetime" yaml:"lifetime"`
	Created  builtininterfaces.Time `json:"created" yaml:"created"`
}

var _ encoding.Message = (*Track)(nil)

func (*Track) SchemaName() string {
	return "edgefirst_msgs/msg/Track"
}

func (t *Track) MarshalCDR(e *encoding.Encoder) {
	e.WriteString(t.ID)
	e.WriteInt32(t.Lifetime)
	t.Created.MarshalCDR(e)
}

func (t *Track) UnmarshalCDR(d *encoding.Decoder) error {
	var err error
	if t.ID, err = d.ReadString(); err != nil {
		return err
	}

	if t.Lifetime, err = d.ReadInt32(); err != nil {
		return err
	}

	return t.Created.UnmarshalCDR(d)
}

// Box is one detection. Coordinates are normalized to the input image.
type Box struct {
	CenterX  float32 `json:"center_x" yaml:"center_x"`
	CenterY  float32 `json:"center_y" yaml:"center_y"`
	Width    float32 `json:"width" yaml:"width"`
	Height   float32 `json:"height" yaml:"height"`
	Label    string  `json:"label" yaml:"label"`
	Score    float32 `json:"score" yaml:"score"`
	Distance float32 `json:"distance" yaml:"distance"`
	Speed    float32 `json:"speed" yaml:"speed"`
	Track    Track   `json:"track" yaml:"track"`
}

var _ encoding.Message = (*Box)(nil)

func (*Box) SchemaName() string {
	return "edgefirst_msgs/msg/Box"
}

func (b *Box) MarshalCDR(e *encoding.Encoder) {
	encoding.WriteArray(e, []float32{b.CenterX, b.CenterY, b.Width, b.Height})
	e.WriteString(b.Label)
	encoding.WriteArray(e, []float32{b.Score, b.Distance, b.Speed})
	b.Track.MarshalCDR(e)
}

func (b *Box) UnmarshalCDR(d *encoding.Decoder) error {
	var geom [4]float32
	if err := encoding.ReadArrayInto(d, geom[:]); err != nil {
		return err
	}
	b.CenterX, b.CenterY, b.Width, b.Height = geom[0], geom[1], geom[2], geom[3]

	var err error
	if b.Label, err = d.ReadString(); err != nil {
		return err
	}

	var stats [3]float32
	if err := encoding.ReadArrayInto(d, stats[:]); err != nil {
		return err
	}
	b.Score, b.Distance, b.Speed = stats[0], stats[1], stats[2]

	return b.Track.UnmarshalCDR(d)
}

// Detect is the output of one model inference.
type Detect struct {
	Header         stdmsgs.Header         `json:"header" yaml:"header"`
	InputTimestamp builtininterfaces.Time `json:"input_timestamp" yaml:"input_timestamp"`
	ModelTime      builtininterfaces.Time `json:"model_time" yaml:"model_time"`
	OutputTime     builtininterfaces.Time `json:"output_time" yaml:"output_time"`
	Boxes          []Box                  `json:"boxes" yaml:"boxes"`
}

var _ encoding.Message = (*Detect)(nil)

func (*Detect) SchemaName() string {
	return "edgefirst_msgs/msg/Detect"
}

func (m *Detect) MarshalCDR(e *encoding.Encoder) {
	m.Header.MarshalCDR(e)
	m.InputTimestamp.MarshalCDR(e)
	m.ModelTime.MarshalCDR(e)
	m.OutputTime.MarshalCDR(e)
	encoding.WriteStructs(e, m.Boxes)
}

func (m *Detect) UnmarshalCDR(d *encoding.Decoder) error {
	if err := m.Header.UnmarshalCDR(d); err != nil {
		return err
	}

	for _, t := range []*builtininterfaces.Time{&m.InputTimestamp, &m.ModelTime, &m.OutputTime} {
		if err := t.UnmarshalCDR(d); err != nil {
			return err
		}
	}

	var err error
	m.Boxes, err = encoding.ReadStructs[Box](d)

	return err
}

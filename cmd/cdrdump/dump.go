package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/fixture"
	"github.com/arloliu/cdr/msgs/sensormsgs"
	"github.com/arloliu/cdr/pointcloud"
	"github.com/arloliu/cdr/recorder"
	"github.com/arloliu/cdr/registry"
)

// output is one printed message.
type output struct {
	Schema  string             `json:"schema" yaml:"schema"`
	LogTime *time.Time         `json:"log_time,omitempty" yaml:"log_time,omitempty"`
	Message encoding.Message   `json:"message" yaml:"message"`
	Points  []pointcloud.Point `json:"points,omitempty" yaml:"points,omitempty"`
}

type dumper struct {
	args   arguments
	out    emitter
	logger *slog.Logger
}

func (d *dumper) dump(data []byte) error {
	if recorder.IsRecording(data) {
		return d.dumpRecording(data)
	}

	if d.args.schema == "" {
		return fmt.Errorf("input is not a recording; --schema is required for a single message")
	}

	m, err := d.decode(d.args.schema, data)
	if err != nil {
		return err
	}

	return d.emit(output{Schema: d.args.schema, Message: m})
}

func (d *dumper) dumpRecording(data []byte) error {
	r, err := recorder.NewReader(bytes.NewReader(data), recorder.WithLogger(d.logger))
	if err != nil {
		return err
	}

	hdr := r.Header()
	d.logger.Info("recording opened",
		"version", hdr.Version,
		"compression", hdr.Compression.String(),
		"created", hdr.Created,
	)

	n := 0
	for e, err := range r.All() {
		if err != nil {
			return fmt.Errorf("entry %d: %w", n, err)
		}
		if d.args.limit > 0 && n == d.args.limit {
			break
		}

		m, err := d.decode(e.Schema, e.Data)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", n, e.Schema, err)
		}

		logTime := e.LogTime
		if err := d.emit(output{Schema: e.Schema, LogTime: &logTime, Message: m}); err != nil {
			return err
		}
		n++
	}

	d.logger.Info("recording dumped", "entries", n)

	return nil
}

func (d *dumper) decode(schema string, data []byte) (encoding.Message, error) {
	if d.args.verify {
		return fixture.VerifyPayload(schema, data)
	}

	return registry.Decode(schema, data)
}

func (d *dumper) emit(o output) error {
	if pcd, ok := o.Message.(*sensormsgs.PointCloud2); ok && d.args.points {
		points, err := pointcloud.Decode(pcd)
		if err != nil {
			return err
		}
		o.Points = points
	}

	return d.out.Emit(o)
}

func listSchemas(w io.Writer) error {
	for _, name := range registry.List() {
		s, _ := registry.Lookup(name)
		if _, err := fmt.Fprintf(w, "%016x  %s\n", s.ID, name); err != nil {
			return err
		}
	}

	return nil
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/cdr"
	"github.com/arloliu/cdr/fixture"
	"github.com/arloliu/cdr/msgs/builtininterfaces"
	"github.com/arloliu/cdr/msgs/geometrymsgs"
	"github.com/arloliu/cdr/msgs/sensormsgs"
	"github.com/arloliu/cdr/pointcloud"
	"github.com/arloliu/cdr/recorder"
)

var timeBytes = []byte{0x00, 0x01, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00, 0x15, 0xcd, 0x5b, 0x07}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func runCmd(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(args, stdin, &stdout, &stderr)

	return stdout.String(), err
}

func TestRun_SingleMessageJSON(t *testing.T) {
	path := writeFile(t, "time.cdr", timeBytes)

	out, err := runCmd(t, nil, "--schema", "builtin_interfaces/msg/Time", path)
	require.NoError(t, err)
	require.Equal(t, `{"schema":"builtin_interfaces/msg/Time","message":{"sec":42,"nanosec":123456789}}`+"\n", out)
}

func TestRun_Stdin(t *testing.T) {
	out, err := runCmd(t, bytes.NewReader(timeBytes), "-s", "builtin_interfaces/msg/Time", "-f", "yaml")
	require.NoError(t, err)
	require.Equal(t, "schema: builtin_interfaces/msg/Time\nmessage:\n  sec: 42\n  nanosec: 123456789\n", out)
}

func TestRun_CBOR(t *testing.T) {
	path := writeFile(t, "time.cdr", timeBytes)

	out, err := runCmd(t, nil, "-s", "builtin_interfaces/msg/Time", "--format", "cbor", path)
	require.NoError(t, err)

	var got struct {
		Schema  string                 `json:"schema"`
		Message builtininterfaces.Time `json:"message"`
	}
	require.NoError(t, cbor.Unmarshal([]byte(out), &got))
	require.Equal(t, "builtin_interfaces/msg/Time", got.Schema)
	require.Equal(t, builtininterfaces.NewTime(42, 123456789), got.Message)
}

func TestRun_Recording(t *testing.T) {
	var buf bytes.Buffer
	w, err := recorder.NewWriter(&buf)
	require.NoError(t, err)

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		v := &geometrymsgs.Vector3{X: float64(i) + 0.5}
		require.NoError(t, w.WriteMessage(start.Add(time.Duration(i)*time.Second), v))
	}
	require.NoError(t, w.Close())
	path := writeFile(t, "session.cdrl", buf.Bytes())

	out, err := runCmd(t, nil, "--format", "yaml", "--limit", "2", "--verify", path)
	require.NoError(t, err)

	dec := yaml.NewDecoder(strings.NewReader(out))
	var docs []map[string]any
	for {
		var doc map[string]any
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	require.Len(t, docs, 2)
	require.Equal(t, "geometry_msgs/msg/Vector3", docs[1]["schema"])
	msg, ok := docs[1]["message"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, 1.5, msg["x"])
	require.Contains(t, docs[0], "log_time")

	// JSON lines without a limit.
	out, err = runCmd(t, nil, path)
	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}

func TestRun_Points(t *testing.T) {
	pcd := &sensormsgs.PointCloud2{
		Height: 1,
		Width:  1,
		Fields: []sensormsgs.PointField{
			{Name: "x", Offset: 0, Datatype: sensormsgs.Float32, Count: 1},
			{Name: "intensity", Offset: 4, Datatype: sensormsgs.Uint8, Count: 1},
		},
		PointStep: 8,
		RowStep:   8,
		Data:      []byte{0x00, 0x00, 0xc0, 0x3f, 0x09, 0x00, 0x00, 0x00},
	}
	data, err := cdr.Marshal(pcd)
	require.NoError(t, err)
	path := writeFile(t, "cloud.cdr", data)

	out, err := runCmd(t, nil, "-s", "sensor_msgs/msg/PointCloud2", "--points", path)
	require.NoError(t, err)

	var got struct {
		Points []pointcloud.Point `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Equal(t, []pointcloud.Point{{X: 1.5, Fields: map[string]float64{"intensity": 9}}}, got.Points)

	out, err = runCmd(t, nil, "-s", "sensor_msgs/msg/PointCloud2", path)
	require.NoError(t, err)
	require.NotContains(t, out, `"points"`)
}

func TestRun_Errors(t *testing.T) {
	path := writeFile(t, "time.cdr", append(bytes.Clone(timeBytes), 0xff))

	_, err := runCmd(t, nil, path)
	require.ErrorContains(t, err, "--schema is required")

	_, err = runCmd(t, nil, "-s", "builtin_interfaces/msg/Time", path)
	require.NoError(t, err, "trailing bytes are ignored without --verify")

	_, err = runCmd(t, nil, "-s", "builtin_interfaces/msg/Time", "--verify", path)
	require.ErrorIs(t, err, fixture.ErrMismatch)

	_, err = runCmd(t, nil, "-f", "xml", path)
	require.ErrorContains(t, err, "unknown output format")

	_, err = runCmd(t, nil, "a", "b")
	require.ErrorContains(t, err, "at most one input")

	_, err = runCmd(t, nil, "-n", "-1", path)
	require.Error(t, err)

	_, err = runCmd(t, nil, "-s", "builtin_interfaces/msg/Time", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestRun_ListSchemas(t *testing.T) {
	out, err := runCmd(t, nil, "--list-schemas")
	require.NoError(t, err)
	require.Contains(t, out, "  sensor_msgs/msg/PointCloud2\n")
	require.Contains(t, out, "  std_msgs/msg/Header\n")
}

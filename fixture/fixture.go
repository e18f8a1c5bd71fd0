// Package fixture checks codec output against a corpus of reference
// encodings shared by every implementation of the wire format.
//
// A corpus is a YAML document listing cases. Each case names a schema, the
// hex-encoded bytes of one message and optionally the decoded value:
//
//	cases:
//	  - name: header
//	    schema: std_msgs/msg/Header
//	    hex: "00010000 01000000 02000000 04000000 6d617000"
//	    value: {stamp: {sec: 1, nanosec: 2}, frame_id: map}
//
// A case passes when its bytes decode, re-encode to the identical bytes, and
// the value (if given) encodes to them as well.
package fixture

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cdr"
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/registry"
	"github.com/arloliu/cdr/section"
)

var (
	// ErrMismatch reports re-encoded bytes that differ from the reference.
	ErrMismatch = errors.New("encoding differs from reference")
	// ErrInvalidCase reports a case that cannot be checked at all.
	ErrInvalidCase = errors.New("invalid fixture case")
)

// Case is one reference message.
type Case struct {
	Name   string    `yaml:"name"`
	Schema string    `yaml:"schema"`
	Hex    string    `yaml:"hex"`
	Value  yaml.Node `yaml:"value,omitempty"`
}

// Corpus is a list of reference messages.
type Corpus struct {
	Cases []Case `yaml:"cases"`
}

// Load reads a corpus file.
func Load(path string) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	return Parse(data)
}

// Parse decodes a corpus document. Case names must be unique and non-empty.
func Parse(data []byte) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Cases))
	for i, tc := range c.Cases {
		if tc.Name == "" {
			return nil, fmt.Errorf("%w: case %d has no name", ErrInvalidCase, i)
		}
		if _, dup := seen[tc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrInvalidCase, tc.Name)
		}
		seen[tc.Name] = struct{}{}
	}

	return &c, nil
}

// Verify checks every case and joins the failures.
func (c *Corpus) Verify() error {
	var errList []error
	for _, tc := range c.Cases {
		if err := tc.Verify(); err != nil {
			errList = append(errList, fmt.Errorf("%s: %w", tc.Name, err))
		}
	}

	return errors.Join(errList...)
}

// Bytes returns the decoded hex. Whitespace between digits is ignored.
func (c Case) Bytes() ([]byte, error) {
	b, err := hex.DecodeString(strings.Join(strings.Fields(c.Hex), ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCase, err)
	}

	return b, nil
}

// Verify checks the case's bytes, and its value when one is given.
func (c Case) Verify() error {
	data, err := c.Bytes()
	if err != nil {
		return err
	}

	if _, err := VerifyPayload(c.Schema, data); err != nil {
		return err
	}

	if c.Value.Kind == 0 {
		return nil
	}

	m, err := registry.New(c.Schema)
	if err != nil {
		return err
	}
	if err := c.Value.Decode(m); err != nil {
		return fmt.Errorf("%w: value: %w", ErrInvalidCase, err)
	}

	h, _, err := section.ParseEncapsulationHeader(data)
	if err != nil {
		return err
	}

	got, err := cdr.MarshalWithOptions(m, encoding.WithHeader(h))
	if err != nil {
		return err
	}

	return compare("value", data, got)
}

// VerifyPayload decodes data as schema and checks that encoding the result
// with the same encapsulation header reproduces data exactly.
//
// Returns:
//   - encoding.Message: The decoded message
//   - error: the decode error, or ErrMismatch naming the first differing byte
func VerifyPayload(schema string, data []byte) (encoding.Message, error) {
	m, err := registry.Decode(schema, data)
	if err != nil {
		return nil, err
	}

	h, _, err := section.ParseEncapsulationHeader(data)
	if err != nil {
		return nil, err
	}

	got, err := cdr.MarshalWithOptions(m, encoding.WithHeader(h))
	if err != nil {
		return nil, err
	}

	if err := compare("re-encoded", data, got); err != nil {
		return nil, err
	}

	return m, nil
}

func compare(what string, want, got []byte) error {
	if bytes.Equal(want, got) {
		return nil
	}

	i := 0
	for i < len(want) && i < len(got) && want[i] == got[i] {
		i++
	}

	return fmt.Errorf("%w: %s message is %d bytes, reference %d, first difference at byte %d",
		ErrMismatch, what, len(got), len(want), i)
}

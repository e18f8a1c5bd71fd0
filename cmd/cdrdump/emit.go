package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// emitter writes a stream of values in one output format.
type emitter interface {
	Emit(v any) error
	Close() error
}

func newEmitter(name string, w io.Writer) (emitter, error) {
	switch name {
	case "json":
		return jsonEmitter{enc: json.NewEncoder(w)}, nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		return yamlEmitter{enc: enc}, nil
	case "cbor":
		mode, err := cbor.CoreDetEncOptions().EncMode()
		if err != nil {
			return nil, err
		}

		return cborEmitter{enc: mode.NewEncoder(w)}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, yaml or cbor)", name)
	}
}

// jsonEmitter writes one JSON document per line.
type jsonEmitter struct {
	enc *json.Encoder
}

func (e jsonEmitter) Emit(v any) error { return e.enc.Encode(v) }
func (e jsonEmitter) Close() error     { return nil }

// yamlEmitter writes a multi-document YAML stream.
type yamlEmitter struct {
	enc *yaml.Encoder
}

func (e yamlEmitter) Emit(v any) error { return e.enc.Encode(v) }
func (e yamlEmitter) Close() error     { return e.enc.Close() }

// cborEmitter writes a CBOR sequence (RFC 8742).
type cborEmitter struct {
	enc *cbor.Encoder
}

func (e cborEmitter) Emit(v any) error { return e.enc.Encode(v) }
func (e cborEmitter) Close() error     { return nil }

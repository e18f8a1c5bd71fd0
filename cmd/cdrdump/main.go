// cdrdump prints CDR messages in a readable form.
//
// The input is either a single encoded message, whose schema is given with
// --schema, or a recording written by the recorder package, which is
// detected from its magic bytes. Messages are printed as JSON lines, YAML
// documents or a CBOR sequence.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type arguments struct {
	schema      string
	format      string
	points      bool
	verify      bool
	limit       int
	listSchemas bool
	verbose     bool
	input       string
}

func parseArguments(args []string, stderr io.Writer) (arguments, error) {
	var a arguments

	flagSet := pflag.NewFlagSet("cdrdump", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&a.schema, "schema", "s", "", "schema of a single-message input, e.g. sensor_msgs/msg/Imu")
	flagSet.StringVarP(&a.format, "format", "f", "json", "output format: json, yaml or cbor")
	flagSet.BoolVar(&a.points, "points", false, "expand sensor_msgs/msg/PointCloud2 data into points")
	flagSet.BoolVar(&a.verify, "verify", false, "fail unless every message re-encodes to its input bytes")
	flagSet.IntVarP(&a.limit, "limit", "n", 0, "stop after this many recording entries (0 prints all)")
	flagSet.BoolVar(&a.listSchemas, "list-schemas", false, "print the supported schemas and exit")
	flagSet.BoolVarP(&a.verbose, "verbose", "v", false, "log chunk and summary details to stderr")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: cdrdump [flags] [file|-]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return arguments{}, err
	}

	switch rest := flagSet.Args(); len(rest) {
	case 0:
		a.input = "-"
	case 1:
		a.input = rest[0]
	default:
		return arguments{}, fmt.Errorf("expected at most one input, got %d", len(rest))
	}

	if a.limit < 0 {
		return arguments{}, fmt.Errorf("--limit must not be negative")
	}

	if _, err := newEmitter(a.format, io.Discard); err != nil {
		return arguments{}, err
	}

	return a, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	a, err := parseArguments(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if a.listSchemas {
		return listSchemas(stdout)
	}

	data, err := readInput(a.input, stdin)
	if err != nil {
		return err
	}

	out, err := newEmitter(a.format, stdout)
	if err != nil {
		return err
	}

	d := &dumper{args: a, out: out, logger: logger}
	if err := d.dump(data); err != nil {
		return err
	}

	return out.Close()
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

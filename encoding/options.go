package encoding

import (
	"errors"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/options"
	"github.com/arloliu/cdr/section"
)

// Config holds the settings shared by Encoder and Decoder.
type Config struct {
	header    section.EncapsulationHeader
	noHeader  bool
	maxLength int
}

// NewConfig returns the default configuration: little-endian plain CDR with a
// zero options field, a leading encapsulation header, and no length ceiling.
func NewConfig() *Config {
	return &Config{header: section.NewEncapsulationHeader(true)}
}

// Header returns the encapsulation header the encoder writes.
func (c *Config) Header() section.EncapsulationHeader {
	return c.header
}

// EndianEngine returns the byte-order engine selected by the configuration.
func (c *Config) EndianEngine() endian.EndianEngine {
	return c.header.GetEndianEngine()
}

var errNegativeMaxLength = errors.New("max length must not be negative")

// Option represents a functional option for configuring an Encoder or Decoder.
type Option = options.Option[*Config]

// WithLittleEndian selects CDR_LE. It is the default option.
func WithLittleEndian() Option {
	return options.NoError(func(c *Config) {
		c.header.Representation = section.NewEncapsulationHeader(true).Representation
	})
}

// WithBigEndian selects CDR_BE.
func WithBigEndian() Option {
	return options.NoError(func(c *Config) {
		c.header.Representation = section.NewEncapsulationHeader(false).Representation
	})
}

// WithHeader copies the representation and options of h, typically the header
// of a decoded message that is being re-encoded.
func WithHeader(h section.EncapsulationHeader) Option {
	return options.New(func(c *Config) error {
		if !h.Representation.IsSupported() {
			return errs.Unsupported("configure", errs.ErrUnknownRepresentation)
		}
		c.header = h

		return nil
	})
}

// WithOptions sets the two reserved option bytes of the encapsulation header.
func WithOptions(opts uint16) Option {
	return options.NoError(func(c *Config) {
		c.header.Options = opts
	})
}

// WithoutHeader omits the encapsulation header. The encoder writes a bare body
// and the decoder expects one; the byte order still comes from the other options.
func WithoutHeader() Option {
	return options.NoError(func(c *Config) {
		c.noHeader = true
	})
}

// WithMaxLength caps the element count of any string or sequence the decoder
// accepts. Zero means the count is bounded only by the remaining bytes.
func WithMaxLength(n int) Option {
	return options.New(func(c *Config) error {
		if n < 0 {
			return errs.InvalidArgument("configure", errNegativeMaxLength)
		}
		c.maxLength = n

		return nil
	})
}

package recorder

import (
	"errors"
	"log/slog"

	"github.com/arloliu/cdr/compress"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
	"github.com/arloliu/cdr/internal/options"
)

const DefaultChunkSize = 1024 * 1024

var (
	errInvalidChunkSize = errors.New("chunk size must be positive")
	errClosed           = errors.New("recorder is closed")
)

type config struct {
	compression format.CompressionType
	chunkSize   int
	logger      *slog.Logger
	verify      bool
}

func newConfig() *config {
	return &config{
		compression: format.CompressionZstd,
		chunkSize:   DefaultChunkSize,
		logger:      slog.New(slog.DiscardHandler),
		verify:      true,
	}
}

// Option configures a Writer or Reader.
type Option = options.Option[*config]

// WithCompression selects the codec applied to each chunk. The default is Zstd.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return err
		}
		c.compression = ct

		return nil
	})
}

// WithChunkSize sets the uncompressed size at which a chunk is flushed.
// A single entry larger than n still forms one chunk.
func WithChunkSize(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 || n > maxChunkBytes {
			return errs.InvalidArgument("configure recorder", errInvalidChunkSize)
		}
		c.chunkSize = n

		return nil
	})
}

// WithLogger sets the logger for chunk-level events. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		c.logger = l
	})
}

// WithoutChecksum makes a Reader skip chunk checksum verification.
func WithoutChecksum() Option {
	return options.NoError(func(c *config) {
		c.verify = false
	})
}

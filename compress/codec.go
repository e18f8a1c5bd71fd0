package compress

import (
	"fmt"
	"io"
	"strings"

	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
)

// Compressor compresses an opaque payload such as a recorder chunk or a
// segmentation mask.
type Compressor interface {
	// Compress returns the compressed form of data. The input is not modified;
	// the result may alias it only for the no-op codec.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
type Decompressor interface {
	// Decompress returns the original payload, or an error if data is
	// corrupted or was produced by another algorithm.
	Decompress(data []byte) ([]byte, error)

	// DecompressLimit is Decompress for untrusted input: it fails with
	// errs.ErrDecompressLimit as soon as the output would exceed limit bytes,
	// without materialising the excess.
	DecompressLimit(data []byte, limit int) ([]byte, error)
}

// Codec combines both directions. Every built-in Codec is safe for concurrent use.
type Codec interface {
	Compressor
	Decompressor
}

// Stats summarises the effect of compression over a series of payloads.
type Stats struct {
	Algorithm      format.CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// Add accounts for one payload.
func (s *Stats) Add(original, compressed int) {
	s.OriginalSize += int64(original)
	s.CompressedSize += int64(compressed)
}

// Ratio returns compressed size / original size, or 0 when nothing was added.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the percentage of bytes saved (0-100, negative on expansion).
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

func errLimit(size, limit int) error {
	return fmt.Errorf("%w: %d bytes, limit %d", errs.ErrDecompressLimit, size, limit)
}

// readLimited drains a streaming decoder, reading at most one byte past limit.
func readLimited(r io.Reader, limit int) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}

	if len(out) > limit {
		return nil, errLimit(len(out), limit)
	}

	if len(out) == 0 {
		return nil, nil
	}

	return out, nil
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the built-in Codec for compressionType.
//
// Returns:
//   - Codec: Shared codec instance
//   - error: unsupported ErrUnknownCompression for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, errs.Unsupported("get codec", fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType))
}

// Parse maps a codec name to its type. Matching is case-insensitive and the
// empty string means no compression, so "", "none", "zstd", "s2" and "lz4"
// are all accepted.
func Parse(name string) (format.CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none", "raw":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, errs.Unsupported("parse compression", fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name))
	}
}

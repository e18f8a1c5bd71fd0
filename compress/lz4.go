package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// lz4MaxSize bounds the decompressed size a block header may claim.
const lz4MaxSize = 256 * 1024 * 1024

var errLZ4Size = errors.New("lz4 block declares an oversized payload")

// LZ4Compressor compresses with the LZ4 block format. Each block is prefixed
// with its uncompressed size as a little-endian uint32 so that decompression
// allocates exactly once.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns the LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a size-prefixed LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) > lz4MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", errLZ4Size, len(data))
	}

	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	binary.LittleEndian.PutUint32(dst, uint32(len(data))) //nolint:gosec

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, err
	}

	return dst[:4+n], nil
}

// Decompress decompresses a size-prefixed LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	if len(data) < 4 {
		return nil, fmt.Errorf("lz4 decompression failed: %w", lz4.ErrInvalidSourceShortBuffer)
	}

	size := binary.LittleEndian.Uint32(data)
	if size > lz4MaxSize {
		return nil, fmt.Errorf("%w: %d bytes", errLZ4Size, size)
	}

	out := make([]byte, size)
	n, err := lz4.UncompressBlock(data[4:], out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}

	if n != int(size) {
		return nil, fmt.Errorf("lz4 decompression failed: got %d of %d bytes", n, size)
	}

	return out, nil
}

// DecompressLimit rejects a block whose size prefix exceeds limit before
// allocating for it.
func (c LZ4Compressor) DecompressLimit(data []byte, limit int) ([]byte, error) {
	if len(data) >= 4 {
		if size := binary.LittleEndian.Uint32(data); uint64(size) > uint64(max(limit, 0)) {
			return nil, errLimit(int(size), limit)
		}
	}

	return c.Decompress(data)
}

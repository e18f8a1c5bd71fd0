package compress

// ZstdCompressor compresses with Zstandard at the default level.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor returns the Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

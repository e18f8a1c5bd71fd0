// Package compress provides the payload codecs used by the recorder and by
// compressed edgefirst_msgs masks.
//
// The CDR encoding itself is never compressed; codecs apply to opaque byte
// payloads after encoding:
//   - None: bytes pass through unchanged
//   - Zstd: best ratio, used for masks and archival recordings
//   - S2: fast with a fair ratio, the recorder default for live capture
//   - LZ4: fastest decompression
//
// Codecs are obtained by type or by name:
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//
//	ct, err := compress.Parse("lz4")
//
// The pure-Go Zstd codec from klauspost/compress is used by default. Building
// with the cgo_zstd tag (and cgo enabled) switches to the libzstd binding.
//
// All built-in codecs are safe for concurrent use; encoders and decoders are
// pooled internally.
package compress

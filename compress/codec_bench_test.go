package compress

import (
	"testing"
)

func BenchmarkCodecs(b *testing.B) {
	payload := pointCloudPayload(16384)

	for name, codec := range getAllCodecs() {
		compressed, err := codec.Compress(payload)
		if err != nil {
			b.Fatal(err)
		}

		b.Run(name+"/compress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Compress(payload)
			}
		})

		b.Run(name+"/decompress", func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = codec.Decompress(compressed)
			}
		})
	}
}

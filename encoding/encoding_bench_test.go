package encoding

import (
	"testing"
)

func benchmarkValues(n int) []float32 {
	values := make([]float32, n)
	for i := range values {
		values[i] = float32(i) * 0.5
	}

	return values
}

func BenchmarkWriteSequence(b *testing.B) {
	values := benchmarkValues(10000)

	for name, order := range byteOrders() {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				e, _ := NewEncoder(order)
				WriteSequence(e, values)
				e.Finish()
			}
		})
	}
}

func BenchmarkReadSequence(b *testing.B) {
	values := benchmarkValues(10000)

	for name, order := range byteOrders() {
		e, _ := NewEncoder(order)
		WriteSequence(e, values)
		data := append([]byte(nil), e.Bytes()...)
		e.Finish()

		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				d, _ := NewDecoder(data)
				_, _ = ReadSequence[float32](d)
			}
		})
	}
}

func BenchmarkSampleRoundTrip(b *testing.B) {
	s := fullSample()
	sizer, _ := NewSizer()
	s.MarshalCDR(sizer)
	buf := make([]byte, sizer.Len())

	b.ReportAllocs()
	for b.Loop() {
		e, _ := NewFixedEncoder(buf)
		s.MarshalCDR(e)

		d, _ := NewDecoder(buf)
		var out sample
		_ = out.UnmarshalCDR(d)
	}
}

// Package encoding implements the CDR (Common Data Representation) reader and
// writer used by every record type in this module.
//
// # Wire Rules
//
//   - Primitives are aligned to their own width (1, 2, 4 or 8 bytes), measured
//     from the first byte after the encapsulation header. Padding is written as
//     zero and skipped on read.
//   - Strings are a uint32 length that counts the trailing NUL, then the UTF-8
//     bytes, then the NUL. The empty string is length 1 and a single NUL.
//   - Sequences are a uint32 element count followed by the elements. Fixed-size
//     arrays carry no count.
//   - Structures are their fields in declaration order with no framing.
//
// # Decoding
//
//	dec, err := encoding.NewDecoder(payload)
//	if err != nil {
//	    return err
//	}
//	stamp, err := dec.ReadInt32()
//	name, err := dec.ReadString()
//	ranges, err := encoding.ReadSequence[float32](dec)
//
// Every failure is an *errs.Error classified as invalid argument, malformed or
// unsupported; no input, however corrupted, makes the decoder panic.
//
// # Encoding
//
// The Encoder has three modes that share one code path, which makes the
// size-query then serialize protocol exact:
//
//	sizer, _ := encoding.NewSizer()
//	msg.MarshalCDR(sizer)
//	buf := make([]byte, sizer.Len())
//
//	enc, _ := encoding.NewFixedEncoder(buf)
//	msg.MarshalCDR(enc)
//	if err := enc.Err(); err != nil {
//	    return err // errs.ErrBufferTooSmall carries the required size
//	}
//
// NewEncoder appends to a pooled buffer instead; call Finish once the bytes
// have been copied out.
package encoding

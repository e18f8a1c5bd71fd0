package encoding

import (
	"unsafe"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
)

// Primitive is the set of fixed-width types that sequences and arrays can be
// bulk-encoded from. Booleans are excluded because their octets need validation.
type Primitive interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64 | ~float32 | ~float64
}

func widthOf[T Primitive]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// asBytes views the backing array of s as raw bytes in host order.
func asBytes[T Primitive](s []T) []byte {
	if len(s) == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), len(s)*widthOf[T]())
}

// ReadArray reads count elements of T with no count prefix, as used for
// fixed-size arrays such as a 3x3 covariance matrix.
//
// When the body byte order matches the host, the elements are copied in one
// bulk copy; otherwise each element is swapped individually. Both paths yield
// the same values.
//
// Parameters:
//   - d: Decoder positioned at the array
//   - count: Number of elements
//
// Returns:
//   - []T: Decoded elements
//   - error: malformed ErrTruncated if fewer than count elements remain
func ReadArray[T Primitive](d *Decoder, count int) ([]T, error) {
	if count == 0 {
		return nil, nil
	}

	if count < 0 || count > d.Remaining()/widthOf[T]() {
		return nil, errs.Malformed("read array", d.Offset(), errs.ErrTruncated)
	}

	out := make([]T, count)
	if err := ReadArrayInto(d, out); err != nil {
		return nil, err
	}

	return out, nil
}

// ReadArrayInto fills dst from a fixed-size array with no count prefix.
// It allocates nothing.
func ReadArrayInto[T Primitive](d *Decoder, dst []T) error {
	if len(dst) == 0 {
		return nil
	}

	width := widthOf[T]()
	start, err := d.cur.Next(Alignment(width), width*len(dst))
	if err != nil {
		return err
	}
	src := d.body[start : start+width*len(dst)]

	if width == 1 || d.native {
		copy(asBytes(dst), src)
		return nil
	}

	decodeSwapped(dst, src, d.engine)

	return nil
}

// ReadSequence reads a uint32 count followed by that many elements of T.
func ReadSequence[T Primitive](d *Decoder) ([]T, error) {
	n, err := d.ReadLength(widthOf[T]())
	if err != nil {
		return nil, err
	}

	return ReadArray[T](d, n)
}

// ReadStructs reads a uint32 count followed by that many nested structures,
// each decoded by its own UnmarshalCDR.
func ReadStructs[T any, PT interface {
	*T
	Unmarshaler
}](d *Decoder) ([]T, error) {
	n, err := d.ReadLength(1)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	// Grow with the elements actually decoded; the count alone does not size the slice.
	out := make([]T, 0, min(n, maxStructPrealloc))
	for range n {
		var v T
		if err := PT(&v).UnmarshalCDR(d); err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

// maxStructPrealloc caps the capacity ReadStructs reserves up front.
const maxStructPrealloc = 64

// ReadStrings reads a sequence<string>.
func ReadStrings(d *Decoder) ([]string, error) {
	// Every string occupies at least its 4-byte length prefix.
	n, err := d.ReadLength(4)
	if err != nil {
		return nil, err
	}

	if n == 0 {
		return nil, nil
	}

	out := make([]string, n)
	for i := range out {
		if out[i], err = d.ReadString(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// WriteArray writes the elements of s with no count prefix.
func WriteArray[T Primitive](e *Encoder, s []T) {
	if len(s) == 0 {
		return
	}

	width := widthOf[T]()
	dst := e.reserve(Alignment(width), width*len(s))
	if dst == nil {
		return
	}

	if width == 1 || e.native {
		copy(dst, asBytes(s))
		return
	}

	encodeSwapped(dst, s, e.engine)
}

// WriteSequence writes a uint32 count followed by the elements of s.
func WriteSequence[T Primitive](e *Encoder, s []T) {
	e.WriteLength(len(s))
	WriteArray(e, s)
}

// WriteStructs writes a uint32 count followed by each structure's MarshalCDR.
func WriteStructs[T any, PT interface {
	*T
	Marshaler
}](e *Encoder, s []T) {
	e.WriteLength(len(s))
	for i := range s {
		PT(&s[i]).MarshalCDR(e)
	}
}

// WriteStrings writes a sequence<string>.
func WriteStrings(e *Encoder, s []string) {
	e.WriteLength(len(s))
	for _, v := range s {
		e.WriteString(v)
	}
}

func decodeSwapped[T Primitive](dst []T, src []byte, engine endian.EndianEngine) {
	switch widthOf[T]() {
	case 2:
		for i := range dst {
			v := engine.Uint16(src[i*2:])
			dst[i] = *(*T)(unsafe.Pointer(&v))
		}
	case 4:
		for i := range dst {
			v := engine.Uint32(src[i*4:])
			dst[i] = *(*T)(unsafe.Pointer(&v))
		}
	case 8:
		for i := range dst {
			v := engine.Uint64(src[i*8:])
			dst[i] = *(*T)(unsafe.Pointer(&v))
		}
	}
}

func encodeSwapped[T Primitive](dst []byte, src []T, engine endian.EndianEngine) {
	switch widthOf[T]() {
	case 2:
		for i := range src {
			engine.PutUint16(dst[i*2:], *(*uint16)(unsafe.Pointer(&src[i])))
		}
	case 4:
		for i := range src {
			engine.PutUint32(dst[i*4:], *(*uint32)(unsafe.Pointer(&src[i])))
		}
	case 8:
		for i := range src {
			engine.PutUint64(dst[i*8:], *(*uint64)(unsafe.Pointer(&src[i])))
		}
	}
}

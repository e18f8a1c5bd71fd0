package encoding

import "github.com/arloliu/cdr/errs"

// Alignment returns the CDR alignment requirement of a primitive of the given
// width: 1-byte values need none, wider values align to their own width.
func Alignment(width int) int {
	switch width {
	case 2, 4, 8:
		return width
	default:
		return 1
	}
}

// Padding returns the number of bytes needed to advance offset to the next
// multiple of alignment. An alignment of 0 or 1 never pads.
func Padding(offset, alignment int) int {
	if alignment <= 1 {
		return 0
	}

	return (alignment - offset%alignment) % alignment
}

// Cursor tracks a position inside a fixed-length body. Offsets are measured
// from the first byte after the encapsulation header, which is also the origin
// for alignment.
//
// The invariant 0 <= offset <= length always holds: a step that would cross
// length fails and leaves the cursor where it was.
type Cursor struct {
	offset int
	length int
}

// NewCursor returns a cursor at offset 0 of a body of length bytes.
func NewCursor(length int) Cursor {
	return Cursor{length: length}
}

// Offset returns the current offset.
func (c *Cursor) Offset() int {
	return c.offset
}

// Len returns the body length.
func (c *Cursor) Len() int {
	return c.length
}

// Remaining returns the number of bytes between the offset and the end.
func (c *Cursor) Remaining() int {
	return c.length - c.offset
}

// Align skips the padding needed to reach alignment.
func (c *Cursor) Align(alignment int) error {
	_, err := c.Next(alignment, 0)
	return err
}

// Next aligns the cursor, reserves width bytes, and returns the offset of the
// first reserved byte.
//
// Parameters:
//   - alignment: Required alignment of the first byte (1, 2, 4 or 8)
//   - width: Number of bytes to reserve
//
// Returns:
//   - int: Offset of the reserved region
//   - error: malformed ErrTruncated if padding plus width exceeds the remaining bytes
func (c *Cursor) Next(alignment, width int) (int, error) {
	start := c.offset + Padding(c.offset, alignment)
	if width < 0 || start > c.length || width > c.length-start {
		return 0, errs.Malformed("read", c.offset, errs.ErrTruncated)
	}

	c.offset = start + width

	return start, nil
}

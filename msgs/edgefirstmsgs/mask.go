package edgefirstmsgs

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/cdr/compress"
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
)

// Mask is a segmentation mask of Height x Width x Length class scores.
// Encoding names the codec applied to Mask: "" for raw bytes or a codec
// name such as "zstd".
type Mask struct {
	Height   uint32 `json:"height" yaml:"height"`
	Width    uint32 `json:"width" yaml:"width"`
	Length   uint32 `json:"length" yaml:"length"`
	Encoding string `json:"encoding" yaml:"encoding"`
	Mask     []byte `json:"mask" yaml:"mask"`
	Boxed    bool   `json:"boxed" yaml:"boxed"`
}

var _ encoding.Message = (*Mask)(nil)

// NewCompressedMask compresses raw with ct and returns a Mask carrying the
// matching encoding name. CompressionNone stores raw unchanged.
func NewCompressedMask(height, width, length uint32, raw []byte, ct format.CompressionType) (*Mask, error) {
	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	packed, err := codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("compress mask: %w", err)
	}

	m := &Mask{
		Height: height,
		Width:  width,
		Length: length,
		Mask:   slices.Clone(packed),
	}
	if ct != format.CompressionNone {
		m.Encoding = strings.ToLower(ct.String())
	}

	return m, nil
}

// Decompressed returns the raw mask bytes, undoing Encoding. The output may
// not exceed Height x Width x Length bytes.
//
// Returns:
//   - []byte: Raw mask; a copy when Encoding is empty
//   - error: unsupported ErrUnknownCompression for an unknown encoding, or
//     malformed for a corrupted payload or one that expands past the
//     declared dimensions
func (m *Mask) Decompressed() ([]byte, error) {
	ct, err := compress.Parse(m.Encoding)
	if err != nil {
		return nil, err
	}

	if ct == format.CompressionNone {
		return slices.Clone(m.Mask), nil
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	raw, err := codec.DecompressLimit(m.Mask, m.maxRawSize())
	if err != nil {
		return nil, errs.Malformed("decompress mask", -1, err)
	}

	return raw, nil
}

// maxMaskBytes caps the decompressed size of a mask with hostile dimensions.
const maxMaskBytes = 1 << 30

func (m *Mask) maxRawSize() int {
	hw := uint64(m.Height) * uint64(m.Width)
	if m.Length != 0 && hw > maxMaskBytes/uint64(m.Length) {
		return maxMaskBytes
	}

	return int(hw * uint64(m.Length)) //nolint:gosec
}

func (*Mask) SchemaName() string {
	return "edgefirst_msgs/msg/Mask"
}

func (m *Mask) MarshalCDR(e *encoding.Encoder) {
	e.WriteUint32(m.Height)
	e.WriteUint32(m.Width)
	e.WriteUint32(m.Length)
	e.WriteString(m.Encoding)
	e.WriteBytes(m.Mask)
	e.WriteBool(m.Boxed)
}

func (m *Mask) UnmarshalCDR(d *encoding.Decoder) error {
	var dims [3]uint32
	if err := encoding.ReadArrayInto(d, dims[:]); err != nil {
		return err
	}
	m.Height, m.Width, m.Length = dims[0], dims[1], dims[2]

	var err error
	if m.Encoding, err = d.ReadString(); err != nil {
		return err
	}

	if m.Mask, err = d.ReadBytes(); err != nil {
		return err
	}

	m.Boxed, err = d.ReadBool()

	return err
}

package recorder

import (
	"fmt"
	"time"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/format"
)

const (
	fileHeaderSize  = 16
	chunkHeaderSize = 32
	schemaFixedSize = 8 + 2
	entryFixedSize  = 8 + 8 + 4

	version = 1

	// maxChunkBytes bounds the sizes a chunk header may declare.
	maxChunkBytes = 1 << 30
	maxSchemaName = 1<<16 - 1
)

var (
	fileMagic  = [4]byte{'C', 'D', 'R', 'L'}
	chunkMagic = [4]byte{'C', 'H', 'N', 'K'}
)

var le = endian.GetLittleEndianEngine()

// IsRecording reports whether data starts with the recording magic.
func IsRecording(data []byte) bool {
	return len(data) >= len(fileMagic) && [4]byte(data[:4]) == fileMagic
}

// FileHeader is the fixed header at the start of a recording.
type FileHeader struct {
	Version     uint16
	Compression format.CompressionType
	Created     time.Time
}

func (h FileHeader) appendTo(b []byte) []byte {
	b = append(b, fileMagic[:]...)
	b = le.AppendUint16(b, h.Version)
	b = append(b, byte(h.Compression), 0)
	b = le.AppendUint64(b, uint64(h.Created.UnixNano())) //nolint:gosec

	return b
}

func parseFileHeader(b []byte) (FileHeader, error) {
	if len(b) != fileHeaderSize || [4]byte(b[0:4]) != fileMagic {
		return FileHeader{}, errs.Malformed("read recording", 0, errs.ErrInvalidRecordingHeader)
	}

	h := FileHeader{
		Version:     le.Uint16(b[4:6]),
		Compression: format.CompressionType(b[6]),
		Created:     time.Unix(0, int64(le.Uint64(b[8:16]))).UTC(), //nolint:gosec
	}
	if h.Version != version {
		return FileHeader{}, errs.Unsupported("read recording",
			fmt.Errorf("%w: version %d", errs.ErrInvalidRecordingHeader, h.Version))
	}

	return h, nil
}

type chunkHeader struct {
	compression format.CompressionType
	entries     uint32
	rawSize     uint32
	storedSize  uint32
	schemas     uint32
	checksum    uint64
}

func (h chunkHeader) appendTo(b []byte) []byte {
	b = append(b, chunkMagic[:]...)
	b = append(b, byte(h.compression), 0, 0, 0)
	b = le.AppendUint32(b, h.entries)
	b = le.AppendUint32(b, h.rawSize)
	b = le.AppendUint32(b, h.storedSize)
	b = le.AppendUint32(b, h.schemas)
	b = le.AppendUint64(b, h.checksum)

	return b
}

func parseChunkHeader(b []byte, offset int64) (chunkHeader, error) {
	if [4]byte(b[0:4]) != chunkMagic {
		return chunkHeader{}, errs.Malformed("read chunk", int(offset), errs.ErrInvalidRecordingHeader)
	}

	h := chunkHeader{
		compression: format.CompressionType(b[4]),
		entries:     le.Uint32(b[8:12]),
		rawSize:     le.Uint32(b[12:16]),
		storedSize:  le.Uint32(b[16:20]),
		schemas:     le.Uint32(b[20:24]),
		checksum:    le.Uint64(b[24:32]),
	}
	if h.rawSize > maxChunkBytes || h.storedSize > maxChunkBytes {
		return chunkHeader{}, errs.Malformed("read chunk", int(offset),
			fmt.Errorf("%w: chunk declares %d/%d bytes", errs.ErrLengthLimit, h.rawSize, h.storedSize))
	}

	return h, nil
}

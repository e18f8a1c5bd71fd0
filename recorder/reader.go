package recorder

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"time"

	"github.com/arloliu/cdr/compress"
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/collision"
	"github.com/arloliu/cdr/internal/hash"
	"github.com/arloliu/cdr/internal/options"
	"github.com/arloliu/cdr/registry"
)

// Entry is one recorded message.
type Entry struct {
	Schema   string
	SchemaID uint64
	LogTime  time.Time
	// Data is the CDR payload. It stays valid after the Reader advances.
	Data []byte
}

// Decode decodes Data as the registered record type for Schema.
func (e Entry) Decode() (encoding.Message, error) {
	return registry.Decode(e.Schema, e.Data)
}

// Reader reads entries back from a recording in write order.
type Reader struct {
	r      io.Reader
	cfg    *config
	logger *slog.Logger
	header FileHeader

	offset  int64
	hdrBuf  [chunkHeaderSize]byte
	pending []Entry
	chunks  int
	err     error
}

// NewReader reads and validates the file header of r.
//
// Returns:
//   - *Reader: Reader positioned before the first chunk
//   - error: malformed ErrInvalidRecordingHeader if r does not start with a
//     recording header, unsupported for an unknown version
func NewReader(r io.Reader, opts ...Option) (*Reader, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	var buf [fileHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errs.Malformed("read recording", 0, errs.ErrInvalidRecordingHeader)
		}

		return nil, fmt.Errorf("read recording header: %w", err)
	}

	hdr, err := parseFileHeader(buf[:])
	if err != nil {
		return nil, err
	}

	return &Reader{r: r, cfg: cfg, logger: cfg.logger, header: hdr, offset: fileHeaderSize}, nil
}

// Header returns the file header.
func (r *Reader) Header() FileHeader {
	return r.header
}

// Next returns the next entry, or io.EOF after the last one. Any other error
// is sticky: later calls return it again.
func (r *Reader) Next() (Entry, error) {
	for len(r.pending) == 0 {
		if r.err != nil {
			return Entry{}, r.err
		}

		r.pending, r.err = r.readChunk()
	}

	e := r.pending[0]
	r.pending = r.pending[1:]

	return e, nil
}

// All iterates over the remaining entries. Iteration stops after the first
// error, which is yielded with a zero Entry; a clean end yields no error.
func (r *Reader) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			e, err := r.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Entry{}, err)
				return
			}
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (r *Reader) readChunk() ([]Entry, error) {
	start := r.offset
	n, err := io.ReadFull(r.r, r.hdrBuf[:])
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errs.Malformed("read chunk", int(start), errs.ErrTruncated)
		}

		return nil, fmt.Errorf("read chunk header: %w", err)
	}
	r.offset += int64(n)

	hdr, err := parseChunkHeader(r.hdrBuf[:], start)
	if err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(hdr.compression)
	if err != nil {
		return nil, err
	}

	stored := make([]byte, hdr.storedSize)
	if _, err := io.ReadFull(r.r, stored); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errs.Malformed("read chunk", int(start), errs.ErrTruncated)
		}

		return nil, fmt.Errorf("read chunk: %w", err)
	}
	r.offset += int64(hdr.storedSize)

	raw, err := codec.DecompressLimit(stored, int(hdr.rawSize))
	if err != nil {
		return nil, errs.Malformed("read chunk", int(start), err)
	}

	if len(raw) != int(hdr.rawSize) {
		return nil, errs.Malformed("read chunk", int(start), fmt.Errorf("%w: %d bytes, header declares %d",
			errs.ErrPayloadSizeMismatch, len(raw), hdr.rawSize))
	}

	if r.cfg.verify && hash.Checksum(raw) != hdr.checksum {
		return nil, errs.Malformed("read chunk", int(start), errs.ErrChecksumMismatch)
	}

	entries, err := parseChunk(raw, hdr)
	if err != nil {
		return nil, errs.Malformed("read chunk", int(start), err)
	}

	r.chunks++
	r.logger.Debug("chunk loaded",
		"chunk", r.chunks,
		"offset", start,
		"entries", len(entries),
		"compression", hdr.compression.String(),
	)

	return entries, nil
}

// parseChunk splits an uncompressed chunk into its schema table and entries.
func parseChunk(raw []byte, hdr chunkHeader) ([]Entry, error) {
	if hdr.schemas > uint32(len(raw)/schemaFixedSize) { //nolint:gosec
		return nil, errs.ErrTruncated
	}

	names := collision.NewTracker()
	pos := 0

	for range hdr.schemas {
		if len(raw)-pos < schemaFixedSize {
			return nil, errs.ErrTruncated
		}
		id := le.Uint64(raw[pos:])
		n := int(le.Uint16(raw[pos+8:]))
		pos += schemaFixedSize
		if len(raw)-pos < n {
			return nil, errs.ErrTruncated
		}
		if _, err := names.Track(string(raw[pos:pos+n]), id); err != nil {
			return nil, err
		}
		pos += n
	}

	if hdr.entries > uint32(len(raw)/entryFixedSize) { //nolint:gosec
		return nil, errs.ErrTruncated
	}

	entries := make([]Entry, 0, hdr.entries)
	for range hdr.entries {
		if len(raw)-pos < entryFixedSize {
			return nil, errs.ErrTruncated
		}
		id := le.Uint64(raw[pos:])
		ts := int64(le.Uint64(raw[pos+8:])) //nolint:gosec
		n := int(le.Uint32(raw[pos+16:]))
		pos += entryFixedSize
		if len(raw)-pos < n {
			return nil, errs.ErrTruncated
		}

		name, ok := names.Name(id)
		if !ok {
			return nil, fmt.Errorf("%w: schema id %#x", errs.ErrUnknownSchema, id)
		}

		entries = append(entries, Entry{
			Schema:   name,
			SchemaID: id,
			LogTime:  time.Unix(0, ts).UTC(),
			Data:     raw[pos : pos+n : pos+n],
		})
		pos += n
	}

	if pos != len(raw) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrPayloadSizeMismatch, len(raw)-pos)
	}

	return entries, nil
}

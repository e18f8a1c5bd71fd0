package recorder

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/arloliu/cdr/compress"
	"github.com/arloliu/cdr/encoding"
	"github.com/arloliu/cdr/errs"
	"github.com/arloliu/cdr/internal/collision"
	"github.com/arloliu/cdr/internal/hash"
	"github.com/arloliu/cdr/internal/options"
	"github.com/arloliu/cdr/internal/pool"
	"github.com/arloliu/cdr/registry"
)

// Writer appends entries to a recording. It is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	cfg    *config
	codec  compress.Codec
	logger *slog.Logger

	schemas  *pool.ByteBuffer   // schema table of the open chunk
	entries  *pool.ByteBuffer   // entries of the open chunk
	known    *collision.Tracker // ids already in the schema table
	count    uint32
	stats    compress.Stats
	chunks   int
	total    int
	closed   bool
	firstLog time.Time
	lastLog  time.Time
}

// NewWriter writes the file header to w and returns a Writer.
//
// Parameters:
//   - w: Destination; the Writer never closes it
//   - opts: WithCompression, WithChunkSize, WithLogger
//
// Returns:
//   - *Writer: Writer with an empty open chunk
//   - error: Option error, or the error from writing the header
func NewWriter(w io.Writer, opts ...Option) (*Writer, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	hdr := FileHeader{Version: version, Compression: cfg.compression, Created: time.Now()}
	if _, err := w.Write(hdr.appendTo(make([]byte, 0, fileHeaderSize))); err != nil {
		return nil, fmt.Errorf("write recording header: %w", err)
	}

	return &Writer{
		w:       w,
		cfg:     cfg,
		codec:   codec,
		logger:  cfg.logger,
		schemas: pool.GetChunkBuffer(),
		entries: pool.GetChunkBuffer(),
		known:   collision.NewTracker(),
		stats:   compress.Stats{Algorithm: cfg.compression},
	}, nil
}

// Write appends one entry. The payload is copied; the caller may reuse it.
//
// Parameters:
//   - schema: Schema name of the payload, e.g. "sensor_msgs/msg/Imu"
//   - logTime: Time the message was received
//   - payload: Encoded CDR message, header included
//
// Returns:
//   - error: invalid argument for a malformed schema name or an oversized
//     payload, or the error from flushing a full chunk
func (w *Writer) Write(schema string, logTime time.Time, payload []byte) error {
	if w.closed {
		return errs.InvalidArgument("write entry", errClosed)
	}

	if _, _, err := registry.ParseSchema(schema); err != nil {
		return err
	}

	if len(schema) > maxSchemaName || len(payload) > maxChunkBytes {
		return errs.InvalidArgument("write entry", errs.ErrLengthLimit)
	}

	id := hash.ID(schema)
	added, err := w.known.Track(schema, id)
	if err != nil {
		return errs.InvalidArgument("write entry", err)
	}
	if added {
		b := w.schemas.B
		b = le.AppendUint64(b, id)
		b = le.AppendUint16(b, uint16(len(schema))) //nolint:gosec
		b = append(b, schema...)
		w.schemas.B = b
	}

	b := w.entries.B
	b = le.AppendUint64(b, id)
	b = le.AppendUint64(b, uint64(logTime.UnixNano())) //nolint:gosec
	b = le.AppendUint32(b, uint32(len(payload)))       //nolint:gosec
	b = append(b, payload...)
	w.entries.B = b

	if w.count == 0 || logTime.Before(w.firstLog) {
		w.firstLog = logTime
	}
	if logTime.After(w.lastLog) {
		w.lastLog = logTime
	}
	w.count++
	w.total++

	if w.schemas.Len()+w.entries.Len() >= w.cfg.chunkSize {
		return w.Flush()
	}

	return nil
}

// WriteMessage encodes m and appends it under m's schema name.
func (w *Writer) WriteMessage(logTime time.Time, m encoding.Message, opts ...encoding.Option) error {
	e, err := encoding.NewEncoder(opts...)
	if err != nil {
		return err
	}
	defer e.Finish()

	m.MarshalCDR(e)
	if err := e.Err(); err != nil {
		return err
	}

	return w.Write(m.SchemaName(), logTime, e.Bytes())
}

// Flush compresses and writes the open chunk. It does nothing when the
// chunk is empty.
func (w *Writer) Flush() error {
	if w.count == 0 {
		return nil
	}

	tableLen := w.schemas.Len()
	_, _ = w.schemas.Write(w.entries.B)
	raw := w.schemas.B

	stored, err := w.codec.Compress(raw)
	if err != nil {
		w.schemas.B = w.schemas.B[:tableLen]
		return fmt.Errorf("compress chunk: %w", err)
	}

	hdr := chunkHeader{
		compression: w.cfg.compression,
		entries:     w.count,
		rawSize:     uint32(len(raw)),        //nolint:gosec
		storedSize:  uint32(len(stored)),     //nolint:gosec
		schemas:     uint32(w.known.Count()), //nolint:gosec
		checksum:    hash.Checksum(raw),
	}

	// The chunk header and its data go out in a single Write.
	out := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(out)
	out.B = hdr.appendTo(out.B)
	_, _ = out.Write(stored)

	if _, err := out.WriteTo(w.w); err != nil {
		return fmt.Errorf("write chunk: %w", err)
	}

	w.stats.Add(len(raw), len(stored))
	w.chunks++
	w.logger.Debug("chunk flushed",
		"chunk", w.chunks,
		"entries", w.count,
		"raw_bytes", len(raw),
		"stored_bytes", len(stored),
		"first_log", w.firstLog,
		"last_log", w.lastLog,
	)

	w.schemas.Reset()
	w.entries.Reset()
	w.known.Reset()
	w.count = 0

	return nil
}

// Stats returns the compression totals of the chunks written so far.
func (w *Writer) Stats() compress.Stats {
	return w.stats
}

// Close flushes the open chunk and releases pooled buffers. It does not
// close the underlying io.Writer. Calling Close twice is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}

	err := w.Flush()
	w.closed = true
	pool.PutChunkBuffer(w.schemas)
	pool.PutChunkBuffer(w.entries)
	w.schemas, w.entries = nil, nil

	w.logger.Info("recording closed",
		"entries", w.total,
		"chunks", w.chunks,
		"compression", w.stats.Algorithm.String(),
		"ratio", w.stats.Ratio(),
	)

	return err
}

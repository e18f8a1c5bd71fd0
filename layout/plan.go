package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/cdr/endian"
	"github.com/arloliu/cdr/errs"
)

// column is a validated descriptor with its decoder resolved.
type column struct {
	name   string
	offset int
	count  int
	width  int
	index  int // position of the first value inside a record
	decode decodeFunc
}

// Plan is a validated, offset-sorted set of columns for rows of a fixed stride.
type Plan struct {
	fields  []FieldDescriptor
	columns []column
	byName  map[string]int
	stride  int
	values  int
	engine  endian.EndianEngine
}

// NewPlan validates fields against stride and builds the per-column decode
// strategy used for every row.
//
// Parameters:
//   - fields: Column descriptors in any order (the slice is not modified)
//   - stride: Bytes per row; must be positive
//   - engine: Byte order of the row data
//
// Returns:
//   - *Plan: Immutable plan, safe for concurrent use
//   - error: invalid argument for a nil engine; malformed for a bad stride,
//     zero count, duplicate name, a column past the stride, or overlapping
//     columns; unsupported for an unknown datatype
func NewPlan(fields []FieldDescriptor, stride int, engine endian.EndianEngine) (*Plan, error) {
	if engine == nil {
		return nil, errs.InvalidArgument("build plan", errs.ErrNilTarget)
	}

	if stride <= 0 {
		return nil, errs.Malformed("build plan", -1, fmt.Errorf("%w: %d", errs.ErrInvalidStride, stride))
	}

	sorted := slices.Clone(fields)
	slices.SortStableFunc(sorted, func(a, b FieldDescriptor) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	p := &Plan{
		fields:  sorted,
		columns: make([]column, 0, len(sorted)),
		byName:  make(map[string]int, len(sorted)),
		stride:  stride,
		engine:  engine,
	}

	prevEnd := 0
	for i, f := range sorted {
		decode := lookupDecoder(f.Datatype)
		if decode == nil {
			return nil, errs.Unsupported("build plan", fmt.Errorf("%w: field %q has tag %d",
				errs.ErrUnknownDatatype, f.Name, uint8(f.Datatype)))
		}

		if f.Count == 0 {
			return nil, errs.Malformed("build plan", -1, fmt.Errorf("%w: field %q", errs.ErrZeroCount, f.Name))
		}

		if _, dup := p.byName[f.Name]; dup {
			return nil, errs.Malformed("build plan", -1, fmt.Errorf("%w: %q", errs.ErrDuplicateField, f.Name))
		}

		// Compare in uint64 so a hostile count cannot wrap.
		end := uint64(f.Offset) + uint64(f.Datatype.Width())*uint64(f.Count)
		if end > uint64(stride) {
			return nil, errs.Malformed("build plan", -1, fmt.Errorf("%w: %s ends at %d, stride %d",
				errs.ErrFieldOutOfBounds, f, end, stride))
		}

		if i > 0 && int(f.Offset) < prevEnd {
			return nil, errs.Malformed("build plan", -1, fmt.Errorf("%w: %s starts before %d",
				errs.ErrFieldOverlap, f, prevEnd))
		}
		prevEnd = int(end)

		p.byName[f.Name] = len(p.columns)
		p.columns = append(p.columns, column{
			name:   f.Name,
			offset: int(f.Offset),
			count:  int(f.Count),
			width:  f.Datatype.Width(),
			index:  p.values,
			decode: decode,
		})
		p.values += int(f.Count)
	}

	return p, nil
}

// Stride returns the number of bytes per row.
func (p *Plan) Stride() int {
	return p.stride
}

// Width returns the number of values in one record: the sum of all counts.
func (p *Plan) Width() int {
	return p.values
}

// Fields returns the descriptors sorted by offset.
func (p *Plan) Fields() []FieldDescriptor {
	return slices.Clone(p.fields)
}

// Names returns the column names in offset order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.columns))
	for i, c := range p.columns {
		names[i] = c.name
	}

	return names
}

// Lookup returns the position of the named column's first value inside a
// record and the column's element count.
func (p *Plan) Lookup(name string) (index int, count int, ok bool) {
	i, ok := p.byName[name]
	if !ok {
		return 0, 0, false
	}

	return p.columns[i].index, p.columns[i].count, true
}

// EndianEngine returns the byte order the plan decodes with.
func (p *Plan) EndianEngine() endian.EndianEngine {
	return p.engine
}

// Rows returns the number of whole rows in data.
//
// Returns:
//   - int: len(data) / stride
//   - error: malformed ErrPayloadSizeMismatch if data ends in a partial row
func (p *Plan) Rows(data []byte) (int, error) {
	if len(data)%p.stride != 0 {
		return 0, errs.Malformed("decode rows", len(data)-len(data)%p.stride,
			fmt.Errorf("%w: %d bytes is not a multiple of stride %d", errs.ErrPayloadSizeMismatch, len(data), p.stride))
	}

	return len(data) / p.stride, nil
}

// DecodeRow decodes row number row of data into a new Record.
//
// data must hold whole rows only; a trailing partial row is rejected rather
// than ignored.
func (p *Plan) DecodeRow(data []byte, row int) (Record, error) {
	values := make([]float64, p.values)
	if err := p.DecodeRowInto(data, row, values); err != nil {
		return Record{}, err
	}

	return Record{plan: p, values: values}, nil
}

// DecodeRowInto decodes row number row of data into dst, which must have
// room for Width values. It allocates nothing.
func (p *Plan) DecodeRowInto(data []byte, row int, dst []float64) error {
	rows, err := p.Rows(data)
	if err != nil {
		return err
	}

	if row < 0 || row >= rows {
		return errs.InvalidArgument("decode row", fmt.Errorf("%w: %d of %d", errs.ErrRowOutOfRange, row, rows))
	}

	if len(dst) < p.values {
		return errs.BufferTooSmall(p.values, len(dst))
	}

	p.decode(data[row*p.stride:(row+1)*p.stride], dst)

	return nil
}

// decode fills dst from one row of exactly stride bytes. Bounds were proven
// at plan time, so no checks are repeated here.
func (p *Plan) decode(row []byte, dst []float64) {
	for i := range p.columns {
		c := &p.columns[i]
		off := c.offset
		for k := range c.count {
			dst[c.index+k] = c.decode(row[off:], p.engine)
			off += c.width
		}
	}
}

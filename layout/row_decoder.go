package layout

import (
	"fmt"
	"iter"

	"github.com/arloliu/cdr/errs"
)

// RowDecoder applies a Plan to a payload of a declared number of rows.
type RowDecoder struct {
	plan *Plan
	data []byte
	rows int
}

// NewRowDecoder checks that data holds exactly rows rows of plan's stride.
//
// Parameters:
//   - plan: Layout the rows follow
//   - data: Row payload; read-only, not copied
//   - rows: Declared row count; zero with an empty payload is valid
//
// Returns:
//   - *RowDecoder: Decoder over the rows
//   - error: invalid argument for a nil plan or negative count, malformed
//     ErrPayloadSizeMismatch if len(data) != rows*stride
func NewRowDecoder(plan *Plan, data []byte, rows int) (*RowDecoder, error) {
	if plan == nil {
		return nil, errs.InvalidArgument("decode rows", errs.ErrNilTarget)
	}

	if rows < 0 {
		return nil, errs.InvalidArgument("decode rows", fmt.Errorf("%w: %d", errs.ErrRowOutOfRange, rows))
	}

	if uint64(len(data)) != uint64(rows)*uint64(plan.stride) {
		return nil, errs.Malformed("decode rows", -1, fmt.Errorf("%w: %d rows of %d bytes declared, %d bytes present",
			errs.ErrPayloadSizeMismatch, rows, plan.stride, len(data)))
	}

	return &RowDecoder{plan: plan, data: data, rows: rows}, nil
}

// Plan returns the layout the decoder applies.
func (d *RowDecoder) Plan() *Plan {
	return d.plan
}

// Len returns the number of rows.
func (d *RowDecoder) Len() int {
	return d.rows
}

// Row decodes row i.
func (d *RowDecoder) Row(i int) (Record, error) {
	if i < 0 || i >= d.rows {
		return Record{}, errs.InvalidArgument("decode row", fmt.Errorf("%w: %d of %d", errs.ErrRowOutOfRange, i, d.rows))
	}

	values := make([]float64, d.plan.values)
	d.plan.decode(d.data[i*d.plan.stride:(i+1)*d.plan.stride], values)

	return Record{plan: d.plan, values: values}, nil
}

// RowInto decodes row i into dst, which must have room for Plan().Width() values.
func (d *RowDecoder) RowInto(i int, dst []float64) error {
	if i < 0 || i >= d.rows {
		return errs.InvalidArgument("decode row", fmt.Errorf("%w: %d of %d", errs.ErrRowOutOfRange, i, d.rows))
	}

	if len(dst) < d.plan.values {
		return errs.BufferTooSmall(d.plan.values, len(dst))
	}

	d.plan.decode(d.data[i*d.plan.stride:(i+1)*d.plan.stride], dst)

	return nil
}

// All iterates over every row in order.
func (d *RowDecoder) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := range d.rows {
			rec, _ := d.Row(i)
			if !yield(i, rec) {
				return
			}
		}
	}
}

// DecodeAll decodes every row. The records share one backing array, so the
// whole payload costs two allocations regardless of row count.
func (d *RowDecoder) DecodeAll() []Record {
	if d.rows == 0 {
		return nil
	}

	width := d.plan.values
	backing := make([]float64, d.rows*width)
	records := make([]Record, d.rows)
	for i := range records {
		values := backing[i*width : (i+1)*width : (i+1)*width]
		d.plan.decode(d.data[i*d.plan.stride:(i+1)*d.plan.stride], values)
		records[i] = Record{plan: d.plan, values: values}
	}

	return records
}

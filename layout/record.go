package layout

import "slices"

// Record is one decoded row. It owns its values and keeps no reference to the
// payload it was decoded from.
type Record struct {
	plan   *Plan
	values []float64
}

// Value returns the first element of the named column.
func (r Record) Value(name string) (float64, bool) {
	if r.plan == nil {
		return 0, false
	}

	idx, _, ok := r.plan.Lookup(name)
	if !ok {
		return 0, false
	}

	return r.values[idx], true
}

// Values returns every element of the named column, or nil if there is no such column.
func (r Record) Values(name string) []float64 {
	if r.plan == nil {
		return nil
	}

	idx, count, ok := r.plan.Lookup(name)
	if !ok {
		return nil
	}

	return slices.Clone(r.values[idx : idx+count])
}

// Names returns the column names in offset order.
func (r Record) Names() []string {
	if r.plan == nil {
		return nil
	}

	return r.plan.Names()
}

// Raw returns all values in column order. The slice is shared with the record.
func (r Record) Raw() []float64 {
	return r.values
}

// Map returns the record keyed by column name. Single-element columns map to
// a float64, multi-element columns to a []float64.
func (r Record) Map() map[string]any {
	if r.plan == nil {
		return map[string]any{}
	}

	m := make(map[string]any, len(r.plan.columns))
	for _, c := range r.plan.columns {
		if c.count == 1 {
			m[c.name] = r.values[c.index]
		} else {
			m[c.name] = slices.Clone(r.values[c.index : c.index+c.count])
		}
	}

	return m
}

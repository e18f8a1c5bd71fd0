package pool

import "sync"

// float64SlicePool recycles the scratch slices rows are decoded into before
// their values are copied into a record or promoted into a point.
var float64SlicePool = sync.Pool{
	New: func() any { return &[]float64{} },
}

// GetFloat64Slice retrieves and resizes a float64 slice from the pool.
//
// The returned slice has length size; its contents are unspecified. The caller
// must call the returned cleanup function to give the slice back.
//
// Parameters:
//   - size: The desired length of the slice
//
// Returns:
//   - []float64: A slice with length equal to size
//   - func(): Cleanup function that must be called (typically with defer)
//
// Example:
//
//	values, cleanup := pool.GetFloat64Slice(plan.Width())
//	defer cleanup()
func GetFloat64Slice(size int) ([]float64, func()) {
	ptr, _ := float64SlicePool.Get().(*[]float64)

	if cap(*ptr) < size {
		*ptr = make([]float64, size)
	} else {
		*ptr = (*ptr)[:size]
	}

	return *ptr, func() { float64SlicePool.Put(ptr) }
}

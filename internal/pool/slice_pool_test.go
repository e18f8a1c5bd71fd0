package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetFloat64Slice(t *testing.T) {
	values, cleanup := GetFloat64Slice(5)
	require.Len(t, values, 5)

	for i := range values {
		values[i] = float64(i)
	}
	cleanup()

	smaller, cleanup := GetFloat64Slice(2)
	defer cleanup()
	require.Len(t, smaller, 2)
}

func TestGetFloat64Slice_Grow(t *testing.T) {
	small, cleanup := GetFloat64Slice(1)
	require.Len(t, small, 1)
	cleanup()

	large, cleanup := GetFloat64Slice(1024)
	defer cleanup()
	require.Len(t, large, 1024)
	require.GreaterOrEqual(t, cap(large), 1024)
}

func TestGetFloat64Slice_Zero(t *testing.T) {
	values, cleanup := GetFloat64Slice(0)
	defer cleanup()
	require.Empty(t, values)
}

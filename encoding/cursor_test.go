package encoding

import (
	"testing"

	"github.com/arloliu/cdr/errs"
	"github.com/stretchr/testify/require"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		offset    int
		alignment int
		want      int
	}{
		{0, 4, 0},
		{1, 4, 3},
		{2, 4, 2},
		{3, 4, 1},
		{4, 4, 0},
		{5, 8, 3},
		{7, 2, 1},
		{9, 1, 0},
		{3, 0, 0},
		{12, 8, 4},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Padding(tt.offset, tt.alignment), "offset=%d alignment=%d", tt.offset, tt.alignment)
	}
}

func TestAlignment(t *testing.T) {
	require.Equal(t, 1, Alignment(1))
	require.Equal(t, 2, Alignment(2))
	require.Equal(t, 4, Alignment(4))
	require.Equal(t, 8, Alignment(8))
	require.Equal(t, 1, Alignment(3))
	require.Equal(t, 1, Alignment(0))
}

func TestCursor_Next(t *testing.T) {
	c := NewCursor(10)
	require.Equal(t, 10, c.Len())

	start, err := c.Next(1, 1)
	require.NoError(t, err)
	require.Equal(t, 0, start)
	require.Equal(t, 1, c.Offset())

	start, err = c.Next(4, 4)
	require.NoError(t, err)
	require.Equal(t, 4, start)
	require.Equal(t, 8, c.Offset())

	// Does not fit: the cursor must not move.
	_, err = c.Next(4, 4)
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.Equal(t, 8, c.Offset())

	start, err = c.Next(2, 2)
	require.NoError(t, err)
	require.Equal(t, 8, start)
	require.Equal(t, 0, c.Remaining())

	start, err = c.Next(1, 0)
	require.NoError(t, err)
	require.Equal(t, 10, start)

	require.Error(t, c.Align(8))
	require.Equal(t, 10, c.Offset())
}

func TestCursor_RejectsNegativeWidth(t *testing.T) {
	c := NewCursor(4)
	_, err := c.Next(1, -1)
	require.ErrorIs(t, err, errs.ErrMalformed)
	require.Equal(t, 0, c.Offset())
}

func TestCursor_PaddingPastEnd(t *testing.T) {
	c := NewCursor(5)
	_, err := c.Next(1, 5)
	require.NoError(t, err)

	_, err = c.Next(8, 0)
	require.Error(t, err)
	require.Equal(t, 5, c.Offset())
}

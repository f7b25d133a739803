package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type blocks int64

func TestDivRoundUp(t *testing.T) {
	require.Equal(t, 0, DivRoundUp(0, 1024))
	require.Equal(t, 1, DivRoundUp(1, 1024))
	require.Equal(t, 1, DivRoundUp(1024, 1024))
	require.Equal(t, 3, DivRoundUp(2049, 1024))
	require.Equal(t, blocks(8), DivRoundUp(blocks(8192), 1024))
	require.Equal(t, uint8(2), DivRoundUp(uint8(9), 8))
}

func TestMinMax(t *testing.T) {
	require.Equal(t, 3, Min(3, 7))
	require.Equal(t, blocks(-1), Min(blocks(-1), 0))
	require.Equal(t, 7, Max(3, 7))
	require.Equal(t, uint64(9), Max(uint64(9), 2))
}

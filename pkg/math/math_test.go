package math_test

import (
	"testing"

	"github.com/graph-guard/chainmap/pkg/math"
	"github.com/stretchr/testify/require"
)

func TestMax(t *testing.T) {
	require.Equal(t, 1.0, math.Max(-1.0, 1.0))
	require.Equal(t, 1.0, math.Max(1.0, -1.0))
	require.Equal(t, uint(7), math.Max(uint(7), 3))
}

func TestMin(t *testing.T) {
	require.Equal(t, -1.0, math.Min(-1.0, 1.0))
	require.Equal(t, -1.0, math.Min(1.0, -1.0))
	require.Equal(t, 3, math.Min(7, 3))
}

func TestIsPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 4, 16, 1024, 1 << 40} {
		require.True(t, math.IsPowerOfTwo(n), n)
	}
	for _, n := range []int{-2, 0, 3, 6, 12, 1000} {
		require.False(t, math.IsPowerOfTwo(n), n)
	}
	require.True(t, math.IsPowerOfTwo(uint8(128)))
}

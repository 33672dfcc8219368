package math_test

import (
	stdmath "math"
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/math"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

func TestIntegerSquareRoot(t *testing.T) {
	tt := []struct {
		number uint64
		root   uint64
	}{
		{number: 0, root: 0},
		{number: 1, root: 1},
		{number: 3, root: 1},
		{number: 4, root: 2},
		{number: 20, root: 4},
		{number: 200, root: 14},
		{number: 1987, root: 44},
		{number: 34989843, root: 5915},
		{number: 97282, root: 311},
		{number: 1 << 32, root: 1 << 16},
		{number: (1 << 32) + 1, root: 1 << 16},
		{number: 1 << 33, root: 92681},
		{number: stdmath.MaxUint64, root: 4294967295},
	}
	for _, testVals := range tt {
		assert.Equal(t, testVals.root, math.IntegerSquareRoot(testVals.number), "number %d", testVals.number)
	}
}

func TestMul64(t *testing.T) {
	v, err := math.Mul64(1<<32, 1<<31)
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), v)
	_, err = math.Mul64(1<<32, 1<<32)
	assert.Equal(t, math.ErrMulOverflow, err)
}

func TestMulDiv(t *testing.T) {
	assert.Equal(t, uint64(6), math.MulDiv(4, 3, 2))
	// 32 ETH * 2^40 Gwei overflows 64 bits before division.
	assert.Equal(t, uint64(32e9)<<10, math.MulDiv(32e9, 1<<40, 1<<30))
	assert.Equal(t, uint64(stdmath.MaxUint64), math.MulDiv(stdmath.MaxUint64, 2, 1))
}

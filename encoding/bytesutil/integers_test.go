package bytesutil_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
)

func TestBytes4(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0, 0, 0, 0}},
		{1, []byte{1, 0, 0, 0}},
		{256, []byte{0, 1, 0, 0}},
		{16777216, []byte{0, 0, 0, 1}},
		{4294967295, []byte{255, 255, 255, 255}},
		{4294967296, []byte{0, 0, 0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.b, bytesutil.Bytes4(tt.a))
	}
}

func TestBytes8(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{16777216, []byte{0, 0, 0, 1, 0, 0, 0, 0}},
		{4294967296, []byte{0, 0, 0, 0, 1, 0, 0, 0}},
		{9223372036854775807, []byte{255, 255, 255, 255, 255, 255, 255, 127}},
	}
	for _, tt := range tests {
		b := bytesutil.Bytes8(tt.a)
		assert.Equal(t, tt.b, b)
		assert.Equal(t, tt.a, bytesutil.FromBytes8(b))
	}
	assert.Equal(t, uint64(0), bytesutil.FromBytes8([]byte{1, 2}))
}

func TestBytes1(t *testing.T) {
	assert.Equal(t, []byte{255}, bytesutil.Bytes1(511))
}

func TestToBytes(t *testing.T) {
	assert.Equal(t, [4]byte{1, 2, 3, 4}, bytesutil.ToBytes4([]byte{1, 2, 3, 4, 5}))
	r := bytesutil.ToBytes32([]byte{0xaa})
	assert.Equal(t, byte(0xaa), r[0])
	assert.Equal(t, byte(0), r[31])
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6}, bytesutil.Trunc([]byte{1, 2, 3, 4, 5, 6, 7}))
	assert.Equal(t, []byte{1}, bytesutil.Trunc([]byte{1}))
}

func TestSafeCopyBytes(t *testing.T) {
	assert.Nil(t, bytesutil.SafeCopyBytes(nil))
	in := []byte{1, 2}
	out := bytesutil.SafeCopyBytes(in)
	in[0] = 9
	assert.Equal(t, []byte{1, 2}, out)
}

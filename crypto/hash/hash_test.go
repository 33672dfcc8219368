package hash_test

import (
	"encoding/hex"
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
)

func TestHash(t *testing.T) {
	got := hash.Hash([]byte("abc"))
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	assert.Equal(t, want, hex.EncodeToString(got[:]))
}

func TestCustomSHA256Hasher_MatchesHash(t *testing.T) {
	hasher := hash.CustomSHA256Hasher()
	for _, in := range [][]byte{{}, {1}, []byte("crosslink"), make([]byte, 100)} {
		assert.Equal(t, hash.Hash(in), hasher(in))
	}
}

func BenchmarkHash(b *testing.B) {
	data := make([]byte, 64)
	for i := 0; i < b.N; i++ {
		hash.Hash(data)
	}
}

package util

import (
	"encoding/binary"
	"sync"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
)

var lock sync.Mutex

// Caches
var cachedKeys []bls.SecretKey

// DeterministicallyGenerateKeys creates BLS private keys from a fixed key
// material per index. Keys are cached across calls.
func DeterministicallyGenerateKeys(numKeys uint64) ([]bls.SecretKey, error) {
	lock.Lock()
	defer lock.Unlock()

	for i := uint64(len(cachedKeys)); i < numKeys; i++ {
		enc := make([]byte, 32)
		binary.LittleEndian.PutUint32(enc, uint32(i))
		ikm := hash.Hash(enc)
		priv, err := bls.SecretKeyFromIKM(ikm[:])
		if err != nil {
			return nil, errors.Wrapf(err, "could not create bls secret key at index %d", i)
		}
		cachedKeys = append(cachedKeys, priv)
	}
	keys := make([]bls.SecretKey, numKeys)
	copy(keys, cachedKeys[:numKeys])
	return keys, nil
}

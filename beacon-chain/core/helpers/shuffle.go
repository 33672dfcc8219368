package helpers

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/cache"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
)

const seedSize = int8(32)
const roundSize = int8(1)
const positionWindowSize = int8(4)
const pivotViewSize = seedSize + roundSize
const totalSize = seedSize + roundSize + positionWindowSize

var maxShuffleListSize uint64 = 1 << 40

// ShuffledIndex returns the shuffled validator index corresponding to seed and index count.
//
// Spec pseudocode definition:
//
//	def compute_shuffled_index(index: uint64, index_count: uint64, seed: Bytes32) -> uint64:
//	  """
//	  Return the shuffled index corresponding to ``seed`` (and ``index_count``).
//	  """
//	  assert index < index_count
//
//	  # Swap or not (https://link.springer.com/content/pdf/10.1007%2F978-3-642-32009-5_1.pdf)
//	  # See the 'generalized domain' algorithm on page 3
//	  for current_round in range(SHUFFLE_ROUND_COUNT):
//	      pivot = bytes_to_uint64(hash(seed + uint_to_bytes(uint8(current_round)))[0:8]) % index_count
//	      flip = (pivot + index_count - index) % index_count
//	      position = max(index, flip)
//	      source = hash(seed + uint_to_bytes(uint8(current_round)) + uint_to_bytes(uint32(position // 256)))
//	      byte = uint8(source[(position % 256) // 8])
//	      bit = (byte >> (position % 8)) % 2
//	      index = flip if bit else index
//
//	  return index
func ShuffledIndex(cfg *params.BeaconChainConfig, index, indexCount uint64, seed [32]byte) (uint64, error) {
	if indexCount > maxShuffleListSize {
		return 0, errors.Errorf("list size %d out of bounds", indexCount)
	}
	if index >= indexCount {
		return 0, errors.Errorf("index %d out of bounds of list size %d", index, indexCount)
	}
	hashfunc := hash.CustomSHA256Hasher()
	buf := make([]byte, totalSize)
	copy(buf[:seedSize], seed[:])
	for round := uint64(0); round < cfg.ShuffleRoundCount; round++ {
		buf[seedSize] = byte(round)
		h := hashfunc(buf[:pivotViewSize])
		pivot := bytesutil.FromBytes8(h[:8]) % indexCount
		flip := (pivot + indexCount - index) % indexCount
		position := index
		if flip > position {
			position = flip
		}
		binary.LittleEndian.PutUint32(buf[pivotViewSize:], uint32(position>>8))
		source := hashfunc(buf)
		byteV := source[(position&0xff)>>3]
		if (byteV>>(position&0x7))&0x1 == 1 {
			index = flip
		}
	}
	return index, nil
}

// ShuffledPositions returns, for every position i of a list of the given size,
// ShuffledIndex(i). Results are cached by seed, size and round count; callers
// must not mutate the returned slice.
func ShuffledPositions(cfg *params.BeaconChainConfig, indexCount uint64, seed [32]byte) ([]uint64, error) {
	if indexCount > maxShuffleListSize {
		return nil, errors.Errorf("list size %d out of bounds", indexCount)
	}
	key := cache.ShuffleKey{Seed: seed, Count: indexCount, Rounds: cfg.ShuffleRoundCount}
	if positions := shuffledIndicesCache.ShuffledPositions(key); positions != nil {
		return positions, nil
	}
	positions := shufflePositions(cfg.ShuffleRoundCount, indexCount, seed)
	shuffledIndicesCache.AddShuffledPositions(key, positions)
	return positions, nil
}

// shufflePositions runs the swap-or-not rounds over every position at once,
// hashing each (round, position window) source only once.
func shufflePositions(rounds, indexCount uint64, seed [32]byte) []uint64 {
	positions := make([]uint64, indexCount)
	for i := range positions {
		positions[i] = uint64(i)
	}
	if indexCount == 0 {
		return positions
	}
	hashfunc := hash.CustomSHA256Hasher()
	buf := make([]byte, totalSize)
	copy(buf[:seedSize], seed[:])
	for round := uint64(0); round < rounds; round++ {
		buf[seedSize] = byte(round)
		h := hashfunc(buf[:pivotViewSize])
		pivot := bytesutil.FromBytes8(h[:8]) % indexCount
		sources := make(map[uint64][32]byte)
		for i, index := range positions {
			flip := (pivot + indexCount - index) % indexCount
			position := index
			if flip > position {
				position = flip
			}
			window := position >> 8
			source, ok := sources[window]
			if !ok {
				binary.LittleEndian.PutUint32(buf[pivotViewSize:], uint32(window))
				source = hashfunc(buf)
				sources[window] = source
			}
			byteV := source[(position&0xff)>>3]
			if (byteV>>(position&0x7))&0x1 == 1 {
				positions[i] = flip
			}
		}
	}
	return positions
}

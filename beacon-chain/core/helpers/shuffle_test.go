package helpers

import (
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

func TestShuffledIndex_OutOfBounds(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	_, err := ShuffledIndex(cfg, 10, 10, [32]byte{'A'})
	require.ErrorContains(t, "out of bounds", err)

	_, err = ShuffledIndex(cfg, 0, maxShuffleListSize+1, [32]byte{'A'})
	require.NotNil(t, err)
}

func TestShuffledIndex_IsPermutation(t *testing.T) {
	cfg := params.MainnetConfig()
	seed := [32]byte{'s', 'e', 'e', 'd'}
	count := uint64(300)
	seen := make(map[uint64]bool, count)
	for i := uint64(0); i < count; i++ {
		idx, err := ShuffledIndex(cfg, i, count, seed)
		require.NoError(t, err)
		require.Equal(t, true, idx < count)
		require.Equal(t, false, seen[idx], "index %d produced twice", idx)
		seen[idx] = true
	}
}

func TestShuffledIndex_NoRoundsIsIdentity(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	cfg.ShuffleRoundCount = 0
	for i := uint64(0); i < 20; i++ {
		idx, err := ShuffledIndex(cfg, i, 20, [32]byte{1})
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
}

func TestShuffledPositions_MatchesShuffledIndex(t *testing.T) {
	ClearShuffledValidatorCache()
	for _, cfg := range []*params.BeaconChainConfig{params.MinimalSpecConfig(), params.MainnetConfig()} {
		seed := [32]byte{'p', 'o', 's'}
		for _, count := range []uint64{0, 1, 2, 7, 100, 513} {
			positions, err := ShuffledPositions(cfg, count, seed)
			require.NoError(t, err)
			require.Equal(t, int(count), len(positions))
			for i := uint64(0); i < count; i++ {
				want, err := ShuffledIndex(cfg, i, count, seed)
				require.NoError(t, err)
				require.Equal(t, want, positions[i], "position %d of %d", i, count)
			}
		}
	}
}

func TestShuffledPositions_Cached(t *testing.T) {
	ClearShuffledValidatorCache()
	cfg := params.MinimalSpecConfig()
	seed := [32]byte{'c'}
	first, err := ShuffledPositions(cfg, 64, seed)
	require.NoError(t, err)
	assert.Equal(t, 1, shuffledIndicesCache.Len())
	second, err := ShuffledPositions(cfg, 64, seed)
	require.NoError(t, err)
	assert.Equal(t, true, &first[0] == &second[0], "expected the cached slice")

	// A different round count is a different permutation.
	other := params.MinimalSpecConfig()
	other.ShuffleRoundCount = 11
	_, err = ShuffledPositions(other, 64, seed)
	require.NoError(t, err)
	assert.Equal(t, 2, shuffledIndicesCache.Len())
}

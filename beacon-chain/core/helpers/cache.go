package helpers

import (
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/cache"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
)

var shuffledIndicesCache = cache.NewShuffledIndicesCache(params.BeaconConfig().ShuffledIndicesCacheSize)

// ClearShuffledValidatorCache clears the shuffled indices cache from scratch.
func ClearShuffledValidatorCache() {
	shuffledIndicesCache = cache.NewShuffledIndicesCache(params.BeaconConfig().ShuffledIndicesCacheSize)
}

// ClearAllCaches clears all the helpers caches from scratch.
func ClearAllCaches() {
	ClearShuffledValidatorCache()
}

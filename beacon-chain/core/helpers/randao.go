package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
)

// Seed returns the randao seed used for shuffling of a given epoch.
//
// Spec pseudocode definition:
//
//	def get_seed(state: BeaconState, epoch: Epoch, domain_type: DomainType) -> Bytes32:
//	  """
//	  Return the seed at ``epoch``.
//	  """
//	  mix = get_randao_mix(state, Epoch(epoch + EPOCHS_PER_HISTORICAL_VECTOR - MIN_SEED_LOOKAHEAD - 1))  # Avoid underflow
//	  return hash(domain_type + uint_to_bytes(epoch) + mix)
func Seed(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch, domain [4]byte) ([32]byte, error) {
	// See https://github.com/ethereum/consensus-specs/pull/1296 for
	// rationale on why offset has to look down by 1.
	lookAheadEpoch := epoch + cfg.EpochsPerHistoricalVector - cfg.MinSeedLookahead - 1

	randaoMix, err := RandaoMix(cfg, st, lookAheadEpoch)
	if err != nil {
		return [32]byte{}, err
	}
	seed := make([]byte, 0, 4+8+32)
	seed = append(seed, domain[:]...)
	seed = append(seed, bytesutil.Bytes8(uint64(epoch))...)
	seed = append(seed, randaoMix[:]...)
	return hash.Hash(seed), nil
}

// RandaoMix returns the randao mix (xor'ed seed)
// of a given slot. It is used to shuffle validators.
//
// Spec pseudocode definition:
//
//	def get_randao_mix(state: BeaconState, epoch: Epoch) -> Bytes32:
//	  """
//	  Return the randao mix at a recent ``epoch``.
//	  """
//	  return state.randao_mixes[epoch % EPOCHS_PER_HISTORICAL_VECTOR]
func RandaoMix(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) ([32]byte, error) {
	idx := uint64(epoch.Mod(uint64(cfg.EpochsPerHistoricalVector)))
	if idx >= uint64(len(st.RandaoMixes)) {
		return [32]byte{}, errors.Errorf("randao mix index %d out of range of %d mixes", idx, len(st.RandaoMixes))
	}
	return st.RandaoMixes[idx], nil
}

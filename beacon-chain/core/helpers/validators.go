package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	fieldparams "github.com/prysmaticlabs/prysm-crosslinks/config/fieldparams"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// IsActiveValidator returns the boolean value on whether the validator
// is active or not.
//
// Spec pseudocode definition:
//
//	def is_active_validator(validator: Validator, epoch: Epoch) -> bool:
//	  """
//	  Check if ``validator`` is active.
//	  """
//	  return validator.activation_epoch <= epoch < validator.exit_epoch
func IsActiveValidator(validator *ethpb.Validator, epoch primitives.Epoch) bool {
	return validator.ActivationEpoch <= epoch && epoch < validator.ExitEpoch
}

// ActiveValidatorIndices filters out active validators based on validator status
// and returns their indices in a list.
//
// Spec pseudocode definition:
//
//	def get_active_validator_indices(state: BeaconState, epoch: Epoch) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the sequence of active validator indices at ``epoch``.
//	  """
//	  return [ValidatorIndex(i) for i, v in enumerate(state.validators) if is_active_validator(v, epoch)]
func ActiveValidatorIndices(st *state.BeaconState, epoch primitives.Epoch) []primitives.ValidatorIndex {
	indices := make([]primitives.ValidatorIndex, 0, len(st.Validators))
	for i, v := range st.Validators {
		if IsActiveValidator(v, epoch) {
			indices = append(indices, primitives.ValidatorIndex(i))
		}
	}
	return indices
}

// ActiveValidatorCount returns the number of active validators in the state
// at the given epoch.
func ActiveValidatorCount(st *state.BeaconState, epoch primitives.Epoch) uint64 {
	count := uint64(0)
	for _, v := range st.Validators {
		if IsActiveValidator(v, epoch) {
			count++
		}
	}
	return count
}

// BeaconProposerIndex returns proposer index of a current slot.
//
// Spec pseudocode definition:
//
//	def get_beacon_proposer_index(state: BeaconState) -> ValidatorIndex:
//	  """
//	  Return the beacon proposer index at the current slot.
//	  """
//	  epoch = get_current_epoch(state)
//	  seed = hash(get_seed(state, epoch, DOMAIN_BEACON_PROPOSER) + uint_to_bytes(state.slot))
//	  indices = get_active_validator_indices(state, epoch)
//	  return compute_proposer_index(state, indices, seed)
func BeaconProposerIndex(cfg *params.BeaconChainConfig, st *state.BeaconState) (primitives.ValidatorIndex, error) {
	e := CurrentEpoch(cfg, st)
	seed, err := Seed(cfg, st, e, cfg.DomainBeaconProposer)
	if err != nil {
		return 0, errors.Wrap(err, "could not generate seed")
	}
	seedWithSlot := append(seed[:], bytesutil.Bytes8(uint64(st.Slot))...)
	seedWithSlotHash := hash.Hash(seedWithSlot)

	indices := ActiveValidatorIndices(st, e)
	return ComputeProposerIndex(cfg, st, indices, seedWithSlotHash)
}

// ComputeProposerIndex returns the index sampled by effective balance, which is used to calculate proposer.
//
// Spec pseudocode definition:
//
//	def compute_proposer_index(state: BeaconState, indices: Sequence[ValidatorIndex], seed: Bytes32) -> ValidatorIndex:
//	  """
//	  Return from ``indices`` a random index sampled by effective balance.
//	  """
//	  assert len(indices) > 0
//	  MAX_RANDOM_BYTE = 2**8 - 1
//	  i = uint64(0)
//	  total = uint64(len(indices))
//	  while True:
//	      candidate_index = indices[compute_shuffled_index(i % total, total, seed)]
//	      random_byte = hash(seed + uint_to_bytes(uint64(i // 32)))[i % 32]
//	      effective_balance = state.validators[candidate_index].effective_balance
//	      if effective_balance * MAX_RANDOM_BYTE >= MAX_EFFECTIVE_BALANCE * random_byte:
//	          return candidate_index
//	      i += 1
func ComputeProposerIndex(cfg *params.BeaconChainConfig, st *state.BeaconState, activeIndices []primitives.ValidatorIndex, seed [32]byte) (primitives.ValidatorIndex, error) {
	length := uint64(len(activeIndices))
	if length == 0 {
		return 0, errors.New("empty active indices list")
	}
	hashFunc := hash.CustomSHA256Hasher()
	b := make([]byte, 32+8)
	copy(b, seed[:])

	for i := uint64(0); ; i++ {
		candidateIndex, err := ShuffledIndex(cfg, i%length, length, seed)
		if err != nil {
			return 0, err
		}
		candidate := activeIndices[candidateIndex]
		v, err := st.ValidatorAtIndex(candidate)
		if err != nil {
			return 0, err
		}
		copy(b[32:], bytesutil.Bytes8(i/32))
		randomByte := hashFunc(b)[i%32]
		if v.EffectiveBalance*fieldparams.MaxRandomByte >= cfg.MaxEffectiveBalance*uint64(randomByte) {
			return candidate, nil
		}
	}
}

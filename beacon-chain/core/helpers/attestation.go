package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// ErrBitfieldLength is returned when an aggregation bitlist does not match its committee.
var ErrBitfieldLength = errors.New("wrong bitfield length")

// VerifyBitfieldLength verifies that a bitfield length matches the given committee size.
// Longer and shorter bitlists are both rejected.
func VerifyBitfieldLength(bf bitfield.Bitlist, committeeSize uint64) error {
	if bf.Len() != committeeSize {
		return errors.Wrapf(ErrBitfieldLength, "got %d, expected %d", bf.Len(), committeeSize)
	}
	return nil
}

// AttestingIndices returns the attesting participants indices from the attestation data. The
// returned indices follow committee order.
//
// Spec pseudocode definition:
//
//	def get_attesting_indices(state: BeaconState,
//	                          data: AttestationData,
//	                          bits: Bitlist[MAX_VALIDATORS_PER_COMMITTEE]) -> Set[ValidatorIndex]:
//	  """
//	  Return the set of attesting indices corresponding to ``data`` and ``bits``.
//	  """
//	  committee = get_beacon_committee(state, data.slot, data.index)
//	  return set(index for i, index in enumerate(committee) if bits[i])
func AttestingIndices(bf bitfield.Bitlist, committee []primitives.ValidatorIndex) ([]primitives.ValidatorIndex, error) {
	if err := VerifyBitfieldLength(bf, uint64(len(committee))); err != nil {
		return nil, err
	}
	indices := make([]primitives.ValidatorIndex, 0, bf.Count())
	for i, idx := range committee {
		if bf.BitAt(uint64(i)) {
			indices = append(indices, idx)
		}
	}
	return indices, nil
}

// ValidateSlotTargetEpoch checks that the attestation target epoch is the epoch of the attestation slot.
func ValidateSlotTargetEpoch(cfg *params.BeaconChainConfig, data ethpb.AttestationData) error {
	if SlotToEpoch(cfg, data.Slot) != data.Target.Epoch {
		return errors.Errorf("slot %d does not match target epoch %d", data.Slot, data.Target.Epoch)
	}
	return nil
}

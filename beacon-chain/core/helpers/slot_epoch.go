package helpers

import (
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// SlotToEpoch returns the epoch number of the input slot.
//
// Spec pseudocode definition:
//
//	def compute_epoch_at_slot(slot: Slot) -> Epoch:
//	  """
//	  Return the epoch number at ``slot``.
//	  """
//	  return Epoch(slot // SLOTS_PER_EPOCH)
func SlotToEpoch(cfg *params.BeaconChainConfig, slot primitives.Slot) primitives.Epoch {
	return primitives.Epoch(slot.Div(uint64(cfg.SlotsPerEpoch)))
}

// CurrentEpoch returns the current epoch number calculated from
// the slot number stored in beacon state.
func CurrentEpoch(cfg *params.BeaconChainConfig, st *state.BeaconState) primitives.Epoch {
	return SlotToEpoch(cfg, st.Slot)
}

// PrevEpoch returns the previous epoch number calculated from
// the slot number stored in beacon state. It also checks for
// underflow condition.
//
// Spec pseudocode definition:
//
//	def get_previous_epoch(state: BeaconState) -> Epoch:
//	  current_epoch = get_current_epoch(state)
//	  return GENESIS_EPOCH if current_epoch == GENESIS_EPOCH else Epoch(current_epoch - 1)
func PrevEpoch(cfg *params.BeaconChainConfig, st *state.BeaconState) primitives.Epoch {
	currentEpoch := CurrentEpoch(cfg, st)
	if currentEpoch == cfg.GenesisEpoch {
		return cfg.GenesisEpoch
	}
	return currentEpoch - 1
}

// NextEpoch returns the next epoch number calculated from
// the slot number stored in beacon state.
func NextEpoch(cfg *params.BeaconChainConfig, st *state.BeaconState) primitives.Epoch {
	return CurrentEpoch(cfg, st) + 1
}

// StartSlot returns the first slot number of the given epoch.
func StartSlot(cfg *params.BeaconChainConfig, epoch primitives.Epoch) primitives.Slot {
	return cfg.SlotsPerEpoch.Mul(uint64(epoch))
}

// IsEpochStart returns true if the given slot number is an epoch starting slot
// number.
func IsEpochStart(cfg *params.BeaconChainConfig, slot primitives.Slot) bool {
	return slot.Mod(uint64(cfg.SlotsPerEpoch)) == 0
}

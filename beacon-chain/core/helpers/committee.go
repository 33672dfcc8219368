package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// CrosslinkCommittee is a slot committee together with the shard it crosslinks.
type CrosslinkCommittee struct {
	Shard          primitives.Shard
	Slot           primitives.Slot
	CommitteeIndex primitives.CommitteeIndex
	Committee      []primitives.ValidatorIndex
}

// SlotCommitteeCount returns the number of beacon committees of a slot. Every
// committee of an epoch is mapped onto a shard, so the count is capped at
// SHARD_COUNT / SLOTS_PER_EPOCH.
//
// Spec pseudocode definition:
//
//	def get_committee_count_per_slot(state: BeaconState, epoch: Epoch) -> uint64:
//	  return max(uint64(1), min(
//	      MAX_COMMITTEES_PER_SLOT,
//	      SHARD_COUNT // SLOTS_PER_EPOCH,
//	      uint64(len(get_active_validator_indices(state, epoch))) // SLOTS_PER_EPOCH // TARGET_COMMITTEE_SIZE,
//	  ))
func SlotCommitteeCount(cfg *params.BeaconChainConfig, activeValidatorCount uint64) uint64 {
	slotsPerEpoch := uint64(cfg.SlotsPerEpoch)
	committeesPerSlot := activeValidatorCount / slotsPerEpoch / cfg.TargetCommitteeSize
	if shardLimit := cfg.ShardCount / slotsPerEpoch; committeesPerSlot > shardLimit {
		committeesPerSlot = shardLimit
	}
	if committeesPerSlot > cfg.MaxCommitteesPerSlot {
		committeesPerSlot = cfg.MaxCommitteesPerSlot
	}
	if committeesPerSlot == 0 {
		return 1
	}
	return committeesPerSlot
}

// CommitteeCountAtSlot returns the number of committees of the epoch containing the slot.
func CommitteeCountAtSlot(cfg *params.BeaconChainConfig, st *state.BeaconState, slot primitives.Slot) uint64 {
	epoch := SlotToEpoch(cfg, slot)
	return SlotCommitteeCount(cfg, ActiveValidatorCount(st, epoch))
}

// StartShard returns the shard crosslinked by committee number zero of the epoch.
// Consecutive epochs rotate through the shards.
func StartShard(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) primitives.Shard {
	committeesPerEpoch := SlotCommitteeCount(cfg, ActiveValidatorCount(st, epoch)) * uint64(cfg.SlotsPerEpoch)
	return primitives.Shard((uint64(epoch) % cfg.ShardCount) * (committeesPerEpoch % cfg.ShardCount) % cfg.ShardCount)
}

// CommitteeShard returns the shard whose crosslink the committee at (slot, index) attests to.
func CommitteeShard(cfg *params.BeaconChainConfig, st *state.BeaconState, slot primitives.Slot, committeeIndex primitives.CommitteeIndex) (primitives.Shard, error) {
	epoch := SlotToEpoch(cfg, slot)
	committeesPerSlot := SlotCommitteeCount(cfg, ActiveValidatorCount(st, epoch))
	if uint64(committeeIndex) >= committeesPerSlot {
		return 0, errors.Errorf("committee index %d out of range of %d committees per slot", committeeIndex, committeesPerSlot)
	}
	number := uint64(slot.Mod(uint64(cfg.SlotsPerEpoch)))*committeesPerSlot + uint64(committeeIndex)
	start := uint64(StartShard(cfg, st, epoch))
	return primitives.Shard((start + number%cfg.ShardCount) % cfg.ShardCount), nil
}

// BeaconCommittee returns the crosslink committee of a given slot and committee index.
//
// Spec pseudocode definition:
//
//	def get_beacon_committee(state: BeaconState, slot: Slot, index: CommitteeIndex) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the beacon committee at ``slot`` for ``index``.
//	  """
//	  epoch = compute_epoch_at_slot(slot)
//	  committees_per_slot = get_committee_count_per_slot(state, epoch)
//	  return compute_committee(
//	      indices=get_active_validator_indices(state, epoch),
//	      seed=get_seed(state, epoch, DOMAIN_BEACON_ATTESTER),
//	      index=(slot % SLOTS_PER_EPOCH) * committees_per_slot + index,
//	      count=committees_per_slot * SLOTS_PER_EPOCH,
//	  )
func BeaconCommittee(cfg *params.BeaconChainConfig, st *state.BeaconState, slot primitives.Slot, committeeIndex primitives.CommitteeIndex) ([]primitives.ValidatorIndex, error) {
	epoch := SlotToEpoch(cfg, slot)
	seed, err := Seed(cfg, st, epoch, cfg.DomainBeaconAttester)
	if err != nil {
		return nil, errors.Wrap(err, "could not get seed")
	}
	indices := ActiveValidatorIndices(st, epoch)
	committeesPerSlot := SlotCommitteeCount(cfg, uint64(len(indices)))
	if uint64(committeeIndex) >= committeesPerSlot {
		return nil, errors.Errorf("committee index %d out of range of %d committees per slot", committeeIndex, committeesPerSlot)
	}
	indexOffset := uint64(committeeIndex) + uint64(slot.Mod(uint64(cfg.SlotsPerEpoch)))*committeesPerSlot
	count := committeesPerSlot * uint64(cfg.SlotsPerEpoch)
	return ComputeCommittee(cfg, indices, seed, indexOffset, count)
}

// ComputeCommittee returns the requested shuffled committee out of the total committees using
// validator indices and seed.
//
// Spec pseudocode definition:
//
//	def compute_committee(indices: Sequence[ValidatorIndex],
//	                      seed: Bytes32,
//	                      index: uint64,
//	                      count: uint64) -> Sequence[ValidatorIndex]:
//	  """
//	  Return the committee corresponding to ``indices``, ``seed``, ``index``, and committee ``count``.
//	  """
//	  start = (len(indices) * index) // count
//	  end = (len(indices) * uint64(index + 1)) // count
//	  return [indices[compute_shuffled_index(uint64(i), uint64(len(indices)), seed)] for i in range(start, end)]
func ComputeCommittee(
	cfg *params.BeaconChainConfig,
	indices []primitives.ValidatorIndex,
	seed [32]byte,
	index, count uint64,
) ([]primitives.ValidatorIndex, error) {
	if count == 0 || index >= count {
		return nil, errors.Errorf("committee number %d out of range of %d committees", index, count)
	}
	validatorCount := uint64(len(indices))
	start := validatorCount * index / count
	end := validatorCount * (index + 1) / count

	positions, err := ShuffledPositions(cfg, validatorCount, seed)
	if err != nil {
		return nil, errors.Wrap(err, "could not shuffle indices")
	}
	committee := make([]primitives.ValidatorIndex, 0, end-start)
	for i := start; i < end; i++ {
		committee = append(committee, indices[positions[i]])
	}
	return committee, nil
}

// CrosslinkCommittees returns every committee of the epoch with the shard it
// crosslinks, ordered by slot and then committee index.
func CrosslinkCommittees(cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch) ([]*CrosslinkCommittee, error) {
	seed, err := Seed(cfg, st, epoch, cfg.DomainBeaconAttester)
	if err != nil {
		return nil, errors.Wrap(err, "could not get seed")
	}
	indices := ActiveValidatorIndices(st, epoch)
	committeesPerSlot := SlotCommitteeCount(cfg, uint64(len(indices)))
	count := committeesPerSlot * uint64(cfg.SlotsPerEpoch)
	startShard := uint64(StartShard(cfg, st, epoch))
	startSlot := StartSlot(cfg, epoch)

	committees := make([]*CrosslinkCommittee, 0, count)
	for number := uint64(0); number < count; number++ {
		members, err := ComputeCommittee(cfg, indices, seed, number, count)
		if err != nil {
			return nil, err
		}
		committees = append(committees, &CrosslinkCommittee{
			Shard:          primitives.Shard((startShard + number%cfg.ShardCount) % cfg.ShardCount),
			Slot:           startSlot.Add(number / committeesPerSlot),
			CommitteeIndex: primitives.CommitteeIndex(number % committeesPerSlot),
			Committee:      members,
		})
	}
	return committees, nil
}

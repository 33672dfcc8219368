package epoch

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	mathutil "github.com/prysmaticlabs/prysm-crosslinks/math"
	"go.opencensus.io/trace"
)

// CrosslinkDeltas returns the crosslink rewards and penalties of every
// validator for the previous epoch, indexed by validator index.
//
// Every member of a committee crosslinking a shard during the previous epoch
// is either rewarded, when it attested to the shard's winning crosslink, or
// penalized its base reward. A validator sitting in several committees is
// processed once per membership.
//
// The winners are taken from the resolutions ProcessCrosslinks recorded for
// the previous epoch. When none are recorded, they are recomputed against the
// current crosslinks.
//
// Spec pseudocode definition:
//
//	def get_crosslink_deltas(state: BeaconState) -> Tuple[Sequence[Gwei], Sequence[Gwei]]:
//	  rewards = [Gwei(0) for _ in range(len(state.validators))]
//	  penalties = [Gwei(0) for _ in range(len(state.validators))]
//	  epoch = get_previous_epoch(state)
//	  for offset in range(get_committee_count(state, epoch)):
//	      shard = Shard((get_start_shard(state, epoch) + offset) % SHARD_COUNT)
//	      crosslink_committee = set(get_crosslink_committee(state, epoch, shard))
//	      winning_crosslink, attesting_indices = get_winning_crosslink_and_attesting_indices(state, epoch, shard)
//	      attesting_balance = get_total_balance(state, attesting_indices)
//	      committee_balance = get_total_balance(state, crosslink_committee)
//	      for index in crosslink_committee:
//	          base_reward = get_base_reward(state, index)
//	          if index in attesting_indices:
//	              rewards[index] += base_reward * attesting_balance // committee_balance
//	          else:
//	              penalties[index] += base_reward
//	  return rewards, penalties
func CrosslinkDeltas(ctx context.Context, cfg *params.BeaconChainConfig, st *state.BeaconState) ([]uint64, []uint64, error) {
	_, span := trace.StartSpan(ctx, "core.CrosslinkDeltas")
	defer span.End()

	if st == nil {
		return nil, nil, state.ErrNilState
	}
	rewards := make([]uint64, len(st.Validators))
	penalties := make([]uint64, len(st.Validators))

	prevEpoch := helpers.PrevEpoch(cfg, st)
	committees, err := newEpochCommittees(cfg, st, prevEpoch)
	if err != nil {
		return nil, nil, err
	}
	resolutions, err := previousEpochResolutions(cfg, st, committees, prevEpoch)
	if err != nil {
		return nil, nil, err
	}
	totalActiveBalance := helpers.TotalActiveBalance(cfg, st, helpers.CurrentEpoch(cfg, st))

	for s := uint64(0); s < cfg.ShardCount; s++ {
		shard := primitives.Shard(s)
		shardCommittees := committees.byShard[shard]
		if len(shardCommittees) == 0 {
			continue
		}
		res := resolutions[shard]
		attesters := make(map[primitives.ValidatorIndex]bool, len(res.AttestingIndices))
		for _, idx := range res.AttestingIndices {
			attesters[idx] = true
		}
		committeeBalance := helpers.TotalBalance(cfg, st, committees.shardMembers(shard))

		for _, c := range shardCommittees {
			for _, idx := range c.Committee {
				baseReward, err := helpers.BaseReward(cfg, st, idx, totalActiveBalance)
				if err != nil {
					return nil, nil, errors.Wrapf(err, "could not get base reward of validator %d", idx)
				}
				if attesters[idx] {
					rewards[idx] += mathutil.MulDiv(baseReward, res.AttestingBalance, committeeBalance)
				} else {
					penalties[idx] += baseReward
				}
			}
		}
	}
	return rewards, penalties, nil
}

// previousEpochResolutions returns the recorded resolutions of the previous
// epoch by shard, recomputing the winners when no complete record exists.
func previousEpochResolutions(
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	committees *epochCommittees,
	prevEpoch primitives.Epoch,
) ([]*state.CrosslinkResolution, error) {
	if recorded := st.CrosslinkResolutions; uint64(len(recorded)) == cfg.ShardCount {
		complete := true
		for s, res := range recorded {
			if res == nil || res.Epoch != prevEpoch || res.Shard != primitives.Shard(s) {
				complete = false
				break
			}
		}
		if complete {
			return recorded, nil
		}
	}

	atts, err := MatchAttestations(cfg, st, prevEpoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not get matching attestations")
	}
	resolutions := make([]*state.CrosslinkResolution, cfg.ShardCount)
	for s := uint64(0); s < cfg.ShardCount; s++ {
		res, err := winningCrosslink(cfg, st, committees, atts, prevEpoch, primitives.Shard(s))
		if err != nil {
			return nil, errors.Wrapf(err, "could not get winning crosslink of shard %d", s)
		}
		resolutions[s] = res
	}
	log.WithField("epoch", prevEpoch).Debug("No recorded crosslink resolutions, recomputed winners")
	return resolutions, nil
}

// ProcessCrosslinkRewardsAndPenalties applies the crosslink deltas of the
// previous epoch to the validator balances. Rewards are applied before
// penalties, and a balance never drops below zero.
func ProcessCrosslinkRewardsAndPenalties(ctx context.Context, cfg *params.BeaconChainConfig, st *state.BeaconState) (*state.BeaconState, error) {
	rewards, penalties, err := CrosslinkDeltas(ctx, cfg, st)
	if err != nil {
		return nil, errors.Wrap(err, "could not get crosslink deltas")
	}
	if err := ApplyDeltas(st, rewards, penalties); err != nil {
		return nil, err
	}
	return st, nil
}

// ApplyDeltas increases then decreases every validator balance by its reward and penalty.
func ApplyDeltas(st *state.BeaconState, rewards, penalties []uint64) error {
	if len(rewards) != len(st.Balances) || len(penalties) != len(st.Balances) {
		return errors.Errorf("got %d rewards and %d penalties for %d balances", len(rewards), len(penalties), len(st.Balances))
	}
	for i := range st.Balances {
		idx := primitives.ValidatorIndex(i)
		if err := helpers.IncreaseBalance(st, idx, rewards[i]); err != nil {
			return errors.Wrap(err, "could not increase balance")
		}
		if err := helpers.DecreaseBalance(st, idx, penalties[i]); err != nil {
			return errors.Wrap(err, "could not decrease balance")
		}
	}
	return nil
}

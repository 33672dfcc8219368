package epoch_test

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/util"
)

const (
	// Base rewards with 64 validators at 32 ETH.
	uniformBaseReward = uint64(286216)
	// Base rewards with 8 validators at 32 ETH and 56 at 1 ETH.
	heavyBaseReward = uint64(733302)
	lightBaseReward = uint64(22915)
)

func TestCrosslinkDeltas_NoAttestations(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)

	rewards, penalties, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	require.Equal(t, 64, len(rewards))
	require.Equal(t, 64, len(penalties))
	for i := range rewards {
		assert.Equal(t, uint64(0), rewards[i], "validator %d", i)
		assert.Equal(t, uniformBaseReward, penalties[i], "validator %d", i)
	}
}

func TestCrosslinkDeltas_WinningCommitteeRewarded(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	committee := concentrateStake(t, cfg, st, 2)
	addPending(t, cfg, st, 2, util.DataRoot(0xaa), nil)
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)

	rewards, penalties, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	inCommittee := make(map[primitives.ValidatorIndex]bool)
	for _, idx := range committee {
		inCommittee[idx] = true
	}
	for i := range rewards {
		if inCommittee[primitives.ValidatorIndex(i)] {
			assert.Equal(t, heavyBaseReward, rewards[i], "validator %d", i)
			assert.Equal(t, uint64(0), penalties[i], "validator %d", i)
		} else {
			assert.Equal(t, uint64(0), rewards[i], "validator %d", i)
			assert.Equal(t, lightBaseReward, penalties[i], "validator %d", i)
		}
	}
}

func TestCrosslinkDeltas_PartialParticipationScaled(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	committee := concentrateStake(t, cfg, st, 2)
	addPending(t, cfg, st, 2, util.DataRoot(0xaa), firstN(7))
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)
	require.Equal(t, true, st.CrosslinkResolutions[2].Committed)

	rewards, penalties, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	for i, idx := range committee {
		if i < 7 {
			assert.Equal(t, heavyBaseReward*7/8, rewards[idx])
			assert.Equal(t, uint64(0), penalties[idx])
		} else {
			assert.Equal(t, uint64(0), rewards[idx])
			assert.Equal(t, heavyBaseReward, penalties[idx])
		}
	}
}

func TestCrosslinkDeltas_CurrentEpochAttestationNotRewarded(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	addPending(t, cfg, st, cfg.SlotsPerEpoch+1, util.DataRoot(0xaa), nil)
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)

	rewards, _, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	for i := range rewards {
		assert.Equal(t, uint64(0), rewards[i])
	}
}

func TestCrosslinkDeltas_RecomputedWithoutRecord(t *testing.T) {
	cfg := singleShardConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	attestEpoch(t, cfg, st, 0, util.DataRoot(0xaa))

	rewardsBefore, penaltiesBefore, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	for i := range rewardsBefore {
		assert.Equal(t, uniformBaseReward, rewardsBefore[i])
		assert.Equal(t, uint64(0), penaltiesBefore[i])
	}

	st, err = epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)
	rewardsAfter, penaltiesAfter, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	assert.Equal(t, rewardsBefore, rewardsAfter)
	assert.Equal(t, penaltiesBefore, penaltiesAfter)

	// Against the newly committed crosslink the attestations are stale.
	st.CrosslinkResolutions = nil
	rewards, penalties, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	for i := range rewards {
		assert.Equal(t, uint64(0), rewards[i])
		assert.Equal(t, uniformBaseReward, penalties[i])
	}
}

func TestCrosslinkDeltas_LateAttestationsOnlyPenalized(t *testing.T) {
	cfg := singleShardConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	attestEpoch(t, cfg, st, 0, util.DataRoot(0xaa))
	attestEpoch(t, cfg, st, 1, util.DataRoot(0xbb))
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)
	committed := st.CurrentCrosslinks[0]

	// Next epoch boundary: the epoch 1 pool rotates into the previous epoch.
	util.AdvanceToSlot(st, helpers.StartSlot(cfg, 3)-1)
	st.PreviousEpochAttestations = st.CurrentEpochAttestations
	st.CurrentEpochAttestations = nil
	st, err = epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)
	assert.Equal(t, committed, st.CurrentCrosslinks[0])
	assert.Equal(t, false, st.CrosslinkResolutions[0].Committed)

	rewards, penalties, err := epoch.CrosslinkDeltas(context.Background(), cfg, st)
	require.NoError(t, err)
	for i := range rewards {
		assert.Equal(t, uint64(0), rewards[i])
		assert.Equal(t, uniformBaseReward, penalties[i])
	}
}

func TestCrosslinkDeltas_NilState(t *testing.T) {
	_, _, err := epoch.CrosslinkDeltas(context.Background(), params.MinimalTestConfig(), nil)
	assert.Equal(t, state.ErrNilState, err)
}

func TestProcessCrosslinkRewardsAndPenalties(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st := stateAtEpochEnd(t, cfg, 1)
	committee := concentrateStake(t, cfg, st, 2)
	addPending(t, cfg, st, 2, util.DataRoot(0xaa), nil)
	st, err := epoch.ProcessCrosslinks(context.Background(), cfg, st)
	require.NoError(t, err)
	pre := st.Copy()

	st, err = epoch.ProcessCrosslinkRewardsAndPenalties(context.Background(), cfg, st)
	require.NoError(t, err)
	inCommittee := make(map[primitives.ValidatorIndex]bool)
	for _, idx := range committee {
		inCommittee[idx] = true
	}
	for i, bal := range st.Balances {
		if inCommittee[primitives.ValidatorIndex(i)] {
			assert.Equal(t, pre.Balances[i]+heavyBaseReward, bal)
		} else {
			assert.Equal(t, pre.Balances[i]-lightBaseReward, bal)
		}
		// Effective balances are not updated by crosslink accounting.
		assert.Equal(t, pre.Validators[i].EffectiveBalance, st.Validators[i].EffectiveBalance)
	}
}

func TestApplyDeltas(t *testing.T) {
	st := util.NewBeaconState(params.MinimalTestConfig())
	st.Balances = []uint64{100, 100, 5}

	require.NoError(t, epoch.ApplyDeltas(st, []uint64{10, 0, 1}, []uint64{0, 30, 20}))
	assert.Equal(t, []uint64{110, 70, 0}, st.Balances)

	err := epoch.ApplyDeltas(st, []uint64{1}, []uint64{1, 2, 3})
	require.ErrorContains(t, "got 1 rewards and 3 penalties for 3 balances", err)
}

package helpers_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/util"
)

func TestTotalBalance_OK(t *testing.T) {
	cfg := params.MainnetConfig()
	st := &state.BeaconState{Validators: []*ethpb.Validator{
		{EffectiveBalance: 27 * 1e9}, {EffectiveBalance: 28 * 1e9},
		{EffectiveBalance: 32 * 1e9}, {EffectiveBalance: 40 * 1e9},
	}}
	assert.Equal(t, uint64(27+28+32+40)*1e9, helpers.TotalBalance(cfg, st, []primitives.ValidatorIndex{0, 1, 2, 3}))
	assert.Equal(t, uint64(28)*1e9, helpers.TotalBalance(cfg, st, []primitives.ValidatorIndex{1}))
}

func TestTotalBalance_ReturnsIncrementWhenEmpty(t *testing.T) {
	cfg := params.MainnetConfig()
	st := &state.BeaconState{Validators: []*ethpb.Validator{{EffectiveBalance: 0}}}
	assert.Equal(t, cfg.EffectiveBalanceIncrement, helpers.TotalBalance(cfg, st, nil))
	assert.Equal(t, cfg.EffectiveBalanceIncrement, helpers.TotalBalance(cfg, st, []primitives.ValidatorIndex{0}))
}

func TestTotalActiveBalance_OK(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 10)
	st.Validators[0].ExitEpoch = 0
	assert.Equal(t, 9*cfg.MaxEffectiveBalance, helpers.TotalActiveBalance(cfg, st, 0))
}

func TestBaseReward_OK(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	total := helpers.TotalActiveBalance(cfg, st, 0)
	reward, err := helpers.BaseReward(cfg, st, 5, total)
	require.NoError(t, err)
	// 32e9 * 64 / isqrt(64 * 32e9) / 5
	assert.Equal(t, uint64(286216), reward)

	util.SetEffectiveBalances(cfg, st, []primitives.ValidatorIndex{0, 1, 2, 3, 4, 5, 6, 7})
	total = helpers.TotalActiveBalance(cfg, st, 0)
	assert.Equal(t, uint64(312e9), total)
	reward, err = helpers.BaseReward(cfg, st, 5, total)
	require.NoError(t, err)
	assert.Equal(t, uint64(733302), reward)
	reward, err = helpers.BaseReward(cfg, st, 50, total)
	require.NoError(t, err)
	assert.Equal(t, uint64(22915), reward)

	_, err = helpers.BaseReward(cfg, st, 64, total)
	require.NotNil(t, err)
}

func TestIncreaseDecreaseBalance_OK(t *testing.T) {
	st := &state.BeaconState{Balances: []uint64{10, 20}}
	require.NoError(t, helpers.IncreaseBalance(st, 0, 5))
	require.NoError(t, helpers.DecreaseBalance(st, 1, 15))
	assert.Equal(t, []uint64{15, 5}, st.Balances)

	require.NoError(t, helpers.DecreaseBalance(st, 1, 100))
	assert.Equal(t, uint64(0), st.Balances[1], "balance must saturate at zero")

	require.NotNil(t, helpers.IncreaseBalance(st, 2, 1))
	require.NotNil(t, helpers.DecreaseBalance(st, 2, 1))
}

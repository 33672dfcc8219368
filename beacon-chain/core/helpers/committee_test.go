package helpers_test

import (
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/util"
)

func TestSlotCommitteeCount_OK(t *testing.T) {
	cfg := params.MainnetConfig().Copy()
	perSlot := uint64(cfg.SlotsPerEpoch) * cfg.TargetCommitteeSize
	tests := []struct {
		activeCount uint64
		want        uint64
	}{
		{activeCount: 0, want: 1},
		{activeCount: perSlot - 1, want: 1},
		{activeCount: 2 * perSlot, want: 2},
		{activeCount: 10 * perSlot, want: 10},
		// Capped at SHARD_COUNT / SLOTS_PER_EPOCH.
		{activeCount: 40 * perSlot, want: cfg.ShardCount / uint64(cfg.SlotsPerEpoch)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, helpers.SlotCommitteeCount(cfg, tt.activeCount), "active count %d", tt.activeCount)
	}

	cfg.ShardCount = 1 << 20
	assert.Equal(t, cfg.MaxCommitteesPerSlot, helpers.SlotCommitteeCount(cfg, 1000*perSlot))
}

func TestBeaconCommittee_PartitionsActiveSet(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)

	seen := make(map[primitives.ValidatorIndex]bool)
	for slot := primitives.Slot(0); slot < cfg.SlotsPerEpoch; slot++ {
		require.Equal(t, uint64(1), helpers.CommitteeCountAtSlot(cfg, st, slot))
		committee, err := helpers.BeaconCommittee(cfg, st, slot, 0)
		require.NoError(t, err)
		assert.Equal(t, 8, len(committee))
		for _, idx := range committee {
			require.Equal(t, false, seen[idx], "validator %d in two committees", idx)
			seen[idx] = true
		}
	}
	assert.Equal(t, 64, len(seen))
}

func TestBeaconCommittee_IndexOutOfRange(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	_, err := helpers.BeaconCommittee(cfg, st, 0, 1)
	require.ErrorContains(t, "out of range", err)
	_, err = helpers.CommitteeShard(cfg, st, 0, 1)
	require.NotNil(t, err)
}

func TestBeaconCommittee_Deterministic(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	first, err := helpers.BeaconCommittee(cfg, st, 3, 0)
	require.NoError(t, err)
	helpers.ClearAllCaches()
	second, err := helpers.BeaconCommittee(cfg, st, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCommitteeShard_OK(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	// One committee per slot over eight shards: each slot of an epoch owns one shard.
	for slot := primitives.Slot(0); slot < 3*cfg.SlotsPerEpoch; slot++ {
		shard, err := helpers.CommitteeShard(cfg, st, slot, 0)
		require.NoError(t, err)
		assert.Equal(t, primitives.Shard(uint64(slot)%cfg.ShardCount), shard, "slot %d", slot)
	}
}

func TestCommitteeShard_RotatesWithEpoch(t *testing.T) {
	cfg := params.MinimalTestConfig()
	cfg.ShardCount = 12
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	assert.Equal(t, primitives.Shard(0), helpers.StartShard(cfg, st, 0))
	assert.Equal(t, primitives.Shard(8), helpers.StartShard(cfg, st, 1))
	assert.Equal(t, primitives.Shard(4), helpers.StartShard(cfg, st, 2))

	shard, err := helpers.CommitteeShard(cfg, st, cfg.SlotsPerEpoch+5, 0)
	require.NoError(t, err)
	assert.Equal(t, primitives.Shard(1), shard)
}

func TestCrosslinkCommittees_OK(t *testing.T) {
	cfg := params.MinimalTestConfig()
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	committees, err := helpers.CrosslinkCommittees(cfg, st, 1)
	require.NoError(t, err)
	require.Equal(t, int(cfg.SlotsPerEpoch), len(committees))
	for i, c := range committees {
		slot := cfg.SlotsPerEpoch + primitives.Slot(i)
		assert.Equal(t, slot, c.Slot)
		assert.Equal(t, primitives.CommitteeIndex(0), c.CommitteeIndex)
		shard, err := helpers.CommitteeShard(cfg, st, slot, 0)
		require.NoError(t, err)
		assert.Equal(t, shard, c.Shard)
		committee, err := helpers.BeaconCommittee(cfg, st, slot, 0)
		require.NoError(t, err)
		assert.Equal(t, committee, c.Committee)
	}
}

func TestCrosslinkCommittees_SharedShards(t *testing.T) {
	cfg := params.MinimalTestConfig()
	cfg.ShardCount = 4
	st, _ := util.DeterministicGenesisState(t, cfg, 64)
	committees, err := helpers.CrosslinkCommittees(cfg, st, 0)
	require.NoError(t, err)
	perShard := make(map[primitives.Shard]int)
	for _, c := range committees {
		perShard[c.Shard]++
	}
	assert.Equal(t, 4, len(perShard))
	for shard, n := range perShard {
		assert.Equal(t, 2, n, "shard %d", shard)
	}
}

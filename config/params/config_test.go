package params

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

func TestMinimalSpecConfig_DoesNotMutateMainnet(t *testing.T) {
	minimal := MinimalSpecConfig()
	assert.Equal(t, uint64(8), minimal.ShardCount)
	assert.Equal(t, uint64(1024), MainnetConfig().ShardCount)
	assert.Equal(t, "minimal", minimal.PresetBase)
	assert.Equal(t, "mainnet", MainnetConfig().PresetBase)
	require.NoError(t, minimal.Validate())
	require.NoError(t, MainnetConfig().Validate())
}

func TestCopy_IsIndependent(t *testing.T) {
	cfg := MainnetConfig().Copy()
	cfg.GenesisForkVersion[0] = 9
	cfg.Features.SkipBLSVerify = true
	assert.Equal(t, byte(0), MainnetConfig().GenesisForkVersion[0])
	assert.Equal(t, false, MainnetConfig().Features.SkipBLSVerify)
}

func TestOverrideBeaconConfig(t *testing.T) {
	SetupTestConfigCleanup(t)
	cfg := BeaconConfig().Copy()
	cfg.SlotsPerEpoch = 5
	OverrideBeaconConfig(cfg)
	assert.Equal(t, cfg.SlotsPerEpoch, BeaconConfig().SlotsPerEpoch)
}

func TestCrosslinkSpan(t *testing.T) {
	cfg := MinimalSpecConfig()
	assert.Equal(t, cfg.MaxEpochsPerCrosslink, cfg.CrosslinkSpan(0, 100))
	assert.Equal(t, cfg.MaxEpochsPerCrosslink+3, cfg.CrosslinkSpan(3, 100))
	assert.Equal(t, cfg.MaxEpochsPerCrosslink-1, cfg.CrosslinkSpan(0, cfg.MaxEpochsPerCrosslink-1))
}

func TestValidate(t *testing.T) {
	cfg := MinimalSpecConfig()
	cfg.SlotsPerEpoch = 0
	err := cfg.Validate()
	require.NotNil(t, err)
	assert.Equal(t, true, errors.Is(err, ErrInvalidConfig))
	assert.StringContains(t, "SLOTS_PER_EPOCH = 0", err.Error())
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BeaconChainConfig)
		wantErr string
	}{
		{
			name:    "zero shard count",
			mutate:  func(c *BeaconChainConfig) { c.ShardCount = 0 },
			wantErr: "SHARD_COUNT = 0",
		},
		{
			name:    "zero base rewards per epoch",
			mutate:  func(c *BeaconChainConfig) { c.BaseRewardsPerEpoch = 0 },
			wantErr: "BASE_REWARDS_PER_EPOCH = 0",
		},
		{
			name: "historical vector within seed lookahead",
			mutate: func(c *BeaconChainConfig) {
				c.MinSeedLookahead = 4
				c.EpochsPerHistoricalVector = 4
			},
			wantErr: "EPOCHS_PER_HISTORICAL_VECTOR = 4",
		},
		{
			name:    "wrong pubkey length",
			mutate:  func(c *BeaconChainConfig) { c.BLSPubkeyLength = 96 },
			wantErr: "BLSPubkeyLength = 96",
		},
		{
			name:   "valid",
			mutate: func(*BeaconChainConfig) {},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := MinimalSpecConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, tt.wantErr, err)
			assert.Equal(t, true, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestByName(t *testing.T) {
	cfg, err := ByName("minimal")
	require.NoError(t, err)
	assert.Equal(t, uint64(8), cfg.ShardCount)
	_, err = ByName("pyrmont")
	require.ErrorContains(t, "unknown config name", err)
}

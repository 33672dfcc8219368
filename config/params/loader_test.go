package params

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

func TestUnmarshalConfigFile_MinimalOverride(t *testing.T) {
	cfg, err := UnmarshalConfigFile(filepath.Join("testdata", "minimal_override.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "minimal", cfg.PresetBase)
	assert.Equal(t, "crosslink-devnet", cfg.ConfigName)
	assert.Equal(t, uint64(16), cfg.ShardCount)
	assert.Equal(t, uint64(2), uint64(cfg.MaxEpochsPerCrosslink))
	// Unset keys come from the minimal preset.
	assert.Equal(t, uint64(8), uint64(cfg.SlotsPerEpoch))
	assert.Equal(t, []byte{0, 0, 0, 7}, cfg.GenesisForkVersion)
	assert.Equal(t, [4]byte{1, 0, 0, 0}, cfg.DomainBeaconAttester)
	assert.Equal(t, true, cfg.Features.CommitteeQuorum)
	assert.Equal(t, true, cfg.Features.ConcurrentShardResolution)
	assert.Equal(t, false, cfg.Features.SkipBLSVerify)
}

func TestUnmarshalConfig_DefaultsToDevnetName(t *testing.T) {
	cfg, err := UnmarshalConfig([]byte("SHARD_COUNT: 32"))
	require.NoError(t, err)
	assert.Equal(t, "devnet", cfg.ConfigName)
	assert.Equal(t, uint64(32), cfg.ShardCount)
	assert.Equal(t, uint64(64), uint64(cfg.SlotsPerEpoch))
}

func TestUnmarshalConfig_RejectsInvalidValues(t *testing.T) {
	_, err := UnmarshalConfig([]byte("SLOTS_PER_EPOCH: 0"))
	assert.Equal(t, true, errors.Is(err, ErrInvalidConfig))
}

func TestUnmarshalConfigFile_Missing(t *testing.T) {
	_, err := UnmarshalConfigFile(filepath.Join("testdata", "missing.yaml"))
	require.ErrorContains(t, "failed to read chain config file", err)
}

func TestConfigToYaml_RoundTrip(t *testing.T) {
	want := MinimalSpecConfig()
	want.ShardCount = 24
	want.ConfigName = "roundtrip"
	got, err := UnmarshalConfig(ConfigToYaml(want))
	require.NoError(t, err)
	assert.Equal(t, want.ShardCount, got.ShardCount)
	assert.Equal(t, want.ConfigName, got.ConfigName)
	assert.Equal(t, want.GenesisForkVersion, got.GenesisForkVersion)
	assert.Equal(t, want.DomainRandao, got.DomainRandao)
	assert.Equal(t, want.SlotsPerEpoch, got.SlotsPerEpoch)
}

func TestLoadChainConfigFile(t *testing.T) {
	SetupTestConfigCleanup(t)
	require.NoError(t, LoadChainConfigFile(filepath.Join("testdata", "minimal_override.yaml")))
	assert.Equal(t, "crosslink-devnet", BeaconConfig().ConfigName)
}

func TestReplaceHexStringWithYAMLFormat(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{line: "ONE_BYTE: 0x01", want: []string{"ONE_BYTE: 1\n"}},
		{line: "FOUR_BYTES: 0x01020304", want: []string{"FOUR_BYTES: ", "- 1\n- 2\n- 3\n- 4\n"}},
		{line: "PADDED: 0x0102", want: []string{"PADDED: ", "- 1\n- 2\n- 0\n- 0\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ReplaceHexStringWithYAMLFormat(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := ReplaceHexStringWithYAMLFormat("BAD: 0xzz")
	assert.NotNil(t, err)
}

package params

import (
	"math"

	"github.com/prysmaticlabs/prysm-crosslinks/config/features"
	fieldparams "github.com/prysmaticlabs/prysm-crosslinks/config/fieldparams"
)

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig
}

var mainnetBeaconConfig = &BeaconChainConfig{
	PresetBase: "mainnet",
	ConfigName: ConfigNames[Mainnet],

	// Misc constant.
	ShardCount:                1024,
	TargetCommitteeSize:       128,
	MaxValidatorsPerCommittee: 4096,
	MaxCommitteesPerSlot:      64,
	ShuffleRoundCount:         90,

	// Gwei value constants.
	MaxEffectiveBalance:       32 * 1e9,
	EffectiveBalanceIncrement: 1 * 1e9,

	// Initial value constants.
	GenesisForkVersion: []byte{0, 0, 0, 0},
	GenesisSlot:        0,
	GenesisEpoch:       0,
	FarFutureEpoch:     math.MaxUint64,
	ZeroHash:           [32]byte{},

	// Time parameter constants.
	MinAttestationInclusionDelay: 1,
	SlotsPerEpoch:                64,
	MinSeedLookahead:             1,
	MaxEpochsPerCrosslink:        64,

	// State list length constants.
	EpochsPerHistoricalVector: 65536,

	// Reward and penalty quotients constants.
	BaseRewardFactor:    64,
	BaseRewardsPerEpoch: 5,

	// BLS domain values.
	DomainBeaconProposer: bytesFromUint32(0x00000000),
	DomainBeaconAttester: bytesFromUint32(0x01000000),
	DomainRandao:         bytesFromUint32(0x02000000),

	// Prysm constants.
	BLSSecretKeyLength:       fieldparams.BLSSecretKeyLength,
	BLSPubkeyLength:          fieldparams.BLSPubkeyLength,
	BLSSignatureLength:       fieldparams.BLSSignatureLength,
	ShuffledIndicesCacheSize: 3,

	Features: features.Flags{},
}

// bytesFromUint32 renders a domain constant written as it appears in the yaml presets.
func bytesFromUint32(v uint32) [4]byte {
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

// Package params defines the constants and capability flags that drive
// attestation validation and crosslink processing.
package params

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/config/features"
	types "github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// BeaconChainConfig contains constant configs for node to participate in beacon chain.
type BeaconChainConfig struct {
	// Preset and naming.
	PresetBase string `yaml:"PRESET_BASE" spec:"true"` // PresetBase is the preset the config was derived from.
	ConfigName string `yaml:"CONFIG_NAME" spec:"true"` // ConfigName for allowing an easy human-readable way of knowing what chain is being used.

	// Misc constants.
	ShardCount                uint64 `yaml:"SHARD_COUNT" spec:"true" validate:"gt=0"`             // ShardCount is the number of shard chains crosslinked into the beacon chain.
	TargetCommitteeSize       uint64 `yaml:"TARGET_COMMITTEE_SIZE" spec:"true" validate:"gt=0"`   // TargetCommitteeSize is the number of validators in a committee when the chain is healthy.
	MaxValidatorsPerCommittee uint64 `yaml:"MAX_VALIDATORS_PER_COMMITTEE" spec:"true"`            // MaxValidatorsPerCommittee defines the upper bound of the size of a committee.
	MaxCommitteesPerSlot      uint64 `yaml:"MAX_COMMITTEES_PER_SLOT" spec:"true" validate:"gt=0"` // MaxCommitteesPerSlot defines the max amount of committee in a single slot.
	ShuffleRoundCount         uint64 `yaml:"SHUFFLE_ROUND_COUNT" spec:"true"`                     // ShuffleRoundCount is used for retrieving the permuted index.

	// Gwei value constants.
	MaxEffectiveBalance       uint64 `yaml:"MAX_EFFECTIVE_BALANCE" spec:"true"`                       // MaxEffectiveBalance is the maximal amount of Gwei that is effective for staking.
	EffectiveBalanceIncrement uint64 `yaml:"EFFECTIVE_BALANCE_INCREMENT" spec:"true" validate:"gt=0"` // EffectiveBalanceIncrement is used for converting the high balance into the low balance for validators.

	// Initial value constants.
	GenesisForkVersion []byte      `yaml:"GENESIS_FORK_VERSION" spec:"true"` // GenesisForkVersion is used to track fork version between state transitions.
	GenesisSlot        types.Slot  `yaml:"GENESIS_SLOT"`                     // GenesisSlot represents the first canonical slot number of the beacon chain.
	GenesisEpoch       types.Epoch `yaml:"GENESIS_EPOCH"`                    // GenesisEpoch represents the first canonical epoch number of the beacon chain.
	FarFutureEpoch     types.Epoch `yaml:"FAR_FUTURE_EPOCH"`                 // FarFutureEpoch represents a epoch extremely far away in the future used as the default penalization epoch for validators.
	ZeroHash           [32]byte    // ZeroHash is used to represent a zeroed out 32 byte array.

	// Time parameters constants.
	MinAttestationInclusionDelay types.Slot  `yaml:"MIN_ATTESTATION_INCLUSION_DELAY" spec:"true"` // MinAttestationInclusionDelay defines how many slots validator has to wait to include attestation for beacon block.
	SlotsPerEpoch                types.Slot  `yaml:"SLOTS_PER_EPOCH" spec:"true" validate:"gt=0"` // SlotsPerEpoch is the number of slots in an epoch.
	MinSeedLookahead             types.Epoch `yaml:"MIN_SEED_LOOKAHEAD" spec:"true"`              // MinSeedLookahead is the duration of randao look ahead seed.
	MaxEpochsPerCrosslink        types.Epoch `yaml:"MAX_EPOCHS_PER_CROSSLINK" spec:"true"`        // MaxEpochsPerCrosslink defines the max epoch from current a crosslink can be formed at.

	// State list lengths.
	EpochsPerHistoricalVector types.Epoch `yaml:"EPOCHS_PER_HISTORICAL_VECTOR" spec:"true" validate:"gtfield=MinSeedLookahead"` // EpochsPerHistoricalVector defines max length in epoch to store old historical stats in beacon state.

	// Reward and penalty quotients constants.
	BaseRewardFactor    uint64 `yaml:"BASE_REWARD_FACTOR" spec:"true"`         // BaseRewardFactor is used to calculate validator per-slot interest rate.
	BaseRewardsPerEpoch uint64 `yaml:"BASE_REWARDS_PER_EPOCH" validate:"gt=0"` // BaseRewardsPerEpoch is used to calculate the per epoch rewards.

	// BLS domain values.
	DomainBeaconProposer [4]byte `yaml:"DOMAIN_BEACON_PROPOSER" spec:"true"` // DomainBeaconProposer defines the BLS signature domain for beacon proposal verification.
	DomainBeaconAttester [4]byte `yaml:"DOMAIN_BEACON_ATTESTER" spec:"true"` // DomainBeaconAttester defines the BLS signature domain for attestation verification.
	DomainRandao         [4]byte `yaml:"DOMAIN_RANDAO" spec:"true"`          // DomainRandao defines the BLS signature domain for randao verification.

	// Prysm constants.
	BLSSecretKeyLength       int // BLSSecretKeyLength defines the expected length of BLS secret keys in bytes.
	BLSPubkeyLength          int `validate:"eq=48"` // BLSPubkeyLength defines the expected length of BLS public keys in bytes.
	BLSSignatureLength       int // BLSSignatureLength defines the expected length of BLS signatures in bytes.
	ShuffledIndicesCacheSize int // ShuffledIndicesCacheSize is the number of shuffled validator lists kept in memory.

	// Features selects alternative behaviours in place of per-phase code paths.
	Features features.Flags `yaml:"FEATURES"`
}

// CrosslinkSpan returns the number of epochs a crosslink may span given its start epoch and target.
func (b *BeaconChainConfig) CrosslinkSpan(start, target types.Epoch) types.Epoch {
	return types.MinEpoch(target, start+b.MaxEpochsPerCrosslink)
}

// Validate reports a config that cannot drive committee computation. The
// rules live in the validate struct tags.
func (b *BeaconChainConfig) Validate() error {
	err := configValidator().Struct(b)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errInvalidConfig(fieldErrs[0].Field(), fieldErrs[0].Value())
	}
	return errors.Wrap(err, "could not validate config")
}

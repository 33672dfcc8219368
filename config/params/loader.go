package params

import (
	"encoding/hex"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var log = logrus.WithField("prefix", "params")

// Fixed byte lengths a 0x value in a config file may be widened to.
var hexFieldLengths = []int{4, 8, 16, 20, 32, 48, 64, 96}

// UnmarshalConfigFile reads a yaml preset file and returns the config it describes.
// Unset keys fall back to mainnet, or to minimal when the file declares PRESET_BASE minimal.
func UnmarshalConfigFile(path string) (*BeaconChainConfig, error) {
	yamlFile, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, errors.Wrap(err, "failed to read chain config file")
	}
	return UnmarshalConfig(yamlFile)
}

// UnmarshalConfig converts hex values into valid param yaml format and
// unmarshals the result on top of the preset named by PRESET_BASE.
func UnmarshalConfig(yamlFile []byte) (*BeaconChainConfig, error) {
	// Default to using mainnet.
	conf := MainnetConfig().Copy()
	// To track if config name is defined inside config file.
	hasConfigName := false
	lines := strings.Split(string(yamlFile), "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "CONFIG_NAME") {
			hasConfigName = true
		}
		if strings.HasPrefix(trimmed, "PRESET_BASE") && strings.Contains(trimmed, "minimal") {
			conf = MinimalSpecConfig()
		}
		if strings.Contains(line, "0x") {
			replaced, err := ReplaceHexStringWithYAMLFormat(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", i+1)
			}
			lines[i] = strings.Join(replaced, "\n")
		}
	}
	if err := yaml.UnmarshalStrict([]byte(strings.Join(lines, "\n")), conf); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			return nil, errors.Wrap(err, "failed to parse chain config yaml file")
		}
		log.WithError(err).Error("There were some issues parsing the config from a yaml file")
	}
	if !hasConfigName {
		conf.ConfigName = "devnet"
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	log.Debugf("Config file values: %+v", conf)
	return conf, nil
}

// LoadChainConfigFile load, convert hex values into valid param yaml format,
// unmarshal, and apply beacon chain config file.
func LoadChainConfigFile(path string) error {
	conf, err := UnmarshalConfigFile(path)
	if err != nil {
		return err
	}
	conf.Features.Warn()
	OverrideBeaconConfig(conf)
	return nil
}

// ReplaceHexStringWithYAMLFormat will replace hex strings that the yaml parser will understand.
// A single byte becomes a scalar, anything longer becomes a fixed length byte sequence.
func ReplaceHexStringWithYAMLFormat(line string) ([]string, error) {
	parts := strings.Split(line, "0x")
	decoded, err := hex.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode hex string")
	}
	if len(decoded) == 1 {
		fixedByte, err := yaml.Marshal(decoded[0])
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config value")
		}
		return []string{parts[0] + string(fixedByte)}, nil
	}
	size := 0
	for _, l := range hexFieldLengths {
		if len(decoded) <= l {
			size = l
			break
		}
	}
	if size == 0 {
		return nil, errors.Errorf("hex value of %d bytes is longer than any config field", len(decoded))
	}
	arr := reflect.New(reflect.ArrayOf(size, reflect.TypeOf(byte(0)))).Elem()
	reflect.Copy(arr, reflect.ValueOf(decoded))
	fixedBytes, err := yaml.Marshal(arr.Interface())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal config value")
	}
	parts[1] = string(fixedBytes)
	return parts[:2], nil
}

// ConfigToYaml takes a provided config and outputs its contents
// in yaml. This allows custom configs to be read back by LoadChainConfigFile.
func ConfigToYaml(cfg *BeaconChainConfig) []byte {
	lines := []string{
		fmt.Sprintf("PRESET_BASE: '%s'", cfg.PresetBase),
		fmt.Sprintf("CONFIG_NAME: '%s'", cfg.ConfigName),
		fmt.Sprintf("SHARD_COUNT: %d", cfg.ShardCount),
		fmt.Sprintf("TARGET_COMMITTEE_SIZE: %d", cfg.TargetCommitteeSize),
		fmt.Sprintf("MAX_VALIDATORS_PER_COMMITTEE: %d", cfg.MaxValidatorsPerCommittee),
		fmt.Sprintf("MAX_COMMITTEES_PER_SLOT: %d", cfg.MaxCommitteesPerSlot),
		fmt.Sprintf("SHUFFLE_ROUND_COUNT: %d", cfg.ShuffleRoundCount),
		fmt.Sprintf("MAX_EFFECTIVE_BALANCE: %d", cfg.MaxEffectiveBalance),
		fmt.Sprintf("EFFECTIVE_BALANCE_INCREMENT: %d", cfg.EffectiveBalanceIncrement),
		fmt.Sprintf("GENESIS_FORK_VERSION: %#x", cfg.GenesisForkVersion),
		fmt.Sprintf("MIN_ATTESTATION_INCLUSION_DELAY: %d", cfg.MinAttestationInclusionDelay),
		fmt.Sprintf("SLOTS_PER_EPOCH: %d", cfg.SlotsPerEpoch),
		fmt.Sprintf("MIN_SEED_LOOKAHEAD: %d", cfg.MinSeedLookahead),
		fmt.Sprintf("MAX_EPOCHS_PER_CROSSLINK: %d", cfg.MaxEpochsPerCrosslink),
		fmt.Sprintf("EPOCHS_PER_HISTORICAL_VECTOR: %d", cfg.EpochsPerHistoricalVector),
		fmt.Sprintf("BASE_REWARD_FACTOR: %d", cfg.BaseRewardFactor),
		fmt.Sprintf("BASE_REWARDS_PER_EPOCH: %d", cfg.BaseRewardsPerEpoch),
		fmt.Sprintf("DOMAIN_BEACON_PROPOSER: %#x", cfg.DomainBeaconProposer),
		fmt.Sprintf("DOMAIN_BEACON_ATTESTER: %#x", cfg.DomainBeaconAttester),
		fmt.Sprintf("DOMAIN_RANDAO: %#x", cfg.DomainRandao),
	}
	return []byte(strings.Join(lines, "\n"))
}

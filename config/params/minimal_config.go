package params

// MinimalSpecConfig retrieves the minimal config used in spec tests.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()

	// Misc
	minimalConfig.ShardCount = 8
	minimalConfig.TargetCommitteeSize = 4
	minimalConfig.MaxValidatorsPerCommittee = 4096
	minimalConfig.MaxCommitteesPerSlot = 4
	minimalConfig.ShuffleRoundCount = 10

	// Time parameters
	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.MinAttestationInclusionDelay = 1
	minimalConfig.MinSeedLookahead = 1
	minimalConfig.MaxEpochsPerCrosslink = 4

	// State vector lengths
	minimalConfig.EpochsPerHistoricalVector = 64

	// Fork
	minimalConfig.GenesisForkVersion = []byte{0, 0, 0, 1}

	minimalConfig.PresetBase = "minimal"
	minimalConfig.ConfigName = ConfigNames[Minimal]

	return minimalConfig
}

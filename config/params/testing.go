package params

import "testing"

// SetupTestConfigCleanup preserves configurations allowing to modify them within tests without any
// restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t testing.TB) {
	prevBeaconConfig := BeaconConfig().Copy()
	t.Cleanup(func() {
		OverrideBeaconConfig(prevBeaconConfig)
	})
}

// MinimalTestConfig returns a minimal preset copy with signature checks disabled,
// suited to tests that build attestations without keys.
func MinimalTestConfig() *BeaconChainConfig {
	cfg := MinimalSpecConfig()
	cfg.Features.SkipBLSVerify = true
	return cfg
}

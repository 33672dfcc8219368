/*
Package features defines the capability flags that select between
alternative consensus behaviours. Unlike a process-wide feature toggle, a
Flags value travels inside params.BeaconChainConfig so that every component
sees the flags it was configured with.

To add a flag:
	1. Add a boolean field to Flags with a one line description.
	2. Branch on cfg.Features.<Flag> at the call site; keep the previous
	   behaviour in the else branch.
	3. Cover both branches in tests by copying the config and toggling the flag.
*/
package features

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "features")

// Flags is a struct to represent which capabilities a configuration enables.
type Flags struct {
	// SkipBLSVerify skips aggregate signature verification of attestations. UNSAFE outside of tests.
	SkipBLSVerify bool `yaml:"SKIP_BLS_VERIFY"`
	// ConcurrentShardResolution evaluates the shards of a crosslink resolution pass in parallel.
	ConcurrentShardResolution bool `yaml:"CONCURRENT_SHARD_RESOLUTION"`
	// CommitteeQuorum measures the two-thirds quorum of a crosslink against the shard
	// committee balance rather than the total active balance.
	CommitteeQuorum bool `yaml:"COMMITTEE_QUORUM"`
}

// Warn logs a warning for every flag that alters consensus behaviour.
func (f Flags) Warn() {
	if f.SkipBLSVerify {
		log.Warn("UNSAFE: Skipping BLS verification of attestations")
	}
	if f.CommitteeQuorum {
		log.Warn("Crosslink quorum measured against committee balance")
	}
	if f.ConcurrentShardResolution {
		log.Info("Resolving shard crosslinks concurrently")
	}
}

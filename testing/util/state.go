// Package util contains builders for beacon states, attestations and
// crosslinks used by tests.
package util

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// DeterministicGenesisState returns a genesis state with numValidators active
// validators at MAX_EFFECTIVE_BALANCE, made using the deterministic keys.
func DeterministicGenesisState(t testing.TB, cfg *params.BeaconChainConfig, numValidators uint64) (*state.BeaconState, []bls.SecretKey) {
	privKeys, err := DeterministicallyGenerateKeys(numValidators)
	if err != nil {
		t.Fatal(errors.Wrapf(err, "failed to get %d keys", numValidators))
	}
	st := NewBeaconState(cfg)
	for _, k := range privKeys {
		st.Validators = append(st.Validators, &ethpb.Validator{
			PublicKey:        bytesutil.ToBytes48(k.PublicKey().Marshal()),
			EffectiveBalance: cfg.MaxEffectiveBalance,
			ActivationEpoch:  cfg.GenesisEpoch,
			ExitEpoch:        cfg.FarFutureEpoch,
		})
		st.Balances = append(st.Balances, cfg.MaxEffectiveBalance)
	}
	st.GenesisValidatorsRoot = hash.Hash([]byte("genesis validators root"))
	helpers.ClearAllCaches()
	return st, privKeys
}

// NewBeaconState creates a beacon state with no validators, zero crosslinks for
// every shard and a full vector of zero randao mixes.
func NewBeaconState(cfg *params.BeaconChainConfig) *state.BeaconState {
	forkVersion := bytesutil.ToBytes4(cfg.GenesisForkVersion)
	return &state.BeaconState{
		Slot: cfg.GenesisSlot,
		Fork: ethpb.Fork{
			PreviousVersion: forkVersion,
			CurrentVersion:  forkVersion,
			Epoch:           cfg.GenesisEpoch,
		},
		Validators:         []*ethpb.Validator{},
		Balances:           []uint64{},
		RandaoMixes:        make([][32]byte, cfg.EpochsPerHistoricalVector),
		PreviousCrosslinks: make([]ethpb.Crosslink, cfg.ShardCount),
		CurrentCrosslinks:  make([]ethpb.Crosslink, cfg.ShardCount),
	}
}

// SetEffectiveBalances gives the listed validators MAX_EFFECTIVE_BALANCE and
// every other validator EFFECTIVE_BALANCE_INCREMENT, so that the listed
// validators hold a supermajority of the stake once they make up more than a
// small fraction of the registry.
func SetEffectiveBalances(cfg *params.BeaconChainConfig, st *state.BeaconState, heavy []primitives.ValidatorIndex) {
	isHeavy := make(map[primitives.ValidatorIndex]bool, len(heavy))
	for _, idx := range heavy {
		isHeavy[idx] = true
	}
	for i, v := range st.Validators {
		if isHeavy[primitives.ValidatorIndex(i)] {
			v.EffectiveBalance = cfg.MaxEffectiveBalance
		} else {
			v.EffectiveBalance = cfg.EffectiveBalanceIncrement
		}
		st.Balances[i] = v.EffectiveBalance
	}
}

// AdvanceToSlot moves the state to the slot. Only the slot field changes.
func AdvanceToSlot(st *state.BeaconState, slot primitives.Slot) {
	st.Slot = slot
}

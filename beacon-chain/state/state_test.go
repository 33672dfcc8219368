package state_test

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

func TestBeaconState_Copy(t *testing.T) {
	st := &state.BeaconState{
		Slot:              5,
		Validators:        []*ethpb.Validator{{EffectiveBalance: 32}},
		Balances:          []uint64{32},
		CurrentCrosslinks: []ethpb.Crosslink{{Shard: 0}, {Shard: 1}},
		CurrentEpochAttestations: []*ethpb.PendingAttestation{
			{AggregationBits: bitfield.Bitlist{0x00, 0x01}},
		},
		CrosslinkResolutions: []*state.CrosslinkResolution{{Shard: 1}},
	}
	cp := st.Copy()
	cp.Slot = 6
	cp.Validators[0].EffectiveBalance = 0
	cp.Balances[0] = 0
	cp.CurrentCrosslinks[1].StartEpoch = 9
	cp.CurrentEpochAttestations[0].AggregationBits.SetBitAt(0, true)
	cp.CrosslinkResolutions[0].Committed = true

	assert.Equal(t, uint64(5), uint64(st.Slot))
	assert.Equal(t, uint64(32), st.Validators[0].EffectiveBalance)
	assert.Equal(t, uint64(32), st.Balances[0])
	assert.Equal(t, uint64(0), uint64(st.CurrentCrosslinks[1].StartEpoch))
	assert.Equal(t, false, st.CurrentEpochAttestations[0].AggregationBits.BitAt(0))
	assert.Equal(t, false, st.CrosslinkResolutions[0].Committed)
	assert.Nil(t, (*state.BeaconState)(nil).Copy())
}

func TestBeaconState_SnapshotCrosslinks(t *testing.T) {
	st := &state.BeaconState{CurrentCrosslinks: []ethpb.Crosslink{{Shard: 0}, {Shard: 1}}}
	st.SnapshotCrosslinks()
	require.NoError(t, st.UpdateCurrentCrosslinkAtShard(1, ethpb.Crosslink{Shard: 1, EndEpoch: 3}))
	assert.Equal(t, ethpb.Crosslink{Shard: 1}, st.PreviousCrosslinks[1])
	assert.Equal(t, ethpb.Crosslink{Shard: 1, EndEpoch: 3}, st.CurrentCrosslinks[1])
}

func TestBeaconState_Bounds(t *testing.T) {
	st := &state.BeaconState{CurrentCrosslinks: make([]ethpb.Crosslink, 2)}
	_, err := st.CurrentCrosslinkAtShard(2)
	assert.NotNil(t, err)
	assert.NotNil(t, st.UpdateCurrentCrosslinkAtShard(2, ethpb.Crosslink{}))
	_, err = st.ValidatorAtIndex(0)
	assert.NotNil(t, err)
}

func TestBeaconState_AppendAttestations(t *testing.T) {
	st := &state.BeaconState{}
	st.AppendCurrentEpochAttestation(&ethpb.PendingAttestation{InclusionDelay: 1})
	st.AppendPreviousEpochAttestation(&ethpb.PendingAttestation{InclusionDelay: 2})
	require.Equal(t, 1, len(st.CurrentEpochAttestations))
	require.Equal(t, 1, len(st.PreviousEpochAttestations))
	assert.Equal(t, uint64(2), uint64(st.PreviousEpochAttestations[0].InclusionDelay))
}

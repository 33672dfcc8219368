package helpers

import (
	"testing"

	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/assert"
)

func TestSlotToEpoch_OK(t *testing.T) {
	cfg := params.MainnetConfig()
	tests := []struct {
		slot  primitives.Slot
		epoch primitives.Epoch
	}{
		{slot: 0, epoch: 0},
		{slot: 50, epoch: 0},
		{slot: 64, epoch: 1},
		{slot: 128, epoch: 2},
		{slot: 200, epoch: 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.epoch, SlotToEpoch(cfg, tt.slot), "SlotToEpoch(%d)", tt.slot)
	}
}

func TestCurrentPrevNextEpoch_OK(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	tests := []struct {
		slot    primitives.Slot
		current primitives.Epoch
		prev    primitives.Epoch
	}{
		{slot: 0, current: 0, prev: 0},
		{slot: 7, current: 0, prev: 0},
		{slot: 8, current: 1, prev: 0},
		{slot: 17, current: 2, prev: 1},
	}
	for _, tt := range tests {
		st := &state.BeaconState{Slot: tt.slot}
		assert.Equal(t, tt.current, CurrentEpoch(cfg, st), "CurrentEpoch(%d)", tt.slot)
		assert.Equal(t, tt.prev, PrevEpoch(cfg, st), "PrevEpoch(%d)", tt.slot)
		assert.Equal(t, tt.current+1, NextEpoch(cfg, st), "NextEpoch(%d)", tt.slot)
	}
}

func TestStartSlot_OK(t *testing.T) {
	cfg := params.MinimalSpecConfig()
	assert.Equal(t, primitives.Slot(0), StartSlot(cfg, 0))
	assert.Equal(t, primitives.Slot(24), StartSlot(cfg, 3))
	assert.Equal(t, true, IsEpochStart(cfg, 24))
	assert.Equal(t, false, IsEpochStart(cfg, 25))
}

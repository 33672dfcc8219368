// Package state defines the beacon state consumed and mutated by attestation
// and crosslink processing.
package state

import (
	"github.com/mohae/deepcopy"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// ErrNilState is returned when a nil state is passed to a state transition function.
var ErrNilState = errors.New("nil beacon state")

// BeaconState holds the fields of the beacon chain state touched by
// attestation processing and the crosslink epoch transition.
//
// PreviousCrosslinks and CurrentCrosslinks are indexed by shard and always
// hold SHARD_COUNT entries. They are separate arrays and must never share
// backing storage.
type BeaconState struct {
	Slot                        primitives.Slot
	GenesisValidatorsRoot       [32]byte
	Fork                        ethpb.Fork
	Validators                  []*ethpb.Validator
	Balances                    []uint64
	RandaoMixes                 [][32]byte
	PreviousJustifiedCheckpoint ethpb.Checkpoint
	CurrentJustifiedCheckpoint  ethpb.Checkpoint
	PreviousCrosslinks          []ethpb.Crosslink
	CurrentCrosslinks           []ethpb.Crosslink
	PreviousEpochAttestations   []*ethpb.PendingAttestation
	CurrentEpochAttestations    []*ethpb.PendingAttestation

	// CrosslinkResolutions records the outcome of the most recent resolution
	// of the previous epoch, one entry per shard. It is bookkeeping for reward
	// accounting and is not part of the consensus state root.
	CrosslinkResolutions []*CrosslinkResolution
}

// CrosslinkResolution is the outcome of resolving one shard for one epoch.
type CrosslinkResolution struct {
	Epoch            primitives.Epoch
	Shard            primitives.Shard
	Winner           ethpb.Crosslink
	AttestingIndices []primitives.ValidatorIndex
	AttestingBalance uint64
	Committed        bool
}

// Copy returns a deep copy of the beacon state.
func (b *BeaconState) Copy() *BeaconState {
	if b == nil {
		return nil
	}
	cp, ok := deepcopy.Copy(*b).(BeaconState)
	if !ok {
		panic("could not copy beacon state")
	}
	return &cp
}

// NumValidators returns the size of the validator registry.
func (b *BeaconState) NumValidators() int {
	return len(b.Validators)
}

// ValidatorAtIndex returns the validator at the given registry index.
func (b *BeaconState) ValidatorAtIndex(idx primitives.ValidatorIndex) (*ethpb.Validator, error) {
	if uint64(idx) >= uint64(len(b.Validators)) {
		return nil, errors.Errorf("index %d out of range of validator registry of size %d", idx, len(b.Validators))
	}
	return b.Validators[idx], nil
}

// CurrentCrosslinkAtShard returns the committed crosslink of a shard.
func (b *BeaconState) CurrentCrosslinkAtShard(shard primitives.Shard) (ethpb.Crosslink, error) {
	if uint64(shard) >= uint64(len(b.CurrentCrosslinks)) {
		return ethpb.Crosslink{}, errors.Errorf("shard %d out of range of %d crosslinks", shard, len(b.CurrentCrosslinks))
	}
	return b.CurrentCrosslinks[shard], nil
}

// UpdateCurrentCrosslinkAtShard commits a crosslink for a shard.
func (b *BeaconState) UpdateCurrentCrosslinkAtShard(shard primitives.Shard, c ethpb.Crosslink) error {
	if uint64(shard) >= uint64(len(b.CurrentCrosslinks)) {
		return errors.Errorf("shard %d out of range of %d crosslinks", shard, len(b.CurrentCrosslinks))
	}
	b.CurrentCrosslinks[shard] = c
	return nil
}

// SnapshotCrosslinks copies the current crosslinks into fresh storage for the
// previous crosslinks.
func (b *BeaconState) SnapshotCrosslinks() {
	prev := make([]ethpb.Crosslink, len(b.CurrentCrosslinks))
	copy(prev, b.CurrentCrosslinks)
	b.PreviousCrosslinks = prev
}

// AppendPreviousEpochAttestation records a pending attestation targeting the previous epoch.
func (b *BeaconState) AppendPreviousEpochAttestation(att *ethpb.PendingAttestation) {
	b.PreviousEpochAttestations = append(b.PreviousEpochAttestations, att)
}

// AppendCurrentEpochAttestation records a pending attestation targeting the current epoch.
func (b *BeaconState) AppendCurrentEpochAttestation(att *ethpb.PendingAttestation) {
	b.CurrentEpochAttestations = append(b.CurrentEpochAttestations, att)
}

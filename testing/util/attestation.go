package util

import (
	"testing"

	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/signing"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls/common"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/hash"
	"github.com/prysmaticlabs/prysm-crosslinks/encoding/bytesutil"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"github.com/prysmaticlabs/prysm-crosslinks/testing/require"
)

// DataRoot returns a data root filled with b, e.g. DataRoot(0xcc) is 0xcccc...cc.
func DataRoot(b byte) [32]byte {
	var r [32]byte
	for i := range r {
		r[i] = b
	}
	return r
}

// NewAttestationData returns valid attestation data for the committee at
// (slot, committeeIndex), with a crosslink extending the committee shard's
// currently committed crosslink and committing to dataRoot.
func NewAttestationData(
	t testing.TB,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	slot primitives.Slot,
	committeeIndex primitives.CommitteeIndex,
	dataRoot [32]byte,
) ethpb.AttestationData {
	targetEpoch := helpers.SlotToEpoch(cfg, slot)
	source := st.PreviousJustifiedCheckpoint
	if targetEpoch == helpers.CurrentEpoch(cfg, st) {
		source = st.CurrentJustifiedCheckpoint
	}
	shard, err := helpers.CommitteeShard(cfg, st, slot, committeeIndex)
	require.NoError(t, err)
	parent, err := st.CurrentCrosslinkAtShard(shard)
	require.NoError(t, err)
	crosslink, err := helpers.NextCrosslink(cfg, shard, parent, targetEpoch, dataRoot)
	require.NoError(t, err)

	return ethpb.AttestationData{
		Slot:            slot,
		CommitteeIndex:  committeeIndex,
		BeaconBlockRoot: hash.Hash(bytesutil.Bytes8(uint64(slot))),
		Source:          source,
		Target: ethpb.Checkpoint{
			Epoch: targetEpoch,
			Root:  hash.Hash(bytesutil.Bytes8(uint64(targetEpoch))),
		},
		Crosslink: crosslink,
	}
}

// NewAttestation returns an attestation for data signed by every committee
// member for which participates returns true. A nil participates means the
// whole committee attests. An attestation without participants carries the
// infinite signature.
func NewAttestation(
	t testing.TB,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	data ethpb.AttestationData,
	privKeys []bls.SecretKey,
	participates func(position int) bool,
) *ethpb.Attestation {
	committee, err := helpers.BeaconCommittee(cfg, st, data.Slot, data.CommitteeIndex)
	require.NoError(t, err)

	domain, err := signing.Domain(st.Fork, data.Target.Epoch, cfg.DomainBeaconAttester, st.GenesisValidatorsRoot)
	require.NoError(t, err)
	root, err := signing.ComputeSigningRoot(data, domain)
	require.NoError(t, err)

	bits := bitfield.NewBitlist(uint64(len(committee)))
	sigs := make([]common.Signature, 0, len(committee))
	for i, idx := range committee {
		if participates != nil && !participates(i) {
			continue
		}
		bits.SetBitAt(uint64(i), true)
		sigs = append(sigs, privKeys[idx].Sign(root[:]))
	}
	att := &ethpb.Attestation{
		AggregationBits: bits,
		Data:            data,
	}
	if len(sigs) == 0 {
		att.Signature = common.InfiniteSignature
		return att
	}
	att.Signature = bytesutil.ToBytes96(bls.AggregateSignatures(sigs).Marshal())
	return att
}

// PendingAttestation converts an attestation into the pending form recorded in
// the state, as if included inclusionDelay slots after its slot.
func PendingAttestation(att *ethpb.Attestation, inclusionDelay primitives.Slot, proposer primitives.ValidatorIndex) *ethpb.PendingAttestation {
	return &ethpb.PendingAttestation{
		AggregationBits: att.Copy().AggregationBits,
		Data:            att.Data,
		InclusionDelay:  inclusionDelay,
		ProposerIndex:   proposer,
	}
}

// CommitteeMembers returns the union of the committees crosslinking the shard
// during the epoch.
func CommitteeMembers(t testing.TB, cfg *params.BeaconChainConfig, st *state.BeaconState, epoch primitives.Epoch, shard primitives.Shard) []primitives.ValidatorIndex {
	committees, err := helpers.CrosslinkCommittees(cfg, st, epoch)
	require.NoError(t, err)
	var members []primitives.ValidatorIndex
	for _, c := range committees {
		if c.Shard == shard {
			members = append(members, c.Committee...)
		}
	}
	return members
}

// NewPendingAttestation returns a pending attestation for data, included after
// the minimum delay, with the bit of every committee member for which
// participates returns true set. A nil participates means the whole committee
// attests.
func NewPendingAttestation(
	t testing.TB,
	cfg *params.BeaconChainConfig,
	st *state.BeaconState,
	data ethpb.AttestationData,
	participates func(position int) bool,
) *ethpb.PendingAttestation {
	committee, err := helpers.BeaconCommittee(cfg, st, data.Slot, data.CommitteeIndex)
	require.NoError(t, err)
	bits := bitfield.NewBitlist(uint64(len(committee)))
	for i := range committee {
		if participates == nil || participates(i) {
			bits.SetBitAt(uint64(i), true)
		}
	}
	return &ethpb.PendingAttestation{
		AggregationBits: bits,
		Data:            data,
		InclusionDelay:  cfg.MinAttestationInclusionDelay,
	}
}

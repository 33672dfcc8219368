// Package blocks validates attestations included in blocks and records them
// as pending attestations in the beacon state.
package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/signing"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// ProcessAttestations applies processing operations to a list of attestations
// in order. It stops at the first attestation that fails, leaving the
// attestations before it recorded.
func ProcessAttestations(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	atts []*ethpb.Attestation,
) (*state.BeaconState, error) {
	var err error
	for idx, att := range atts {
		beaconState, err = ProcessAttestation(ctx, cfg, beaconState, att)
		if err != nil {
			return nil, errors.Wrapf(err, "could not process attestation at index %d", idx)
		}
	}
	return beaconState, nil
}

// ProcessAttestation verifies an input attestation can pass through processing using the given beacon state
// and records it as a pending attestation.
//
// Spec pseudocode definition:
//
//	def process_attestation(state: BeaconState, attestation: Attestation) -> None:
//	  data = attestation.data
//	  assert data.slot + MIN_ATTESTATION_INCLUSION_DELAY <= state.slot <= data.slot + SLOTS_PER_EPOCH
//	  assert data.target.epoch == compute_epoch_at_slot(data.slot)
//	  assert data.index < get_committee_count_per_slot(state, data.target.epoch)
//	  committee = get_beacon_committee(state, data.slot, data.index)
//	  assert len(attestation.aggregation_bits) == len(committee)
//	  assert data.crosslink.shard == get_committee_shard(state, data.slot, data.index)
//
//	  if data.target.epoch == get_current_epoch(state):
//	      assert data.source == state.current_justified_checkpoint
//	  else:
//	      assert data.source == state.previous_justified_checkpoint
//
//	  parent_crosslink = state.current_crosslinks[data.crosslink.shard]
//	  assert data.crosslink.parent_root == hash_tree_root(parent_crosslink)
//	  assert data.crosslink.start_epoch == parent_crosslink.end_epoch
//	  assert data.crosslink.end_epoch == min(data.target.epoch, parent_crosslink.end_epoch + MAX_EPOCHS_PER_CROSSLINK)
//
//	  # Check signature
//	  assert is_valid_attestation_signature(state, attestation)
//
//	  pending_attestation = PendingAttestation(
//	      data=data,
//	      aggregation_bits=attestation.aggregation_bits,
//	      inclusion_delay=state.slot - data.slot,
//	      proposer_index=get_beacon_proposer_index(state),
//	  )
//	  if data.target.epoch == get_current_epoch(state):
//	      state.current_epoch_attestations.append(pending_attestation)
//	  else:
//	      state.previous_epoch_attestations.append(pending_attestation)
func ProcessAttestation(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	att *ethpb.Attestation,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttestation")
	defer span.End()

	if err := VerifyAttestationNoVerifySignature(ctx, cfg, beaconState, att); err != nil {
		return nil, reject(err)
	}
	if !cfg.Features.SkipBLSVerify {
		if err := VerifyAttestationSignature(ctx, cfg, beaconState, att); err != nil {
			return nil, reject(err)
		}
	}
	return recordPendingAttestation(cfg, beaconState, att)
}

// ProcessAttestationNoVerifySignature processes the attestation without verifying the attestation signature. This
// method is used to validate attestations whose signatures have already been verified.
func ProcessAttestationNoVerifySignature(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	att *ethpb.Attestation,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttestationNoVerifySignature")
	defer span.End()

	if err := VerifyAttestationNoVerifySignature(ctx, cfg, beaconState, att); err != nil {
		return nil, reject(err)
	}
	return recordPendingAttestation(cfg, beaconState, att)
}

// VerifyAttestationNoVerifySignature verifies the attestation without verifying the attestation signature.
// It never mutates the state.
func VerifyAttestationNoVerifySignature(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	att *ethpb.Attestation,
) error {
	_, span := trace.StartSpan(ctx, "core.VerifyAttestationNoVerifySignature")
	defer span.End()

	if beaconState == nil {
		return state.ErrNilState
	}
	if att == nil {
		return errors.Wrap(ErrStructural, "nil attestation")
	}
	data := att.Data

	// Inclusion window.
	s := data.Slot
	if beaconState.Slot < s || beaconState.Slot-s < cfg.MinAttestationInclusionDelay {
		return errors.Wrapf(ErrTiming,
			"attestation slot %d + inclusion delay %d > state slot %d",
			s,
			cfg.MinAttestationInclusionDelay,
			beaconState.Slot,
		)
	}
	if beaconState.Slot-s > cfg.SlotsPerEpoch {
		return errors.Wrapf(ErrTiming,
			"state slot %d > attestation slot %d + SLOTS_PER_EPOCH %d",
			beaconState.Slot,
			s,
			cfg.SlotsPerEpoch,
		)
	}
	if err := helpers.ValidateSlotTargetEpoch(cfg, data); err != nil {
		return errors.Wrap(ErrTiming, err.Error())
	}
	currEpoch := helpers.CurrentEpoch(cfg, beaconState)
	prevEpoch := helpers.PrevEpoch(cfg, beaconState)
	if data.Target.Epoch != prevEpoch && data.Target.Epoch != currEpoch {
		return errors.Wrapf(ErrTiming,
			"expected target epoch (%d) to be the previous epoch (%d) or the current epoch (%d)",
			data.Target.Epoch,
			prevEpoch,
			currEpoch,
		)
	}

	// Committee bounds.
	c := helpers.CommitteeCountAtSlot(cfg, beaconState, s)
	if uint64(data.CommitteeIndex) >= c {
		return errors.Wrapf(ErrStructural, "committee index %d >= committee count %d", data.CommitteeIndex, c)
	}
	committee, err := helpers.BeaconCommittee(cfg, beaconState, s, data.CommitteeIndex)
	if err != nil {
		return errors.Wrap(err, "could not get beacon committee")
	}
	if err := helpers.VerifyBitfieldLength(att.AggregationBits, uint64(len(committee))); err != nil {
		return errors.Wrap(ErrStructural, err.Error())
	}
	shard, err := helpers.CommitteeShard(cfg, beaconState, s, data.CommitteeIndex)
	if err != nil {
		return errors.Wrap(err, "could not get committee shard")
	}
	if data.Crosslink.Shard != shard {
		return errors.Wrapf(ErrStructural, "crosslink shard %d does not match committee shard %d", data.Crosslink.Shard, shard)
	}

	// Source checkpoint.
	if data.Target.Epoch == currEpoch {
		if data.Source != beaconState.CurrentJustifiedCheckpoint {
			return errors.Wrap(ErrSourceMismatch, "source check point not equal to current justified checkpoint")
		}
	} else {
		if data.Source != beaconState.PreviousJustifiedCheckpoint {
			return errors.Wrap(ErrSourceMismatch, "source check point not equal to previous justified checkpoint")
		}
	}

	// Crosslink chain.
	parent, err := beaconState.CurrentCrosslinkAtShard(shard)
	if err != nil {
		return errors.Wrap(ErrStructural, err.Error())
	}
	if err := helpers.VerifyCrosslinkChain(cfg, parent, data.Crosslink, data.Target.Epoch); err != nil {
		if errors.Is(err, helpers.ErrInvalidCrosslinkChain) {
			return errors.Wrap(ErrCrosslinkChain, err.Error())
		}
		return err
	}
	return nil
}

// VerifyAttestationSignature verifies the aggregate signature of the attestation
// over its data with the public keys of the committee members whose bit is set.
//
// Spec pseudocode definition:
//
//	def is_valid_attestation_signature(state: BeaconState, attestation: Attestation) -> bool:
//	  indices = get_attesting_indices(state, attestation.data, attestation.aggregation_bits)
//	  pubkeys = [state.validators[i].pubkey for i in sorted(indices)]
//	  domain = get_domain(state, DOMAIN_BEACON_ATTESTER, attestation.data.target.epoch)
//	  signing_root = compute_signing_root(attestation.data, domain)
//	  return eth2_fast_aggregate_verify(pubkeys, signing_root, attestation.signature)
func VerifyAttestationSignature(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	att *ethpb.Attestation,
) error {
	_, span := trace.StartSpan(ctx, "core.VerifyAttestationSignature")
	defer span.End()

	if beaconState == nil {
		return state.ErrNilState
	}
	if att == nil {
		return errors.Wrap(ErrStructural, "nil attestation")
	}
	committee, err := helpers.BeaconCommittee(cfg, beaconState, att.Data.Slot, att.Data.CommitteeIndex)
	if err != nil {
		return errors.Wrap(ErrStructural, err.Error())
	}
	indices, err := helpers.AttestingIndices(att.AggregationBits, committee)
	if err != nil {
		return errors.Wrap(ErrStructural, err.Error())
	}
	domain, err := signing.Domain(beaconState.Fork, att.Data.Target.Epoch, cfg.DomainBeaconAttester, beaconState.GenesisValidatorsRoot)
	if err != nil {
		return err
	}
	root, err := signing.ComputeSigningRoot(att.Data, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	sig, err := bls.SignatureFromBytes(att.Signature[:])
	if err != nil {
		return errors.Wrap(ErrSignature, err.Error())
	}
	pubkeys := make([]bls.PublicKey, 0, len(indices))
	for _, idx := range indices {
		v, err := beaconState.ValidatorAtIndex(idx)
		if err != nil {
			return err
		}
		pk, err := bls.PublicKeyFromBytes(v.PublicKey[:])
		if err != nil {
			return errors.Wrapf(ErrSignature, "could not deserialize public key of validator %d: %v", idx, err)
		}
		pubkeys = append(pubkeys, pk)
	}
	if !sig.Eth2FastAggregateVerify(pubkeys, root) {
		return errors.Wrapf(ErrSignature, "aggregate of %d attesters", len(pubkeys))
	}
	return nil
}

func recordPendingAttestation(cfg *params.BeaconChainConfig, beaconState *state.BeaconState, att *ethpb.Attestation) (*state.BeaconState, error) {
	proposerIndex, err := helpers.BeaconProposerIndex(cfg, beaconState)
	if err != nil {
		return nil, errors.Wrap(err, "could not get proposer index")
	}
	data := att.Data
	pendingAtt := &ethpb.PendingAttestation{
		Data:            data,
		AggregationBits: att.Copy().AggregationBits,
		InclusionDelay:  beaconState.Slot - data.Slot,
		ProposerIndex:   proposerIndex,
	}
	if data.Target.Epoch == helpers.CurrentEpoch(cfg, beaconState) {
		beaconState.AppendCurrentEpochAttestation(pendingAtt)
	} else {
		beaconState.AppendPreviousEpochAttestation(pendingAtt)
	}
	processedAttestationsCount.Inc()
	return beaconState, nil
}

func reject(err error) error {
	kind := ErrorKind(err)
	rejectedAttestationsCount.WithLabelValues(kind).Inc()
	log.WithError(err).WithFields(logrus.Fields{
		"kind": kind,
	}).Debug("Rejected attestation")
	return err
}

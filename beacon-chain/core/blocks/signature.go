package blocks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/core/signing"
	"github.com/prysmaticlabs/prysm-crosslinks/beacon-chain/state"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls/common"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
	"go.opencensus.io/trace"
)

// AttestationSignatureBatch retrieves the signature of every attestation
// along with the aggregate public key of its attesters and its signing root.
// An attestation without attesters has nothing to verify in a batch, so it is
// left out once its signature is checked to be the infinite signature.
func AttestationSignatureBatch(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	atts []*ethpb.Attestation,
) (*bls.SignatureBatch, error) {
	_, span := trace.StartSpan(ctx, "core.AttestationSignatureBatch")
	defer span.End()

	if beaconState == nil {
		return nil, state.ErrNilState
	}
	set := bls.NewSet()
	for i, att := range atts {
		if att == nil {
			return nil, errors.Wrapf(ErrStructural, "nil attestation at index %d", i)
		}
		committee, err := helpers.BeaconCommittee(cfg, beaconState, att.Data.Slot, att.Data.CommitteeIndex)
		if err != nil {
			return nil, errors.Wrap(ErrStructural, err.Error())
		}
		indices, err := helpers.AttestingIndices(att.AggregationBits, committee)
		if err != nil {
			return nil, errors.Wrap(ErrStructural, err.Error())
		}
		if len(indices) == 0 {
			if att.Signature != common.InfiniteSignature {
				return nil, errors.Wrapf(ErrSignature, "attestation at index %d has no attesters and a non infinite signature", i)
			}
			continue
		}
		pubkeys := make([][]byte, len(indices))
		for j, idx := range indices {
			v, err := beaconState.ValidatorAtIndex(idx)
			if err != nil {
				return nil, err
			}
			pubkeys[j] = v.PublicKey[:]
		}
		aggregate, err := bls.AggregatePublicKeys(pubkeys)
		if err != nil {
			return nil, errors.Wrap(ErrSignature, err.Error())
		}
		domain, err := signing.Domain(beaconState.Fork, att.Data.Target.Epoch, cfg.DomainBeaconAttester, beaconState.GenesisValidatorsRoot)
		if err != nil {
			return nil, err
		}
		root, err := signing.ComputeSigningRoot(att.Data, domain)
		if err != nil {
			return nil, errors.Wrap(err, "could not compute signing root")
		}
		set.Add(att.Signature[:], aggregate, root, "attestation at slot "+att.Data.Slot.String())
	}
	return set, nil
}

// ProcessAttestationsBatchVerify validates every attestation, verifies their
// signatures as one batch and only then records them. Unlike
// ProcessAttestations the state is left untouched when any attestation fails.
func ProcessAttestationsBatchVerify(
	ctx context.Context,
	cfg *params.BeaconChainConfig,
	beaconState *state.BeaconState,
	atts []*ethpb.Attestation,
) (*state.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.ProcessAttestationsBatchVerify")
	defer span.End()

	for idx, att := range atts {
		if err := VerifyAttestationNoVerifySignature(ctx, cfg, beaconState, att); err != nil {
			return nil, errors.Wrapf(reject(err), "could not verify attestation at index %d", idx)
		}
	}
	if !cfg.Features.SkipBLSVerify {
		set, err := AttestationSignatureBatch(ctx, cfg, beaconState, atts)
		if err != nil {
			return nil, reject(err)
		}
		valid, err := set.VerifyVerbosely()
		if !valid {
			if err == nil {
				err = errors.New("batch verification failed")
			}
			return nil, reject(errors.Wrap(ErrSignature, err.Error()))
		}
	}
	for _, att := range atts {
		var err error
		beaconState, err = recordPendingAttestation(cfg, beaconState, att)
		if err != nil {
			return nil, err
		}
	}
	return beaconState, nil
}

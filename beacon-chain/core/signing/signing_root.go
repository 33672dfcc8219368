// Package signing computes signature domains and signing roots, and verifies
// signatures over them.
package signing

import (
	"github.com/pkg/errors"
	fieldparams "github.com/prysmaticlabs/prysm-crosslinks/config/fieldparams"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	"github.com/prysmaticlabs/prysm-crosslinks/crypto/bls"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// ErrSigFailedToVerify returns when a signature of a block object(ie attestation, slashing, exit... etc)
// failed to verify.
var ErrSigFailedToVerify = errors.New("signature did not verify")

// Hashable is an object that can be merkleized into a signing root.
type Hashable interface {
	HashTreeRoot() ([32]byte, error)
}

// Domain returns the domain version for BLS private key to sign and verify.
//
// Spec pseudocode definition:
//
//	def get_domain(state: BeaconState, domain_type: DomainType, epoch: Epoch=None) -> Domain:
//	  """
//	  Return the signature domain (fork version concatenated with domain type) of a message.
//	  """
//	  epoch = get_current_epoch(state) if epoch is None else epoch
//	  fork_version = state.fork.previous_version if epoch < state.fork.epoch else state.fork.current_version
//	  return compute_domain(domain_type, fork_version, state.genesis_validators_root)
func Domain(fork ethpb.Fork, epoch primitives.Epoch, domainType [fieldparams.DomainTypeLength]byte, genesisRoot [32]byte) ([fieldparams.DomainLength]byte, error) {
	forkVersion := fork.CurrentVersion
	if epoch < fork.Epoch {
		forkVersion = fork.PreviousVersion
	}
	return ComputeDomain(domainType, forkVersion, genesisRoot)
}

// ComputeDomain returns the domain version for BLS private key to sign and verify with a zeroed 4-byte
// array as the fork version.
//
//	def compute_domain(domain_type: DomainType, fork_version: Version=None, genesis_validators_root: Root=None) -> Domain:
//	  """
//	  Return the domain for the ``domain_type`` and ``fork_version``.
//	  """
//	  fork_data_root = compute_fork_data_root(fork_version, genesis_validators_root)
//	  return Domain(domain_type + fork_data_root[:28])
func ComputeDomain(domainType [fieldparams.DomainTypeLength]byte, forkVersion [fieldparams.VersionLength]byte, genesisValidatorsRoot [32]byte) ([fieldparams.DomainLength]byte, error) {
	forkDataRoot, err := ethpb.ForkData{
		CurrentVersion:        forkVersion,
		GenesisValidatorsRoot: genesisValidatorsRoot,
	}.HashTreeRoot()
	if err != nil {
		return [fieldparams.DomainLength]byte{}, errors.Wrap(err, "could not compute fork data root")
	}
	var d [fieldparams.DomainLength]byte
	copy(d[:fieldparams.DomainTypeLength], domainType[:])
	copy(d[fieldparams.DomainTypeLength:], forkDataRoot[:fieldparams.DomainLength-fieldparams.DomainTypeLength])
	return d, nil
}

// ComputeSigningRoot computes the root of the object by calculating the hash tree root of the signing data with the given domain.
//
// Spec pseudocode definition:
//
//	def compute_signing_root(ssz_object: SSZObject, domain: Domain) -> Root:
//	  """
//	  Return the signing root for the corresponding signing data.
//	  """
//	  return hash_tree_root(SigningData(
//	      object_root=hash_tree_root(ssz_object),
//	      domain=domain,
//	  ))
func ComputeSigningRoot(object Hashable, domain [fieldparams.DomainLength]byte) ([32]byte, error) {
	objRoot, err := object.HashTreeRoot()
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not compute object root")
	}
	return ethpb.SigningData{
		ObjectRoot: objRoot,
		Domain:     domain,
	}.HashTreeRoot()
}

// VerifySigningRoot verifies the signing root of an object given its public key, signature and domain.
func VerifySigningRoot(obj Hashable, pub, signature []byte, domain [fieldparams.DomainLength]byte) error {
	publicKey, err := bls.PublicKeyFromBytes(pub)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to public key")
	}
	sig, err := bls.SignatureFromBytes(signature)
	if err != nil {
		return errors.Wrap(err, "could not convert bytes to signature")
	}
	root, err := ComputeSigningRoot(obj, domain)
	if err != nil {
		return errors.Wrap(err, "could not compute signing root")
	}
	if !sig.Verify(publicKey, root[:]) {
		return ErrSigFailedToVerify
	}
	return nil
}

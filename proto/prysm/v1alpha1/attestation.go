package eth

import (
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/go-ssz"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// AttestationData is the claim an attestation makes about the chain and a shard.
type AttestationData struct {
	Slot            primitives.Slot
	CommitteeIndex  primitives.CommitteeIndex
	BeaconBlockRoot [32]byte
	Source          Checkpoint
	Target          Checkpoint
	Crosslink       Crosslink
}

// HashTreeRoot computes the ssz root of the attestation data, the object root
// signed by attesters.
func (a AttestationData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRoot(a.sszView())
}

// Attestation is the wire object submitted for inclusion in a block.
type Attestation struct {
	AggregationBits bitfield.Bitlist
	Data            AttestationData
	Signature       [96]byte
}

// Copy returns a deep copy of the attestation.
func (a *Attestation) Copy() *Attestation {
	if a == nil {
		return nil
	}
	return &Attestation{
		AggregationBits: copyBits(a.AggregationBits),
		Data:            a.Data,
		Signature:       a.Signature,
	}
}

// PendingAttestation is an attestation accepted into chain state, awaiting
// crosslink and reward processing at the epoch boundary.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist
	Data            AttestationData
	InclusionDelay  primitives.Slot
	ProposerIndex   primitives.ValidatorIndex
}

// Copy returns a deep copy of the pending attestation.
func (p *PendingAttestation) Copy() *PendingAttestation {
	if p == nil {
		return nil
	}
	return &PendingAttestation{
		AggregationBits: copyBits(p.AggregationBits),
		Data:            p.Data,
		InclusionDelay:  p.InclusionDelay,
		ProposerIndex:   p.ProposerIndex,
	}
}

func copyBits(b bitfield.Bitlist) bitfield.Bitlist {
	if b == nil {
		return nil
	}
	cp := make(bitfield.Bitlist, len(b))
	copy(cp, b)
	return cp
}

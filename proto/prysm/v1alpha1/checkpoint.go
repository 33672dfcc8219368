// Package eth defines the consensus containers exchanged and stored by the
// beacon chain: checkpoints, crosslinks, attestations and validator records.
package eth

import (
	"github.com/prysmaticlabs/go-ssz"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// Checkpoint is an (epoch, block root) pair anchoring justification.
type Checkpoint struct {
	Epoch primitives.Epoch
	Root  [32]byte
}

// HashTreeRoot computes the ssz root of the checkpoint.
func (c Checkpoint) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRoot(c.sszView())
}

// Fork records the previous and current fork versions of the chain.
type Fork struct {
	PreviousVersion [4]byte
	CurrentVersion  [4]byte
	Epoch           primitives.Epoch
}

// ForkData is hashed into the signature domain.
type ForkData struct {
	CurrentVersion        [4]byte
	GenesisValidatorsRoot [32]byte
}

// HashTreeRoot computes the ssz root of the fork data.
func (f ForkData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRoot(f)
}

// SigningData binds an object root to a signature domain.
type SigningData struct {
	ObjectRoot [32]byte
	Domain     [32]byte
}

// HashTreeRoot computes the ssz root of the signing data.
func (s SigningData) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRoot(s)
}

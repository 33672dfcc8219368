package helpers

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-crosslinks/config/params"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
	ethpb "github.com/prysmaticlabs/prysm-crosslinks/proto/prysm/v1alpha1"
)

// ErrInvalidCrosslinkChain is returned when a crosslink does not extend the shard's committed crosslink.
var ErrInvalidCrosslinkChain = errors.New("crosslink does not extend committed crosslink")

// VerifyCrosslinkChain checks that the crosslink c, claimed by an attestation
// targeting the given epoch, extends the committed crosslink parent:
//
//	assert c.parent_root == hash_tree_root(parent)
//	assert c.start_epoch == parent.end_epoch
//	assert c.end_epoch == min(target_epoch, c.start_epoch + MAX_EPOCHS_PER_CROSSLINK)
//
// A failed condition wraps ErrInvalidCrosslinkChain. Any other error comes from hashing.
func VerifyCrosslinkChain(cfg *params.BeaconChainConfig, parent, c ethpb.Crosslink, target primitives.Epoch) error {
	parentRoot, err := parent.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not hash committed crosslink")
	}
	if c.ParentRoot != parentRoot {
		return errors.Wrapf(ErrInvalidCrosslinkChain, "parent root %#x does not match committed root %#x", c.ParentRoot[:6], parentRoot[:6])
	}
	if c.StartEpoch != parent.EndEpoch {
		return errors.Wrapf(ErrInvalidCrosslinkChain, "start epoch %d does not match committed end epoch %d", c.StartEpoch, parent.EndEpoch)
	}
	if want := cfg.CrosslinkSpan(c.StartEpoch, target); c.EndEpoch != want {
		return errors.Wrapf(ErrInvalidCrosslinkChain, "end epoch %d, expected %d", c.EndEpoch, want)
	}
	return nil
}

// NextCrosslink returns the crosslink of the shard that a committee attesting at
// the target epoch would build on top of parent, committing to dataRoot.
func NextCrosslink(cfg *params.BeaconChainConfig, shard primitives.Shard, parent ethpb.Crosslink, target primitives.Epoch, dataRoot [32]byte) (ethpb.Crosslink, error) {
	parentRoot, err := parent.HashTreeRoot()
	if err != nil {
		return ethpb.Crosslink{}, errors.Wrap(err, "could not hash committed crosslink")
	}
	return ethpb.Crosslink{
		Shard:      shard,
		ParentRoot: parentRoot,
		StartEpoch: parent.EndEpoch,
		EndEpoch:   cfg.CrosslinkSpan(parent.EndEpoch, target),
		DataRoot:   dataRoot,
	}, nil
}

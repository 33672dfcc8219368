package eth

import (
	"fmt"

	"github.com/prysmaticlabs/go-ssz"
	"github.com/prysmaticlabs/prysm-crosslinks/consensus-types/primitives"
)

// Crosslink commits the data of a shard over an epoch range, chained to the
// previously committed crosslink of the same shard by ParentRoot.
type Crosslink struct {
	Shard      primitives.Shard
	ParentRoot [32]byte
	StartEpoch primitives.Epoch
	EndEpoch   primitives.Epoch
	DataRoot   [32]byte
}

// HashTreeRoot computes the ssz root of the crosslink. It is the value a child
// crosslink must carry as its parent root.
func (c Crosslink) HashTreeRoot() ([32]byte, error) {
	return ssz.HashTreeRoot(c.sszView())
}

// Span returns the number of epochs covered by the crosslink.
func (c Crosslink) Span() primitives.Epoch {
	return c.EndEpoch.Sub(uint64(c.StartEpoch))
}

func (c Crosslink) String() string {
	return fmt.Sprintf("Crosslink{shard: %d, epochs: [%d, %d), parent: %#x, data: %#x}",
		c.Shard, c.StartEpoch, c.EndEpoch, c.ParentRoot[:4], c.DataRoot[:4])
}
